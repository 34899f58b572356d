package formstate

import (
	"strings"
	"testing"
)

func TestEvaluateFieldErrorsRunsBothCategories(t *testing.T) {
	required := &RequiredCheck{Message: "required"}
	validations := []Validation{
		{
			Message: "must contain @",
			Handler: func(value, _ any) bool {
				text, _ := value.(string)
				return strings.Contains(text, "@")
			},
		},
		{Message: "nil handler is skipped"},
	}

	requiredErrors, validationErrors := evaluateFieldErrors("", "", required, validations)
	if len(requiredErrors) != 1 || requiredErrors[0] != "required" {
		t.Fatalf("expected required error, got %v", requiredErrors)
	}
	// Validations are not short-circuited by a failed required check.
	if len(validationErrors) != 1 || validationErrors[0] != "must contain @" {
		t.Fatalf("expected validation error, got %v", validationErrors)
	}

	requiredErrors, validationErrors = evaluateFieldErrors("a@b.c", "a@b.c", required, validations)
	if len(requiredErrors) != 0 || len(validationErrors) != 0 {
		t.Fatalf("expected clean lists, got %v / %v", requiredErrors, validationErrors)
	}
}

func TestEvaluateFieldErrorsUsesFormattedValue(t *testing.T) {
	validations := []Validation{{
		Message: "formatted mismatch",
		Handler: func(_, formatted any) bool {
			return formatted == "JDOE"
		},
	}}
	_, errors := evaluateFieldErrors("jdoe", "JDOE", nil, validations)
	if len(errors) != 0 {
		t.Fatalf("handler should receive the formatted value, got %v", errors)
	}
}

func TestPassesRequiredCustomCheck(t *testing.T) {
	required := &RequiredCheck{
		Message: "pick at least two",
		Check: func(value any) bool {
			items, _ := value.([]any)
			return len(items) >= 2
		},
	}
	if passesRequired([]any{"a"}, required) {
		t.Fatalf("custom check should fail for a single item")
	}
	if !passesRequired([]any{"a", "b"}, required) {
		t.Fatalf("custom check should pass for two items")
	}
}

func TestIsEmptyValue(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"blank string", " ", false},
		{"empty slice", []any{}, true},
		{"typed empty slice", []string{}, true},
		{"empty map", map[string]any{}, true},
		{"nil pointer", (*int)(nil), true},
		{"zero int", 0, false},
		{"zero float", 0.0, false},
		{"false", false, false},
		{"populated slice", []any{1}, false},
	}
	for _, tc := range cases {
		if got := isEmptyValue(tc.value); got != tc.want {
			t.Fatalf("%s: isEmptyValue = %v, want %v", tc.name, got, tc.want)
		}
	}
}
