package formstate

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSchemaDescribesStepsAndFields(t *testing.T) {
	store := New(WithID("signup"))
	disabled := false
	store.RegisterStep("account", StepDescriptor{Label: "Account", Order: 0})
	store.RegisterStep("extras", StepDescriptor{Label: "Extras", Order: 1, Enabled: &disabled})
	store.RegisterField("email", FieldDescriptor{
		Name:     "profile.email",
		StepName: "account",
		Value:    "a@b.c",
		Required: &RequiredCheck{Message: "email is required"},
		Validations: []Validation{
			{Message: "must contain @", Handler: func(any, any) bool { return true }},
			{Message: "must be lowercase", Handler: func(any, any) bool { return true }},
		},
	})
	store.RegisterField("age", FieldDescriptor{Name: "profile.age", Value: 30})
	store.RegisterField("blank", FieldDescriptor{Name: "profile.nickname"})

	schema := store.Schema()
	want := FormSchema{
		ID: "signup",
		Steps: []SchemaStep{
			{Name: "account", Label: "Account", Order: 0, Enabled: true},
			{Name: "extras", Label: "Extras", Order: 1, Enabled: false},
		},
		Fields: []SchemaField{
			{
				Name:            "profile.email",
				Step:            "account",
				Type:            "string",
				Required:        true,
				RequiredMessage: "email is required",
				Validations:     []string{"must contain @", "must be lowercase"},
			},
			{Name: "profile.age", Type: "int"},
			{Name: "profile.nickname", Type: "nil"},
		},
	}
	if diff := cmp.Diff(want, schema); diff != "" {
		t.Fatalf("unexpected schema (-want +got):\n%s", diff)
	}
}

func TestSchemaSerializesToJSON(t *testing.T) {
	store := New(WithID("signup"))
	store.RegisterField("email", FieldDescriptor{Name: "email", Value: "a@b.c"})

	data, err := json.Marshal(store.Schema())
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal schema: %v", err)
	}
	if decoded["id"] != "signup" {
		t.Fatalf("unexpected document: %v", decoded)
	}
	if _, ok := decoded["steps"]; ok {
		t.Fatalf("empty step list should be omitted")
	}
}
