package valuetree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlattenOrdersLeavesByPath(t *testing.T) {
	tree := Tree{
		"b": map[string]any{"inner": 2},
		"a": 1,
		"c": []any{"x", "y"},
	}

	want := []Leaf{
		{Path: "a", Value: 1},
		{Path: "b.inner", Value: 2},
		{Path: "c", Value: []any{"x", "y"}},
	}
	if diff := cmp.Diff(want, Flatten(tree)); diff != "" {
		t.Fatalf("unexpected leaves (-want +got):\n%s", diff)
	}
}

func TestFlattenKeepsEmptyMapsAsLeaves(t *testing.T) {
	leaves := Flatten(Tree{"empty": map[string]any{}})
	if len(leaves) != 1 || leaves[0].Path != "empty" {
		t.Fatalf("expected empty map reported as one leaf, got %v", leaves)
	}
	if got := Flatten(Tree{}); got != nil {
		t.Fatalf("flattening an empty root should yield nothing, got %v", got)
	}
}

func TestTypeName(t *testing.T) {
	cases := []struct {
		value any
		want  string
	}{
		{nil, "nil"},
		{"x", "string"},
		{42, "int"},
		{3.5, "float64"},
		{true, "bool"},
		{[]any{}, "[]any"},
		{[]any{"a"}, "[]string"},
		{[]any{[]any{1}}, "[][]int"},
		{map[string]any{}, "map[string]interface {}"},
	}
	for _, tc := range cases {
		if got := TypeName(tc.value); got != tc.want {
			t.Fatalf("TypeName(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
