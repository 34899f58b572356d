package valuetree

import (
	"fmt"
	"sort"
	"strings"
)

// Leaf pairs a resolved dotted path with the value stored there.
type Leaf struct {
	Path  string
	Value any
}

// Flatten walks tree and returns its leaves ordered by path. Slices are
// reported as single leaves so array-shaped field values stay intact.
func Flatten(tree Tree) []Leaf {
	return flattenValue(tree, "")
}

func flattenValue(value any, prefix string) []Leaf {
	switch typed := value.(type) {
	case map[string]any:
		if len(typed) == 0 {
			if prefix == "" {
				return nil
			}
			return []Leaf{{Path: prefix, Value: typed}}
		}
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var leaves []Leaf
		for _, key := range keys {
			leaves = append(leaves, flattenValue(typed[key], joinPath(prefix, key))...)
		}
		return leaves
	default:
		if prefix == "" {
			return nil
		}
		return []Leaf{{Path: prefix, Value: typed}}
	}
}

// TypeName reports a display name for a leaf value, used by schema export.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	if slice, ok := value.([]any); ok {
		if len(slice) == 0 {
			return "[]any"
		}
		return "[]" + TypeName(slice[0])
	}
	return fmt.Sprintf("%T", value)
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return strings.Join([]string{prefix, segment}, ".")
}
