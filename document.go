package formstate

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/valuetree"
)

// ValuesFromYAML decodes a YAML document into a value tree suitable for
// WithInitialValues, SetValues, or SetDefaultValues. The document root must
// be a mapping.
func ValuesFromYAML(data []byte) (valuetree.Tree, error) {
	var decoded map[string]any
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("formstate: decode values document: %w", err)
	}
	return normalizeTree(decoded), nil
}

// normalizeTree rewrites nested containers into the canonical
// map[string]any / []any shapes the value-tree utilities operate on.
func normalizeTree(tree map[string]any) valuetree.Tree {
	normalized := make(valuetree.Tree, len(tree))
	for key, value := range tree {
		normalized[key] = normalizeValue(value)
	}
	return normalized
}

func normalizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return normalizeTree(typed)
	case []any:
		normalized := make([]any, len(typed))
		for i, item := range typed {
			normalized[i] = normalizeValue(item)
		}
		return normalized
	default:
		return typed
	}
}
