// Package valuetree implements path-based access and structural utilities
// over nested value trees (map[string]any / []any). Paths are dotted field
// names where numeric segments index into arrays ("members.0.email").
package valuetree

import (
	"strconv"
	"strings"
)

// Tree is a nested value container keyed by field-name segments.
type Tree = map[string]any

// Get resolves path inside tree. The boolean reports whether every segment
// matched; a present-but-nil leaf returns (nil, true).
func Get(tree any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	current := tree
	for _, segment := range splitPath(path) {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, false
			}
			current = node[index]
		default:
			return nil, false
		}
	}
	return current, true
}

// Set writes value at path, creating intermediate maps and growing arrays as
// needed. The (possibly replaced) root is returned so callers can start from
// a nil tree.
func Set(tree Tree, path string, value any) Tree {
	if path == "" {
		return tree
	}
	if tree == nil {
		tree = Tree{}
	}
	setSegments(tree, splitPath(path), value)
	return tree
}

func setSegments(node map[string]any, segments []string, value any) {
	head := segments[0]
	if len(segments) == 1 {
		node[head] = value
		return
	}
	rest := segments[1:]
	if index, err := strconv.Atoi(rest[0]); err == nil && index >= 0 {
		slice, _ := node[head].([]any)
		node[head] = setIndexed(slice, index, rest[1:], value)
		return
	}
	child, ok := node[head].(map[string]any)
	if !ok {
		child = map[string]any{}
		node[head] = child
	}
	setSegments(child, rest, value)
}

func setIndexed(slice []any, index int, rest []string, value any) []any {
	for len(slice) <= index {
		slice = append(slice, nil)
	}
	if len(rest) == 0 {
		slice[index] = value
		return slice
	}
	if next, err := strconv.Atoi(rest[0]); err == nil && next >= 0 {
		nested, _ := slice[index].([]any)
		slice[index] = setIndexed(nested, next, rest[1:], value)
		return slice
	}
	child, ok := slice[index].(map[string]any)
	if !ok {
		child = map[string]any{}
		slice[index] = child
	}
	setSegments(child, rest, value)
	return slice
}

// Omit removes the leaf at path, leaving intermediate containers in place.
// Unknown paths are a no-op.
func Omit(tree Tree, path string) {
	if tree == nil || path == "" {
		return
	}
	segments := splitPath(path)
	parent := any(tree)
	for _, segment := range segments[:len(segments)-1] {
		switch node := parent.(type) {
		case map[string]any:
			parent = node[segment]
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return
			}
			parent = node[index]
		default:
			return
		}
	}
	leaf := segments[len(segments)-1]
	switch node := parent.(type) {
	case map[string]any:
		delete(node, leaf)
	case []any:
		if index, err := strconv.Atoi(leaf); err == nil && index >= 0 && index < len(node) {
			node[index] = nil
		}
	}
}

// Merge composes base and overlay into a new tree. Overlay entries win;
// nested maps merge recursively while slices and scalars are replaced
// wholesale.
func Merge(base, overlay Tree) Tree {
	if base == nil && overlay == nil {
		return nil
	}
	merged := make(Tree, len(base)+len(overlay))
	for key, value := range base {
		merged[key] = CloneValue(value)
	}
	for key, value := range overlay {
		existing, ok := merged[key]
		if !ok {
			merged[key] = CloneValue(value)
			continue
		}
		strongMap, strongOK := value.(map[string]any)
		weakMap, weakOK := existing.(map[string]any)
		if strongOK && weakOK {
			merged[key] = Merge(weakMap, strongMap)
			continue
		}
		merged[key] = CloneValue(value)
	}
	return merged
}

// Clone returns a deep copy of tree. Scalars are copied by value; only the
// container structure (maps and slices) is duplicated.
func Clone(tree Tree) Tree {
	if tree == nil {
		return nil
	}
	clone := make(Tree, len(tree))
	for key, value := range tree {
		clone[key] = CloneValue(value)
	}
	return clone
}

// CloneValue deep-copies a single tree value.
func CloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return Clone(typed)
	case []any:
		clone := make([]any, len(typed))
		for i, item := range typed {
			clone[i] = CloneValue(item)
		}
		return clone
	default:
		return typed
	}
}

func splitPath(path string) []string {
	return strings.Split(path, ".")
}
