// Package update applies the update-operator grammar ($set, $push,
// $setOnInsert) to in-memory documents.
package update

import (
	"sort"
	"strings"

	"github.com/alfredhq/docstore/internal/document"
)

// Assign is one path→value assignment inside an operator.
type Assign struct {
	Path  string
	Value any
}

// Spec is a parsed update document. Zero-value fields mean the operator
// was absent.
type Spec struct {
	Set         []Assign
	Push        []Assign
	SetOnInsert []Assign
}

// Parse converts a loose update map into a Spec. Unrecognized top-level
// keys are ignored, not rejected, so callers can pass extra metadata
// without breaking.
func Parse(raw map[string]any) Spec {
	return Spec{
		Set:         parseAssigns(raw["$set"]),
		Push:        parseAssigns(raw["$push"]),
		SetOnInsert: parseAssigns(raw["$setOnInsert"]),
	}
}

func parseAssigns(v any) []Assign {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}
	paths := make([]string, 0, len(m))
	for path := range m {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	assigns := make([]Assign, 0, len(m))
	for _, path := range paths {
		assigns = append(assigns, Assign{Path: path, Value: m[path]})
	}
	return assigns
}

// Apply returns a mutated deep copy of doc and the number of fields the
// update actually changed.
//
//   - $set counts a field as modified only when the new value differs
//     from the prior one (value equality, not identity).
//   - $push coerces a non-array target to a fresh array before
//     appending (the prior scalar is discarded) and always counts.
//   - $setOnInsert is ignored here; it applies only when an upsert
//     creates a document (see NewDocument).
func Apply(doc document.Document, spec Spec) (document.Document, int) {
	out := document.Clone(doc)
	if out == nil {
		out = document.Document{}
	}

	modified := 0
	for _, a := range spec.Set {
		parent, leaf := descend(out, a.Path)
		if !document.Equal(parent[leaf], a.Value) {
			modified++
		}
		parent[leaf] = a.Value
	}
	for _, a := range spec.Push {
		parent, leaf := descend(out, a.Path)
		arr, ok := parent[leaf].([]any)
		if !ok {
			arr = nil
		}
		parent[leaf] = append(arr, a.Value)
		modified++
	}
	return out, modified
}

// NewDocument synthesizes the document an upsert creates when nothing
// matched: $setOnInsert applied first, then $set overlaid.
func NewDocument(spec Spec) document.Document {
	doc := document.Document{}
	for _, a := range spec.SetOnInsert {
		parent, leaf := descend(doc, a.Path)
		parent[leaf] = a.Value
	}
	for _, a := range spec.Set {
		parent, leaf := descend(doc, a.Path)
		parent[leaf] = a.Value
	}
	return doc
}

// descend walks to the parent map of a dot-path's final segment,
// creating intermediate levels as needed. An existing intermediate that
// is not a map is overwritten with a fresh one.
func descend(doc document.Document, path string) (map[string]any, string) {
	parts := strings.Split(path, ".")
	cur := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[part] = next
		}
		cur = next
	}
	return cur, parts[len(parts)-1]
}
