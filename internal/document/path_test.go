package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_TopLevel(t *testing.T) {
	doc := Document{"title": "Hello"}
	v, ok := Resolve(doc, "title")
	assert.True(t, ok)
	assert.Equal(t, "Hello", v)
}

func TestResolve_Nested(t *testing.T) {
	doc := Document{"topics": map[string]any{"primary": "golang"}}
	v, ok := Resolve(doc, "topics.primary")
	assert.True(t, ok)
	assert.Equal(t, "golang", v)
}

func TestResolve_MissingSegment(t *testing.T) {
	doc := Document{"topics": map[string]any{}}
	_, ok := Resolve(doc, "topics.primary")
	assert.False(t, ok)
}

func TestResolve_NonMapIntermediate(t *testing.T) {
	// Walking through a scalar resolves to absent, never an error.
	doc := Document{"topics": "not-a-map"}
	_, ok := Resolve(doc, "topics.primary")
	assert.False(t, ok)
}

func TestResolve_EmptyPath(t *testing.T) {
	_, ok := Resolve(Document{"a": 1}, "")
	assert.False(t, ok)
}

func TestEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{"strings", "x", "x", true},
		{"strings differ", "x", "y", false},
		{"int vs float64", 5, 5.0, true},
		{"int64 vs int", int64(7), 7, true},
		{"bool", true, true, true},
		{"bool is not one", true, 1, false},
		{"one is not bool", 1, true, false},
		{"nil", nil, nil, true},
		{"nil vs value", nil, "x", false},
		{"arrays", []any{1.0, "a"}, []any{1.0, "a"}, true},
		{"arrays differ", []any{1.0}, []any{2.0}, false},
		{"arrays length", []any{1.0}, []any{1.0, 2.0}, false},
		{"objects", map[string]any{"a": 1.0}, map[string]any{"a": 1}, true},
		{"objects differ", map[string]any{"a": 1.0}, map[string]any{"a": 2.0}, false},
		{"string is not number", "5", 5, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Equal(tc.a, tc.b))
		})
	}
}
