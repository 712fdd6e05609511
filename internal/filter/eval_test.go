package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alfredhq/docstore/internal/document"
)

func match(t *testing.T, doc document.Document, raw map[string]any) bool {
	t.Helper()
	return Matches(doc, Parse(raw))
}

func TestMatches_EmptyFilterMatchesAll(t *testing.T) {
	assert.True(t, match(t, document.Document{"a": 1.0}, nil))
	assert.True(t, match(t, document.Document{}, map[string]any{}))
}

func TestMatches_Equality(t *testing.T) {
	doc := document.Document{"company": "Acme", "rounds": 3.0}

	assert.True(t, match(t, doc, map[string]any{"company": "Acme"}))
	assert.False(t, match(t, doc, map[string]any{"company": "Globex"}))
	assert.True(t, match(t, doc, map[string]any{"rounds": 3}), "int literal matches float64 stored value")
}

func TestMatches_AbsentNeverEqualsLiteral(t *testing.T) {
	doc := document.Document{"a": 1.0}
	assert.False(t, match(t, doc, map[string]any{"missing": "x"}))
	assert.False(t, match(t, doc, map[string]any{"missing": nil}))
}

func TestMatches_DotPath(t *testing.T) {
	doc := document.Document{"topics": map[string]any{"primary": "golang"}}

	assert.True(t, match(t, doc, map[string]any{"topics.primary": "golang"}))
	assert.False(t, match(t, doc, map[string]any{"topics.primary": "rust"}))
	assert.False(t, match(t, doc, map[string]any{"topics.secondary": "x"}))
}

func TestMatches_DotPathThroughScalar(t *testing.T) {
	doc := document.Document{"topics": "scalar"}
	assert.False(t, match(t, doc, map[string]any{"topics.primary": "golang"}))
}

func TestMatches_NotEquals(t *testing.T) {
	doc := document.Document{"status": "active"}

	assert.True(t, match(t, doc, map[string]any{"status": map[string]any{"$ne": "archived"}}))
	assert.False(t, match(t, doc, map[string]any{"status": map[string]any{"$ne": "active"}}))
}

func TestMatches_NotEqualsAbsentField(t *testing.T) {
	// Absent satisfies $ne: the resolved value equals nothing.
	doc := document.Document{"a": 1.0}
	assert.True(t, match(t, doc, map[string]any{"missing": map[string]any{"$ne": "x"}}))
}

func TestMatches_RegexCaseSensitivity(t *testing.T) {
	doc := document.Document{"title": "Hello"}

	assert.False(t, match(t, doc, map[string]any{
		"title": map[string]any{"$regex": "hello"},
	}))
	assert.True(t, match(t, doc, map[string]any{
		"title": map[string]any{"$regex": "hello", "$options": "i"},
	}))
}

func TestMatches_RegexNonStringTarget(t *testing.T) {
	doc := document.Document{"count": 5.0}
	assert.False(t, match(t, doc, map[string]any{
		"count": map[string]any{"$regex": "5"},
	}))
}

func TestMatches_RegexInvalidPattern(t *testing.T) {
	doc := document.Document{"title": "Hello"}
	assert.False(t, match(t, doc, map[string]any{
		"title": map[string]any{"$regex": "("},
	}))
}

func TestMatches_RegexAbsentField(t *testing.T) {
	doc := document.Document{"a": 1.0}
	assert.False(t, match(t, doc, map[string]any{
		"missing": map[string]any{"$regex": ".*"},
	}))
}

func TestMatches_UnknownOperatorFailsClosed(t *testing.T) {
	doc := document.Document{"n": 10.0}
	assert.False(t, match(t, doc, map[string]any{"n": map[string]any{"$gt": 5}}))
}

func TestMatches_ID(t *testing.T) {
	doc := document.Document{"_id": "abc", "k": "v"}

	assert.True(t, match(t, doc, map[string]any{"_id": "abc"}))
	assert.False(t, match(t, doc, map[string]any{"_id": "xyz"}))
	assert.True(t, match(t, doc, map[string]any{"_id": map[string]any{"$ne": "xyz"}}))
	assert.False(t, match(t, doc, map[string]any{"_id": map[string]any{"$ne": "abc"}}))
}

func TestMatches_IDUnsupportedOperator(t *testing.T) {
	doc := document.Document{"_id": "abc"}
	assert.False(t, match(t, doc, map[string]any{
		"_id": map[string]any{"$regex": "a.*"},
	}))
}

func TestMatches_ConjunctionAcrossKeys(t *testing.T) {
	doc := document.Document{"company": "Acme", "role": "SWE"}

	assert.True(t, match(t, doc, map[string]any{"company": "Acme", "role": "SWE"}))
	assert.False(t, match(t, doc, map[string]any{"company": "Acme", "role": "PM"}))
}
