package filtersql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfredhq/docstore/internal/filter"
)

func TestCompile_EmptyFilter(t *testing.T) {
	clause, ok := Compile(nil)
	require.True(t, ok)
	assert.Equal(t, "1 = 1", clause.SQL)
	assert.Empty(t, clause.Args)
}

func TestCompile_IDEquality(t *testing.T) {
	clause, ok := Compile(filter.Parse(map[string]any{"_id": "doc-1"}))
	require.True(t, ok)
	assert.Equal(t, "doc_id = ?", clause.SQL)
	assert.Equal(t, []any{"doc-1"}, clause.Args)
}

func TestCompile_IDNotEquals(t *testing.T) {
	clause, ok := Compile(filter.Parse(map[string]any{
		"_id": map[string]any{"$ne": "doc-1"},
	}))
	require.True(t, ok)
	assert.Equal(t, "doc_id <> ?", clause.SQL)
	assert.Equal(t, []any{"doc-1"}, clause.Args)
}

func TestCompile_StringEquality(t *testing.T) {
	clause, ok := Compile(filter.Parse(map[string]any{"company": "Acme"}))
	require.True(t, ok)

	// Value NOT interpolated into SQL.
	assert.NotContains(t, clause.SQL, "Acme")
	assert.Contains(t, clause.SQL, "json_extract(data, ?)")
	assert.Contains(t, clause.SQL, "json_type(data, ?) = 'text'")
	assert.Equal(t, []any{`$."company"`, `$."company"`, "Acme"}, clause.Args)
}

func TestCompile_DotPathParameterized(t *testing.T) {
	clause, ok := Compile(filter.Parse(map[string]any{"topics.primary": "go"}))
	require.True(t, ok)

	// The path travels as a parameter, not as SQL text.
	assert.NotContains(t, clause.SQL, "topics")
	assert.Equal(t, `$."topics"."primary"`, clause.Args[0])
}

func TestCompile_NotEqualsUsesCoalesce(t *testing.T) {
	clause, ok := Compile(filter.Parse(map[string]any{
		"status": map[string]any{"$ne": "archived"},
	}))
	require.True(t, ok)

	// Absent paths must satisfy $ne; bare != would drop them as NULL.
	assert.Contains(t, clause.SQL, "NOT COALESCE(")
}

func TestCompile_BoolUsesJSONType(t *testing.T) {
	clause, ok := Compile(filter.Parse(map[string]any{"active": true}))
	require.True(t, ok)

	// SQLite stores JSON booleans as integers; json_type keeps true
	// from matching 1.
	assert.Equal(t, `(json_type(data, ?) = 'true')`, clause.SQL)
	assert.Equal(t, []any{`$."active"`}, clause.Args)
}

func TestCompile_NumberGuardsType(t *testing.T) {
	clause, ok := Compile(filter.Parse(map[string]any{"rounds": 3}))
	require.True(t, ok)
	assert.Contains(t, clause.SQL, "IN ('integer', 'real')")
	assert.Equal(t, []any{`$."rounds"`, `$."rounds"`, 3}, clause.Args)
}

func TestCompile_RegexForcesFallback(t *testing.T) {
	_, ok := Compile(filter.Parse(map[string]any{
		"title": map[string]any{"$regex": "hello"},
	}))
	assert.False(t, ok)
}

func TestCompile_UnknownOperatorForcesFallback(t *testing.T) {
	_, ok := Compile(filter.Parse(map[string]any{
		"n": map[string]any{"$gt": 5},
	}))
	assert.False(t, ok)
}

func TestCompile_NonScalarForcesFallback(t *testing.T) {
	_, ok := Compile(filter.Parse(map[string]any{"tags": []any{"a", "b"}}))
	assert.False(t, ok)
}

func TestCompile_NullForcesFallback(t *testing.T) {
	_, ok := Compile(filter.Parse(map[string]any{"gone": nil}))
	assert.False(t, ok)
}

func TestCompile_AllOrNothing(t *testing.T) {
	// One untranslatable predicate poisons the whole filter, even when
	// the other keys compile fine.
	_, ok := Compile(filter.Parse(map[string]any{
		"company": "Acme",
		"title":   map[string]any{"$regex": "hello"},
	}))
	assert.False(t, ok)
}

func TestCompile_UnaddressablePathForcesFallback(t *testing.T) {
	_, ok := Compile(filter.Parse(map[string]any{`we"ird`: "x"}))
	assert.False(t, ok)
}
