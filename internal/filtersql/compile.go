// Package filtersql translates filters into parameterized SQL WHERE
// fragments over the documents table, so filters it understands avoid a
// full collection scan.
//
// Translation is all-or-nothing: if any predicate of a filter is
// untranslatable, Compile reports ok=false and the caller must evaluate
// the entire filter in memory. Partial pushdown would mean two sources
// of truth filtering one query, which is how double-filtering bugs are
// born.
//
// Every fragment must agree with filter.Matches on every document. The
// COALESCE/json_type scaffolding below exists for exactly that reason:
// a bare json_extract(..) != ? silently drops rows whose path is absent
// (NULL comparisons), and SQLite encodes JSON booleans as integers,
// both of which would diverge from the evaluator.
package filtersql

import (
	"fmt"
	"strings"

	"github.com/alfredhq/docstore/internal/document"
	"github.com/alfredhq/docstore/internal/filter"
)

// Clause is a compiled WHERE fragment. Values are always parameterized,
// never interpolated; JSON paths travel as parameters too, so filter
// keys cannot inject SQL.
type Clause struct {
	SQL  string
	Args []any
}

// Compile translates f into a WHERE fragment. ok=false means some part
// of the filter is outside the translatable subset and the whole filter
// must fall back to the in-memory evaluator.
//
// Translatable subset:
//   - "_id" equality and $ne against the identity column
//   - dot-path equality and $ne against scalar literals
//     (bool/int/float/string)
func Compile(f filter.Filter) (Clause, bool) {
	if len(f) == 0 {
		// Vacuous truth: an empty filter matches everything.
		return Clause{SQL: "1 = 1"}, true
	}

	var parts []string
	var args []any
	for _, pred := range f {
		sql, predArgs, ok := compilePredicate(pred)
		if !ok {
			return Clause{}, false
		}
		parts = append(parts, sql)
		args = append(args, predArgs...)
	}

	return Clause{SQL: strings.Join(parts, " AND "), Args: args}, true
}

func compilePredicate(pred filter.Predicate) (string, []any, bool) {
	if pred.Path == document.IDField {
		return compileID(pred.Cond)
	}

	path, ok := jsonPath(pred.Path)
	if !ok {
		return "", nil, false
	}

	switch cond := pred.Cond.(type) {
	case filter.Equals:
		return compileScalar(path, cond.Value, false)
	case filter.NotEquals:
		return compileScalar(path, cond.Value, true)
	default:
		// $regex and Unknown force fallback.
		return "", nil, false
	}
}

func compileID(cond filter.Cond) (string, []any, bool) {
	switch c := cond.(type) {
	case filter.Equals:
		return "doc_id = ?", []any{document.NormalizeID(c.Value)}, true
	case filter.NotEquals:
		return "doc_id <> ?", []any{document.NormalizeID(c.Value)}, true
	default:
		return "", nil, false
	}
}

// compileScalar lowers one scalar comparison. The json_type guard pins
// the stored value's JSON type so SQLite's loose affinity cannot match
// across types the evaluator keeps apart (true vs 1, "5" vs 5). For
// negation the whole guarded comparison is wrapped in NOT COALESCE(..,
// 0): an absent path yields NULL inside, COALESCE turns that into
// false, and NOT makes the row match - the same "absent satisfies $ne"
// rule the evaluator implements.
func compileScalar(path string, value any, negate bool) (string, []any, bool) {
	conv, err := document.ToJSONable(value)
	if err != nil {
		return "", nil, false
	}

	var eq string
	var args []any
	switch v := conv.(type) {
	case bool:
		lit := "'false'"
		if v {
			lit = "'true'"
		}
		eq = fmt.Sprintf("json_type(data, ?) = %s", lit)
		args = []any{path}
	case string:
		eq = "json_type(data, ?) = 'text' AND json_extract(data, ?) = ?"
		args = []any{path, path, v}
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		eq = "json_type(data, ?) IN ('integer', 'real') AND json_extract(data, ?) = ?"
		args = []any{path, path, v}
	default:
		// Arrays, objects, null: not a scalar match target.
		return "", nil, false
	}

	if negate {
		return "NOT COALESCE(" + eq + ", 0)", args, true
	}
	return "(" + eq + ")", args, true
}

// jsonPath converts a dot-path to a SQLite JSON path with quoted
// segments. Keys containing quotes or path syntax cannot be addressed
// and force fallback.
func jsonPath(path string) (string, bool) {
	var b strings.Builder
	b.WriteByte('$')
	for _, seg := range strings.Split(path, ".") {
		if seg == "" || strings.ContainsAny(seg, `"[]`) {
			return "", false
		}
		b.WriteString(`."`)
		b.WriteString(seg)
		b.WriteString(`"`)
	}
	return b.String(), true
}
