// Package filter defines the filter grammar and its authoritative
// in-memory evaluator.
//
// A filter is a conjunction of per-path conditions parsed from a loose
// map (the shape callers build from request objects). The grammar is a
// sealed union: equality, $ne, $regex (with an optional "i" option),
// and an explicit Unknown variant for anything else. Unknown never
// matches - the engine fails closed rather than guessing semantics it
// does not implement.
//
// Matches is the single source of truth for filter semantics. The
// filtersql compiler translates a subset of this grammar to SQL and
// must agree with Matches on every document; divergence between the two
// is a correctness bug, not a performance trade-off.
package filter

import (
	"sort"
	"strings"
)

// Cond is a single condition applied to one document path.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern enables exhaustive type switches in the
// evaluator and the SQL compiler.
type Cond interface {
	condNode() // Marker method - seals interface to this package
}

// Equals matches when the resolved value equals Value. An absent path
// never equals any literal.
type Equals struct {
	Value any
}

// NotEquals matches unless the resolved value equals Value. An absent
// path therefore matches.
type NotEquals struct {
	Value any
}

// Regex matches when the resolved value is a string accepted by
// Pattern. Non-string targets and invalid patterns exclude the
// document; they never raise.
type Regex struct {
	Pattern         string
	CaseInsensitive bool
}

// Unknown captures an operator object the grammar does not recognize.
// It matches nothing.
type Unknown struct {
	Ops []string
}

func (Equals) condNode()    {}
func (NotEquals) condNode() {}
func (Regex) condNode()     {}
func (Unknown) condNode()   {}

// Predicate binds a condition to a dot-path (or "_id").
type Predicate struct {
	Path string
	Cond Cond
}

// Filter is an implicit AND over its predicates. The empty filter
// matches every document.
type Filter []Predicate

// Parse converts a loose filter map into the typed grammar. Paths are
// sorted so downstream SQL compilation is deterministic. Operator
// objects whose key-set is not exactly {$ne} or {$regex[,$options]}
// parse to Unknown.
func Parse(raw map[string]any) Filter {
	if len(raw) == 0 {
		return nil
	}

	paths := make([]string, 0, len(raw))
	for path := range raw {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	f := make(Filter, 0, len(raw))
	for _, path := range paths {
		f = append(f, Predicate{Path: path, Cond: parseCond(raw[path])})
	}
	return f
}

func parseCond(v any) Cond {
	ops, ok := v.(map[string]any)
	if !ok {
		return Equals{Value: v}
	}

	keys := make([]string, 0, len(ops))
	for k := range ops {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	switch {
	case len(keys) == 1 && keys[0] == "$ne":
		return NotEquals{Value: ops["$ne"]}
	case len(keys) == 1 && keys[0] == "$regex":
		return newRegex(ops, "")
	case len(keys) == 2 && keys[0] == "$options" && keys[1] == "$regex":
		opts, _ := ops["$options"].(string)
		return newRegex(ops, opts)
	default:
		// Includes plain nested-object "literals": the grammar has no
		// object equality, so they fail closed like any other
		// unsupported operator object.
		return Unknown{Ops: keys}
	}
}

func newRegex(ops map[string]any, opts string) Cond {
	pattern, ok := ops["$regex"].(string)
	if !ok {
		return Unknown{Ops: []string{"$regex"}}
	}
	return Regex{
		Pattern:         pattern,
		CaseInsensitive: strings.Contains(opts, "i"),
	}
}
