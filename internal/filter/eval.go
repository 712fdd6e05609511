package filter

import (
	"regexp"

	"github.com/alfredhq/docstore/internal/document"
)

// Matches reports whether doc satisfies every predicate in f.
//
// Semantics (the engine's ground truth):
//   - "_id" compares normalized ids and supports $ne; other operators
//     against "_id" exclude the document.
//   - Dot-paths resolving to absent never equal a literal, and always
//     satisfy $ne.
//   - $regex requires a string target; non-string values, invalid
//     patterns, and failed matches exclude the document - never raise.
//   - Unknown conditions exclude the document.
func Matches(doc document.Document, f Filter) bool {
	for _, pred := range f {
		if !matchPredicate(doc, pred) {
			return false
		}
	}
	return true
}

func matchPredicate(doc document.Document, pred Predicate) bool {
	if pred.Path == document.IDField {
		return matchID(doc, pred.Cond)
	}

	val, present := document.Resolve(doc, pred.Path)

	switch cond := pred.Cond.(type) {
	case Equals:
		return present && document.Equal(val, cond.Value)
	case NotEquals:
		return !(present && document.Equal(val, cond.Value))
	case Regex:
		if !present {
			return false
		}
		s, ok := val.(string)
		if !ok {
			return false
		}
		return regexMatch(cond, s)
	case Unknown:
		return false
	default:
		return false
	}
}

func matchID(doc document.Document, cond Cond) bool {
	id, _ := doc[document.IDField].(string)

	switch c := cond.(type) {
	case Equals:
		return id == document.NormalizeID(c.Value)
	case NotEquals:
		return id != document.NormalizeID(c.Value)
	default:
		// No other operators are defined on identity.
		return false
	}
}

func regexMatch(cond Regex, target string) bool {
	pattern := cond.Pattern
	if cond.CaseInsensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(target)
}
