package filtersql

import "strings"

// SortKey is one (field, direction) pair of a sort specification.
type SortKey struct {
	Field string
	Desc  bool
}

// OrderBy translates sort keys into an ORDER BY clause over the
// documents table. "_id" maps to the identity column; other fields sort
// on json_extract of their dot-path. ok=false (unaddressable path)
// forces in-memory ordering alongside a fallback scan.
func OrderBy(keys []SortKey) (string, []any, bool) {
	if len(keys) == 0 {
		return "", nil, true
	}

	var parts []string
	var args []any
	for _, key := range keys {
		dir := " ASC"
		if key.Desc {
			dir = " DESC"
		}
		if key.Field == "_id" {
			parts = append(parts, "doc_id"+dir)
			continue
		}
		path, ok := jsonPath(key.Field)
		if !ok {
			return "", nil, false
		}
		parts = append(parts, "json_extract(data, ?)"+dir)
		args = append(args, path)
	}

	return strings.Join(parts, ", "), args, true
}
