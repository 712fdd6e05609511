package docstore

import (
	"context"
	"sort"

	"github.com/alfredhq/docstore/internal/document"
	"github.com/alfredhq/docstore/internal/filter"
	"github.com/alfredhq/docstore/internal/filtersql"
	"github.com/alfredhq/docstore/internal/metrics"
)

// compile attempts SQL pushdown for a parsed filter. It returns false
// when any predicate resists translation, in which case the caller
// scans the collection and evaluates the filter in memory.
func (c *Collection) compile(f filter.Filter) (filtersql.Clause, bool) {
	if c.eng.forceFallback {
		return filtersql.Clause{}, false
	}
	clause, ok := filtersql.Compile(f)
	if ok {
		metrics.Pushdown.WithLabelValues("compiled").Inc()
	} else {
		metrics.Pushdown.WithLabelValues("fallback").Inc()
	}
	return clause, ok
}

// findMatching returns the documents matching the raw filter, sorted
// and limited as requested. Pushdown applies per concern: the filter,
// the ordering, and the limit each run in SQL only when they translate.
func (c *Collection) findMatching(ctx context.Context, raw map[string]any, sortKeys []SortField, limit int) ([]document.Document, error) {
	f, err := c.parseFilter(raw)
	if err != nil {
		return nil, err
	}

	clause, ok := c.compile(f)
	if !ok {
		docs, err := c.scanMatching(ctx, f)
		if err != nil {
			return nil, err
		}
		sortDocuments(docs, sortKeys)
		return truncate(docs, limit), nil
	}

	orderBy, orderArgs, sortable := toOrderBy(sortKeys)
	if !sortable {
		docs, err := c.eng.st.SelectWhere(ctx, c.name, clause.SQL, clause.Args, "", nil, 0)
		if err != nil {
			return nil, storageErr("find", c.name, err)
		}
		sortDocuments(docs, sortKeys)
		return truncate(docs, limit), nil
	}

	docs, err := c.eng.st.SelectWhere(ctx, c.name, clause.SQL, clause.Args, orderBy, orderArgs, limit)
	if err != nil {
		return nil, storageErr("find", c.name, err)
	}
	return docs, nil
}

// scanMatching loads the whole collection and evaluates the filter
// against each document.
func (c *Collection) scanMatching(ctx context.Context, f filter.Filter) ([]document.Document, error) {
	all, err := c.eng.st.SelectAll(ctx, c.name)
	if err != nil {
		return nil, storageErr("scan", c.name, err)
	}
	matched := make([]document.Document, 0, len(all))
	for _, doc := range all {
		if filter.Matches(doc, f) {
			matched = append(matched, doc)
		}
	}
	return matched, nil
}

func toOrderBy(sortKeys []SortField) (string, []any, bool) {
	keys := make([]filtersql.SortKey, 0, len(sortKeys))
	for _, sk := range sortKeys {
		keys = append(keys, filtersql.SortKey{Field: sk.Field, Desc: sk.Direction < 0})
	}
	return filtersql.OrderBy(keys)
}

func truncate(docs []document.Document, limit int) []document.Document {
	if limit > 0 && len(docs) > limit {
		return docs[:limit]
	}
	return docs
}

// sortDocuments orders documents in memory, mirroring how SQLite
// orders json_extract results: missing values and nulls first, then
// numbers (booleans are stored as integers), then text. The relative
// order of ties is unspecified.
func sortDocuments(docs []document.Document, sortKeys []SortField) {
	if len(sortKeys) == 0 {
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		for _, sk := range sortKeys {
			av, _ := document.Resolve(docs[i], sk.Field)
			bv, _ := document.Resolve(docs[j], sk.Field)
			cmp := compareValues(av, bv)
			if cmp == 0 {
				continue
			}
			if sk.Direction < 0 {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func compareValues(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case rankNumber:
		na, _ := numericValue(a)
		nb, _ := numericValue(b)
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
	case rankText:
		sa, sb := a.(string), b.(string)
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
	}
	return 0
}

const (
	rankNull = iota
	rankNumber
	rankText
	rankOther
)

func typeRank(v any) int {
	switch v.(type) {
	case nil:
		return rankNull
	case bool:
		return rankNumber
	case string:
		return rankText
	}
	if _, ok := numericValue(v); ok {
		return rankNumber
	}
	return rankOther
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}
