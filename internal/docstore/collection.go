package docstore

import (
	"context"
	"strings"
	"time"

	"github.com/alfredhq/docstore/internal/document"
	"github.com/alfredhq/docstore/internal/filter"
	"github.com/alfredhq/docstore/internal/metrics"
	"github.com/alfredhq/docstore/internal/update"
)

// Collection is a handle over one logical namespace of documents.
type Collection struct {
	eng  *Engine
	name string
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

func (c *Collection) check() error {
	if strings.TrimSpace(c.name) == "" {
		return &ConfigurationError{Message: "no collection selected"}
	}
	return nil
}

func (c *Collection) instrument(op string) func(error) {
	start := time.Now()
	return func(err error) {
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.Operations.WithLabelValues(op, status).Inc()
		metrics.OperationLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

// prepare normalizes a document to its JSON-able form and ensures it
// carries an identifier.
func prepare(doc map[string]any) (document.Document, string, error) {
	jd, err := document.ToDocument(doc)
	if err != nil {
		return nil, "", err
	}
	id := document.AssignID(jd)
	return jd, id, nil
}

// InsertOne stores a single document, generating an _id when the input
// has none.
func (c *Collection) InsertOne(ctx context.Context, doc map[string]any) (res *InsertOneResult, err error) {
	done := c.instrument("insert_one")
	defer func() { done(err) }()

	if err = c.check(); err != nil {
		return nil, err
	}
	jd, id, err := prepare(doc)
	if err != nil {
		return nil, err
	}
	if err = c.eng.st.InsertRow(ctx, c.name, id, jd); err != nil {
		return nil, storageErr("insert_one", c.name, err)
	}
	return &InsertOneResult{InsertedID: id}, nil
}

// InsertMany stores a batch of documents in a single transaction. If
// any document fails to serialize or insert, no document from the
// batch is stored.
func (c *Collection) InsertMany(ctx context.Context, docs []map[string]any) (res *InsertManyResult, err error) {
	done := c.instrument("insert_many")
	defer func() { done(err) }()

	if err = c.check(); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(docs))
	rows := make([]document.Document, 0, len(docs))
	for _, doc := range docs {
		jd, id, perr := prepare(doc)
		if perr != nil {
			return nil, perr
		}
		ids = append(ids, id)
		rows = append(rows, jd)
	}
	if err = c.eng.st.InsertRows(ctx, c.name, ids, rows); err != nil {
		return nil, storageErr("insert_many", c.name, err)
	}
	return &InsertManyResult{InsertedIDs: ids}, nil
}

// FindOne returns the first document matching the filter, or nil when
// nothing matches. The projection argument is accepted for interface
// compatibility but not applied; full documents are returned.
func (c *Collection) FindOne(ctx context.Context, rawFilter, projection map[string]any) (doc document.Document, err error) {
	done := c.instrument("find_one")
	defer func() { done(err) }()

	_ = projection

	if err = c.check(); err != nil {
		return nil, err
	}
	docs, err := c.findMatching(ctx, rawFilter, nil, 1)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0], nil
}

// FindMany returns all documents matching the filter, optionally
// sorted and limited. The projection argument is accepted for
// interface compatibility but not applied.
func (c *Collection) FindMany(ctx context.Context, rawFilter, projection map[string]any, sort []SortField, limit int) (docs []document.Document, err error) {
	done := c.instrument("find_many")
	defer func() { done(err) }()

	_ = projection

	if err = c.check(); err != nil {
		return nil, err
	}
	return c.findMatching(ctx, rawFilter, sort, limit)
}

// UpdateOne applies an update specification to the first document
// matching the filter. With upsert, a miss synthesizes a new document
// from the $setOnInsert and $set assignments instead.
//
// The read-modify-write is not serialized against concurrent updates
// of the same document; the last writer wins.
func (c *Collection) UpdateOne(ctx context.Context, rawFilter, rawUpdate map[string]any, upsert bool) (res *UpdateResult, err error) {
	done := c.instrument("update_one")
	defer func() { done(err) }()

	if err = c.check(); err != nil {
		return nil, err
	}

	normalized, err := document.ToDocument(rawUpdate)
	if err != nil {
		return nil, err
	}
	spec := update.Parse(normalized)

	matches, err := c.findMatching(ctx, rawFilter, nil, 1)
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		if !upsert {
			return &UpdateResult{}, nil
		}
		created := update.NewDocument(spec)
		id := document.AssignID(created)
		if err = c.eng.st.InsertRow(ctx, c.name, id, created); err != nil {
			return nil, storageErr("update_one", c.name, err)
		}
		return &UpdateResult{UpsertedID: id}, nil
	}

	current := matches[0]
	updated, changed := update.Apply(current, spec)
	// The row is written even when no field changed, so updated_at
	// always reflects the last matched update.
	id := document.NormalizeID(updated[document.IDField])
	if err = c.eng.st.UpdateRowData(ctx, c.name, id, updated); err != nil {
		return nil, storageErr("update_one", c.name, err)
	}
	return &UpdateResult{MatchedCount: 1, ModifiedCount: int64(changed)}, nil
}

// DeleteOne removes the first document matching the filter.
func (c *Collection) DeleteOne(ctx context.Context, rawFilter map[string]any) (res *DeleteResult, err error) {
	done := c.instrument("delete_one")
	defer func() { done(err) }()

	if err = c.check(); err != nil {
		return nil, err
	}
	matches, err := c.findMatching(ctx, rawFilter, nil, 1)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return &DeleteResult{}, nil
	}
	id := document.NormalizeID(matches[0][document.IDField])
	n, err := c.eng.st.DeleteRow(ctx, c.name, id)
	if err != nil {
		return nil, storageErr("delete_one", c.name, err)
	}
	return &DeleteResult{DeletedCount: n}, nil
}

// DeleteMany removes every document matching the filter.
func (c *Collection) DeleteMany(ctx context.Context, rawFilter map[string]any) (res *DeleteResult, err error) {
	done := c.instrument("delete_many")
	defer func() { done(err) }()

	if err = c.check(); err != nil {
		return nil, err
	}
	f, err := c.parseFilter(rawFilter)
	if err != nil {
		return nil, err
	}

	if clause, ok := c.compile(f); ok {
		n, derr := c.eng.st.DeleteWhere(ctx, c.name, clause.SQL, clause.Args)
		if derr != nil {
			return nil, storageErr("delete_many", c.name, derr)
		}
		return &DeleteResult{DeletedCount: n}, nil
	}

	matches, err := c.scanMatching(ctx, f)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(matches))
	for _, doc := range matches {
		ids = append(ids, document.NormalizeID(doc[document.IDField]))
	}
	n, err := c.eng.st.DeleteRows(ctx, c.name, ids)
	if err != nil {
		return nil, storageErr("delete_many", c.name, err)
	}
	return &DeleteResult{DeletedCount: n}, nil
}

// Count returns the number of documents matching the filter.
func (c *Collection) Count(ctx context.Context, rawFilter map[string]any) (n int64, err error) {
	done := c.instrument("count")
	defer func() { done(err) }()

	if err = c.check(); err != nil {
		return 0, err
	}
	f, err := c.parseFilter(rawFilter)
	if err != nil {
		return 0, err
	}

	if clause, ok := c.compile(f); ok {
		n, cerr := c.eng.st.CountWhere(ctx, c.name, clause.SQL, clause.Args)
		if cerr != nil {
			return 0, storageErr("count", c.name, cerr)
		}
		return n, nil
	}

	matches, err := c.scanMatching(ctx, f)
	if err != nil {
		return 0, err
	}
	return int64(len(matches)), nil
}

// BulkWrite replays a sequence of single-document updates in order.
// Each update is applied independently; a failure stops the sequence
// and reports the error, leaving earlier updates in place.
func (c *Collection) BulkWrite(ctx context.Context, models []UpdateOneModel) (res *BulkWriteResult, err error) {
	done := c.instrument("bulk_write")
	defer func() { done(err) }()

	if err = c.check(); err != nil {
		return nil, err
	}

	out := &BulkWriteResult{}
	for _, m := range models {
		ur, uerr := c.UpdateOne(ctx, m.Filter, m.Update, m.Upsert)
		if uerr != nil {
			return nil, uerr
		}
		out.MatchedCount += ur.MatchedCount
		out.ModifiedCount += ur.ModifiedCount
		if ur.UpsertedID != "" {
			out.UpsertedCount++
		}
	}
	return out, nil
}

func (c *Collection) parseFilter(raw map[string]any) (filter.Filter, error) {
	normalized, err := document.ToDocument(raw)
	if err != nil {
		return nil, err
	}
	return filter.Parse(normalized), nil
}
