package docstore

// SortField is one (field, direction) pair of a sort specification.
// Direction follows the Mongo convention: 1 ascending, -1 descending.
type SortField struct {
	Field     string
	Direction int
}

// InsertOneResult reports the identifier of an inserted document.
type InsertOneResult struct {
	InsertedID string
}

// InsertManyResult reports the identifiers of a batch insert, in input
// order.
type InsertManyResult struct {
	InsertedIDs []string
}

// UpdateResult reports the outcome of an update operation.
// ModifiedCount counts changed fields, not documents: a $set of two
// fields on one document reports 2, and an assignment whose value
// already matches reports nothing.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64

	// UpsertedID is set when an upsert created a document.
	UpsertedID string
}

// DeleteResult reports how many documents a delete removed.
type DeleteResult struct {
	DeletedCount int64
}

// UpdateOneModel is one requested update within a bulk write.
type UpdateOneModel struct {
	Filter map[string]any
	Update map[string]any
	Upsert bool
}

// BulkWriteResult aggregates the outcomes of a bulk write.
type BulkWriteResult struct {
	MatchedCount  int64
	ModifiedCount int64
	UpsertedCount int64
}
