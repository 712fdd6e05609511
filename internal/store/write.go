package store

import (
	"context"
	"fmt"
	"time"

	"github.com/alfredhq/docstore/internal/document"
)

// nowText is the timestamp format for the created_at/updated_at columns.
func nowText() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// InsertRow persists one document row. The caller guarantees docID
// equals doc["_id"]; a duplicate id within the collection violates the
// primary key and returns an error.
func (s *Store) InsertRow(ctx context.Context, collection, docID string, doc document.Document) error {
	data, err := marshalDocument(doc)
	if err != nil {
		return fmt.Errorf("insert row: %w", err)
	}

	now := nowText()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, doc_id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, collection, docID, data, now, now)
	if err != nil {
		return fmt.Errorf("insert row: %w", err)
	}

	return nil
}

// InsertRows persists a batch of rows in a single transaction. Any
// failure rolls back the entire batch - there is no partial success.
func (s *Store) InsertRows(ctx context.Context, collection string, ids []string, docs []document.Document) error {
	if len(ids) != len(docs) {
		return fmt.Errorf("insert rows: %d ids for %d documents", len(ids), len(docs))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert rows: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	now := nowText()
	for i, doc := range docs {
		data, err := marshalDocument(doc)
		if err != nil {
			return fmt.Errorf("insert rows: document %d: %w", i, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO documents (collection, doc_id, data, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, collection, ids[i], data, now, now)
		if err != nil {
			return fmt.Errorf("insert rows: document %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert rows: commit: %w", err)
	}

	return nil
}

// UpdateRowData overwrites a row's payload and bumps updated_at.
// This is a single-statement write: the surrounding read-modify-write
// in update_one holds no lock across statements, so concurrent updates
// on the same document are last-writer-wins.
func (s *Store) UpdateRowData(ctx context.Context, collection, docID string, doc document.Document) error {
	data, err := marshalDocument(doc)
	if err != nil {
		return fmt.Errorf("update row: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE documents SET data = ?, updated_at = ?
		WHERE collection = ? AND doc_id = ?
	`, data, nowText(), collection, docID)
	if err != nil {
		return fmt.Errorf("update row: %w", err)
	}

	return nil
}

// DeleteRow removes one row by id, returning how many rows went away
// (0 or 1).
func (s *Store) DeleteRow(ctx context.Context, collection, docID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM documents WHERE collection = ? AND doc_id = ?
	`, collection, docID)
	if err != nil {
		return 0, fmt.Errorf("delete row: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete row: rows affected: %w", err)
	}
	return n, nil
}

// DeleteRows removes the given ids in a single transaction and returns
// the number of rows removed.
func (s *Store) DeleteRows(ctx context.Context, collection string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("delete rows: begin tx: %w", err)
	}
	defer tx.Rollback()

	var deleted int64
	for _, id := range ids {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM documents WHERE collection = ? AND doc_id = ?
		`, collection, id)
		if err != nil {
			return 0, fmt.Errorf("delete rows: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("delete rows: rows affected: %w", err)
		}
		deleted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("delete rows: commit: %w", err)
	}

	return deleted, nil
}

// DeleteWhere removes every row in the collection matching the compiled
// WHERE fragment, returning the number removed.
func (s *Store) DeleteWhere(ctx context.Context, collection, whereSQL string, whereArgs []any) (int64, error) {
	args := append([]any{collection}, whereArgs...)
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND (`+whereSQL+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("delete where: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete where: rows affected: %w", err)
	}
	return n, nil
}
