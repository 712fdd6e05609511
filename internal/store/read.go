package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/alfredhq/docstore/internal/document"
)

// SelectAll returns every document in a collection, in storage order.
// Returns an empty slice (not nil) when the collection is empty or does
// not exist.
func (s *Store) SelectAll(ctx context.Context, collection string) ([]document.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT data FROM documents WHERE collection = ?
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// SelectWhere returns the documents matching a compiled WHERE fragment.
// orderBy and limit are optional (empty string / limit <= 0 disable
// them). The fragment's placeholders line up with whereArgs; orderArgs
// carries the JSON paths of the ORDER BY keys.
func (s *Store) SelectWhere(ctx context.Context, collection, whereSQL string, whereArgs []any, orderBy string, orderArgs []any, limit int) ([]document.Document, error) {
	query := `SELECT data FROM documents WHERE collection = ? AND (` + whereSQL + `)`
	args := append([]any{collection}, whereArgs...)

	if orderBy != "" {
		query += " ORDER BY " + orderBy
		args = append(args, orderArgs...)
	}
	if limit > 0 {
		query += " LIMIT " + strconv.Itoa(limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query where: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// CountWhere counts rows matching a compiled WHERE fragment without
// loading them.
func (s *Store) CountWhere(ctx context.Context, collection, whereSQL string, whereArgs []any) (int64, error) {
	args := append([]any{collection}, whereArgs...)

	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents WHERE collection = ? AND (`+whereSQL+`)`, args...,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count where: %w", err)
	}
	return count, nil
}

func scanDocuments(rows *sql.Rows) ([]document.Document, error) {
	var docs []document.Document
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		doc, err := unmarshalDocument(data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	// Return empty slice instead of nil
	if docs == nil {
		docs = []document.Document{}
	}

	return docs, nil
}
