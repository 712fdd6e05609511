// Package docstore implements JSON document persistence over a single
// relational table. It exposes a small Mongo-style surface: collections
// are logical namespaces within one SQLite database, filters and update
// specifications are plain maps, and every operation round-trips
// documents through a JSON-able normal form.
//
// Filtering is authoritative in memory. When an entire filter can be
// expressed as SQL it is pushed down to the database; otherwise the
// engine falls back to scanning the collection and evaluating the
// filter against each document. The two paths always agree on which
// documents match.
package docstore

import (
	"fmt"

	"github.com/alfredhq/docstore/internal/store"
)

// Engine owns the underlying database and hands out collection handles.
type Engine struct {
	st *store.Store

	// forceFallback disables SQL pushdown so every filter is evaluated
	// in memory. Used by equivalence tests.
	forceFallback bool
}

// Open opens (creating if needed) the database at path and returns an
// engine over it.
func Open(path string) (*Engine, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening document store: %w", err)
	}
	return New(st), nil
}

// New returns an engine over an already-open store.
func New(st *store.Store) *Engine {
	return &Engine{st: st}
}

// Close releases the underlying database.
func (e *Engine) Close() error {
	return e.st.Close()
}

// Ping verifies the database connection is alive.
func (e *Engine) Ping() error {
	if err := e.st.Ping(); err != nil {
		return storageErr("ping", "", err)
	}
	return nil
}

// WithCollection returns a handle scoped to the named collection. The
// name is validated lazily: operations on an unnamed handle fail with a
// ConfigurationError.
func (e *Engine) WithCollection(name string) *Collection {
	return &Collection{eng: e, name: name}
}
