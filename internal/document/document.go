// Package document defines the in-memory document model shared by the
// filter evaluator, the update applicator, and the CRUD orchestrator.
//
// A document is a plain map[string]any in the shape produced by
// encoding/json: objects are map[string]any, arrays are []any, and all
// numbers are float64. Every document carries its identity under the
// "_id" key, kept in sync with the doc_id storage column by the write
// paths.
package document

import (
	"fmt"

	"github.com/google/uuid"
)

// Document is a JSON object stored as one row's payload.
type Document = map[string]any

// IDField is the reserved key carrying document identity.
const IDField = "_id"

// NormalizeID converts an arbitrary id value to its canonical string
// form. UUIDs stringify canonically; everything else stringifies as-is.
func NormalizeID(v any) string {
	switch id := v.(type) {
	case uuid.UUID:
		return id.String()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

// NewID generates a fresh opaque document id.
func NewID() string {
	return uuid.NewString()
}

// AssignID ensures doc carries a normalized "_id", generating one if
// absent or empty, and returns it.
func AssignID(doc Document) string {
	raw, ok := doc[IDField]
	if !ok || raw == nil || raw == "" {
		id := NewID()
		doc[IDField] = id
		return id
	}
	id := NormalizeID(raw)
	doc[IDField] = id
	return id
}

// Clone returns a deep copy of doc. The update applicator mutates
// copies only, so callers never see half-applied updates.
func Clone(doc Document) Document {
	if doc == nil {
		return nil
	}
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return Clone(val)
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = cloneValue(elem)
		}
		return out
	default:
		return v
	}
}
