package document

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SerializationError indicates a value could not be reduced to a JSON
// object for persistence.
type SerializationError struct {
	Message string
	Err     error
}

func (e *SerializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("serialization: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("serialization: %s", e.Message)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// ToJSONable deep-converts v into a value encoding/json can persist and
// re-read without changing shape. Timestamps become RFC 3339 UTC
// strings, UUIDs become their canonical strings, and other exotic types
// are round-tripped through encoding/json. A value that already has the
// encoding/json shape passes through unchanged, so persisted timestamp
// strings stay strings on every subsequent read.
func ToJSONable(v any) (any, error) {
	switch val := v.(type) {
	case nil, bool, string, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return val, nil
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano), nil
	case uuid.UUID:
		return val.String(), nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			conv, err := ToJSONable(elem)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
			out[k] = conv
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			conv, err := ToJSONable(elem)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = conv
		}
		return out, nil
	default:
		return roundTrip(val)
	}
}

// ToDocument converts v to a JSON-safe document. Bare scalars and
// arrays are rejected: only JSON objects are valid documents.
func ToDocument(v any) (Document, error) {
	conv, err := ToJSONable(v)
	if err != nil {
		return nil, &SerializationError{Message: "document is not JSON-serializable", Err: err}
	}
	doc, ok := conv.(map[string]any)
	if !ok {
		return nil, &SerializationError{Message: fmt.Sprintf("document must serialize to a JSON object, got %T", conv)}
	}
	return doc, nil
}

// roundTrip converts an arbitrary Go value (struct, typed map, etc.)
// through encoding/json into the canonical any-shape.
func roundTrip(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("unmarshal %T: %w", v, err)
	}
	return out, nil
}
