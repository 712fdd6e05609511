package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alfredhq/docstore/internal/document"
)

// marshalDocument converts a document to JSON TEXT for the data column.
// HTML escaping is disabled so payloads round-trip byte-comparably.
func marshalDocument(doc document.Document) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalDocument parses JSON TEXT from the data column.
func unmarshalDocument(data string) (document.Document, error) {
	if data == "" || data == "{}" {
		return document.Document{}, nil
	}
	var doc document.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return doc, nil
}
