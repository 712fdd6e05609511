package docstore

import (
	"errors"
	"fmt"

	"github.com/alfredhq/docstore/internal/document"
)

// ConfigurationError indicates the engine or a collection handle was
// misconfigured before any storage I/O happened. It is raised eagerly:
// an operation on an unnamed collection fails with ConfigurationError
// rather than producing an empty result.
type ConfigurationError struct {
	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s", e.Message)
}

// StorageError wraps a failure in the underlying database: connection
// loss, constraint violations, transaction failures. The original
// driver error is preserved for errors.Is/As inspection.
type StorageError struct {
	// Op names the collection operation that failed.
	Op string

	// Collection is the logical collection involved.
	Collection string

	// Err is the underlying database error.
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Collection != "" {
		return fmt.Sprintf("storage: %s on %q: %v", e.Op, e.Collection, e.Err)
	}
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying database error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is a ConfigurationError.
// Uses errors.As to handle wrapped errors.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsStorageError reports whether err is a StorageError.
// Uses errors.As to handle wrapped errors.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsSerializationError reports whether err is a document
// SerializationError. Uses errors.As to handle wrapped errors.
func IsSerializationError(err error) bool {
	var se *document.SerializationError
	return errors.As(err, &se)
}

func storageErr(op, collection string, err error) *StorageError {
	return &StorageError{Op: op, Collection: collection, Err: err}
}
