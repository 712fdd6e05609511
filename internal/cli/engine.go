package cli

import (
	"encoding/json"
	"strings"

	"github.com/alfredhq/docstore/internal/docstore"
)

// openCollection opens the configured database and returns the
// collection handle along with a close function.
func openCollection(opts *RootOptions) (*docstore.Collection, func() error, error) {
	if opts.DBPath == "" {
		return nil, nil, NewExitError(ExitCommandError, "missing --db path")
	}
	if opts.Collection == "" {
		return nil, nil, NewExitError(ExitCommandError, "missing --collection name")
	}
	eng, err := docstore.Open(opts.DBPath)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "opening database", err)
	}
	return eng.WithCollection(opts.Collection), eng.Close, nil
}

// parseJSONMap decodes a JSON object argument. An empty or "-" argument
// yields a nil map (match everything).
func parseJSONMap(s string) (map[string]any, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid JSON object", err)
	}
	return m, nil
}
