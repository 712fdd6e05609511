package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// InsertOptions holds flags for the insert command.
type InsertOptions struct {
	*RootOptions
	File string
}

// NewInsertCommand creates the insert command.
func NewInsertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InsertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "insert [<json-document>]",
		Short: "Insert documents into a collection",
		Long: `Insert documents into a collection.

A single document is given as a JSON object argument. A batch is given
with --file pointing at a YAML or JSON file holding a list of
documents; the batch is stored in one transaction, all or nothing.

Example:
  docstore insert -c people '{"name":"alice","age":34}'
  docstore insert -c people --file people.yaml`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsert(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "YAML/JSON file with a list of documents")

	return cmd
}

func runInsert(opts *InsertOptions, args []string, cmd *cobra.Command) error {
	coll, closeDB, err := openCollection(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeDB()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	ctx := cmd.Context()

	if opts.File != "" {
		docs, err := loadDocumentList(opts.File)
		if err != nil {
			return err
		}
		res, err := coll.InsertMany(ctx, docs)
		if err != nil {
			return WrapExitError(ExitFailure, "insert failed", err)
		}
		return out.Success(fmt.Sprintf("inserted %d documents", len(res.InsertedIDs)))
	}

	if len(args) != 1 {
		return NewExitError(ExitCommandError, "either a JSON document argument or --file is required")
	}
	doc, err := parseJSONMap(args[0])
	if err != nil {
		return err
	}
	if doc == nil {
		return NewExitError(ExitCommandError, "document must be a JSON object")
	}
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return WrapExitError(ExitFailure, "insert failed", err)
	}
	return out.Success(res.InsertedID)
}

// loadDocumentList reads a list of documents from a YAML or JSON file.
// YAML is a superset of JSON here, so one decoder covers both.
func loadDocumentList(path string) ([]map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "reading document file", err)
	}
	var docs []map[string]any
	if err := yaml.Unmarshal(raw, &docs); err != nil {
		return nil, WrapExitError(ExitCommandError, "parsing document file", err)
	}
	// YAML numbers decode as int; the engine normalizes them, but the
	// JSON path below keeps text output consistent for nested values.
	for i, doc := range docs {
		normalized, err := roundTripJSON(doc)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "normalizing document file", err)
		}
		docs[i] = normalized
	}
	return docs, nil
}

func roundTripJSON(doc map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
