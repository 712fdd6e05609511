package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alfredhq/docstore/internal/docstore"
)

// bulkOp is one entry of a bulk operations file.
type bulkOp struct {
	Filter map[string]any `yaml:"filter"`
	Update map[string]any `yaml:"update"`
	Upsert bool           `yaml:"upsert"`
}

// NewBulkCommand creates the bulk command.
func NewBulkCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulk <operations-file>",
		Short: "Apply a file of update operations in order",
		Long: `Apply a file of update operations in order.

The file is a YAML list; each entry has a filter, an update, and an
optional upsert flag:

  - filter: {name: alice}
    update: {$set: {age: 35}}
  - filter: {name: erin}
    update: {$setOnInsert: {joined: "2026-08-30"}}
    upsert: true

Example:
  docstore bulk -c people ops.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBulk(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runBulk(opts *RootOptions, path string, cmd *cobra.Command) error {
	coll, closeDB, err := openCollection(opts)
	if err != nil {
		return err
	}
	defer closeDB()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	models, err := loadBulkOps(path)
	if err != nil {
		return err
	}
	out.VerboseLog("loaded %d operations from %s", len(models), path)

	res, err := coll.BulkWrite(cmd.Context(), models)
	if err != nil {
		return WrapExitError(ExitFailure, "bulk write failed", err)
	}
	return out.Success(fmt.Sprintf("matched %d, modified %d, upserted %d",
		res.MatchedCount, res.ModifiedCount, res.UpsertedCount))
}

// loadBulkOps reads update models from a YAML operations file.
func loadBulkOps(path string) ([]docstore.UpdateOneModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "reading operations file", err)
	}
	var ops []bulkOp
	if err := yaml.Unmarshal(raw, &ops); err != nil {
		return nil, WrapExitError(ExitCommandError, "parsing operations file", err)
	}

	models := make([]docstore.UpdateOneModel, 0, len(ops))
	for i, op := range ops {
		if op.Update == nil {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("operation %d has no update", i))
		}
		filter, err := roundTripJSON(op.Filter)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "normalizing operations file", err)
		}
		update, err := roundTripJSON(op.Update)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "normalizing operations file", err)
		}
		models = append(models, docstore.UpdateOneModel{
			Filter: filter,
			Update: update,
			Upsert: op.Upsert,
		})
	}
	return models, nil
}
