package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// UpdateOptions holds flags for the update command.
type UpdateOptions struct {
	*RootOptions
	Upsert bool
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update <filter-json> <update-json>",
		Short: "Update the first document matching a filter",
		Long: `Update the first document matching a filter.

The update specification supports $set, $push, and $setOnInsert. With
--upsert, a miss creates a new document from the $set and $setOnInsert
assignments.

Example:
  docstore update -c people '{"name":"alice"}' '{"$set":{"age":35}}'
  docstore update -c people '{"name":"erin"}' '{"$setOnInsert":{"joined":"2026-08-30"}}' --upsert`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Upsert, "upsert", false, "insert a new document when nothing matches")

	return cmd
}

func runUpdate(opts *UpdateOptions, args []string, cmd *cobra.Command) error {
	coll, closeDB, err := openCollection(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeDB()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	f, err := parseJSONMap(args[0])
	if err != nil {
		return err
	}
	u, err := parseJSONMap(args[1])
	if err != nil {
		return err
	}
	if u == nil {
		return NewExitError(ExitCommandError, "update specification must be a JSON object")
	}

	res, err := coll.UpdateOne(cmd.Context(), f, u, opts.Upsert)
	if err != nil {
		return WrapExitError(ExitFailure, "update failed", err)
	}
	if res.UpsertedID != "" {
		return out.Success(fmt.Sprintf("upserted %s", res.UpsertedID))
	}
	return out.Success(fmt.Sprintf("matched %d, modified %d", res.MatchedCount, res.ModifiedCount))
}
