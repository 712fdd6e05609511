package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredhq/docstore/internal/docstore"
)

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	*RootOptions
	One bool
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete [<filter-json>]",
		Short: "Delete documents matching a filter",
		Long: `Delete documents matching a filter. By default every match is
removed; --one removes only the first. An omitted filter with --one
removes an arbitrary document, without it the whole collection.

Example:
  docstore delete -c people '{"company":"Initech"}'
  docstore delete -c people '{"name":"alice"}' --one`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.One, "one", false, "delete only the first match")

	return cmd
}

func runDelete(opts *DeleteOptions, args []string, cmd *cobra.Command) error {
	coll, closeDB, err := openCollection(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeDB()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	var filterArg string
	if len(args) == 1 {
		filterArg = args[0]
	}
	f, err := parseJSONMap(filterArg)
	if err != nil {
		return err
	}

	var res *docstore.DeleteResult
	if opts.One {
		res, err = coll.DeleteOne(cmd.Context(), f)
	} else {
		res, err = coll.DeleteMany(cmd.Context(), f)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "delete failed", err)
	}
	return out.Success(fmt.Sprintf("deleted %d", res.DeletedCount))
}
