package cli

import (
	"github.com/spf13/cobra"
)

// NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count [<filter-json>]",
		Short: "Count documents matching a filter",
		Long: `Count documents matching a filter. An omitted filter counts the
whole collection.

Example:
  docstore count -c people '{"company":"Acme"}'`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runCount(opts *RootOptions, args []string, cmd *cobra.Command) error {
	coll, closeDB, err := openCollection(opts)
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

	n, err := coll.Count(cmd.Context(), f)
	if err != nil {
		return WrapExitError(ExitFailure, "count failed", err)
	}
	return out.Success(n)
}
