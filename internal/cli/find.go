package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alfredhq/docstore/internal/docstore"
)

// FindOptions holds flags for the find command.
type FindOptions struct {
	*RootOptions
	One   bool
	Sort  []string
	Limit int
}

// NewFindCommand creates the find command.
func NewFindCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FindOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "find [<filter-json>]",
		Short: "Find documents matching a filter",
		Long: `Find documents matching a filter.

The filter is a JSON object in the supported query language: literal
equality, dot-paths, $ne, and $regex with $options. An omitted filter
matches every document.

Example:
  docstore find -c people '{"company":"Acme"}'
  docstore find -c people '{"name":{"$regex":"^a","$options":"i"}}' --sort age:-1 --limit 5`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.One, "one", false, "return only the first match")
	cmd.Flags().StringSliceVar(&opts.Sort, "sort", nil, "sort keys as field:1 or field:-1")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of documents (0 = no limit)")

	return cmd
}

func runFind(opts *FindOptions, args []string, cmd *cobra.Command) error {
	coll, closeDB, err := openCollection(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeDB()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	ctx := cmd.Context()

	var filterArg string
	if len(args) == 1 {
		filterArg = args[0]
	}
	f, err := parseJSONMap(filterArg)
	if err != nil {
		return err
	}

	if opts.One {
		doc, err := coll.FindOne(ctx, f, nil)
		if err != nil {
			return WrapExitError(ExitFailure, "find failed", err)
		}
		if doc == nil {
			return NewExitError(ExitFailure, "no document matched")
		}
		return out.Documents([]map[string]any{doc})
	}

	sortKeys, err := parseSortKeys(opts.Sort)
	if err != nil {
		return err
	}
	docs, err := coll.FindMany(ctx, f, nil, sortKeys, opts.Limit)
	if err != nil {
		return WrapExitError(ExitFailure, "find failed", err)
	}
	out.VerboseLog("matched %d documents", len(docs))
	return out.Documents(docs)
}

// parseSortKeys turns "field:1" / "field:-1" flags into sort fields.
// A bare field name sorts ascending.
func parseSortKeys(specs []string) ([]docstore.SortField, error) {
	keys := make([]docstore.SortField, 0, len(specs))
	for _, spec := range specs {
		field, dir, found := strings.Cut(spec, ":")
		if field == "" {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("invalid sort key %q", spec))
		}
		direction := 1
		if found {
			n, err := strconv.Atoi(dir)
			if err != nil || (n != 1 && n != -1) {
				return nil, NewExitError(ExitCommandError, fmt.Sprintf("invalid sort direction in %q: want 1 or -1", spec))
			}
			direction = n
		}
		keys = append(keys, docstore.SortField{Field: field, Direction: direction})
	}
	return keys, nil
}
