package cli

import (
	"slices"

	"github.com/specialistvlad/plangridgo/internal/dag"
	"github.com/specialistvlad/plangridgo/internal/report"
	"github.com/spf13/cobra"
)

// QueryOptions holds flags shared by tree and chains.
type QueryOptions struct {
	Format   string
	MaxDepth int
	Sorted   bool
}

// NewTreeCommand creates the tree command.
func NewTreeCommand(root *RootOptions) *cobra.Command {
	opts := &QueryOptions{}

	cmd := silence(&cobra.Command{
		Use:   "tree <id> [paths...]",
		Short: "Print the dependency tree of a resource",
		Long: `Print what a resource depends on. Completed tasks are hidden and
milestones below the root are shown without their dependencies.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, root, opts, args[0], args[1:])
		},
	})
	cmd.Flags().StringVar(&opts.Format, "format", report.FormatText, "output format: text, json or yaml")

	return cmd
}

func runTree(cmd *cobra.Command, root *RootOptions, opts *QueryOptions, id string, paths []string) error {
	if !report.IsValidFormat(opts.Format) {
		return usageError("invalid format %q: must be one of %v", opts.Format, report.ValidFormats)
	}
	project, err := root.load(cmd.Context(), paths)
	if err != nil {
		return err
	}
	if _, ok := project.Context.Resource(id); !ok {
		return usageError("unknown resource %q", id)
	}

	formatter := &report.Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if err := formatter.Tree(project.Context.DependencyTree(id)); err != nil {
		return &ExitError{Code: ExitUsage, Message: "writing output", Err: err}
	}
	return nil
}

// NewChainsCommand creates the chains command.
func NewChainsCommand(root *RootOptions) *cobra.Command {
	opts := &QueryOptions{}

	cmd := silence(&cobra.Command{
		Use:   "chains <id> [paths...]",
		Short: "List the dependency chains that end in unfinished work",
		Long: `List every dependency path from a resource down to a leaf that is
still open: a milestone, a task without dependencies or an undefined id.
When every path ends in finished work, those paths are listed instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChains(cmd, root, opts, args[0], args[1:])
		},
	})
	cmd.Flags().StringVar(&opts.Format, "format", report.FormatText, "output format: text, json or yaml")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "maximum chain length in edges (default from settings)")
	cmd.Flags().BoolVar(&opts.Sorted, "sorted", false, "sort chains lexicographically")

	return cmd
}

func runChains(cmd *cobra.Command, root *RootOptions, opts *QueryOptions, id string, paths []string) error {
	if !report.IsValidFormat(opts.Format) {
		return usageError("invalid format %q: must be one of %v", opts.Format, report.ValidFormats)
	}
	if opts.MaxDepth < 0 {
		return usageError("--max-depth must not be negative")
	}
	project, err := root.load(cmd.Context(), paths)
	if err != nil {
		return err
	}
	if _, ok := project.Context.Resource(id); !ok {
		return usageError("unknown resource %q", id)
	}

	logger := root.app.Logger()
	chainOpts := dag.ChainOptions{
		MaxDepth: opts.MaxDepth,
		OnPrune: func(w dag.PruneWarning) {
			logger.Warn("Chain search stopped at the depth limit, results are incomplete.",
				"root", w.RootID, "max_depth", w.MaxDepth)
		},
	}
	if opts.Sorted {
		chainOpts.Less = func(a, b []string) bool { return slices.Compare(a, b) < 0 }
	}

	chains := project.Context.IncompleteLeafDependencyChains(id, chainOpts)
	formatter := &report.Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if err := formatter.Chains(id, chains); err != nil {
		return &ExitError{Code: ExitUsage, Message: "writing output", Err: err}
	}
	return nil
}
