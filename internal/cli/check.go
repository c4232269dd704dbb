package cli

import (
	"fmt"

	"github.com/specialistvlad/plangridgo/internal/lspconv"
	"github.com/specialistvlad/plangridgo/internal/report"
	"github.com/specialistvlad/plangridgo/internal/sourceindex"
	"github.com/spf13/cobra"
)

const formatLSP = "lsp"

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	Format string
	Strict bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand(root *RootOptions) *cobra.Command {
	opts := &CheckOptions{}

	cmd := silence(&cobra.Command{
		Use:   "check [paths...]",
		Short: "Report problems in plan files",
		Long: `Parse and analyse plan files and print every syntax error and diagnostic.

Exits 1 when an error is found, or any problem at all under --strict.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, root, opts, args)
		},
	})

	cmd.Flags().StringVar(&opts.Format, "format", "", "output format: text, json, yaml or lsp (default from settings)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat warnings as failures")

	return cmd
}

func runCheck(cmd *cobra.Command, root *RootOptions, opts *CheckOptions, paths []string) error {
	format := opts.Format
	if format == "" {
		format = root.app.Settings().Output.Format
	}
	if format != formatLSP && !report.IsValidFormat(format) {
		return usageError("invalid format %q: must be one of %v or %s", format, report.ValidFormats, formatLSP)
	}

	project, err := root.load(cmd.Context(), paths)
	if err != nil {
		return err
	}
	parseErrs := project.ParseErrors()
	diags := project.Diagnostics()

	formatter := &report.Formatter{Format: format, Writer: cmd.OutOrStdout()}
	if format == formatLSP {
		indexes := make([]*sourceindex.Index, 0, len(project.Documents))
		for _, d := range project.Documents {
			indexes = append(indexes, d.Index)
		}
		conv := lspconv.New(indexes, project.Context.Resources())
		formatter.Format = report.FormatJSON
		err = formatter.Value(conv.Publish(parseErrs, diags))
	} else {
		entries := append(report.SyntaxEntries(parseErrs), report.Entries(diags)...)
		err = formatter.Diagnostics(entries)
	}
	if err != nil {
		return &ExitError{Code: ExitUsage, Message: "writing report", Err: err}
	}

	problems := len(parseErrs) + len(diags)
	root.app.Logger().Debug("Check finished.", "documents", len(project.Documents), "problems", problems)
	switch {
	case project.HasErrors():
		return &ExitError{Code: ExitFailure, Message: "errors found"}
	case opts.Strict && problems > 0:
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d warnings found (strict mode)", problems)}
	}
	return nil
}
