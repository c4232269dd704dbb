package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// FmtOptions holds flags for the fmt command.
type FmtOptions struct {
	Write bool
	Check bool
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand(root *RootOptions) *cobra.Command {
	opts := &FmtOptions{}

	cmd := silence(&cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Rewrite plan files in canonical layout",
		Long: `Print plan files in canonical layout, keeping every comment.

With --write the files are rewritten in place. With --check nothing is
written; the names of files that would change are printed and the command
exits 1 if there are any. Files with errors are never formatted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, root, opts, args)
		},
	})

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "write result to the source files")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "list files whose formatting differs and exit 1 if any")
	cmd.MarkFlagsMutuallyExclusive("write", "check")

	return cmd
}

func runFmt(cmd *cobra.Command, root *RootOptions, opts *FmtOptions, paths []string) error {
	project, err := root.load(cmd.Context(), paths)
	if err != nil {
		return err
	}
	logger := root.app.Logger()
	out := cmd.OutOrStdout()

	var failed, changed int
	for _, doc := range project.Documents {
		text, err := root.app.Format(doc)
		if err != nil {
			logger.Error("Cannot format document.", "document", doc.Name, "error", err)
			failed++
			continue
		}
		same := text == string(doc.Parse.Source)

		switch {
		case opts.Check:
			if !same {
				fmt.Fprintln(out, doc.Name)
				changed++
			}
		case opts.Write:
			if same {
				continue
			}
			if err := writeFile(doc.Name, text); err != nil {
				return &ExitError{Code: ExitUsage, Message: "writing " + doc.Name, Err: err}
			}
			logger.Info("Formatted document.", "document", doc.Name)
			changed++
		default:
			if _, err := io.WriteString(out, text); err != nil {
				return &ExitError{Code: ExitUsage, Message: "writing output", Err: err}
			}
		}
	}

	switch {
	case failed > 0:
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d documents could not be formatted", failed)}
	case opts.Check && changed > 0:
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d documents are not formatted", changed)}
	}
	return nil
}

// writeFile replaces the content of path, keeping its permissions.
func writeFile(path, text string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), info.Mode().Perm())
}
