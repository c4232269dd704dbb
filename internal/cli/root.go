package cli

import (
	"context"
	"strings"
	"time"

	"github.com/specialistvlad/plangridgo/internal/app"
	"github.com/specialistvlad/plangridgo/internal/config"
	"github.com/specialistvlad/plangridgo/internal/hcl_adapter"
	"github.com/spf13/cobra"
)

// RootOptions holds the global flags and the App built from them.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string

	app *app.App
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := silence(&cobra.Command{
		Use:   "plangrid",
		Short: "Check, format and explore task plans",
		Long: `plangrid reads plan files made of task and milestone blocks, reports
problems in them, rewrites them in canonical layout and answers questions
about their dependencies.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	})

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a settings file (default ./plangrid.yaml when present)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "log format: text or json")

	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewFmtCommand(opts))
	cmd.AddCommand(NewTreeCommand(opts))
	cmd.AddCommand(NewChainsCommand(opts))

	return cmd
}

func (o *RootOptions) setup(cmd *cobra.Command) error {
	settings, err := config.Load(o.ConfigPath)
	if err != nil {
		return &ExitError{Code: ExitUsage, Message: "loading configuration", Err: err}
	}
	if cmd.Flags().Changed("log-level") {
		settings.Log.Level = strings.ToLower(o.LogLevel)
	}
	if cmd.Flags().Changed("log-format") {
		settings.Log.Format = strings.ToLower(o.LogFormat)
	}
	if problems := settings.Validate(); len(problems) > 0 {
		return usageError("invalid settings: %s", strings.Join(problems, "; "))
	}

	a, err := app.New(cmd.ErrOrStderr(), *settings, hcl_adapter.NewParser())
	if err != nil {
		return &ExitError{Code: ExitUsage, Message: "starting", Err: err}
	}
	o.app = a
	return nil
}

// load reads paths (the working directory when empty) into a project.
func (o *RootOptions) load(ctx context.Context, paths []string) (*app.Project, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	start := time.Now()
	project, err := o.app.Load(ctx, paths...)
	if err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: "loading documents", Err: err}
	}
	o.app.Logger().Debug("Documents loaded.", "documents", len(project.Documents), "duration", time.Since(start))
	return project, nil
}
