package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/specialistvlad/plangridgo/internal/config"
	"github.com/specialistvlad/plangridgo/internal/cst"
	"github.com/specialistvlad/plangridgo/internal/ctxlog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/specialistvlad/plangridgo/internal/app")

// App encapsulates the application's dependencies and configuration.
type App struct {
	logger   *slog.Logger
	parser   cst.Parser
	settings config.Settings

	// cache maps a document name to its last CST that parsed and decoded
	// without errors.
	cache *lru.Cache[string, *cst.DocumentNode]
}

// New creates an App logging to logW. The parser is injected so callers
// decide which surface syntax is read.
func New(logW io.Writer, settings config.Settings, parser cst.Parser) (*App, error) {
	if parser == nil {
		return nil, fmt.Errorf("app: parser is required")
	}
	cache, err := lru.New[string, *cst.DocumentNode](settings.Cache.Size)
	if err != nil {
		return nil, fmt.Errorf("creating document cache: %w", err)
	}

	logger := newLogger(settings.Log, logW)
	logger.Debug("Logger configured successfully.", "level", settings.Log.Level, "format", settings.Log.Format)

	return &App{
		logger:   logger,
		parser:   parser,
		settings: settings,
		cache:    cache,
	}, nil
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Settings returns a copy of the active settings.
func (a *App) Settings() config.Settings {
	return a.settings
}

// WithLogger attaches the application's logger to ctx.
func (a *App) WithLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
