package hjarta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/0xalexb/hjarta-config/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App is a configured starting point for an application whose configuration
// file is validated against a schema before any module starts.
type App struct {
	app *fx.App
}

// NewApp creates a new instance of App with Fx configured.
// When a configuration file is set, the validated *config.Config is available
// to every module.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &App{
		app: configure(&options),
	}
}

func configure(options *Options) *fx.App {
	logger := createLogger(options.LogLevel, options.LogFormat, os.Stderr)
	slog.SetDefault(logger)

	logger.Debug("configuring application",
		slog.String("version", Version),
		slog.String("compiled_at", CompiledAt),
		slog.String("config_file", options.ConfigFile),
	)

	modules := options.Modules
	if options.ConfigFile != "" || options.Schema != nil {
		modules = append([]fx.Option{configModule(options)}, modules...)
	}

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(logging.LoggerConfig{Level: options.LogLevel, Format: options.LogFormat}),
		fx.Supply(logger),
		fx.Options(modules...),
	)
}

func createLogger(level, format string, w io.Writer) *slog.Logger {
	config := logging.LoggerConfig{Level: level, Format: format}

	return logging.NewLogger(config, w)
}

// Err returns the error that occurred while building the application, e.g.
// an invalid configuration file.
func (app *App) Err() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	return app.app.Err()
}

// Start starts the Fx application.
func (app *App) Start() error {
	if app != nil && app.app != nil {
		err := app.app.Start(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Run starts the application and blocks until an OS signal is received, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}
