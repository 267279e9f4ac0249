// Package commands implements the CLI commands for mongo-toolkit.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/mongo-toolkit/cmd"
	"github.com/thoreinstein/mongo-toolkit/internal/config"
	"github.com/thoreinstein/mongo-toolkit/internal/errors"
	"github.com/thoreinstein/mongo-toolkit/internal/logging"
	"github.com/thoreinstein/mongo-toolkit/internal/redact"
)

// debugEnv is consulted when no -v flag is given.
const debugEnv = config.EnvPrefix + "_DEBUG"

// configFile holds the value of the --config flag.
var configFile string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// loadedConfig is the configuration read at startup, before flag overrides.
var loadedConfig *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml, then $XDG_CONFIG_HOME/mongo-toolkit/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("mongo-toolkit version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	// Capture load errors for later reporting
	loadedConfig, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "mongo-toolkit",
	Short: "Diagnose MongoDB deployments",
	Long: `mongo-toolkit runs targeted diagnostic checks against a MongoDB deployment
and reports a status, a summary, supporting details and a recommendation
for each one.

Checks are grouped into categories (performance, replication, storage,
operations, security). Run one check by id, or the whole catalog with
'doctor'. Each run opens one short-lived connection, and checks that need
the same server statistics share a single fetch.`,
	Example: `  # Show the catalog
  mongo-toolkit categories
  mongo-toolkit list replication

  # Run one check
  mongo-toolkit run operations:connection-pressure --uri mongodb://localhost:27017

  # Run every check in a category
  mongo-toolkit doctor storage --uri "$MONGO_URI"

  See Also: mongo-toolkit describe, mongo-toolkit config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Initialize logging first
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfigLoaded(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(debugEnv); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	case logging.FormatText, "":
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	default:
		return errors.NewUserError(errors.Newf("unknown log format %q", logFormat), "Use --log-format text or json")
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format and keeps debug records even when the
		// terminal is quieter.
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: min(level, slog.LevelDebug),
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfigLoaded reports a config file that could not be read.
func checkConfigLoaded(cmd *cobra.Command) error {
	// Skip validation for help and version commands
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}
	// a broken or missing file is what edit repairs
	if cmd == configEditCmd {
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// PrintError writes err and its suggestion to w. Findings that were already
// rendered as a report are not repeated.
func PrintError(w io.Writer, err error) {
	if err == nil || errors.Is(err, errFindings) {
		return
	}

	var exitErr *errors.ExitError
	hasExit := errors.As(err, &exitErr)
	if !hasExit || exitErr.Err != nil {
		fmt.Fprintf(w, "Error: %s\n", redact.MaskEmbeddedURIs(err.Error()))
	}
	if hasExit && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
	}
}
