package commands

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/mongo-toolkit/internal/config"
	"github.com/thoreinstein/mongo-toolkit/internal/conn"
	"github.com/thoreinstein/mongo-toolkit/internal/doctor"
	"github.com/thoreinstein/mongo-toolkit/internal/errors"
	"github.com/thoreinstein/mongo-toolkit/internal/report"
)

// sessionFlags are the connection, option and output flags shared by the
// commands that talk to a deployment.
type sessionFlags struct {
	uri       string
	database  string
	timeout   time.Duration
	set       []string
	optsFile  string
	slowMs    float64
	threshSec float64
	threshold float64
	output    string
	failOn    string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.uri, "uri", "", "MongoDB connection string (overrides config and "+config.EnvPrefix+"_URI)")
	fs.StringVar(&f.database, "database", "", "target database for database-scoped checks")
	fs.DurationVar(&f.timeout, "timeout", 0, "server selection timeout (default from config, 5s)")
	fs.StringArrayVar(&f.set, "set", nil, "set a check option, name=value (repeatable)")
	fs.StringVar(&f.optsFile, "options-file", "", "read check options from a YAML or TOML file")
	fs.Float64Var(&f.slowMs, "slow-ms", 0, "slow operation threshold in milliseconds (slowMs)")
	fs.Float64Var(&f.threshSec, "threshold-seconds", 0, "long-running operation threshold in seconds (thresholdSeconds)")
	fs.Float64Var(&f.threshold, "threshold", 0, "generic threshold for checks that declare one")
	fs.StringVarP(&f.output, "output", "o", "text", "output format: text, json, yaml")
	fs.StringVar(&f.failOn, "fail-on", "", "exit non-zero when any result is at least this status (info, warn, critical, error)")
}

// openDeployment runs fn against a freshly opened deployment session.
// Tests replace it with a mock-backed implementation.
var openDeployment = func(ctx context.Context, opts conn.Options, fn func(conn.Deployment) error) error {
	return conn.With(ctx, opts, func(c *conn.Conn) error {
		return fn(c)
	})
}

// effectiveConfig applies connection flags on top of the loaded config and
// validates the result.
func effectiveConfig(cmd *cobra.Command, f *sessionFlags) (*config.Config, error) {
	cfg := config.Default()
	if loadedConfig != nil {
		c := *loadedConfig
		cfg = &c
	}

	flags := cmd.Flags()
	if flags.Changed("uri") {
		cfg.URI = f.uri
	}
	if flags.Changed("database") {
		cfg.Database = f.database
	}
	if flags.Changed("timeout") {
		cfg.ServerSelectionTimeout = f.timeout
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		return nil, invalidConfig(errs)
	}
	return cfg, nil
}

// runOptions merges option layers from lowest to highest precedence: config
// file, --options-file, --set, then the dedicated flags.
func runOptions(cmd *cobra.Command, cfg *config.Config, f *sessionFlags) (doctor.Options, error) {
	layers := []map[string]float64{cfg.Options}

	if f.optsFile != "" {
		fromFile, err := config.LoadOptionsFile(f.optsFile)
		if err != nil {
			return doctor.Options{}, errors.NewUserError(err, "Check the --options-file path and contents")
		}
		layers = append(layers, fromFile)
	}

	set, err := config.ParseSet(f.set)
	if err != nil {
		return doctor.Options{}, errors.NewUserError(err, "Use --set name=value, e.g. --set warnRatio=0.8")
	}
	layers = append(layers, set)

	dedicated := make(map[string]float64)
	flags := cmd.Flags()
	if flags.Changed("slow-ms") {
		dedicated["slowMs"] = f.slowMs
	}
	if flags.Changed("threshold-seconds") {
		dedicated["thresholdSeconds"] = f.threshSec
	}
	if flags.Changed("threshold") {
		dedicated[doctor.GenericThreshold] = f.threshold
	}
	layers = append(layers, dedicated)

	return doctor.NewOptions(config.MergeOptions(layers...)), nil
}

// outputSettings parses --output and --fail-on.
func outputSettings(f *sessionFlags) (report.Format, doctor.Status, error) {
	format, err := report.ParseFormat(f.output)
	if err != nil {
		return "", "", errors.NewUserError(err, "Use --output text, json or yaml")
	}

	var failOn doctor.Status
	if f.failOn != "" {
		failOn, err = doctor.ParseStatus(f.failOn)
		if err != nil {
			return "", "", errors.NewUserError(err, "Use --fail-on info, warn, critical or error")
		}
	}
	return format, failOn, nil
}

// connectionFailure maps a session error to an exit error.
func connectionFailure(err error) error {
	if errors.Is(err, errors.ErrMissingURI) {
		return errors.NewUserError(err, "Pass --uri or set "+config.EnvPrefix+"_URI")
	}
	return errors.NewSystemError(err, "Check the connection string and that the deployment is reachable")
}

// errFindings signals that results crossed the failure threshold. The
// report has already been written, so nothing more is printed.
var errFindings = errors.New("findings at or above the failure threshold")

// invalidConfig folds validation failures into one config error.
func invalidConfig(errs []error) error {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return errors.NewConfigError(errors.Newf("invalid configuration: %s", strings.Join(msgs, "; ")))
}
