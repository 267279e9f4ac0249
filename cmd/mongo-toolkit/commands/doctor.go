package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mongo-toolkit/internal/checks"
	"github.com/thoreinstein/mongo-toolkit/internal/conn"
	"github.com/thoreinstein/mongo-toolkit/internal/doctor"
	"github.com/thoreinstein/mongo-toolkit/internal/errors"
	"github.com/thoreinstein/mongo-toolkit/internal/logging"
	"github.com/thoreinstein/mongo-toolkit/internal/report"
)

var doctorFlags sessionFlags

func init() {
	doctorFlags.register(doctorCmd)
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor [category]",
	Short: "Run every check against a deployment",
	Long: `Run all checks, or those of one category, one after another over a
single connection. Checks that read the same server statistics share one
fetch. A check that fails is reported as an error result and never stops
the others.

Exit codes:
  0 - No warnings, critical findings or errors
  1 - Warnings present, or --fail-on threshold reached
  2 - Critical findings or check errors present, or the deployment could
      not be reached`,
	Example: `  # Full health report
  mongo-toolkit doctor --uri mongodb://localhost:27017

  # Replication only, as YAML
  mongo-toolkit doctor replication -o yaml

  # Only fail CI on critical findings
  mongo-toolkit doctor --fail-on critical

See Also: mongo-toolkit run, mongo-toolkit categories`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	var filter string
	if len(args) == 1 {
		filter = args[0]
	}
	issues := checks.Default().List(filter)
	if len(issues) == 0 {
		return errors.NewUserError(errors.Wrapf(errors.ErrNotFound, "no checks match %q", filter), "Run: mongo-toolkit categories")
	}

	format, failOn, err := outputSettings(&doctorFlags)
	if err != nil {
		return err
	}

	cfg, err := effectiveConfig(cmd, &doctorFlags)
	if err != nil {
		return err
	}

	opts, err := runOptions(cmd, cfg, &doctorFlags)
	if err != nil {
		return err
	}

	ctx, logger := logging.WithRun(cmd.Context())

	var rep *doctor.Report
	err = openDeployment(ctx, cfg.ConnOptions(), func(dep conn.Deployment) error {
		cc := doctor.NewCheckContext(dep, opts, logger)
		rep = doctor.NewRunner(issues...).Run(ctx, cc)
		return nil
	})
	if err != nil {
		return connectionFailure(err)
	}

	if err := report.NewReporter(cmd.OutOrStdout(), format).Report(rep); err != nil {
		return err
	}

	return doctorExit(rep.Worst(), failOn)
}

// doctorExit maps the worst status of a report to the command's exit error.
func doctorExit(worst, failOn doctor.Status) error {
	if failOn != "" {
		if worst.AtLeast(failOn) {
			return errors.NewExitError(errFindings, errors.ExitUser)
		}
		return nil
	}

	switch {
	case worst.AtLeast(doctor.StatusCritical):
		return errors.NewExitError(errFindings, errors.ExitSystem)
	case worst == doctor.StatusWarn:
		return errors.NewExitError(errFindings, errors.ExitUser)
	default:
		return nil
	}
}
