package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mongo-toolkit/internal/checks"
	"github.com/thoreinstein/mongo-toolkit/internal/conn"
	"github.com/thoreinstein/mongo-toolkit/internal/doctor"
	"github.com/thoreinstein/mongo-toolkit/internal/errors"
	"github.com/thoreinstein/mongo-toolkit/internal/logging"
	"github.com/thoreinstein/mongo-toolkit/internal/report"
)

var runFlags sessionFlags

// errNoIssue is returned when run is invoked without an issue id and no
// terminal is available to pick one.
var errNoIssue = errors.New("an issue id is required")

// isInteractive reports whether the fuzzy picker can be shown.
var isInteractive = func() bool {
	return logging.IsTTY(os.Stdin) && logging.IsTTY(os.Stdout)
}

func init() {
	runFlags.register(runCmd)
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [issue-id]",
	Short: "Run one diagnostic check",
	Long: `Connect to a deployment, run a single check and print its result.

Without an issue id, an interactive picker is shown when attached to a
terminal.

Check options are merged from lowest to highest precedence:
  config file "options" < --options-file < --set name=value < --slow-ms,
  --threshold-seconds, --threshold

The command exits 0 whenever a result was produced, including warn and
critical results. Use --fail-on to exit 1 when the result is at least the
given status.

Exit codes:
  0 - A result was produced
  1 - Unknown issue id, invalid flags, or --fail-on threshold reached
  2 - The deployment could not be reached`,
	Example: `  # Connection pressure on a local server
  mongo-toolkit run operations:connection-pressure --uri mongodb://localhost:27017

  # Slow queries above 200ms in the app database, as JSON
  mongo-toolkit run performance:slow-queries --database app --slow-ms 200 -o json

  # Tighter cache cutoffs
  mongo-toolkit run performance:wiredtiger-cache --set warnRatio=0.7 --set criticalRatio=0.9

See Also: mongo-toolkit list, mongo-toolkit describe, mongo-toolkit doctor`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	issue, err := resolveIssue(args)
	if err != nil {
		return err
	}

	format, failOn, err := outputSettings(&runFlags)
	if err != nil {
		return err
	}

	cfg, err := effectiveConfig(cmd, &runFlags)
	if err != nil {
		return err
	}

	opts, err := runOptions(cmd, cfg, &runFlags)
	if err != nil {
		return err
	}

	ctx, logger := logging.WithRun(cmd.Context())
	logger.Debug("running issue", "issue", issue.ID, "options", opts.Names())

	var rep *doctor.Report
	err = openDeployment(ctx, cfg.ConnOptions(), func(dep conn.Deployment) error {
		cc := doctor.NewCheckContext(dep, opts, logger)
		rep = doctor.NewRunner(issue).Run(ctx, cc)
		return nil
	})
	if err != nil {
		return connectionFailure(err)
	}

	ir := rep.Results[0]
	if err := report.NewReporter(cmd.OutOrStdout(), format).Result(ir); err != nil {
		return err
	}

	if failOn != "" && ir.Result.Status.AtLeast(failOn) {
		return errors.NewExitError(errFindings, errors.ExitUser)
	}
	return nil
}

// resolveIssue finds the issue named by args, or asks for one.
func resolveIssue(args []string) (*doctor.Issue, error) {
	registry := checks.Default()

	if len(args) == 1 {
		issue, err := registry.Lookup(args[0])
		if err != nil {
			return nil, errors.NewUserError(err, "Run: mongo-toolkit list")
		}
		return issue, nil
	}

	if !isInteractive() {
		return nil, errors.NewUserError(errNoIssue, "Run: mongo-toolkit list, then mongo-toolkit run <issue-id>")
	}
	return pickIssue(registry.List(""))
}

// pickIssue shows a fuzzy finder over issues with a description preview.
func pickIssue(issues []*doctor.Issue) (*doctor.Issue, error) {
	idx, err := fuzzyfinder.Find(
		issues,
		func(i int) string {
			return fmt.Sprintf("%s  %s", issues[i].ID, issues[i].Title)
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			issue := issues[i]
			var sb strings.Builder
			fmt.Fprintf(&sb, "%s\n\nSeverity: %s\n\n%s\n", issue.Title, issue.Severity, issue.Description)
			if len(issue.Options) > 0 {
				sb.WriteString("\nOptions:\n")
				for _, opt := range issue.Options {
					fmt.Fprintf(&sb, "  %s = %g %s\n", opt.Name, opt.Default, opt.Unit)
				}
			}
			return sb.String()
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, errors.NewUserError(errNoIssue, "Selection cancelled")
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}
	return issues[idx], nil
}
