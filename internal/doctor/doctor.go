package doctor

import (
	"context"
	"time"
)

// IssueResult pairs an issue with the result of running it.
type IssueResult struct {
	ID       string   `json:"id" yaml:"id"`
	Category string   `json:"category" yaml:"category"`
	Title    string   `json:"title" yaml:"title"`
	Severity Severity `json:"severity" yaml:"severity"`
	Result   *Result  `json:"result" yaml:"result"`
	Elapsed  Duration `json:"elapsed" yaml:"elapsed"`
}

// Duration marshals as a Go duration string.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).Round(time.Millisecond).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Summary aggregates counts of results by status.
type Summary struct {
	OK       int `json:"ok" yaml:"ok"`
	Info     int `json:"info" yaml:"info"`
	Warn     int `json:"warn" yaml:"warn"`
	Critical int `json:"critical" yaml:"critical"`
	Error    int `json:"error" yaml:"error"`
}

func (s *Summary) add(status Status) {
	switch status {
	case StatusOK:
		s.OK++
	case StatusInfo:
		s.Info++
	case StatusWarn:
		s.Warn++
	case StatusCritical:
		s.Critical++
	case StatusError:
		s.Error++
	}
}

// Report is the outcome of a batch run.
type Report struct {
	// Timestamp is when the run started.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Results holds one entry per issue, in run order.
	Results []IssueResult `json:"results" yaml:"results"`

	// Summary contains counts by status.
	Summary Summary `json:"summary" yaml:"summary"`
}

// Worst returns the highest-ranked status in the report, or StatusOK for an
// empty report.
func (r *Report) Worst() Status {
	worst := StatusOK
	for _, ir := range r.Results {
		if ir.Result.Status.Rank() > worst.Rank() {
			worst = ir.Result.Status
		}
	}
	return worst
}

// Runner executes issues one after another against a single CheckContext,
// so every issue shares the context's data source cache.
type Runner struct {
	issues []*Issue
	now    func() time.Time
}

// NewRunner creates a runner for issues, preserving their order.
func NewRunner(issues ...*Issue) *Runner {
	return &Runner{
		issues: issues,
		now:    time.Now,
	}
}

// AddIssue appends an issue to the run.
func (r *Runner) AddIssue(issue *Issue) {
	r.issues = append(r.issues, issue)
}

// Run executes every issue against cc and returns the report. A failing
// issue never stops the run. Cancellation of ctx is left to the deployment's
// own query calls, which fail and are reported per issue.
func (r *Runner) Run(ctx context.Context, cc *CheckContext) *Report {
	report := &Report{
		Timestamp: r.now().UTC(),
		Results:   make([]IssueResult, 0, len(r.issues)),
	}

	for _, issue := range r.issues {
		start := r.now()
		res := issue.Run(ctx, cc)
		report.Results = append(report.Results, IssueResult{
			ID:       issue.ID,
			Category: issue.Category,
			Title:    issue.Title,
			Severity: issue.Severity,
			Result:   res,
			Elapsed:  Duration(r.now().Sub(start)),
		})
		report.Summary.add(res.Status)
	}

	cc.Logger().Info("diagnostic run finished",
		"issues", len(report.Results),
		"worst", report.Worst())
	return report
}
