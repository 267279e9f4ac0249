package checks

import (
	"context"
	"fmt"

	"github.com/thoreinstein/mongo-toolkit/internal/doctor"
)

func operationsIssues() []*doctor.Issue {
	return []*doctor.Issue{
		{
			ID:          "operations:connection-pressure",
			Category:    CategoryOperations,
			Title:       "Connection pressure",
			Severity:    doctor.SeverityMedium,
			Tags:        []string{"connections", "infrastructure"},
			Description: "Detects when the deployment is close to its connection limit.",
			Options:     ratioOptions(0.75, 0.90),
			Check:       doctor.CheckFunc(connectionPressure),
		},
		{
			ID:          "operations:long-running-ops",
			Category:    CategoryOperations,
			Title:       "Long-running operations",
			Severity:    doctor.SeverityMedium,
			Tags:        []string{"currentOp"},
			Description: "Surfaces operations that have been executing longer than a threshold.",
			Options: []doctor.Option{
				{Name: "thresholdSeconds", Default: 60, Unit: "s", Usage: "minimum running time to flag", Generic: true},
				{Name: "limit", Default: 10, Usage: "maximum operations to list"},
			},
			Check: doctor.CheckFunc(longRunningOps),
		},
	}
}

func connectionPressure(ctx context.Context, cc *doctor.CheckContext, p doctor.Params) *doctor.Result {
	ss, err := cc.Cache().ServerStatus(ctx)
	if err != nil {
		return doctor.Failed("Unable to read serverStatus.", err, "")
	}

	conns := ss.Connections
	total := conns.Current + conns.Available
	if total <= 0 {
		return &doctor.Result{
			Status:  doctor.StatusInfo,
			Summary: "Connection statistics are unavailable on this deployment.",
		}
	}
	utilization := conns.Current / total

	status := doctor.Cutoffs{
		Warn:     p.Float("warnRatio"),
		Critical: p.Float("criticalRatio"),
		Compare:  doctor.AtLeast,
	}.Classify(utilization)

	rec := "No action required."
	if status != doctor.StatusOK {
		rec = "Add connection pooling, increase maxIncomingConnections, or scale out application nodes."
	}

	return &doctor.Result{
		Status: status,
		Summary: fmt.Sprintf("%g of %g connections in use (%.1f%%).",
			conns.Current, total, utilization*100),
		Details:        conns,
		Recommendation: rec,
	}
}

// Offender is one operation in the long-running-ops details.
type Offender struct {
	OpID           any     `json:"opid" yaml:"opid"`
	Type           string  `json:"type" yaml:"type"`
	NS             string  `json:"ns,omitempty" yaml:"ns,omitempty"`
	SecsRunning    float64 `json:"secsRunning" yaml:"secsRunning"`
	Client         string  `json:"client,omitempty" yaml:"client,omitempty"`
	WaitingForLock bool    `json:"waitingForLock" yaml:"waitingForLock"`
}

// LongRunning returns the live operations running for at least threshold
// seconds, in listing order.
func LongRunning(ops []doctor.CurrentOp, threshold float64) []Offender {
	var out []Offender
	for _, op := range ops {
		if !op.Live() || op.SecsRunning < threshold {
			continue
		}
		out = append(out, Offender{
			OpID:           op.OpID,
			Type:           op.Op,
			NS:             op.NS,
			SecsRunning:    op.SecsRunning,
			Client:         op.Client,
			WaitingForLock: op.WaitingForLock,
		})
	}
	return out
}

func longRunningOps(ctx context.Context, cc *doctor.CheckContext, p doctor.Params) *doctor.Result {
	threshold := p.Float("thresholdSeconds")

	ops, err := cc.Cache().CurrentOps(ctx)
	if err != nil {
		return doctor.Failed("Unable to list current operations.", err, "")
	}

	offenders := LongRunning(ops, threshold)
	if len(offenders) == 0 {
		return &doctor.Result{
			Status:  doctor.StatusOK,
			Summary: fmt.Sprintf("No active operations running longer than %gs.", threshold),
		}
	}

	return &doctor.Result{
		Status:         doctor.StatusWarn,
		Summary:        fmt.Sprintf("%d long-running operation(s) detected (>=%gs).", len(offenders), threshold),
		Details:        offenders[:min(len(offenders), max(p.Int("limit"), 0))],
		Recommendation: "Inspect offending operations, examine explain plans, or terminate blockers with db.killOp(opid).",
	}
}
