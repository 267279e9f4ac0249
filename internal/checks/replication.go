package checks

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thoreinstein/mongo-toolkit/internal/doctor"
	"github.com/thoreinstein/mongo-toolkit/internal/errors"
)

func replicationIssues() []*doctor.Issue {
	return []*doctor.Issue{
		{
			ID:          "replication:lag",
			Category:    CategoryReplication,
			Title:       "Replica set lag",
			Severity:    doctor.SeverityHigh,
			Tags:        []string{"replication", "ha"},
			Description: "Calculates the largest lag between the primary and secondaries.",
			Options: []doctor.Option{
				{Name: "warnSeconds", Default: 15, Unit: "s", Usage: "lag at which the check warns"},
				{Name: "criticalSeconds", Default: 60, Unit: "s", Usage: "lag at which the check is critical"},
			},
			Check: doctor.CheckFunc(replicationLag),
		},
		{
			ID:          "replication:oplog-window",
			Category:    CategoryReplication,
			Title:       "Oplog window coverage",
			Severity:    doctor.SeverityMedium,
			Tags:        []string{"replication", "oplog"},
			Description: "Measures how many hours of history are retained in the oplog.",
			Options: []doctor.Option{
				{Name: "warnHours", Default: 48, Unit: "h", Usage: "window below which the check warns"},
				{Name: "criticalHours", Default: 24, Unit: "h", Usage: "window below which the check is critical"},
			},
			Check: doctor.CheckFunc(oplogWindow),
		},
	}
}

// LagRow is one secondary in the replication lag details.
type LagRow struct {
	Member     string  `json:"member" yaml:"member"`
	State      string  `json:"state" yaml:"state"`
	LagSeconds float64 `json:"lagSeconds" yaml:"lagSeconds"`
}

func replicationLag(ctx context.Context, cc *doctor.CheckContext, p doctor.Params) *doctor.Result {
	rs, err := cc.Cache().ReplStatus(ctx)
	if err != nil {
		return doctor.Failed("Unable to retrieve replSetGetStatus.", err,
			"Ensure the cluster is a replica set and the user has replSetGetStatus privileges.")
	}
	if rs == nil {
		return &doctor.Result{
			Status:  doctor.StatusInfo,
			Summary: "This deployment is not part of a replica set.",
		}
	}

	primary, ok := rs.Primary()
	secondaries := rs.Secondaries()
	if !ok || len(secondaries) == 0 {
		return &doctor.Result{
			Status:  doctor.StatusInfo,
			Summary: "Replica set does not expose secondary members or is still initializing.",
		}
	}

	rows := make([]LagRow, 0, len(secondaries))
	worst := 0.0
	for _, m := range secondaries {
		lag := max(0, primary.OptimeDate.Sub(m.OptimeDate).Seconds())
		worst = max(worst, lag)
		rows = append(rows, LagRow{Member: m.Name, State: m.StateStr, LagSeconds: lag})
	}

	status := doctor.Cutoffs{
		Warn:     p.Float("warnSeconds"),
		Critical: p.Float("criticalSeconds"),
		Compare:  doctor.AtLeast,
	}.Classify(worst)

	rec := "Replication is healthy."
	if status != doctor.StatusOK {
		rec = "Check network latency, disk throughput, and long-running operations on lagging members."
	}

	return &doctor.Result{
		Status:         status,
		Summary:        fmt.Sprintf("Worst replication lag %.1fs among %d secondary member(s).", worst, len(rows)),
		Details:        rows,
		Recommendation: rec,
	}
}

// OplogDetails is the details payload of the oplog window check.
type OplogDetails struct {
	Oldest      time.Time `json:"oldest" yaml:"oldest"`
	Newest      time.Time `json:"newest" yaml:"newest"`
	WindowHours float64   `json:"windowHours" yaml:"windowHours"`
}

type oplogEntry struct {
	TS       primitive.Timestamp `bson:"ts"`
	WallTime time.Time           `bson:"wallTime"`
}

// at prefers the entry's wall clock and falls back to the seconds part of
// its oplog timestamp.
func (e oplogEntry) at() (time.Time, bool) {
	if !e.WallTime.IsZero() {
		return e.WallTime.UTC(), true
	}
	if e.TS.T != 0 {
		return time.Unix(int64(e.TS.T), 0).UTC(), true
	}
	return time.Time{}, false
}

func oplogWindow(ctx context.Context, cc *doctor.CheckContext, p doctor.Params) *doctor.Result {
	const readFailed = "Unable to read from local.oplog.rs. Connect to a primary or provide permissions."

	projection := bson.D{{Key: "ts", Value: 1}, {Key: "wallTime", Value: 1}}
	oldestDoc, err := cc.Deployment().FindOne(ctx, "local", "oplog.rs", bson.D{{Key: "ts", Value: 1}}, projection)
	if err != nil {
		return doctor.Failed(readFailed, err, "")
	}
	newestDoc, err := cc.Deployment().FindOne(ctx, "local", "oplog.rs", bson.D{{Key: "ts", Value: -1}}, projection)
	if err != nil {
		return doctor.Failed(readFailed, err, "")
	}

	if oldestDoc == nil || newestDoc == nil {
		return &doctor.Result{
			Status:         doctor.StatusWarn,
			Summary:        "oplog.rs collection is empty.",
			Recommendation: "Ensure this node is a replica set member and retains oplog entries.",
		}
	}

	var oldest, newest oplogEntry
	if err := doctor.Decode(oldestDoc, &oldest); err != nil {
		return doctor.Failed("Unable to decode oplog entries.", err, "")
	}
	if err := doctor.Decode(newestDoc, &newest); err != nil {
		return doctor.Failed("Unable to decode oplog entries.", err, "")
	}

	start, okStart := oldest.at()
	end, okEnd := newest.at()
	if !okStart || !okEnd {
		return doctor.Failed("Unable to convert oplog timestamps to dates.",
			errors.New("oplog entries carry neither wallTime nor ts"), "")
	}

	windowHours := end.Sub(start).Hours()
	status := doctor.Cutoffs{
		Warn:     p.Float("warnHours"),
		Critical: p.Float("criticalHours"),
		Compare:  doctor.Below,
	}.Classify(windowHours)

	rec := "Oplog provides adequate history for resyncs."
	if status != doctor.StatusOK {
		rec = "Increase the oplog size or reduce write volume to avoid forced initial syncs."
	}

	return &doctor.Result{
		Status:  status,
		Summary: fmt.Sprintf("Oplog window is %.1f hours.", windowHours),
		Details: OplogDetails{
			Oldest:      start,
			Newest:      end,
			WindowHours: round1(windowHours),
		},
		Recommendation: rec,
	}
}
