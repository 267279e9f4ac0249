package checks

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/thoreinstein/mongo-toolkit/internal/doctor"
)

// DefaultSlowMs is the default latency above which a profiled operation is
// reported.
const DefaultSlowMs = 500

func performanceIssues() []*doctor.Issue {
	return []*doctor.Issue{
		{
			ID:          "performance:slow-queries",
			Category:    CategoryPerformance,
			Title:       "Slow query hotspots",
			Severity:    doctor.SeverityHigh,
			Tags:        []string{"profiler", "query", "plan"},
			Description: "Surface operations recorded in system.profile that exceed a configurable latency.",
			Options: []doctor.Option{
				{Name: "slowMs", Default: DefaultSlowMs, Unit: "ms", Usage: "minimum operation latency to report", Generic: true},
				{Name: "limit", Default: 5, Usage: "maximum operations to list"},
			},
			Check: doctor.CheckFunc(slowQueries),
		},
		{
			ID:          "performance:wiredtiger-cache",
			Category:    CategoryPerformance,
			Title:       "WiredTiger cache pressure",
			Severity:    doctor.SeverityMedium,
			Tags:        []string{"wiredtiger", "memory"},
			Description: "Checks if the WiredTiger cache is consistently above safe utilization levels.",
			Options: append(ratioOptions(0.85, 0.95), doctor.Option{
				Name: "dirtyCriticalRatio", Default: 0.40, Unit: "ratio", Usage: "dirty cache ratio at which the check is critical",
			}),
			Check: doctor.CheckFunc(wiredTigerCache),
		},
	}
}

// SlowOp is one row of the slow-queries details.
type SlowOp struct {
	NS      string  `json:"ns" yaml:"ns"`
	Millis  float64 `json:"millis" yaml:"millis"`
	Op      string  `json:"op" yaml:"op"`
	Command string  `json:"command,omitempty" yaml:"command,omitempty"`
}

type profileRow struct {
	NS      string        `bson:"ns"`
	Millis  float64       `bson:"millis"`
	Op      string        `bson:"op"`
	Command bson.RawValue `bson:"command"`
}

type profileLevel struct {
	Was    int     `bson:"was" json:"was" yaml:"was"`
	SlowMs float64 `bson:"slowms" json:"slowms" yaml:"slowms"`
}

func slowQueries(ctx context.Context, cc *doctor.CheckContext, p doctor.Params) *doctor.Result {
	slowMs := p.Float("slowMs")
	dep := cc.Deployment()

	doc, err := dep.Command(ctx, bson.D{{Key: "profile", Value: -1}})
	if err != nil {
		return doctor.Failed("Unable to inspect profiler configuration.", err,
			"Use a user with sufficient privileges to run db.runCommand({ profile: -1 }).")
	}
	var level profileLevel
	if err := doctor.Decode(doc, &level); err != nil {
		return doctor.Failed("Unable to inspect profiler configuration.", err, "")
	}
	if level.Was == 0 {
		return &doctor.Result{
			Status:         doctor.StatusWarn,
			Summary:        "The profiler is disabled, so slow query samples are unavailable.",
			Details:        level,
			Recommendation: "Enable profiling temporarily or use Performance Advisor to capture slow operations.",
		}
	}

	pipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "millis", Value: bson.D{{Key: "$gte", Value: slowMs}}}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "millis", Value: -1}}}},
		bson.D{{Key: "$limit", Value: max(p.Int("limit"), 1)}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "ns", Value: 1},
			{Key: "millis", Value: 1},
			{Key: "op", Value: 1},
			{Key: "command", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$command.filter", "$command.query"}}}},
		}}},
	}
	rows, err := dep.Aggregate(ctx, "system.profile", pipeline)
	if err != nil {
		return doctor.Failed("Profiler collection is not accessible.", err,
			"Ensure profiling is enabled and the user can read system.profile.")
	}

	if len(rows) == 0 {
		return &doctor.Result{
			Status:  doctor.StatusOK,
			Summary: fmt.Sprintf("No operations slower than %g ms were present in system.profile.", slowMs),
		}
	}

	ops := make([]SlowOp, 0, len(rows))
	for _, row := range rows {
		var pr profileRow
		if err := doctor.Decode(row, &pr); err != nil {
			cc.Logger().Debug("skipping undecodable profile entry", "error", err)
			continue
		}
		op := SlowOp{NS: pr.NS, Millis: pr.Millis, Op: pr.Op}
		if pr.Command.Type == bson.TypeEmbeddedDocument {
			op.Command = pr.Command.String()
		}
		ops = append(ops, op)
	}

	return &doctor.Result{
		Status:         doctor.StatusWarn,
		Summary:        fmt.Sprintf("%d operation(s) slower than %g ms detected.", len(ops), slowMs),
		Details:        ops,
		Recommendation: "Review the listed namespaces and add or tune indexes where necessary.",
	}
}

// CacheDetails is the details payload of the WiredTiger cache check.
type CacheDetails struct {
	UsedBytes  float64 `json:"usedBytes" yaml:"usedBytes"`
	DirtyBytes float64 `json:"dirtyBytes" yaml:"dirtyBytes"`
	MaxBytes   float64 `json:"maxBytes" yaml:"maxBytes"`
}

func wiredTigerCache(ctx context.Context, cc *doctor.CheckContext, p doctor.Params) *doctor.Result {
	ss, err := cc.Cache().ServerStatus(ctx)
	if err != nil {
		return doctor.Failed("Unable to read serverStatus.", err, "")
	}

	if ss.WiredTiger == nil || ss.WiredTiger.Cache == nil || ss.WiredTiger.Cache.MaxBytes <= 0 {
		return &doctor.Result{
			Status:  doctor.StatusInfo,
			Summary: "WiredTiger cache statistics are unavailable on this deployment.",
			Details: map[string]any{"storageEngine": ss.StorageEngine},
		}
	}

	c := ss.WiredTiger.Cache
	utilization := c.BytesInCache / c.MaxBytes
	dirtyRatio := c.DirtyBytes / c.MaxBytes

	status := doctor.Cutoffs{
		Warn:     p.Float("warnRatio"),
		Critical: p.Float("criticalRatio"),
		Compare:  doctor.AtLeast,
	}.Classify(utilization)
	if dirtyRatio >= p.Float("dirtyCriticalRatio") {
		status = doctor.StatusCritical
	}

	rec := fmt.Sprintf("No action required. Keep utilization under %.0f%% for predictable performance.", p.Float("warnRatio")*100)
	if status != doctor.StatusOK {
		rec = "Review working set size and consider increasing cache memory or reducing page cache usage."
	}

	return &doctor.Result{
		Status:  status,
		Summary: fmt.Sprintf("Cache utilization %.1f%% (dirty %.1f%%).", utilization*100, dirtyRatio*100),
		Details: CacheDetails{
			UsedBytes:  c.BytesInCache,
			DirtyBytes: c.DirtyBytes,
			MaxBytes:   c.MaxBytes,
		},
		Recommendation: rec,
	}
}
