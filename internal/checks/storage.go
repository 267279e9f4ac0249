package checks

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/thoreinstein/mongo-toolkit/internal/doctor"
)

func storageIssues() []*doctor.Issue {
	return []*doctor.Issue{
		{
			ID:          "storage:fragmentation",
			Category:    CategoryStorage,
			Title:       "Collection fragmentation",
			Severity:    doctor.SeverityMedium,
			Tags:        []string{"storage", "compression"},
			Description: "Compares logical data size with on-disk storage to highlight fragmentation.",
			Options: []doctor.Option{
				{Name: "warnRatio", Default: 0.25, Unit: "ratio", Usage: "fragmentation above which the check warns"},
				{Name: "criticalRatio", Default: 0.40, Unit: "ratio", Usage: "fragmentation above which the check is critical"},
			},
			Check: doctor.CheckFunc(fragmentation),
		},
		{
			ID:          "storage:largest-collections",
			Category:    CategoryStorage,
			Title:       "Largest collections",
			Severity:    doctor.SeverityInfo,
			Tags:        []string{"storage", "capacity"},
			Description: "Lists the heaviest collections by storage size inside the target database.",
			Options: []doctor.Option{
				{Name: "sample", Default: 25, Usage: "maximum collections to inspect"},
				{Name: "limit", Default: 5, Usage: "maximum collections to list"},
			},
			Check: doctor.CheckFunc(largestCollections),
		},
	}
}

// FragmentationDetails is the details payload of the fragmentation check.
type FragmentationDetails struct {
	DB            string  `json:"db" yaml:"db"`
	Collections   float64 `json:"collections" yaml:"collections"`
	Objects       float64 `json:"objects" yaml:"objects"`
	DataSize      float64 `json:"dataSize" yaml:"dataSize"`
	StorageSize   float64 `json:"storageSize" yaml:"storageSize"`
	IndexSize     float64 `json:"indexSize" yaml:"indexSize"`
	Fragmentation float64 `json:"fragmentation" yaml:"fragmentation"`
}

// Fragmentation is the share of allocated storage not holding logical data.
// It is zero when nothing is allocated.
func Fragmentation(dataSize, storageSize float64) float64 {
	if storageSize <= 0 {
		return 0
	}
	return (storageSize - dataSize) / storageSize
}

func fragmentation(ctx context.Context, cc *doctor.CheckContext, p doctor.Params) *doctor.Result {
	stats, err := cc.Cache().DBStats(ctx)
	if err != nil {
		return doctor.Failed("Unable to read dbStats.", err, "")
	}

	frag := Fragmentation(stats.DataSize, stats.StorageSize)
	status := doctor.Cutoffs{
		Warn:     p.Float("warnRatio"),
		Critical: p.Float("criticalRatio"),
		Compare:  doctor.Above,
	}.Classify(frag)

	rec := "No action required."
	if status != doctor.StatusOK {
		rec = "Run compact on the most bloated collections or re-sync via mongodump/mongorestore during maintenance."
	}

	return &doctor.Result{
		Status: status,
		Summary: fmt.Sprintf("Logical data %.1f MiB vs storage %.1f MiB (fragmentation %.1f%%).",
			stats.DataSize/mib, stats.StorageSize/mib, frag*100),
		Details: FragmentationDetails{
			DB:            stats.DB,
			Collections:   stats.Collections,
			Objects:       stats.Objects,
			DataSize:      stats.DataSize,
			StorageSize:   stats.StorageSize,
			IndexSize:     stats.IndexSize,
			Fragmentation: frag,
		},
		Recommendation: rec,
	}
}

// CollectionRow is one collection in the largest-collections details.
type CollectionRow struct {
	Collection string  `json:"collection" yaml:"collection"`
	StorageMB  float64 `json:"storageMB" yaml:"storageMB"`
	Docs       float64 `json:"docs" yaml:"docs"`
	AvgObjSize float64 `json:"avgObjSize" yaml:"avgObjSize"`

	storageBytes float64
}

type collStats struct {
	StorageSize float64 `bson:"storageSize"`
	Count       float64 `bson:"count"`
	AvgObjSize  float64 `bson:"avgObjSize"`
}

func largestCollections(ctx context.Context, cc *doctor.CheckContext, p doctor.Params) *doctor.Result {
	names, err := cc.Deployment().ListCollectionNames(ctx)
	if err != nil {
		return doctor.Failed("Unable to list collections.", err, "")
	}
	slices.Sort(names)

	sample := names[:min(len(names), max(p.Int("sample"), 0))]
	rows := make([]CollectionRow, 0, len(sample))
	for _, name := range sample {
		doc, err := cc.Deployment().Command(ctx, bson.D{{Key: "collStats", Value: name}, {Key: "scale", Value: 1}})
		if err != nil {
			cc.Logger().Debug("collStats failed", "collection", name, "error", err)
			continue
		}
		var cs collStats
		if err := doctor.Decode(doc, &cs); err != nil || cs.StorageSize <= 0 {
			continue
		}
		rows = append(rows, CollectionRow{
			Collection:   name,
			StorageMB:    round1(cs.StorageSize / mib),
			Docs:         cs.Count,
			AvgObjSize:   cs.AvgObjSize,
			storageBytes: cs.StorageSize,
		})
	}

	slices.SortStableFunc(rows, func(a, b CollectionRow) int {
		return cmp.Compare(b.storageBytes, a.storageBytes)
	})
	rows = rows[:min(len(rows), max(p.Int("limit"), 0))]

	return &doctor.Result{
		Status:         doctor.StatusInfo,
		Summary:        fmt.Sprintf("Analyzed %d collections (showing top %d).", len(sample), len(rows)),
		Details:        rows,
		Recommendation: "Keep an eye on fast-growing collections. Consider sharding or archiving cold data.",
	}
}
