// Package checks contains the built-in MongoDB health checks and the
// registry that catalogs them.
package checks

import (
	"math"
	"sync"

	"github.com/thoreinstein/mongo-toolkit/internal/doctor"
)

// Category ids.
const (
	CategoryPerformance = "performance"
	CategoryReplication = "replication"
	CategoryStorage     = "storage"
	CategoryOperations  = "operations"
	CategorySecurity    = "security"
)

const mib = 1024 * 1024

// Default returns the frozen registry of built-in checks. It is built on
// first use and shared afterwards.
var Default = sync.OnceValue(func() *doctor.Registry {
	r := doctor.NewRegistry()
	if err := Register(r); err != nil {
		panic(err)
	}
	r.Freeze()
	return r
})

// Register adds the built-in categories and issues to r.
func Register(r *doctor.Registry) error {
	categories := []struct {
		id, title string
		issues    []*doctor.Issue
	}{
		{CategoryPerformance, "Performance & Querying", performanceIssues()},
		{CategoryReplication, "Replication & Resilience", replicationIssues()},
		{CategoryStorage, "Storage & Capacity", storageIssues()},
		{CategoryOperations, "Operations & Runtime", operationsIssues()},
		{CategorySecurity, "Security & Access Control", securityIssues()},
	}

	for _, c := range categories {
		if err := r.AddCategory(c.id, c.title); err != nil {
			return err
		}
		for _, issue := range c.issues {
			if err := r.Register(issue); err != nil {
				return err
			}
		}
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func ratioOptions(warn, critical float64) []doctor.Option {
	return []doctor.Option{
		{Name: "warnRatio", Default: warn, Unit: "ratio", Usage: "utilization at which the check warns"},
		{Name: "criticalRatio", Default: critical, Unit: "ratio", Usage: "utilization at which the check is critical"},
	}
}
