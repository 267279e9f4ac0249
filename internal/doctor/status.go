// Package doctor is the diagnostic execution framework for mongo-toolkit.
//
// An [Issue] describes one independent health check: stable id, static
// metadata and a [Check] implementation. Issues are collected once at
// startup into an immutable [Registry]. A run creates a [CheckContext] bound
// to a connected deployment; the context memoizes the expensive
// administrative snapshots in its [Cache] so checks that need the same data
// source share a single round trip.
//
// Checks never return errors. Every failure below the check boundary is
// converted into a [Result] with [StatusError] by [Issue.Run], so a batch
// [Runner] always completes every issue it was given.
package doctor

import (
	"strings"

	"github.com/thoreinstein/mongo-toolkit/internal/errors"
)

// Status is the computed verdict of a single check invocation.
type Status string

const (
	// StatusOK indicates the check found nothing to act on.
	StatusOK Status = "ok"

	// StatusInfo indicates informational output or a legitimately absent feature.
	StatusInfo Status = "info"

	// StatusWarn indicates a condition worth attention.
	StatusWarn Status = "warn"

	// StatusCritical indicates a condition that threatens availability or safety.
	StatusCritical Status = "critical"

	// StatusError indicates the check could not reach a verdict.
	StatusError Status = "error"
)

// Statuses lists every valid status in ascending rank.
var Statuses = []Status{StatusOK, StatusInfo, StatusWarn, StatusCritical, StatusError}

// Valid reports whether s is one of the five defined statuses.
func (s Status) Valid() bool {
	return s.Rank() >= 0
}

// Rank orders statuses from least to most severe: ok < info < warn <
// critical < error. Invalid statuses rank -1.
func (s Status) Rank() int {
	switch s {
	case StatusOK:
		return 0
	case StatusInfo:
		return 1
	case StatusWarn:
		return 2
	case StatusCritical:
		return 3
	case StatusError:
		return 4
	default:
		return -1
	}
}

// AtLeast reports whether s ranks at or above other.
func (s Status) AtLeast(other Status) bool {
	return s.Rank() >= other.Rank()
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a case-insensitive status name into a Status.
func ParseStatus(name string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", errors.Newf("unknown status %q (expected one of ok, info, warn, critical, error)", name)
	}
	return s, nil
}

// Severity is the static importance label of an issue. It is metadata only
// and never derived from a run.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
	SeverityInfo   Severity = "info"
)

// Valid reports whether s is a known severity label.
func (s Severity) Valid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return true
	default:
		return false
	}
}
