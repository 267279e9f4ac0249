package doctor

import (
	"github.com/thoreinstein/mongo-toolkit/internal/errors"
)

// Default recommendations used by [Failed].
const (
	// PrivilegesHint covers commands rejected for lack of privileges.
	PrivilegesHint = "Connect as a user with the clusterMonitor role (or equivalent) and retry."

	// CommandHint covers any other command the deployment rejected.
	CommandHint = "Confirm the deployment supports this command and has the feature it reads enabled, and that the user holds the clusterMonitor role."

	// DebugHint covers failures that are not a rejected command.
	DebugHint = "Re-run with -vv to see the underlying error."
)

// Result is the outcome of one check invocation.
type Result struct {
	// Status is the computed verdict.
	Status Status `json:"status" yaml:"status"`

	// Summary is a one-line human description of the outcome.
	Summary string `json:"summary" yaml:"summary"`

	// Details carries check-specific structured data. Its shape is
	// documented per check.
	Details any `json:"details,omitempty" yaml:"details,omitempty"`

	// Recommendation suggests a remediation, if any.
	Recommendation string `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
}

// ErrorDetails is the details payload of a result produced by [Failed].
type ErrorDetails struct {
	Message string `json:"message" yaml:"message"`
	Kind    string `json:"kind" yaml:"kind"`
}

// Failed builds a StatusError result for err. An empty recommendation is
// replaced by a default chosen from the error kind, so error results always
// carry one.
func Failed(summary string, err error, recommendation string) *Result {
	if recommendation == "" {
		recommendation = defaultRecommendation(err)
	}
	details := ErrorDetails{Kind: errors.Kind(err)}
	if err != nil {
		details.Message = err.Error()
	}
	return &Result{
		Status:         StatusError,
		Summary:        summary,
		Details:        details,
		Recommendation: recommendation,
	}
}

func defaultRecommendation(err error) string {
	switch {
	case errors.Is(err, errors.ErrUnauthorized):
		return PrivilegesHint
	case errors.Is(err, errors.ErrCommand):
		return CommandHint
	default:
		return DebugHint
	}
}
