package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (network, unreachable deployment, etc.).
	ExitSystem = 2
)

// Error kinds. The connection layer marks driver errors with one of these so
// that checks and commands can branch on the kind of failure.
var (
	// ErrConnection indicates the administrative session could not be
	// established or authenticated.
	ErrConnection = crdb.New("deployment unreachable")

	// ErrUnauthorized indicates the deployment rejected a command for lack of privileges.
	ErrUnauthorized = crdb.New("insufficient privileges")

	// ErrCommand indicates the deployment rejected an administrative command.
	ErrCommand = crdb.New("command failed")

	// ErrNotReplicaSet indicates the deployment is not running as a replica set member.
	ErrNotReplicaSet = crdb.New("not a replica set")

	// ErrConfig indicates invalid static configuration, such as a duplicate issue id.
	ErrConfig = crdb.New("invalid configuration")
)

// Sentinel errors for common failure conditions.
var (
	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = crdb.New("resource not found")

	// ErrUnknownIssue indicates an issue id that is not registered.
	ErrUnknownIssue = crdb.New("unknown issue id")

	// ErrMissingURI indicates no connection string was supplied.
	ErrMissingURI = crdb.New("a MongoDB connection string is required")
)

// Re-exported from github.com/cockroachdb/errors.
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithMessage  = crdb.WithMessage
	Mark         = crdb.Mark
	Is           = crdb.Is
	Join         = crdb.Join
	IsAny        = crdb.IsAny
	As           = crdb.As
	UnwrapAll    = crdb.UnwrapAll
	WithHint     = crdb.WithHint
	FlattenHints = crdb.FlattenHints
)

// Kind returns the name of the first error kind err is marked with, or
// "unknown" when it carries none.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case crdb.Is(err, ErrConnection):
		return "connection"
	case crdb.Is(err, ErrUnauthorized):
		return "unauthorized"
	case crdb.Is(err, ErrNotReplicaSet):
		return "not-replica-set"
	case crdb.Is(err, ErrCommand):
		return "command"
	case crdb.Is(err, ErrConfig):
		return "config"
	default:
		return "unknown"
	}
}

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: mongo-toolkit config",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code carried by err. Errors without an ExitError
// in their chain map to ExitUser; nil maps to ExitSuccess.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUser
}
