// Package errors provides error handling conventions for the mongo-toolkit CLI.
//
// It re-exports the constructors and inspectors of github.com/cockroachdb/errors
// so that call sites import a single package, defines the error kinds that the
// connection layer attaches at the point of failure, and provides an ExitError
// type for CLI exit code handling.
//
// # Error Kinds
//
// Kinds are sentinel errors applied with [Mark]. Callers test for them with
// [Is] and never by inspecting message text:
//
//	if errors.Is(err, errors.ErrNotReplicaSet) {
//	    // the deployment is standalone, not broken
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (unknown issue id, bad flags, warnings found)
//   - ExitSystem (2): System-related error (deployment unreachable, critical findings)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion:
//
//	err := errors.NewUserError(errors.ErrUnknownIssue, "Run: mongo-toolkit list")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
