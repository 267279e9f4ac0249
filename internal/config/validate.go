package config

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/thoreinstein/mongo-toolkit/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates a config version this build does not understand.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidURI indicates a connection string with an unknown scheme.
	ErrInvalidURI = errors.New("uri must start with mongodb:// or mongodb+srv://")

	// ErrInvalidDatabase indicates a malformed database name.
	ErrInvalidDatabase = errors.New("invalid database name")

	// ErrInvalidTimeout indicates a non-positive server selection timeout.
	ErrInvalidTimeout = errors.New("server_selection_timeout must be positive")

	// ErrInvalidOption indicates an option value that is not a finite number.
	ErrInvalidOption = errors.New("option value must be a finite number")
)

// CurrentVersion is the only configuration version supported.
const CurrentVersion = 1

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != CurrentVersion {
		errs = append(errs, &FieldError{Field: "version", Value: fmt.Sprint(cfg.Version), Err: ErrUnsupportedVersion})
	}

	if cfg.URI != "" && !strings.HasPrefix(cfg.URI, "mongodb://") && !strings.HasPrefix(cfg.URI, "mongodb+srv://") {
		// The raw value may carry credentials; only the scheme is echoed.
		scheme, _, _ := strings.Cut(cfg.URI, "://")
		errs = append(errs, &FieldError{Field: "uri", Value: scheme, Err: ErrInvalidURI})
	}

	if cfg.Database == "" || strings.ContainsAny(cfg.Database, "/\\. \"$\x00") {
		errs = append(errs, &FieldError{Field: "database", Value: cfg.Database, Err: ErrInvalidDatabase})
	}

	if cfg.ServerSelectionTimeout <= 0 {
		errs = append(errs, &FieldError{Field: "server_selection_timeout", Value: cfg.ServerSelectionTimeout.String(), Err: ErrInvalidTimeout})
	}

	for _, name := range sortedKeys(cfg.Options) {
		if v := cfg.Options[name]; math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, &FieldError{Field: "options." + name, Value: fmt.Sprint(v), Err: ErrInvalidOption})
		}
	}

	return errs
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return e.Field + ": " + e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
