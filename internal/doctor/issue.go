package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/thoreinstein/mongo-toolkit/internal/errors"
)

// Check is the contract every diagnostic implements.
//
// Run inspects the deployment reachable through cc and classifies what it
// finds. Implementations must not retry, must not panic, and must convert
// every failure into a Result with StatusError instead of returning it.
type Check interface {
	Run(ctx context.Context, cc *CheckContext, p Params) *Result
}

// CheckFunc adapts an ordinary function to the Check interface.
type CheckFunc func(ctx context.Context, cc *CheckContext, p Params) *Result

// Run calls f(ctx, cc, p).
func (f CheckFunc) Run(ctx context.Context, cc *CheckContext, p Params) *Result {
	return f(ctx, cc, p)
}

// Option declares a numeric run-scoped option an issue understands.
type Option struct {
	// Name is the canonical option name, e.g. "slowMs".
	Name string `json:"name" yaml:"name"`

	// Default is used when the caller supplies no value.
	Default float64 `json:"default" yaml:"default"`

	// Unit is a display hint such as "ms" or "ratio".
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty"`

	// Usage is a one-line description.
	Usage string `json:"usage,omitempty" yaml:"usage,omitempty"`

	// Generic marks the option that receives the generic "threshold" value
	// when the caller does not set Name explicitly.
	Generic bool `json:"generic,omitempty" yaml:"generic,omitempty"`
}

// Issue is an immutable check descriptor.
type Issue struct {
	ID          string   `json:"id" yaml:"id"`
	Category    string   `json:"category" yaml:"category"`
	Title       string   `json:"title" yaml:"title"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Description string   `json:"description" yaml:"description"`
	Options     []Option `json:"options,omitempty" yaml:"options,omitempty"`
	Check       Check    `json:"-" yaml:"-"`
}

// Option returns the declared option called name.
func (i *Issue) Option(name string) (Option, bool) {
	for _, o := range i.Options {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

// Run executes the issue's check against cc. It is the check boundary: a
// panic, a nil result or an invalid status are all reported as StatusError.
// Run never returns nil.
func (i *Issue) Run(ctx context.Context, cc *CheckContext) (res *Result) {
	logger := cc.Logger().With("issue", i.ID)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("check panicked", "panic", fmt.Sprint(r))
			res = Failed("The check failed unexpectedly.", errors.Newf("panic: %v", r), "")
		}
		logger.Debug("check finished", "status", res.Status, "elapsed", time.Since(start))
	}()

	if i.Check == nil {
		return Failed("The check has no implementation.", errors.Mark(errors.Newf("issue %s has no check", i.ID), errors.ErrConfig), "")
	}

	params := cc.Options().Resolve(i)
	logger.Debug("check started", "params", params)

	res = i.Check.Run(ctx, cc, params)
	switch {
	case res == nil:
		res = Failed("The check returned no result.", errors.New("nil result"), "")
	case !res.Status.Valid():
		res = Failed("The check returned an invalid status.", errors.Newf("invalid status %q", res.Status), "")
	}
	return res
}
