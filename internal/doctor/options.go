package doctor

import (
	"maps"
	"math"
	"slices"
	"strings"
)

// GenericThreshold is the option name consulted by an issue's generic option
// when the caller does not set that option by name.
const GenericThreshold = "threshold"

// legacyNames maps historical option spellings to their canonical names.
var legacyNames = map[string]string{
	"slow-ms":           "slowms",
	"slow_ms":           "slowms",
	"threshold-seconds": "thresholdseconds",
	"threshold_seconds": "thresholdseconds",
}

// CanonicalName returns the lower-cased canonical form of an option name,
// folding legacy spellings.
func CanonicalName(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := legacyNames[key]; ok {
		return canonical
	}
	return key
}

// Options holds the run-scoped, caller-supplied option values with legacy
// spellings already folded into canonical names. Names are matched
// case-insensitively, so values read through case-folding config loaders
// still apply. The zero value is empty.
type Options struct {
	values map[string]float64
}

// NewOptions canonicalizes raw. A canonical name wins over any of its legacy
// spellings; NaN and infinite values are dropped.
func NewOptions(raw map[string]float64) Options {
	names := slices.Sorted(maps.Keys(raw))
	values := make(map[string]float64, len(raw))
	for _, name := range names {
		key := strings.ToLower(name)
		if _, legacy := legacyNames[key]; legacy || !finite(raw[name]) {
			continue
		}
		values[key] = raw[name]
	}
	for _, name := range names {
		canonical, ok := legacyNames[strings.ToLower(name)]
		if !ok || !finite(raw[name]) {
			continue
		}
		if _, set := values[canonical]; !set {
			values[canonical] = raw[name]
		}
	}
	return Options{values: values}
}

// Lookup returns the value supplied for name.
func (o Options) Lookup(name string) (float64, bool) {
	v, ok := o.values[strings.ToLower(name)]
	return v, ok
}

// Names returns the supplied option names, lower-cased and sorted.
func (o Options) Names() []string {
	return slices.Sorted(maps.Keys(o.values))
}

// Resolve computes the effective parameters for issue. For each declared
// option the explicitly named value wins, then the generic threshold when
// the option is generic, then the declared default. Names the issue does not
// declare are ignored. Params are keyed by the declared option name.
func (o Options) Resolve(issue *Issue) Params {
	p := make(Params, len(issue.Options))
	for _, opt := range issue.Options {
		if v, ok := o.Lookup(opt.Name); ok {
			p[opt.Name] = v
			continue
		}
		if v, ok := o.Lookup(GenericThreshold); ok && opt.Generic {
			p[opt.Name] = v
			continue
		}
		p[opt.Name] = opt.Default
	}
	return p
}

// Params are the resolved option values handed to a check.
type Params map[string]float64

// Float returns the value of name, or zero when it was not resolved.
func (p Params) Float(name string) float64 {
	return p[name]
}

// Int returns the value of name truncated to an int.
func (p Params) Int(name string) int {
	return int(p[name])
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
