package config

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/mongo-toolkit/internal/doctor"
	"github.com/thoreinstein/mongo-toolkit/internal/errors"
	"github.com/thoreinstein/mongo-toolkit/internal/paths"
	"github.com/thoreinstein/mongo-toolkit/pkg/fileutil"
)

// ErrUnsupportedFormat indicates an options file with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported options file format (use .yaml, .yml or .toml)")

// LoadOptionsFile reads a flat name-to-number mapping from a YAML or TOML
// file, chosen by extension. A top-level "options" table is also accepted so
// the options section of a config file can be reused as is.
func LoadOptionsFile(path string) (map[string]float64, error) {
	path, err := paths.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading options file %s", path)
	}

	raw := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parsing options file %s", path)
	}

	if nested, ok := raw["options"].(map[string]any); ok && len(raw) == 1 {
		raw = nested
	}

	out := make(map[string]float64, len(raw))
	for name, v := range raw {
		f, ok := toFloat(v)
		if !ok {
			return nil, errors.Newf("options file %s: %q must be a number, got %T", path, name, v)
		}
		out[name] = f
	}
	return out, nil
}

// ParseSet parses repeated name=value assignments from --set.
func ParseSet(assignments []string) (map[string]float64, error) {
	out := make(map[string]float64, len(assignments))
	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Newf("invalid --set %q (expected name=value)", a)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errors.Newf("invalid --set %q: value must be a finite number", a)
		}
		out[name] = f
	}
	return out, nil
}

// MergeOptions combines option layers; later layers override earlier ones.
// Names are canonicalized first, so a legacy spelling or a different case in
// a later layer still replaces the earlier value. Within one layer a
// canonical spelling beats a legacy one, and spellings of equal standing are
// applied in sorted order.
func MergeOptions(layers ...map[string]float64) map[string]float64 {
	out := make(map[string]float64)
	for _, layer := range layers {
		var legacy, canonical []string
		for _, k := range sortedKeys(layer) {
			if isLegacyName(k) {
				legacy = append(legacy, k)
			} else {
				canonical = append(canonical, k)
			}
		}
		for _, k := range append(legacy, canonical...) {
			out[doctor.CanonicalName(k)] = layer[k]
		}
	}
	return out
}

func isLegacyName(name string) bool {
	return doctor.CanonicalName(name) != strings.ToLower(strings.TrimSpace(name))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	default:
		return 0, false
	}
}
