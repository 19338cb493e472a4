package pid

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Params carries the free-form analysis parameters attached to each
// pipeline file. Values are opaque and passed through unmodified.
type Params map[string]any

// Merge overlays other on top of p, other winning on key collisions.
// Neither input is modified.
func (p Params) Merge(other Params) Params {
	merged := make(Params, len(p)+len(other))
	for k, v := range p {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Report logs the current parameters sorted by key. Observational only,
// no effect on results.
func (p Params) Report() {
	if configuration.Verbosity < 1 {
		return
	}
	keys := maps.Keys(p)
	slices.Sort(keys)
	for _, k := range keys {
		logger.Info(fmt.Sprintf("%s: %v", k, p[k]), "params")
	}
}
