package pid

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// BinningTolerance is the maximum per-edge deviation for two binnings to
// be considered equal.
const BinningTolerance = 1e-8

// Binning holds the bin-edge sequences of a 2-D event-rate histogram:
// energy on the first axis, cos(zenith) on the second.
type Binning struct {
	Ebins  []float64 `json:"ebins"`
	Czbins []float64 `json:"czbins"`
}

// Validate checks that both axes have at least two strictly increasing
// edges.
func (b Binning) Validate() error {
	if err := checkEdges(b.Ebins); err != nil {
		return &ErrMalformedInput{Field: "ebins", Err: err}
	}
	if err := checkEdges(b.Czbins); err != nil {
		return &ErrMalformedInput{Field: "czbins", Err: err}
	}
	return nil
}

func checkEdges(edges []float64) error {
	if len(edges) < 2 {
		return errors.New("need at least two bin edges")
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return errors.New("bin edges must be strictly increasing")
		}
	}
	return nil
}

// Equal reports whether both edge sequences match element-wise within
// BinningTolerance.
func (b Binning) Equal(other Binning) bool {
	return equalEdges(b.Ebins, other.Ebins) && equalEdges(b.Czbins, other.Czbins)
}

func equalEdges(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	return floats.EqualApprox(a, b, BinningTolerance)
}

// Shape returns the map dimensions implied by the bin edges.
func (b Binning) Shape() (rows, cols int) {
	return len(b.Ebins) - 1, len(b.Czbins) - 1
}

// EbinCenters returns the geometric bin centers. The energy axis is
// binned logarithmically.
func (b Binning) EbinCenters() []float64 {
	centers := make([]float64, len(b.Ebins)-1)
	for i := range centers {
		centers[i] = math.Sqrt(b.Ebins[i] * b.Ebins[i+1])
	}
	return centers
}

// CzbinCenters returns the arithmetic bin centers.
func (b Binning) CzbinCenters() []float64 {
	centers := make([]float64, len(b.Czbins)-1)
	for i := range centers {
		centers[i] = 0.5 * (b.Czbins[i] + b.Czbins[i+1])
	}
	return centers
}

// CheckBinning confirms that every flavour map in the set is present and
// shares one binning, and returns that binning. This is the one
// authoritative consistency check; callers should not duplicate it.
func CheckBinning(set FlavorMapSet) (Binning, error) {
	var ref Binning
	first := true
	for _, flav := range AllFlavors() {
		m, ok := set.Maps[flav]
		if !ok {
			return Binning{}, &ErrMissingCategory{Flavor: flav, Source: "reco event maps"}
		}
		if first {
			ref = m.Binning
			first = false
			continue
		}
		if !m.Binning.Equal(ref) {
			axis, want, got := "czbins", ref.Czbins, m.Binning.Czbins
			if !equalEdges(m.Binning.Ebins, ref.Ebins) {
				axis, want, got = "ebins", ref.Ebins, m.Binning.Ebins
			}
			return Binning{}, &ErrBinningMismatch{Where: flav.String(), Axis: axis, Want: want, Got: got}
		}
	}
	return ref, nil
}
