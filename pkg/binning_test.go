package pid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinningValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		b := Binning{Ebins: []float64{1, 10, 100}, Czbins: []float64{-1, 0, 1}}
		assert.NoError(t, b.Validate())
	})

	t.Run("too few edges", func(t *testing.T) {
		t.Parallel()
		b := Binning{Ebins: []float64{1}, Czbins: []float64{-1, 0, 1}}
		err := b.Validate()
		require.Error(t, err)
		var malformed *ErrMalformedInput
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "ebins", malformed.Field)
	})

	t.Run("not strictly increasing", func(t *testing.T) {
		t.Parallel()
		b := Binning{Ebins: []float64{1, 10, 100}, Czbins: []float64{-1, 0, 0}}
		err := b.Validate()
		require.Error(t, err)
		var malformed *ErrMalformedInput
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "czbins", malformed.Field)
	})
}

func TestBinningEqual(t *testing.T) {
	t.Parallel()
	ref := Binning{Ebins: []float64{1, 10, 100}, Czbins: []float64{-1, 0, 1}}

	t.Run("identical", func(t *testing.T) {
		t.Parallel()
		other := Binning{Ebins: []float64{1, 10, 100}, Czbins: []float64{-1, 0, 1}}
		assert.True(t, ref.Equal(other))
	})

	t.Run("within tolerance", func(t *testing.T) {
		t.Parallel()
		other := Binning{Ebins: []float64{1, 10 + 1e-12, 100}, Czbins: []float64{-1, 0, 1}}
		assert.True(t, ref.Equal(other))
	})

	t.Run("different edges", func(t *testing.T) {
		t.Parallel()
		other := Binning{Ebins: []float64{1, 20, 100}, Czbins: []float64{-1, 0, 1}}
		assert.False(t, ref.Equal(other))
	})

	t.Run("different lengths", func(t *testing.T) {
		t.Parallel()
		other := Binning{Ebins: []float64{1, 10, 100, 1000}, Czbins: []float64{-1, 0, 1}}
		assert.False(t, ref.Equal(other))
	})
}

func TestBinningShapeAndCenters(t *testing.T) {
	t.Parallel()
	b := Binning{Ebins: []float64{1, 10, 100}, Czbins: []float64{-1, 0, 1}}

	rows, cols := b.Shape()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)

	ecenters := b.EbinCenters()
	require.Len(t, ecenters, 2)
	assert.InDelta(t, 3.1622776601683795, ecenters[0], 1e-12)
	assert.InDelta(t, 31.622776601683793, ecenters[1], 1e-12)

	czcenters := b.CzbinCenters()
	require.Len(t, czcenters, 2)
	assert.InDelta(t, -0.5, czcenters[0], 1e-12)
	assert.InDelta(t, 0.5, czcenters[1], 1e-12)
}

func TestCheckBinning(t *testing.T) {
	t.Parallel()

	t.Run("consistent set", func(t *testing.T) {
		t.Parallel()
		set := uniformMapSet(testBinning(), 1, nil)
		binning, err := CheckBinning(set)
		require.NoError(t, err)
		assert.True(t, binning.Equal(testBinning()))
	})

	t.Run("missing flavour", func(t *testing.T) {
		t.Parallel()
		set := uniformMapSet(testBinning(), 1, nil)
		delete(set.Maps, NutauCC)
		_, err := CheckBinning(set)
		var missing *ErrMissingCategory
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, NutauCC, missing.Flavor)
	})

	t.Run("mismatched flavour", func(t *testing.T) {
		t.Parallel()
		set := uniformMapSet(testBinning(), 1, nil)
		other := Binning{Ebins: []float64{1, 5, 100}, Czbins: []float64{-1, 0, 1}}
		set.Maps[NumuCC] = NewEventRateMap(other)
		_, err := CheckBinning(set)
		var mismatch *ErrBinningMismatch
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "numu_cc", mismatch.Where)
		assert.Equal(t, "ebins", mismatch.Axis)
	})
}

func TestFlavorRoundTrip(t *testing.T) {
	t.Parallel()
	for _, flav := range AllFlavors() {
		parsed, err := ParseFlavor(flav.String())
		require.NoError(t, err)
		assert.Equal(t, flav, parsed)
	}

	_, err := ParseFlavor("nuall_cc")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Flavor(42).String())
}
