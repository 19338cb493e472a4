package pid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBinning() Binning {
	return Binning{Ebins: []float64{1, 10, 100}, Czbins: []float64{-1, 0, 1}}
}

// uniformMapSet builds a full flavour set with every bin set to value.
func uniformMapSet(binning Binning, value float64, params Params) FlavorMapSet {
	set := FlavorMapSet{Maps: make(map[Flavor]EventRateMap), Params: params}
	rows, cols := binning.Shape()
	for _, flav := range AllFlavors() {
		m := NewEventRateMap(binning)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				m.Map.Set(i, j, value)
			}
		}
		set.Maps[flav] = m
	}
	return set
}

// scalarTable builds a PID table with the same scalar weights for every
// flavour.
func scalarTable(trck, cscd float64, params Params) PIDTable {
	table := PIDTable{Weights: make(map[Flavor]ChannelWeights), Params: params}
	for _, flav := range AllFlavors() {
		table.Weights[flav] = ChannelWeights{
			Trck: ScalarWeight(trck),
			Cscd: ScalarWeight(cscd),
		}
	}
	return table
}

func TestGetPIDMapsScenario(t *testing.T) {
	t.Parallel()

	// Four all-ones 2x2 maps, 0.7/0.3 scalar weights: every trck cell is
	// 4*0.7, every cscd cell 4*0.3.
	set := uniformMapSet(testBinning(), 1, nil)
	service, err := NewPIDService(scalarTable(0.7, 0.3, nil), testBinning())
	require.NoError(t, err)

	classified, err := GetPIDMaps(set, service)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, 2.8, classified.Trck.Map.At(i, j), 1e-12)
			assert.InDelta(t, 1.2, classified.Cscd.Map.At(i, j), 1e-12)
		}
	}

	// Binning preserved element-wise
	assert.Equal(t, testBinning().Ebins, classified.Trck.Binning.Ebins)
	assert.Equal(t, testBinning().Czbins, classified.Trck.Binning.Czbins)
	assert.Equal(t, testBinning().Ebins, classified.Cscd.Binning.Ebins)
	assert.Equal(t, testBinning().Czbins, classified.Cscd.Binning.Czbins)
}

func TestGetPIDMapsZeroInput(t *testing.T) {
	t.Parallel()

	set := uniformMapSet(testBinning(), 0, nil)
	service, err := NewPIDService(scalarTable(0.7, 0.3, nil), testBinning())
	require.NoError(t, err)

	classified, err := GetPIDMaps(set, service)
	require.NoError(t, err)
	assert.Zero(t, classified.Trck.Total())
	assert.Zero(t, classified.Cscd.Total())
}

func TestGetPIDMapsLinearity(t *testing.T) {
	t.Parallel()

	binning := testBinning()
	base := FlavorMapSet{Maps: make(map[Flavor]EventRateMap), Params: nil}
	scaled := FlavorMapSet{Maps: make(map[Flavor]EventRateMap), Params: nil}
	const k = 2.5
	values := [][]float64{{1.5, 0.25}, {3, 0.75}}
	for _, flav := range AllFlavors() {
		m, err := EventRateMapFromRows(binning, values)
		require.NoError(t, err)
		base.Maps[flav] = m
		scaled.Maps[flav] = m.Scale(k)
	}

	service, err := NewPIDService(scalarTable(0.6, 0.5, nil), binning)
	require.NoError(t, err)

	classifiedBase, err := GetPIDMaps(base, service)
	require.NoError(t, err)
	classifiedScaled, err := GetPIDMaps(scaled, service)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, k*classifiedBase.Trck.Map.At(i, j), classifiedScaled.Trck.Map.At(i, j), 1e-12)
			assert.InDelta(t, k*classifiedBase.Cscd.Map.At(i, j), classifiedScaled.Cscd.Map.At(i, j), 1e-12)
		}
	}
}

func TestGetPIDMapsConservation(t *testing.T) {
	t.Parallel()

	binning := testBinning()
	set := FlavorMapSet{Maps: make(map[Flavor]EventRateMap)}
	table := PIDTable{Weights: make(map[Flavor]ChannelWeights)}
	weights := map[Flavor][2]float64{
		NueCC:   {0.1, 0.8},
		NumuCC:  {0.9, 0.2},
		NutauCC: {0.45, 0.55},
		NuallNC: {0.3, 1.1}, // not normalized on purpose
	}
	values := [][]float64{{2, 7}, {0.5, 4}}
	expected := 0.0
	for _, flav := range AllFlavors() {
		m, err := EventRateMapFromRows(binning, values)
		require.NoError(t, err)
		set.Maps[flav] = m
		w := weights[flav]
		table.Weights[flav] = ChannelWeights{Trck: ScalarWeight(w[0]), Cscd: ScalarWeight(w[1])}
		expected += m.Total() * (w[0] + w[1])
	}

	service, err := NewPIDService(table, binning)
	require.NoError(t, err)
	classified, err := GetPIDMaps(set, service)
	require.NoError(t, err)

	assert.InDelta(t, expected, classified.Trck.Total()+classified.Cscd.Total(), 1e-9)
}

func TestGetPIDMapsInputsUntouched(t *testing.T) {
	t.Parallel()

	set := uniformMapSet(testBinning(), 3, Params{"a": 1})
	service, err := NewPIDService(scalarTable(0.7, 0.3, Params{"b": 2}), testBinning())
	require.NoError(t, err)

	_, err = GetPIDMaps(set, service)
	require.NoError(t, err)

	for _, flav := range AllFlavors() {
		assert.InDelta(t, 12.0, set.Maps[flav].Total(), 1e-12)
	}
	assert.Equal(t, Params{"a": 1}, set.Params)
	assert.Equal(t, Params{"b": 2}, service.Params)
}

func TestGetPIDMapsBinningMismatch(t *testing.T) {
	t.Parallel()

	t.Run("between flavours", func(t *testing.T) {
		t.Parallel()
		set := uniformMapSet(testBinning(), 1, nil)
		other := Binning{Ebins: []float64{1, 10, 100}, Czbins: []float64{-1, -0.5, 1}}
		set.Maps[NuallNC] = NewEventRateMap(other)

		service, err := NewPIDService(scalarTable(0.7, 0.3, nil), testBinning())
		require.NoError(t, err)

		_, err = GetPIDMaps(set, service)
		var mismatch *ErrBinningMismatch
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "nuall_nc", mismatch.Where)
		assert.Equal(t, "czbins", mismatch.Axis)
	})

	t.Run("against PID table", func(t *testing.T) {
		t.Parallel()
		set := uniformMapSet(testBinning(), 1, nil)
		other := Binning{Ebins: []float64{1, 20, 100}, Czbins: []float64{-1, 0, 1}}
		service, err := NewPIDService(scalarTable(0.7, 0.3, nil), other)
		require.NoError(t, err)

		_, err = GetPIDMaps(set, service)
		var mismatch *ErrBinningMismatch
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "PID table", mismatch.Where)
	})
}

func TestNewPIDServiceMissingCategory(t *testing.T) {
	t.Parallel()

	table := scalarTable(0.7, 0.3, nil)
	delete(table.Weights, NuallNC)
	_, err := NewPIDService(table, testBinning())
	var missing *ErrMissingCategory
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, NuallNC, missing.Flavor)
	assert.Equal(t, "PID table", missing.Source)
}

func TestGetPIDMapsPerBinWeights(t *testing.T) {
	t.Parallel()

	// One flavour with a full per-bin weight matrix, the rest zero: the
	// output is the element-wise product.
	binning := testBinning()
	set := uniformMapSet(binning, 0, nil)
	m, err := EventRateMapFromRows(binning, [][]float64{{2, 3}, {4, 5}})
	require.NoError(t, err)
	set.Maps[NumuCC] = m

	table := scalarTable(0, 0, nil)
	table.Weights[NumuCC] = ChannelWeights{
		Trck: MatrixWeight([][]float64{{0.9, 0.8}, {0.7, 0.6}}),
		Cscd: MatrixWeight([][]float64{{0.1, 0.2}, {0.3, 0.4}}),
	}

	service, err := NewPIDService(table, binning)
	require.NoError(t, err)
	classified, err := GetPIDMaps(set, service)
	require.NoError(t, err)

	assert.InDelta(t, 1.8, classified.Trck.Map.At(0, 0), 1e-12)
	assert.InDelta(t, 2.4, classified.Trck.Map.At(0, 1), 1e-12)
	assert.InDelta(t, 2.8, classified.Trck.Map.At(1, 0), 1e-12)
	assert.InDelta(t, 3.0, classified.Trck.Map.At(1, 1), 1e-12)
	assert.InDelta(t, 0.2, classified.Cscd.Map.At(0, 0), 1e-12)
	assert.InDelta(t, 2.0, classified.Cscd.Map.At(1, 1), 1e-12)
}
