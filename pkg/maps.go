package pid

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// EventRateMap is a 2-D event-rate histogram over (energy, cos-zenith)
// bins. Operations allocate new maps; receivers are never mutated.
type EventRateMap struct {
	Binning Binning
	Map     *mat.Dense
}

// NewEventRateMap returns a zero-filled map with the binning's shape.
func NewEventRateMap(binning Binning) EventRateMap {
	rows, cols := binning.Shape()
	return EventRateMap{Binning: binning, Map: mat.NewDense(rows, cols, nil)}
}

// EventRateMapFromRows builds a map from row-major nested slices,
// checking the shape against the binning.
func EventRateMapFromRows(binning Binning, rows [][]float64) (EventRateMap, error) {
	nr, nc := binning.Shape()
	if len(rows) != nr {
		return EventRateMap{}, &ErrShapeMismatch{
			Context:  "event-rate map",
			WantRows: nr,
			WantCols: nc,
			Got:      fmt.Sprintf("%d rows", len(rows)),
		}
	}
	data := make([]float64, 0, nr*nc)
	for i, row := range rows {
		if len(row) != nc {
			return EventRateMap{}, &ErrShapeMismatch{
				Context:  "event-rate map",
				WantRows: nr,
				WantCols: nc,
				Got:      fmt.Sprintf("%d columns in row %d", len(row), i),
			}
		}
		data = append(data, row...)
	}
	return EventRateMap{Binning: binning, Map: mat.NewDense(nr, nc, data)}, nil
}

// Rows renders the map as nested row-major slices for serialization.
func (m EventRateMap) Rows() [][]float64 {
	nr, nc := m.Map.Dims()
	rows := make([][]float64, nr)
	for i := range rows {
		rows[i] = make([]float64, nc)
		copy(rows[i], m.Map.RawRowView(i))
	}
	return rows
}

// Total returns the summed event rate over all bins.
func (m EventRateMap) Total() float64 {
	return mat.Sum(m.Map)
}

// Scale returns a new map with every bin multiplied by k.
func (m EventRateMap) Scale(k float64) EventRateMap {
	out := NewEventRateMap(m.Binning)
	out.Map.Scale(k, m.Map)
	return out
}
