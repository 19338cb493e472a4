package pid

import (
	"encoding/json"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// WeightSpec is one PID weight entry as found in a parameterization. It
// may be a scalar, a per-energy-bin vector, a per-cos-zenith-bin vector
// or a full matrix matching the map shape.
type WeightSpec struct {
	scalar *float64
	vector []float64
	matrix [][]float64
}

func ScalarWeight(v float64) WeightSpec {
	return WeightSpec{scalar: &v}
}

func VectorWeight(v []float64) WeightSpec {
	return WeightSpec{vector: v}
}

func MatrixWeight(rows [][]float64) WeightSpec {
	return WeightSpec{matrix: rows}
}

// UnmarshalJSON accepts a number, a 1-D array or a 2-D array.
func (w *WeightSpec) UnmarshalJSON(data []byte) error {
	var s float64
	if err := json.Unmarshal(data, &s); err == nil {
		*w = ScalarWeight(s)
		return nil
	}
	var v []float64
	if err := json.Unmarshal(data, &v); err == nil {
		*w = VectorWeight(v)
		return nil
	}
	var m [][]float64
	if err := json.Unmarshal(data, &m); err == nil {
		*w = MatrixWeight(m)
		return nil
	}
	return errors.New("weight must be a number, a 1-D array or a 2-D array")
}

// Broadcast expands the weight to a rows x cols matrix. The effective
// shape after broadcasting must equal the requested shape exactly; a
// vector whose length matches the energy axis is replicated across
// cos-zenith bins, one matching the cos-zenith axis across energy bins.
// When both axes have the same length the energy axis wins.
func (w WeightSpec) Broadcast(rows, cols int) (*mat.Dense, error) {
	out := mat.NewDense(rows, cols, nil)
	switch {
	case w.scalar != nil:
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				out.Set(i, j, *w.scalar)
			}
		}
	case w.vector != nil:
		switch len(w.vector) {
		case rows:
			for i := 0; i < rows; i++ {
				for j := 0; j < cols; j++ {
					out.Set(i, j, w.vector[i])
				}
			}
		case cols:
			for i := 0; i < rows; i++ {
				for j := 0; j < cols; j++ {
					out.Set(i, j, w.vector[j])
				}
			}
		default:
			return nil, &ErrShapeMismatch{
				Context:  "weights",
				WantRows: rows,
				WantCols: cols,
				Got:      fmt.Sprintf("vector of length %d", len(w.vector)),
			}
		}
	case w.matrix != nil:
		if len(w.matrix) != rows {
			return nil, &ErrShapeMismatch{
				Context:  "weights",
				WantRows: rows,
				WantCols: cols,
				Got:      fmt.Sprintf("%d rows", len(w.matrix)),
			}
		}
		for i, row := range w.matrix {
			if len(row) != cols {
				return nil, &ErrShapeMismatch{
					Context:  "weights",
					WantRows: rows,
					WantCols: cols,
					Got:      fmt.Sprintf("%d columns in row %d", len(row), i),
				}
			}
			for j, v := range row {
				out.Set(i, j, v)
			}
		}
	default:
		return nil, errors.New("empty weight")
	}
	return out, nil
}
