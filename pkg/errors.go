package pid

import "fmt"

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

// ErrBinningMismatch represents a disagreement on bin edges between two
// maps that must share one binning.
type ErrBinningMismatch struct {
	Where string
	Axis  string
	Want  []float64
	Got   []float64
}

func (e *ErrBinningMismatch) Error() string {
	return fmt.Sprintf("binning mismatch in %s: %s expected %v, got %v", e.Where, e.Axis, e.Want, e.Got)
}

// ErrMissingCategory represents a required flavour absent from an input.
type ErrMissingCategory struct {
	Flavor Flavor
	Source string
}

func (e *ErrMissingCategory) Error() string {
	return fmt.Sprintf("missing category %q in %s", e.Flavor, e.Source)
}

// ErrMalformedInput represents an input record lacking a required field
// or carrying an unparseable one.
type ErrMalformedInput struct {
	Filename string
	Field    string
	Err      error
}

func (e *ErrMalformedInput) Error() string {
	msg := "malformed input"
	if e.Filename != "" {
		msg += fmt.Sprintf(" %q", e.Filename)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(": field %q", e.Field)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// ErrShapeMismatch represents a map or weight whose effective shape does
// not match the binning shape.
type ErrShapeMismatch struct {
	Context  string
	WantRows int
	WantCols int
	Got      string
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("shape mismatch in %s: want %dx%d, got %s", e.Context, e.WantRows, e.WantCols, e.Got)
}
