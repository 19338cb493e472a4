package pid

import (
	"errors"
	"fmt"

	hdf5 "github.com/next-exp/hdf5-go"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// EdgeHDF5 is one bin edge in the binning tables.
type EdgeHDF5 struct {
	value float64
}

// Writer stores a ClassifiedMapSet in an HDF5 file laid out as:
//
//	/PID/trck, /PID/cscd    map arrays
//	/PID/ebins, /PID/czbins bin-edge tables
//	/PID/params             key/value parameter table
type Writer struct {
	File        *hdf5.File
	Filename    string
	PIDGroup    *hdf5.Group
	TrckMap     *hdf5.Dataset
	CscdMap     *hdf5.Dataset
	EbinsTable  *hdf5.Dataset
	CzbinsTable *hdf5.Dataset
	ParamsTable *hdf5.Dataset
}

func NewWriter(filename string) *Writer {
	// Set string size for HDF5
	hdf5.SetStringLength(STRLEN)

	if configuration.UseBlosc {
		bloscVersion, bloscDate, err := hdf5.RegisterBlosc()
		if configuration.Verbosity > 0 {
			message := fmt.Sprintf("Blosc version: %v date: %v", bloscVersion, bloscDate)
			logger.Info(message, "hdf5writer")
		}
		if err != nil {
			logger.Error(err.Error())
		}
	}

	writer := &Writer{}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Creating file: %s", filename)
		logger.Info(message, "hdf5writer")
	}
	writer.File = openFile(filename)
	writer.Filename = filename
	writer.PIDGroup = createGroup(writer.File, "PID")
	writer.EbinsTable = createTable(writer.PIDGroup, "ebins", EdgeHDF5{})
	writer.CzbinsTable = createTable(writer.PIDGroup, "czbins", EdgeHDF5{})
	writer.ParamsTable = createTable(writer.PIDGroup, "params", ParamHDF5{})
	return writer
}

// WriteClassifiedMaps writes both maps, the shared binning and the
// merged parameters. Call once per file.
func (w *Writer) WriteClassifiedMaps(set *ClassifiedMapSet) {
	binning := set.Trck.Binning
	rows, cols := binning.Shape()

	w.TrckMap = create2dArray(w.PIDGroup, "trck", cols)
	w.CscdMap = create2dArray(w.PIDGroup, "cscd", cols)

	trckData := flattenMap(set.Trck)
	cscdData := flattenMap(set.Cscd)
	write2dArray(w.TrckMap, &trckData, rows, cols)
	write2dArray(w.CscdMap, &cscdData, rows, cols)

	ebins := make([]EdgeHDF5, len(binning.Ebins))
	for i, edge := range binning.Ebins {
		ebins[i] = EdgeHDF5{value: edge}
	}
	writeArrayToTable(w.EbinsTable, &ebins)

	czbins := make([]EdgeHDF5, len(binning.Czbins))
	for i, edge := range binning.Czbins {
		czbins[i] = EdgeHDF5{value: edge}
	}
	writeArrayToTable(w.CzbinsTable, &czbins)

	keys := maps.Keys(set.Params)
	slices.Sort(keys)
	entries := make([]ParamHDF5, len(keys))
	for i, k := range keys {
		entries[i] = ParamHDF5{
			param: convertToHdf5String(k),
			value: convertToHdf5String(fmt.Sprintf("%v", set.Params[k])),
		}
	}
	writeArrayToTable(w.ParamsTable, &entries)
}

func flattenMap(m EventRateMap) []float64 {
	nr, nc := m.Map.Dims()
	data := make([]float64, 0, nr*nc)
	for i := 0; i < nr; i++ {
		data = append(data, m.Map.RawRowView(i)...)
	}
	return data
}

func (w *Writer) Close() error {
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Closing file: %s", w.Filename)
		logger.Info(message, "hdf5writer")
	}
	var errs []error

	if w.TrckMap != nil {
		if err := w.TrckMap.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing trck map: %w", err))
		}
	}
	if w.CscdMap != nil {
		if err := w.CscdMap.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing cscd map: %w", err))
		}
	}
	if err := w.EbinsTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing ebins table: %w", err))
	}
	if err := w.CzbinsTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing czbins table: %w", err))
	}
	if err := w.ParamsTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing params table: %w", err))
	}
	if err := w.PIDGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing PID group: %w", err))
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
