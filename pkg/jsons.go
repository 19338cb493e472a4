package pid

import (
	"encoding/json"
	"fmt"
	"os"
)

// mapRecord is the on-disk shape of one flavour map:
// {"ebins": [...], "czbins": [...], "map": [[...], ...]}
type mapRecord struct {
	Ebins  []float64   `json:"ebins"`
	Czbins []float64   `json:"czbins"`
	Map    [][]float64 `json:"map"`
}

// LoadFlavorMapSet reads a reco event-rate file with one record per
// flavour plus an optional top-level params object.
func LoadFlavorMapSet(filename string) (FlavorMapSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return FlavorMapSet{}, &ErrOpenFile{Filename: filename, Err: err}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return FlavorMapSet{}, &ErrMalformedInput{Filename: filename, Err: err}
	}

	set := FlavorMapSet{Maps: make(map[Flavor]EventRateMap), Params: Params{}}
	for _, flav := range AllFlavors() {
		entry, ok := raw[flav.String()]
		if !ok {
			return FlavorMapSet{}, &ErrMissingCategory{Flavor: flav, Source: filename}
		}
		var record mapRecord
		if err := json.Unmarshal(entry, &record); err != nil {
			return FlavorMapSet{}, &ErrMalformedInput{Filename: filename, Field: flav.String(), Err: err}
		}
		m, err := recordToMap(record)
		if err != nil {
			return FlavorMapSet{}, fmt.Errorf("%s: flavour %s: %w", filename, flav, err)
		}
		set.Maps[flav] = m
	}
	if entry, ok := raw["params"]; ok {
		if err := json.Unmarshal(entry, &set.Params); err != nil {
			return FlavorMapSet{}, &ErrMalformedInput{Filename: filename, Field: "params", Err: err}
		}
	}

	if configuration.Verbosity > 1 {
		for _, flav := range AllFlavors() {
			message := fmt.Sprintf("%s: total rate %g", flav, set.Maps[flav].Total())
			logger.Info(message, "jsons")
		}
	}
	return set, nil
}

func recordToMap(record mapRecord) (EventRateMap, error) {
	binning := Binning{Ebins: record.Ebins, Czbins: record.Czbins}
	if err := binning.Validate(); err != nil {
		return EventRateMap{}, err
	}
	if record.Map == nil {
		return EventRateMap{}, &ErrMalformedInput{Field: "map"}
	}
	return EventRateMapFromRows(binning, record.Map)
}

// pidRecord is the on-disk shape of one flavour's PID weights.
// Each weight may be a scalar, a 1-D array or a 2-D array.
type pidRecord struct {
	Trck *WeightSpec `json:"trck"`
	Cscd *WeightSpec `json:"cscd"`
}

// LoadPIDTable reads a PID parameterization file with one trck/cscd
// weight pair per flavour plus an optional top-level params object.
func LoadPIDTable(filename string) (PIDTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return PIDTable{}, &ErrOpenFile{Filename: filename, Err: err}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return PIDTable{}, &ErrMalformedInput{Filename: filename, Err: err}
	}

	table := PIDTable{Weights: make(map[Flavor]ChannelWeights), Params: Params{}}
	for _, flav := range AllFlavors() {
		entry, ok := raw[flav.String()]
		if !ok {
			return PIDTable{}, &ErrMissingCategory{Flavor: flav, Source: filename}
		}
		var record pidRecord
		if err := json.Unmarshal(entry, &record); err != nil {
			return PIDTable{}, &ErrMalformedInput{Filename: filename, Field: flav.String(), Err: err}
		}
		if record.Trck == nil {
			return PIDTable{}, &ErrMalformedInput{Filename: filename, Field: flav.String() + ".trck"}
		}
		if record.Cscd == nil {
			return PIDTable{}, &ErrMalformedInput{Filename: filename, Field: flav.String() + ".cscd"}
		}
		table.Weights[flav] = ChannelWeights{Trck: *record.Trck, Cscd: *record.Cscd}
	}
	if entry, ok := raw["params"]; ok {
		if err := json.Unmarshal(entry, &table.Params); err != nil {
			return PIDTable{}, &ErrMalformedInput{Filename: filename, Field: "params", Err: err}
		}
	}
	return table, nil
}

// ToJSON writes the classified maps in the standard record shape:
// top-level trck and cscd records plus the merged params. The file is
// only touched once the whole document has been marshalled.
func (c ClassifiedMapSet) ToJSON(filename string) error {
	document := map[string]any{
		"trck": mapRecord{
			Ebins:  c.Trck.Binning.Ebins,
			Czbins: c.Trck.Binning.Czbins,
			Map:    c.Trck.Rows(),
		},
		"cscd": mapRecord{
			Ebins:  c.Cscd.Binning.Ebins,
			Czbins: c.Cscd.Binning.Czbins,
			Map:    c.Cscd.Rows(),
		},
		"params": c.Params,
	}
	data, err := json.MarshalIndent(document, "", " ")
	if err != nil {
		return fmt.Errorf("error marshalling output: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("error writing output file %q: %w", filename, err)
	}
	return nil
}
