package pid

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ChannelWeights is the pair of PID weights for one flavour: probability
// (or rate fraction) of classification as track and as cascade. No
// normalization is assumed; trck+cscd need not sum to one, the source
// may encode absolute rates.
type ChannelWeights struct {
	Trck WeightSpec `json:"trck"`
	Cscd WeightSpec `json:"cscd"`
}

// PIDTable is a PID parameterization: per-flavour track/cascade weights
// plus the parameter set the weights were derived with.
type PIDTable struct {
	Weights map[Flavor]ChannelWeights
	Params  Params
}

// Validate confirms the table carries weights for all four flavours.
func (t PIDTable) Validate() error {
	for _, flav := range AllFlavors() {
		if _, ok := t.Weights[flav]; !ok {
			return &ErrMissingCategory{Flavor: flav, Source: "PID table"}
		}
	}
	return nil
}

// PIDService holds per-flavour weight maps materialized for one binning,
// ready for element-wise multiplication against event-rate maps.
type PIDService struct {
	Binning Binning
	Params  Params
	trck    map[Flavor]*mat.Dense
	cscd    map[Flavor]*mat.Dense
}

// NewPIDService broadcasts the table's weights to the given binning.
func NewPIDService(table PIDTable, binning Binning) (*PIDService, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if err := binning.Validate(); err != nil {
		return nil, err
	}

	rows, cols := binning.Shape()
	service := &PIDService{
		Binning: binning,
		Params:  table.Params,
		trck:    make(map[Flavor]*mat.Dense),
		cscd:    make(map[Flavor]*mat.Dense),
	}
	for _, flav := range AllFlavors() {
		weights := table.Weights[flav]
		trck, err := weights.Trck.Broadcast(rows, cols)
		if err != nil {
			return nil, fmt.Errorf("%s trck weights: %w", flav, err)
		}
		cscd, err := weights.Cscd.Broadcast(rows, cols)
		if err != nil {
			return nil, fmt.Errorf("%s cscd weights: %w", flav, err)
		}
		service.trck[flav] = trck
		service.cscd[flav] = cscd
	}
	return service, nil
}

// WeightMaps returns the materialized track and cascade weight maps for
// one flavour.
func (s *PIDService) WeightMaps(flav Flavor) (trck, cscd *mat.Dense) {
	return s.trck[flav], s.cscd[flav]
}
