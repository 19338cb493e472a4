package pid

import (
	"gonum.org/v1/gonum/mat"
)

// FlavorMapSet is the reconstruction-stage output: one event-rate map
// per flavour plus the free-form parameters carried along the pipeline.
type FlavorMapSet struct {
	Maps   map[Flavor]EventRateMap
	Params Params
}

// Validate confirms all four flavours are present and share one binning.
func (s FlavorMapSet) Validate() error {
	_, err := CheckBinning(s)
	return err
}

// ClassifiedMapSet is the PID-stage output: total track and cascade maps
// plus the merged parameter set.
type ClassifiedMapSet struct {
	Trck   EventRateMap
	Cscd   EventRateMap
	Params Params
}

// GetPIDMaps splits the reco event-rate maps into track and cascade
// maps. Each flavour map is multiplied element-wise by that flavour's
// PID weights and the contributions are accumulated over the four
// flavours. The merged parameters are the reco parameters overlaid with
// the PID table's, the table winning on collisions. Inputs are left
// untouched; any precondition violation is fatal for the invocation.
func GetPIDMaps(reco FlavorMapSet, service *PIDService) (ClassifiedMapSet, error) {
	reco.Params.Report()

	binning, err := CheckBinning(reco)
	if err != nil {
		return ClassifiedMapSet{}, err
	}
	if !binning.Equal(service.Binning) {
		axis, want, got := "czbins", binning.Czbins, service.Binning.Czbins
		if !equalEdges(service.Binning.Ebins, binning.Ebins) {
			axis, want, got = "ebins", binning.Ebins, service.Binning.Ebins
		}
		return ClassifiedMapSet{}, &ErrBinningMismatch{Where: "PID table", Axis: axis, Want: want, Got: got}
	}

	trck := NewEventRateMap(binning)
	cscd := NewEventRateMap(binning)

	for _, flav := range AllFlavors() {
		eventMap := reco.Maps[flav].Map
		wTrck, wCscd := service.WeightMaps(flav)

		var toTrck, toCscd mat.Dense
		toTrck.MulElem(eventMap, wTrck)
		toCscd.MulElem(eventMap, wCscd)

		trck.Map.Add(trck.Map, &toTrck)
		cscd.Map.Add(cscd.Map, &toCscd)
	}

	return ClassifiedMapSet{
		Trck:   trck,
		Cscd:   cscd,
		Params: reco.Params.Merge(service.Params),
	}, nil
}
