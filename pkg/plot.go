package pid

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// mapGrid adapts an EventRateMap to plotter.GridXYZ. Columns run over
// cos(zenith), rows over energy, with bin centers as coordinates.
type mapGrid struct {
	m EventRateMap
	x []float64
	y []float64
}

func (g mapGrid) Dims() (c, r int) {
	r, c = g.m.Map.Dims()
	return c, r
}

func (g mapGrid) Z(c, r int) float64 { return g.m.Map.At(r, c) }
func (g mapGrid) X(c int) float64    { return g.x[c] }
func (g mapGrid) Y(r int) float64    { return g.y[r] }

// SaveMapPNG renders an event-rate map as a heat map.
func SaveMapPNG(m EventRateMap, title string, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "cos(zenith)"
	p.Y.Label.Text = "energy (GeV)"

	grid := mapGrid{
		m: m,
		x: m.Binning.CzbinCenters(),
		y: m.Binning.EbinCenters(),
	}
	heatMap := plotter.NewHeatMap(grid, palette.Heat(64, 1))
	p.Add(heatMap)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("error saving map plot %q: %w", filename, err)
	}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Saved map plot: %s", filename)
		logger.Info(message, "plot")
	}
	return nil
}
