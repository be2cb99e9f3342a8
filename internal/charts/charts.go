// Package charts renders PNG diagrams of the agroclimatic inputs behind
// a recommendation: cumulative heat accumulation, the NDVI time series,
// and the per-crop suitability comparison.
package charts

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"agrosense/crop-advisor-backend/internal/indices"
	"agrosense/crop-advisor-backend/internal/recommend"
)

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 5 * vg.Inch
)

// RenderGDD draws the cumulative growing degree day curve.
func RenderGDD(gdd *indices.GDDResult, w io.Writer) error {
	if gdd == nil || len(gdd.Cumulative) == 0 {
		return fmt.Errorf("no degree day data to plot")
	}

	p := plot.New()
	p.Title.Text = "Cumulative Growing Degree Days"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Day of period"
	p.Y.Label.Text = "GDD, degree-days"

	points := make(plotter.XYs, len(gdd.Cumulative))
	for i, v := range gdd.Cumulative {
		points[i].X = float64(i + 1)
		points[i].Y = v
	}

	line, err := plotter.NewLine(points)
	if err != nil {
		return fmt.Errorf("failed to build gdd line: %w", err)
	}
	line.Width = vg.Points(2)

	p.Add(plotter.NewGrid(), line)
	return writePNG(p, w)
}

// RenderNDVI draws the vegetation index observations as a scatter over time.
func RenderNDVI(observations []indices.NDVIObservation, w io.Writer) error {
	if len(observations) == 0 {
		return fmt.Errorf("no ndvi observations to plot")
	}

	p := plot.New()
	p.Title.Text = "NDVI Time Series"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "NDVI"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Y.Min = -0.2
	p.Y.Max = 1.0

	points := make(plotter.XYs, len(observations))
	for i, obs := range observations {
		points[i].X = float64(obs.Date.Unix())
		points[i].Y = obs.NDVI
	}

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return fmt.Errorf("failed to build ndvi scatter: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(3)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	line, err := plotter.NewLine(points)
	if err != nil {
		return fmt.Errorf("failed to build ndvi line: %w", err)
	}
	line.Width = vg.Points(1)
	line.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}

	p.Add(plotter.NewGrid(), line, scatter)
	return writePNG(p, w)
}

// RenderRatings draws a bar chart comparing the final ratings of the
// recommended crops.
func RenderRatings(rec *recommend.Recommendation, w io.Writer) error {
	if len(rec.TopCrops) == 0 {
		return fmt.Errorf("no ranked crops to plot")
	}

	p := plot.New()
	p.Title.Text = "Crop Ratings"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = "Final rating"
	p.Y.Min = 0
	p.Y.Max = 100

	values := make(plotter.Values, len(rec.TopCrops))
	names := make([]string, len(rec.TopCrops))
	for i, advice := range rec.TopCrops {
		values[i] = advice.FinalRating
		names[i] = advice.Suitability.CropName
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return fmt.Errorf("failed to build rating bars: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalX(names...)
	return writePNG(p, w)
}

func writePNG(p *plot.Plot, w io.Writer) error {
	writer, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if _, err := writer.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}
