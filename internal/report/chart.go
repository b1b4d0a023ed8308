package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/neurogrip/gripmaze/internal/stats"
)

// RenderChart writes the performance summary chart as a PNG: per-level
// collision bars with the grip CoV overlaid as a line. Returns
// ErrNoCompletedLevels for an empty session so callers can silently omit
// the chart.
func RenderChart(levels []stats.LevelDerived, path string) error {
	if len(levels) == 0 {
		return ErrNoCompletedLevels
	}

	p := plot.New()
	p.Title.Text = "Performance Summary: Collisions and Grip Stability"
	p.X.Label.Text = "Levels"
	p.Y.Label.Text = "Total Collisions / Grip CoV (%)"

	collisions := make(plotter.Values, len(levels))
	covPts := make(plotter.XYs, len(levels))
	labels := make([]string, len(levels))
	for i, lvl := range levels {
		collisions[i] = float64(lvl.Collisions)
		covPts[i] = plotter.XY{X: float64(i), Y: lvl.CoV}
		labels[i] = lvl.LevelName
	}

	bars, err := plotter.NewBarChart(collisions, vg.Points(25))
	if err != nil {
		return fmt.Errorf("building collision bars: %w", err)
	}
	bars.Color = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.Legend.Add("Collisions", bars)

	covLine, covPoints, err := plotter.NewLinePoints(covPts)
	if err != nil {
		return fmt.Errorf("building CoV line: %w", err)
	}
	covLine.Color = color.RGBA{R: 220, A: 255}
	covLine.Width = vg.Points(1.5)
	covPoints.Color = color.RGBA{R: 220, A: 255}
	p.Add(covLine, covPoints)
	p.Legend.Add("Grip CoV (%)", covLine)

	p.NominalX(labels...)
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart: %w", err)
	}
	return nil
}
