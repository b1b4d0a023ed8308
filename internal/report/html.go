package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteHTML renders an interactive report card to path: the same
// collisions-and-CoV chart as the PNG, browsable without the PDF pipeline.
func WriteHTML(r *Report, path string) error {
	if len(r.Levels) == 0 {
		return ErrNoCompletedLevels
	}

	labels := make([]string, len(r.Levels))
	collisionData := make([]opts.BarData, len(r.Levels))
	covData := make([]opts.LineData, len(r.Levels))
	for i, lvl := range r.Levels {
		labels[i] = lvl.LevelName
		collisionData[i] = opts.BarData{Value: lvl.Collisions}
		covData[i] = opts.LineData{Value: lvl.CoV}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "GripMaze Session Report",
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Performance Summary",
			Subtitle: fmt.Sprintf("player=%s session=%s generated=%s",
				r.Player.Name, r.SessionID, r.GeneratedAt.Format("2006-01-02 15:04:05")),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).AddSeries("Collisions", collisionData)

	line := charts.NewLine()
	line.SetXAxis(labels).AddSeries("Grip CoV (%)", covData)
	bar.Overlap(line)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report html: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("rendering report html: %w", err)
	}
	return nil
}
