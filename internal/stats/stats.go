// Package stats is the derived-statistics pipeline: it turns completed
// level metrics into grip coefficient of variation, path efficiency and
// session-wide averages. All formulas carry divide-by-zero guards; a zero
// denominator yields the defined value 0, never NaN.
package stats

import (
	"gonum.org/v1/gonum/stat"

	"github.com/neurogrip/gripmaze/internal/geom"
	"github.com/neurogrip/gripmaze/internal/session"
)

// LevelDerived is one level's computed statistics row.
type LevelDerived struct {
	LevelName       string
	DurationSeconds float64
	Collisions      int
	CoV             float64
	PathLength      float64
	PathEfficiency  float64
}

// SessionAverages aggregates the derived rows of one session.
type SessionAverages struct {
	CoV            float64
	Collisions     float64
	PathEfficiency float64
}

// CoV returns the coefficient of variation of force samples as a
// percentage. Fewer than two samples is defined as zero variability, as is
// a non-positive mean.
func CoV(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	mean := stat.Mean(samples, nil)
	if mean <= 0 {
		return 0
	}
	return stat.StdDev(samples, nil) / mean * 100
}

// PathEfficiency returns the heuristic shortest length over the traveled
// length as a percentage. The shortest length is a slack-factored straight
// line, not a maze solution, so values above 100 are possible and expected.
func PathEfficiency(shortest, traveled float64) float64 {
	if traveled <= 0 {
		return 0
	}
	return shortest / traveled * 100
}

// DeriveLevel computes one level's statistics row.
func DeriveLevel(m session.LevelMetrics) LevelDerived {
	pathLen := geom.PathLength(m.PathPoints)
	return LevelDerived{
		LevelName:       m.LevelName,
		DurationSeconds: m.DurationSeconds,
		Collisions:      m.CollisionCount,
		CoV:             CoV(m.ForceSamples),
		PathLength:      pathLen,
		PathEfficiency:  PathEfficiency(m.ShortestPathLength, pathLen),
	}
}

// Derive computes per-level rows and the session averages. An empty input
// yields an empty slice and all-zero averages.
func Derive(levels []session.LevelMetrics) ([]LevelDerived, SessionAverages) {
	if len(levels) == 0 {
		return nil, SessionAverages{}
	}

	rows := make([]LevelDerived, 0, len(levels))
	covs := make([]float64, 0, len(levels))
	collisions := make([]float64, 0, len(levels))
	efficiencies := make([]float64, 0, len(levels))

	for _, m := range levels {
		row := DeriveLevel(m)
		rows = append(rows, row)
		covs = append(covs, row.CoV)
		collisions = append(collisions, float64(row.Collisions))
		efficiencies = append(efficiencies, row.PathEfficiency)
	}

	return rows, SessionAverages{
		CoV:            stat.Mean(covs, nil),
		Collisions:     stat.Mean(collisions, nil),
		PathEfficiency: stat.Mean(efficiencies, nil),
	}
}
