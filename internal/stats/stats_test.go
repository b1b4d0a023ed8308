package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurogrip/gripmaze/internal/geom"
	"github.com/neurogrip/gripmaze/internal/session"
)

func TestCoV(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		want    float64
	}{
		{"empty", nil, 0},
		{"single sample", []float64{5}, 0},
		{"zero variance", []float64{10, 10, 10}, 0},
		{"zero mean", []float64{10, -10}, 0},
		{"negative mean", []float64{-10, -20}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoV(tt.samples); got != tt.want {
				t.Errorf("CoV(%v) = %v, want %v", tt.samples, got, tt.want)
			}
		})
	}

	t.Run("reference formula", func(t *testing.T) {
		// samples [10, 20]: mean 15, sample stdev sqrt(50)
		want := math.Sqrt(50) / 15 * 100
		got := CoV([]float64{10, 20})
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("CoV([10 20]) = %v, want %v", got, want)
		}
	})
}

func TestPathEfficiency(t *testing.T) {
	// straight 10-unit path with heuristic shortest of 15 exceeds 100%
	if got := PathEfficiency(15, 10); got != 150 {
		t.Errorf("PathEfficiency(15, 10) = %v, want 150", got)
	}
	if got := PathEfficiency(15, 0); got != 0 {
		t.Errorf("PathEfficiency with zero path = %v, want 0", got)
	}
}

func TestDeriveLevel(t *testing.T) {
	m := session.LevelMetrics{
		LevelName:       "Easy",
		DurationSeconds: 12.5,
		CollisionCount:  3,
		ForceSamples:    []float64{1000, 1200, 800},
		PathPoints:      []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}},
		// heuristic slack already applied at level start
		ShortestPathLength: 12,
	}

	row := DeriveLevel(m)
	assert.Equal(t, "Easy", row.LevelName)
	assert.Equal(t, 3, row.Collisions)
	assert.InDelta(t, 15, row.PathLength, 1e-9)
	assert.InDelta(t, 80, row.PathEfficiency, 1e-9)
	assert.InDelta(t, CoV(m.ForceSamples), row.CoV, 1e-9)
}

func TestDeriveEmptySession(t *testing.T) {
	rows, avg := Derive(nil)
	require.Empty(t, rows)
	assert.Zero(t, avg.CoV)
	assert.Zero(t, avg.Collisions)
	assert.Zero(t, avg.PathEfficiency)
}

func TestDeriveAverages(t *testing.T) {
	levels := []session.LevelMetrics{
		{
			LevelName:          "Easy",
			CollisionCount:     2,
			ForceSamples:       []float64{1000, 1000},
			PathPoints:         []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}},
			ShortestPathLength: 15,
		},
		{
			LevelName:          "Medium",
			CollisionCount:     6,
			ForceSamples:       []float64{900, 1100},
			PathPoints:         []geom.Vec2{{X: 0, Y: 0}, {X: 20, Y: 0}},
			ShortestPathLength: 10,
		},
	}

	rows, avg := Derive(levels)
	require.Len(t, rows, 2)

	assert.InDelta(t, 4, avg.Collisions, 1e-9)
	assert.InDelta(t, (150.0+50.0)/2, avg.PathEfficiency, 1e-9)
	assert.InDelta(t, (rows[0].CoV+rows[1].CoV)/2, avg.CoV, 1e-9)
}

func TestSummaryBands(t *testing.T) {
	tests := []struct {
		name string
		avg  SessionAverages
		want []string
	}{
		{
			"steady and accurate",
			SessionAverages{CoV: 10, Collisions: 2, PathEfficiency: 90},
			[]string{"exceptionally steady", "very high", "efficient path"},
		},
		{
			"middling",
			SessionAverages{CoV: 20, Collisions: 10, PathEfficiency: 70},
			[]string{"generally stable", "moderate number", "reasonably efficient"},
		},
		{
			"struggling",
			SessionAverages{CoV: 40, Collisions: 30, PathEfficiency: 40},
			[]string{"significant fluctuation", "high number of collisions", "less efficient"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summary(nil, tt.avg)
			for _, phrase := range tt.want {
				assert.Contains(t, got, phrase)
			}
		})
	}
}

func TestSummaryProgression(t *testing.T) {
	improving := []LevelDerived{
		{CoV: 30, Collisions: 10, PathEfficiency: 50},
		{CoV: 20, Collisions: 4, PathEfficiency: 75},
	}
	got := Summary(improving, SessionAverages{CoV: 25, Collisions: 7, PathEfficiency: 62})
	assert.Contains(t, got, "improvement in grip stability, navigation accuracy, path efficiency")

	flat := []LevelDerived{
		{CoV: 20, Collisions: 4, PathEfficiency: 75},
		{CoV: 20, Collisions: 4, PathEfficiency: 75},
	}
	got = Summary(flat, SessionAverages{})
	assert.Contains(t, got, "remained consistent")

	// a single level gets no progression sentence
	got = Summary(improving[:1], SessionAverages{})
	assert.NotContains(t, got, "progressed")
	assert.NotContains(t, got, "consistent")
}
