// Package baseline maintains the population baseline: a running history of
// session-average metrics across all normal-user sessions, persisted as a
// plain text file of key:comma-separated-floats lines. Rehabilitation
// reports compare against the means of that history.
package baseline

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/neurogrip/gripmaze/internal/monitoring"
	"github.com/neurogrip/gripmaze/internal/stats"
)

// Metric keys in the store file.
const (
	keyCoV        = "avg_cov"
	keyCollisions = "avg_collisions"
	keyPathEff    = "avg_path_eff"
)

// ErrNoBaseline means the store is absent or holds no history yet. Callers
// must surface "no baseline available" rather than comparing against zeros.
var ErrNoBaseline = errors.New("no baseline history available")

// Comparison is one metric's rehab-versus-population row.
type Comparison struct {
	Yours      float64
	Baseline   float64
	Difference float64
}

// ComparisonTable holds the three comparison rows for a report.
type ComparisonTable struct {
	CoV            Comparison
	Collisions     Comparison
	PathEfficiency Comparison
}

// Tracker reads and appends the baseline history file.
type Tracker struct {
	path string
}

// NewTracker points at the history file. The file need not exist yet.
func NewTracker(path string) *Tracker {
	return &Tracker{path: path}
}

// Record appends one normal-user session's averages to the history and
// returns the new means. An empty or missing prior history is fine.
func (t *Tracker) Record(avg stats.SessionAverages) (stats.SessionAverages, error) {
	history := t.load()
	history[keyCoV] = append(history[keyCoV], avg.CoV)
	history[keyCollisions] = append(history[keyCollisions], avg.Collisions)
	history[keyPathEff] = append(history[keyPathEff], avg.PathEfficiency)

	if err := t.save(history); err != nil {
		return stats.SessionAverages{}, err
	}
	return stats.SessionAverages{
		CoV:            stat.Mean(history[keyCoV], nil),
		Collisions:     stat.Mean(history[keyCollisions], nil),
		PathEfficiency: stat.Mean(history[keyPathEff], nil),
	}, nil
}

// Compare builds the rehab comparison table against the stored means.
// Returns ErrNoBaseline when there is no history to compare against.
func (t *Tracker) Compare(avg stats.SessionAverages) (*ComparisonTable, error) {
	history := t.load()
	if len(history[keyCoV]) == 0 && len(history[keyCollisions]) == 0 && len(history[keyPathEff]) == 0 {
		return nil, ErrNoBaseline
	}

	row := func(yours float64, values []float64) Comparison {
		mean := 0.0
		if len(values) > 0 {
			mean = stat.Mean(values, nil)
		}
		return Comparison{Yours: yours, Baseline: mean, Difference: yours - mean}
	}
	return &ComparisonTable{
		CoV:            row(avg.CoV, history[keyCoV]),
		Collisions:     row(avg.Collisions, history[keyCollisions]),
		PathEfficiency: row(avg.PathEfficiency, history[keyPathEff]),
	}, nil
}

// load reads the history file. Missing files and malformed lines degrade to
// empty sequences; this is never fatal.
func (t *Tracker) load() map[string][]float64 {
	history := map[string][]float64{}

	data, err := os.ReadFile(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			monitoring.Logf("baseline: read %s: %v", t.path, err)
		}
		return history
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, rest, ok := strings.Cut(line, ":")
		if !ok {
			monitoring.Logf("baseline: skipping malformed line %q", line)
			continue
		}
		var values []float64
		for _, field := range strings.Split(rest, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				monitoring.Logf("baseline: skipping bad value %q in %q", field, key)
				continue
			}
			values = append(values, v)
		}
		history[key] = values
	}
	return history
}

func (t *Tracker) save(history map[string][]float64) error {
	var b strings.Builder
	for _, key := range []string{keyCoV, keyCollisions, keyPathEff} {
		fields := make([]string, len(history[key]))
		for i, v := range history[key] {
			fields[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		fmt.Fprintf(&b, "%s:%s\n", key, strings.Join(fields, ","))
	}
	if err := os.WriteFile(t.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("baseline: write %s: %w", t.path, err)
	}
	return nil
}
