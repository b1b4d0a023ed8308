// Package report assembles the end-of-session report payload: per-level
// statistics rows, session averages, the optional population comparison,
// the performance chart and the qualitative narrative. Rendering the final
// PDF is an external concern; this package only builds its inputs.
package report

import (
	"errors"
	"time"

	"github.com/neurogrip/gripmaze/internal/baseline"
	"github.com/neurogrip/gripmaze/internal/monitoring"
	"github.com/neurogrip/gripmaze/internal/session"
	"github.com/neurogrip/gripmaze/internal/stats"
)

// ErrNoCompletedLevels short-circuits report generation for a session that
// finished nothing; partial reports are not attempted.
var ErrNoCompletedLevels = errors.New("no completed levels to report")

// Report is the structured payload handed to the report renderer.
type Report struct {
	Player      session.Player
	SessionID   string
	GeneratedAt time.Time

	Levels   []stats.LevelDerived
	Averages stats.SessionAverages

	// Comparison is only present for rehabilitation users with an existing
	// population baseline; nil means "no baseline available", which the
	// renderer states instead of showing zeros.
	Comparison *baseline.ComparisonTable

	Summary string
}

// Assemble derives the statistics for a finished session and builds the
// report payload. Normal-user sessions feed the population baseline;
// rehabilitation sessions are compared against it.
func Assemble(p session.Player, sessionID string, completed []session.LevelMetrics, tracker *baseline.Tracker) (*Report, error) {
	if len(completed) == 0 {
		monitoring.Logf("report: no levels completed, skipping generation")
		return nil, ErrNoCompletedLevels
	}

	rows, avg := stats.Derive(completed)

	r := &Report{
		Player:      p,
		SessionID:   sessionID,
		GeneratedAt: time.Now(),
		Levels:      rows,
		Averages:    avg,
		Summary:     stats.Summary(rows, avg),
	}

	if tracker != nil {
		switch p.Type {
		case session.UserNormal:
			if _, err := tracker.Record(avg); err != nil {
				monitoring.Logf("report: recording baseline: %v", err)
			}
		case session.UserRehab:
			table, err := tracker.Compare(avg)
			if err != nil {
				if errors.Is(err, baseline.ErrNoBaseline) {
					monitoring.Logf("report: no population baseline yet, omitting comparison")
				} else {
					monitoring.Logf("report: comparing baseline: %v", err)
				}
			} else {
				r.Comparison = table
			}
		}
	}

	return r, nil
}
