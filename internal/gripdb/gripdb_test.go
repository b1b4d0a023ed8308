package gripdb

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/neurogrip/gripmaze/internal/geom"
	"github.com/neurogrip/gripmaze/internal/monitoring"
	"github.com/neurogrip/gripmaze/internal/session"
	"github.com/neurogrip/gripmaze/internal/stats"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *GripDB {
	t.Helper()
	db, err := NewGripDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleMetrics(name string) *session.LevelMetrics {
	return &session.LevelMetrics{
		LevelName:            name,
		DurationSeconds:      21.5,
		CollisionCount:       4,
		MaxForce:             2200,
		MinForceDuringMotion: 800,
		ForceSamples:         []float64{800, 1500, 2200},
		PathPoints:           []geom.Vec2{{X: 60, Y: 60}, {X: 70, Y: 60}, {X: 70, Y: 80}},
		ShortestPathLength:   150,
	}
}

func TestAddPlayerIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	id1, err := db.AddPlayer("Ada", "F", 34, session.UserRehab)
	require.NoError(t, err)

	// same triple, different case: same row
	id2, err := db.AddPlayer("ada", "F", 34, session.UserRehab)
	require.NoError(t, err)
	require.Equal(t, id1, id2)

	// different age: new row
	id3, err := db.AddPlayer("Ada", "F", 35, session.UserRehab)
	require.NoError(t, err)
	require.NotEqual(t, id1, id3)
}

func TestSaveAndReadSessionResults(t *testing.T) {
	db := newTestDB(t)

	playerID, err := db.AddPlayer("Ada", "F", 34, session.UserNormal)
	require.NoError(t, err)
	sessionID, err := db.StartSession(playerID, "run-001")
	require.NoError(t, err)

	want := []*session.LevelMetrics{sampleMetrics("Easy"), sampleMetrics("Medium")}
	for _, m := range want {
		require.NoError(t, db.SaveLevelResult(sessionID, m))
	}

	got, err := db.SessionResults(sessionID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i := range want {
		if diff := cmp.Diff(*want[i], got[i]); diff != "" {
			t.Errorf("result %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestSessionResultsEmpty(t *testing.T) {
	db := newTestDB(t)
	got, err := db.SessionResults(999)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestDuplicateRunIDRejected(t *testing.T) {
	db := newTestDB(t)
	playerID, err := db.AddPlayer("Ada", "F", 34, session.UserNormal)
	require.NoError(t, err)

	_, err = db.StartSession(playerID, "run-001")
	require.NoError(t, err)
	_, err = db.StartSession(playerID, "run-001")
	require.Error(t, err)
}

func TestPlayerHistory(t *testing.T) {
	db := newTestDB(t)

	playerID, err := db.AddPlayer("Ada", "F", 34, session.UserRehab)
	require.NoError(t, err)

	// two sittings, three levels total
	s1, err := db.StartSession(playerID, "run-001")
	require.NoError(t, err)
	require.NoError(t, db.SaveLevelResult(s1, sampleMetrics("Easy")))
	require.NoError(t, db.SaveLevelResult(s1, sampleMetrics("Medium")))

	s2, err := db.StartSession(playerID, "run-002")
	require.NoError(t, err)
	require.NoError(t, db.SaveLevelResult(s2, sampleMetrics("Easy")))

	h, err := db.PlayerHistory(playerID)
	require.NoError(t, err)

	require.Equal(t, 2, h.TotalSessions)
	require.Equal(t, 3, h.TotalLevelsPlayed)
	require.InDelta(t, 64.5, h.TotalPlaytimeSeconds, 1e-9)
	require.InDelta(t, 4, h.AvgCollisionsPerLvl, 1e-9)
	require.Equal(t, map[string]int{"Easy": 2, "Medium": 1}, h.LevelsByDifficulty)

	// every stored level shares the same samples, so the average CoV is the
	// CoV of one of them
	require.InDelta(t, stats.CoV([]float64{800, 1500, 2200}), h.AvgGripCoV, 1e-9)
}

func TestPlayerHistoryNoRecords(t *testing.T) {
	db := newTestDB(t)
	playerID, err := db.AddPlayer("Ada", "F", 34, session.UserNormal)
	require.NoError(t, err)

	h, err := db.PlayerHistory(playerID)
	require.NoError(t, err)
	require.Zero(t, h.TotalSessions)
	require.Zero(t, h.TotalLevelsPlayed)
	require.Zero(t, h.AvgGripCoV)
}
