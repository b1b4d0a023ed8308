// Package gripdb persists players, game sessions and per-level results in
// sqlite, and answers the lifetime-history queries the report layer uses.
package gripdb

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/neurogrip/gripmaze/internal/monitoring"
	"github.com/neurogrip/gripmaze/internal/session"
	"github.com/neurogrip/gripmaze/internal/stats"
)

type GripDB struct {
	*sql.DB
}

//go:embed schema.sql
var schemaSQL string

// NewGripDB opens (creating if needed) the results database at path and
// applies the base schema. Use ":memory:" for tests.
func NewGripDB(path string) (*GripDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	monitoring.Logf("initialized results database at %s", path)
	return &GripDB{db}, nil
}

// AddPlayer returns the id for the (name, gender, age) triple, inserting the
// player on first sight. Name matching is case-insensitive.
func (db *GripDB) AddPlayer(name, gender string, age int, userType session.UserType) (int64, error) {
	var id int64
	err := db.QueryRow(
		`SELECT id FROM players WHERE LOWER(name) = LOWER(?) AND gender = ? AND age = ?`,
		name, gender, age,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("looking up player: %w", err)
	}

	res, err := db.Exec(
		`INSERT INTO players (name, gender, age, user_type) VALUES (?, ?, ?, ?)`,
		name, gender, age, string(userType),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting player: %w", err)
	}
	return res.LastInsertId()
}

// StartSession records a new sitting for the player and returns its row id.
// runID is the session's opaque identifier from the engine.
func (db *GripDB) StartSession(playerID int64, runID string) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO game_sessions (run_id, player_id) VALUES (?, ?)`,
		runID, playerID,
	)
	if err != nil {
		return 0, fmt.Errorf("starting session: %w", err)
	}
	return res.LastInsertId()
}

// SaveLevelResult stores one finalized level record. Force samples and path
// points serialize as JSON text columns.
func (db *GripDB) SaveLevelResult(sessionID int64, m *session.LevelMetrics) error {
	forceJSON, err := json.Marshal(m.ForceSamples)
	if err != nil {
		return fmt.Errorf("encoding force samples: %w", err)
	}
	pathJSON, err := json.Marshal(m.PathPoints)
	if err != nil {
		return fmt.Errorf("encoding path points: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO level_results (
			session_id, level_name, duration_seconds, collision_count,
			max_force, min_force_move, force_samples, path_points,
			shortest_path_length
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, m.LevelName, m.DurationSeconds, m.CollisionCount,
		m.MaxForce, m.MinForceDuringMotion, string(forceJSON), string(pathJSON),
		m.ShortestPathLength,
	)
	if err != nil {
		return fmt.Errorf("inserting level result: %w", err)
	}
	return nil
}

// SessionResults returns a session's level records in completion order.
func (db *GripDB) SessionResults(sessionID int64) ([]session.LevelMetrics, error) {
	rows, err := db.Query(`
		SELECT level_name, duration_seconds, collision_count, max_force,
		       min_force_move, force_samples, path_points, shortest_path_length
		FROM level_results
		WHERE session_id = ?
		ORDER BY id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying session results: %w", err)
	}
	defer rows.Close()

	var results []session.LevelMetrics
	for rows.Next() {
		var m session.LevelMetrics
		var forceJSON, pathJSON string
		if err := rows.Scan(
			&m.LevelName, &m.DurationSeconds, &m.CollisionCount, &m.MaxForce,
			&m.MinForceDuringMotion, &forceJSON, &pathJSON, &m.ShortestPathLength,
		); err != nil {
			return nil, fmt.Errorf("scanning level result: %w", err)
		}
		if err := json.Unmarshal([]byte(forceJSON), &m.ForceSamples); err != nil {
			return nil, fmt.Errorf("decoding force samples: %w", err)
		}
		if err := json.Unmarshal([]byte(pathJSON), &m.PathPoints); err != nil {
			return nil, fmt.Errorf("decoding path points: %w", err)
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

// PlayerHistory is a player's lifetime summary over all stored results.
type PlayerHistory struct {
	TotalSessions        int
	TotalLevelsPlayed    int
	TotalPlaytimeSeconds float64
	AvgCollisionsPerLvl  float64
	AvgGripCoV           float64
	LevelsByDifficulty   map[string]int
}

// PlayerHistory aggregates every stored level result for the player. The
// aggregation mirrors the session statistics pipeline but runs over rows,
// not live metrics.
func (db *GripDB) PlayerHistory(playerID int64) (*PlayerHistory, error) {
	rows, err := db.Query(`
		SELECT r.level_name, r.duration_seconds, r.collision_count,
		       r.force_samples, s.id
		FROM level_results r
		JOIN game_sessions s ON r.session_id = s.id
		WHERE s.player_id = ?`,
		playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying player history: %w", err)
	}
	defer rows.Close()

	h := &PlayerHistory{LevelsByDifficulty: map[string]int{}}
	sessions := map[int64]struct{}{}
	totalCollisions := 0
	var covs []float64

	for rows.Next() {
		var levelName, forceJSON string
		var duration float64
		var collisions int
		var sessionID int64
		if err := rows.Scan(&levelName, &duration, &collisions, &forceJSON, &sessionID); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}

		sessions[sessionID] = struct{}{}
		h.TotalLevelsPlayed++
		h.TotalPlaytimeSeconds += duration
		totalCollisions += collisions
		h.LevelsByDifficulty[levelName]++

		var samples []float64
		if err := json.Unmarshal([]byte(forceJSON), &samples); err != nil {
			return nil, fmt.Errorf("decoding force samples: %w", err)
		}
		if len(samples) > 1 {
			covs = append(covs, stats.CoV(samples))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	h.TotalSessions = len(sessions)
	if h.TotalLevelsPlayed > 0 {
		h.AvgCollisionsPerLvl = float64(totalCollisions) / float64(h.TotalLevelsPlayed)
	}
	if len(covs) > 0 {
		var sum float64
		for _, c := range covs {
			sum += c
		}
		h.AvgGripCoV = sum / float64(len(covs))
	}
	return h, nil
}
