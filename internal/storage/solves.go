package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// SolveRun is one instance replaying its history in reverse.
type SolveRun struct {
	RunID      int64
	SessionID  string
	InstanceID string
	StartedMs  int64
	FinishedMs *int64
	MoveCount  int
}

// Duration returns how long the run took, zero if it never finished.
func (s SolveRun) Duration() time.Duration {
	if s.FinishedMs == nil {
		return 0
	}
	return time.Duration(*s.FinishedMs-s.StartedMs) * time.Millisecond
}

// SolveRunRepository provides CRUD operations for solve runs.
type SolveRunRepository struct {
	db *DB
}

// NewSolveRunRepository creates a new solve run repository.
func NewSolveRunRepository(db *DB) *SolveRunRepository {
	return &SolveRunRepository{db: db}
}

// Start records the beginning of a solve run and returns its ID.
func (r *SolveRunRepository) Start(sessionID, instanceID string, moves int, at time.Time) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO solve_runs (session_id, instance_id, started_ms, move_count)
		VALUES (?, ?, ?, ?)
	`, sessionID, instanceID, at.UnixMilli(), moves)

	if err != nil {
		return 0, fmt.Errorf("failed to create solve run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get solve run ID: %w", err)
	}

	return id, nil
}

// Finish marks the open run of an instance as finished.
func (r *SolveRunRepository) Finish(sessionID, instanceID string, at time.Time) error {
	_, err := r.db.Exec(`
		UPDATE solve_runs
		SET finished_ms = ?
		WHERE run_id = (
			SELECT run_id FROM solve_runs
			WHERE session_id = ? AND instance_id = ? AND finished_ms IS NULL
			ORDER BY run_id DESC
			LIMIT 1
		)
	`, at.UnixMilli(), sessionID, instanceID)

	if err != nil {
		return fmt.Errorf("failed to finish solve run: %w", err)
	}

	return nil
}

// GetBySession retrieves every solve run of a session in start order.
func (r *SolveRunRepository) GetBySession(sessionID string) ([]SolveRun, error) {
	rows, err := r.db.Query(`
		SELECT run_id, session_id, instance_id, started_ms, finished_ms, move_count
		FROM solve_runs
		WHERE session_id = ?
		ORDER BY run_id
	`, sessionID)

	if err != nil {
		return nil, fmt.Errorf("failed to get solve runs: %w", err)
	}
	defer rows.Close()

	var runs []SolveRun
	for rows.Next() {
		var s SolveRun
		var finished sql.NullInt64
		if err := rows.Scan(&s.RunID, &s.SessionID, &s.InstanceID, &s.StartedMs, &finished, &s.MoveCount); err != nil {
			return nil, fmt.Errorf("failed to scan solve run: %w", err)
		}
		if finished.Valid {
			s.FinishedMs = &finished.Int64
		}
		runs = append(runs, s)
	}

	return runs, rows.Err()
}
