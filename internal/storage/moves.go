package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubegrid"
)

// MoveRecord represents a journaled move.
type MoveRecord struct {
	MoveID     int64
	SessionID  string
	InstanceID string
	MoveIndex  int
	TsMs       int64
	Axis       int
	Layer      int
	Direction  int
	Turns      int
	Notation   string
	Solving    bool
}

// NewMoveRecord builds the record of m started by an instance at ts.
func NewMoveRecord(sessionID, instanceID string, m cubegrid.Move, solving bool, ts time.Time) MoveRecord {
	return MoveRecord{
		SessionID:  sessionID,
		InstanceID: instanceID,
		TsMs:       ts.UnixMilli(),
		Axis:       int(m.Axis),
		Layer:      m.Layer,
		Direction:  m.Direction,
		Turns:      m.Turns,
		Notation:   m.Notation(),
		Solving:    solving,
	}
}

// Move converts the record back to a move.
func (m MoveRecord) Move() cubegrid.Move {
	return cubegrid.Move{
		Axis:      cubegrid.Axis(m.Axis),
		Layer:     m.Layer,
		Direction: m.Direction,
		Turns:     m.Turns,
	}
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

const insertMove = `
	INSERT INTO moves (session_id, instance_id, move_index, ts_ms, axis, layer, direction, turns, notation, solving)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// CreateBatch stores records in a single transaction, numbering them from
// the session's next free index.
func (r *MoveRepository) CreateBatch(records []MoveRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *sql.Tx) error {
		next := make(map[string]int)
		for _, rec := range records {
			idx, ok := next[rec.SessionID]
			if !ok {
				var maxIndex int
				err := tx.QueryRow(`
					SELECT COALESCE(MAX(move_index), -1) FROM moves WHERE session_id = ?
				`, rec.SessionID).Scan(&maxIndex)
				if err != nil {
					return fmt.Errorf("failed to get max move index: %w", err)
				}
				idx = maxIndex + 1
			}

			_, err := tx.Exec(insertMove, rec.SessionID, rec.InstanceID, idx, rec.TsMs,
				rec.Axis, rec.Layer, rec.Direction, rec.Turns, rec.Notation, rec.Solving)
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", idx, err)
			}
			next[rec.SessionID] = idx + 1
		}
		return nil
	})
}

// GetBySession retrieves all moves of a session in order.
func (r *MoveRepository) GetBySession(sessionID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, session_id, instance_id, move_index, ts_ms, axis, layer, direction, turns, notation, solving
		FROM moves
		WHERE session_id = ?
		ORDER BY move_index
	`, sessionID)

	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(&m.MoveID, &m.SessionID, &m.InstanceID, &m.MoveIndex, &m.TsMs,
			&m.Axis, &m.Layer, &m.Direction, &m.Turns, &m.Notation, &m.Solving)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// Count returns the number of moves for a session.
func (r *MoveRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}

// ToMoves converts records to moves.
func ToMoves(records []MoveRecord) []cubegrid.Move {
	moves := make([]cubegrid.Move, len(records))
	for i, r := range records {
		moves[i] = r.Move()
	}
	return moves
}
