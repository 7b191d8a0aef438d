// Package recorder journals the moves a grid makes into the move journal.
package recorder

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/SeamusWaldron/cubegrid"
	"github.com/SeamusWaldron/cubegrid/internal/storage"
)

// DefaultBatchSize is how many buffered moves trigger a write.
const DefaultBatchSize = 256

// SessionState represents the current state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

type runEvent struct {
	instanceID string
	moves      int
	at         time.Time
	finish     bool
}

// Session records the moves of one grid run. It implements
// cubegrid.MoveObserver, buffering events in memory and writing them in
// batches so the frame loop rarely touches the database.
type Session struct {
	logger    *log.Logger
	batchSize int

	mu        sync.Mutex
	state     SessionState
	sessionID string
	moveCount int
	pending   []storage.MoveRecord
	runs      []runEvent

	sessionRepo *storage.SessionRepository
	moveRepo    *storage.MoveRepository
	runRepo     *storage.SolveRunRepository
}

// NewSession creates a session manager writing to db. A nil logger
// discards log output.
func NewSession(db *storage.DB, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		logger:      logger,
		batchSize:   DefaultBatchSize,
		state:       StateIdle,
		sessionRepo: storage.NewSessionRepository(db),
		moveRepo:    storage.NewMoveRepository(db),
		runRepo:     storage.NewSolveRunRepository(db),
	}
}

// SetBatchSize changes how many buffered moves trigger a write.
func (s *Session) SetBatchSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > 0 {
		s.batchSize = n
	}
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SessionID returns the current session ID.
func (s *Session) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// MoveCount returns how many moves were observed in this session.
func (s *Session) MoveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveCount
}

// Start starts a new recording session.
func (s *Session) Start(info storage.SessionInfo) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", fmt.Errorf("session already in progress")
	}

	id, err := s.sessionRepo.Create(info)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	s.sessionID = id
	s.moveCount = 0
	s.pending = s.pending[:0]
	s.runs = s.runs[:0]
	s.state = StateRecording
	s.logger.Info("recording", "session", id)

	return id, nil
}

// End flushes buffered events and ends the session.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return fmt.Errorf("no session in progress")
	}
	if err := s.flushLocked(); err != nil {
		return err
	}
	if err := s.sessionRepo.End(s.sessionID); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	s.state = StateEnded
	s.logger.Info("recording ended", "session", s.sessionID, "moves", s.moveCount)
	return nil
}

// SetInstances records the current number of instances in the grid.
func (s *Session) SetInstances(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRecording {
		return nil
	}
	return s.sessionRepo.UpdateInstances(s.sessionID, n)
}

// Flush writes buffered events to the journal.
func (s *Session) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

func (s *Session) flushLocked() error {
	if s.state != StateRecording {
		return nil
	}
	if err := s.moveRepo.CreateBatch(s.pending); err != nil {
		return fmt.Errorf("failed to store moves: %w", err)
	}
	s.pending = s.pending[:0]

	for _, ev := range s.runs {
		var err error
		if ev.finish {
			err = s.runRepo.Finish(s.sessionID, ev.instanceID, ev.at)
		} else {
			_, err = s.runRepo.Start(s.sessionID, ev.instanceID, ev.moves, ev.at)
		}
		if err != nil {
			return fmt.Errorf("failed to store solve run: %w", err)
		}
	}
	s.runs = s.runs[:0]
	return nil
}

// MoveStarted buffers a started move.
func (s *Session) MoveStarted(instanceID string, m cubegrid.Move, solving bool, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return
	}
	s.pending = append(s.pending, storage.NewMoveRecord(s.sessionID, instanceID, m, solving, at))
	s.moveCount++

	if len(s.pending) >= s.batchSize {
		if err := s.flushLocked(); err != nil {
			s.logger.Error("journal flush failed", "err", err)
		}
	}
}

// SolveStarted buffers the start of a solve run.
func (s *Session) SolveStarted(instanceID string, moves int, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRecording {
		return
	}
	s.runs = append(s.runs, runEvent{instanceID: instanceID, moves: moves, at: at})
}

// SolveFinished buffers the end of a solve run.
func (s *Session) SolveFinished(instanceID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRecording {
		return
	}
	s.runs = append(s.runs, runEvent{instanceID: instanceID, at: at, finish: true})
}

var _ cubegrid.MoveObserver = (*Session)(nil)
