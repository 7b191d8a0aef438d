package cli

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/SeamusWaldron/cubegrid"
	"github.com/SeamusWaldron/cubegrid/internal/config"
	"github.com/SeamusWaldron/cubegrid/internal/recorder"
	"github.com/SeamusWaldron/cubegrid/internal/storage"
)

// recording ties a journal session to a running grid. A nil *recording
// is valid and does nothing.
type recording struct {
	db        *storage.DB
	session   *recorder.Session
	logger    *log.Logger
	instances int
}

// startRecording opens the journal and starts a session when enabled.
func startRecording(cfg config.Config, enabled bool, logger *log.Logger) (*recording, error) {
	if !enabled {
		return nil, nil
	}
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	session := recorder.NewSession(db, logger)
	session.SetBatchSize(cfg.Storage.BatchSize)

	mode := "independent"
	if cfg.Settings.Sync {
		mode = "sync"
	}
	_, err = session.Start(storage.SessionInfo{
		Mode:        mode,
		GridSize:    cfg.Settings.GridSize,
		Frequency:   cfg.Settings.Frequency,
		ColorScheme: cfg.Settings.ColorScheme,
		AppVersion:  version,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to start recording: %w", err)
	}
	return &recording{db: db, session: session, logger: logger}, nil
}

// observe returns the grid option that journals moves.
func (r *recording) observe() []cubegrid.Option {
	if r == nil {
		return nil
	}
	return []cubegrid.Option{cubegrid.WithObserver(r.session)}
}

// frameHook keeps the session's instance count current.
func (r *recording) frameHook() func(*cubegrid.Grid, cubegrid.Settings) {
	if r == nil {
		return nil
	}
	return func(g *cubegrid.Grid, s cubegrid.Settings) {
		n := len(g.Instances())
		if n == r.instances {
			return
		}
		r.instances = n
		if err := r.session.SetInstances(n); err != nil {
			r.logger.Warn("failed to update session", "err", err)
		}
	}
}

func (r *recording) close() {
	if r == nil {
		return
	}
	if err := r.session.End(); err != nil {
		r.logger.Error("failed to end recording", "err", err)
	}
	r.db.Close()
}
