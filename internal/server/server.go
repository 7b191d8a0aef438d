// Package server exposes the grid over a small HTTP API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gogpu/gg"

	"github.com/SeamusWaldron/cubegrid"
	"github.com/SeamusWaldron/cubegrid/internal/engine"
	"github.com/SeamusWaldron/cubegrid/internal/render"
)

const (
	maxBodyBytes  = 64 << 10
	maxImageSide  = 4096
	defaultWidth  = 640
	defaultHeight = 360
)

// Server serves the control API for one driver.
type Server struct {
	driver *engine.Driver
	logger *log.Logger
	router chi.Router
}

// New creates a server for d. A nil logger discards output.
func New(d *engine.Driver, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{driver: d, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/settings", s.getSettings)
		r.Put("/settings", s.putSettings)
		r.Post("/solve", s.postSolve)
		r.Post("/moves", s.postMove)
		r.Get("/instances", s.listInstances)
		r.Get("/instances/{id}", s.getInstance)
		r.Get("/layout", s.getLayout)
	})
	r.Get("/snapshot.png", s.getSnapshot)
	return r
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down http server: %w", err)
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"took", time.Since(start).Round(time.Microsecond),
			"id", middleware.GetReqID(r.Context()))
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.driver.Store().Snapshot())
}

// putSettings applies the fields present in the body. The whole change
// is rejected if any field is malformed or out of range.
func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var probe cubegrid.Settings
	if err := json.Unmarshal(body, &probe); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid settings body: %w", err))
		return
	}

	err = s.driver.Store().Update(func(cur *cubegrid.Settings) {
		json.Unmarshal(body, cur)
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.logger.Info("settings updated", "settings", s.driver.Store().Snapshot())
	writeJSON(w, http.StatusOK, s.driver.Store().Snapshot())
}

func (s *Server) postSolve(w http.ResponseWriter, r *http.Request) {
	s.driver.Store().RequestSolve()
	writeJSON(w, http.StatusAccepted, map[string]bool{"requested": true})
}

type moveRequest struct {
	Notation string `json:"notation"`
}

type moveResponse struct {
	Move    string `json:"move"`
	Started int    `json:"started"`
}

func (s *Server) postMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid move body: %w", err))
		return
	}
	m, err := cubegrid.ParseMove(req.Notation)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	n := s.driver.TriggerMove(m)
	writeJSON(w, http.StatusOK, moveResponse{Move: m.Notation(), Started: n})
}

// InstanceView is the JSON form of one instance.
type InstanceView struct {
	ID         string   `json:"id"`
	Row        int      `json:"row"`
	Col        int      `json:"col"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	State      string   `json:"state"`
	Move       string   `json:"move,omitempty"`
	Progress   float64  `json:"progress"`
	History    int      `json:"history"`
	SolveQueue []string `json:"solveQueue,omitempty"`
	Solved     bool     `json:"solved"`
}

func viewInstance(inst *cubegrid.Instance) InstanceView {
	slot := inst.Slot()
	v := InstanceView{
		ID:       inst.ID(),
		Row:      slot.Row,
		Col:      slot.Col,
		X:        slot.X,
		Y:        slot.Y,
		State:    inst.State().String(),
		Progress: inst.Progress(),
		History:  len(inst.History()),
		Solved:   inst.IsSolved(),
	}
	if m, ok := inst.ActiveMove(); ok {
		v.Move = m.Notation()
	}
	for _, m := range inst.SolveQueue() {
		v.SolveQueue = append(v.SolveQueue, m.Notation())
	}
	return v
}

func (s *Server) listInstances(w http.ResponseWriter, r *http.Request) {
	var views []InstanceView
	s.driver.Do(func(g *cubegrid.Grid) {
		views = make([]InstanceView, 0, len(g.Instances()))
		for _, inst := range g.Instances() {
			views = append(views, viewInstance(inst))
		}
	})
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) getInstance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var (
		view  InstanceView
		found bool
	)
	s.driver.Do(func(g *cubegrid.Grid) {
		if inst := g.Instance(id); inst != nil {
			view, found = viewInstance(inst), true
		}
	})
	if !found {
		writeError(w, http.StatusNotFound, fmt.Errorf("instance %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// LayoutView is the JSON form of the tiling.
type LayoutView struct {
	Viewport  cubegrid.Viewport `json:"viewport"`
	Layout    cubegrid.Layout   `json:"layout"`
	HalfW     float64           `json:"halfWidth"`
	HalfH     float64           `json:"halfHeight"`
	Instances int               `json:"instances"`
	Rebuilds  int               `json:"rebuilds"`
	Palette   string            `json:"palette"`
}

func (s *Server) getLayout(w http.ResponseWriter, r *http.Request) {
	var v LayoutView
	s.driver.Do(func(g *cubegrid.Grid) {
		v.Viewport = g.Viewport()
		v.Layout = g.Layout()
		v.HalfW, v.HalfH = g.Frustum()
		v.Instances = len(g.Instances())
		v.Rebuilds = g.Rebuilds()
		v.Palette = g.Palette().Name
	})
	writeJSON(w, http.StatusOK, v)
}

func imageSide(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxImageSide {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return n, nil
}

func (s *Server) getSnapshot(w http.ResponseWriter, r *http.Request) {
	width, err := imageSide(r, "width", defaultWidth)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	height, err := imageSide(r, "height", defaultHeight)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	pr := render.NewPNG(width, height)
	var dc *gg.Context
	s.driver.Do(func(g *cubegrid.Grid) {
		dc, err = pr.Draw(g)
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	defer dc.Close()

	w.Header().Set("Content-Type", "image/png")
	if err := dc.EncodePNG(w); err != nil {
		s.logger.Error("snapshot failed", "err", err)
	}
}
