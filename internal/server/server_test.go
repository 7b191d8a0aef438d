package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubegrid"
	"github.com/SeamusWaldron/cubegrid/internal/engine"
)

func newTestServer(t *testing.T) (*httptest.Server, *engine.Driver) {
	t.Helper()
	s := cubegrid.DefaultSettings()
	s.Playback = cubegrid.PlaybackStop
	s.GridSize = 1

	g := cubegrid.NewGrid(cubegrid.WithSeed(5))
	t.Cleanup(g.Close)
	d := engine.New(g, cubegrid.NewSettingsStore(s))
	d.Resize(cubegrid.Viewport{Width: 400, Height: 300})
	d.Step(time.Unix(0, 0))

	ts := httptest.NewServer(New(d, nil).Handler())
	t.Cleanup(ts.Close)
	return ts, d
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestGetSettings(t *testing.T) {
	ts, d := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/api/settings", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got cubegrid.Settings
	decode(t, resp, &got)
	if got != d.Store().Snapshot() {
		t.Errorf("settings = %+v", got)
	}
}

func TestPutSettings(t *testing.T) {
	ts, d := newTestServer(t)

	resp := do(t, http.MethodPut, ts.URL+"/api/settings", `{"speed": 2, "colorScheme": "neon"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	s := d.Store().Snapshot()
	if s.Speed != 2 || s.ColorScheme != "neon" || s.GridSize != 1 {
		t.Errorf("settings after PUT = %+v", s)
	}
}

func TestPutSettingsRejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"speed": `},
		{"wrong type", `{"speed": "fast"}`},
		{"out of range", `{"speed": 2, "frequency": 9}`},
		{"unknown scheme", `{"colorScheme": "plaid"}`},
		{"unknown playback", `{"playback": "rewind"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, d := newTestServer(t)
			before := d.Store().Snapshot()

			resp := do(t, http.MethodPut, ts.URL+"/api/settings", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			var e errorResponse
			decode(t, resp, &e)
			if e.Error == "" {
				t.Error("missing error message")
			}
			if d.Store().Snapshot() != before {
				t.Error("rejected change should leave settings untouched")
			}
		})
	}
}

func TestPostMoveAndSolve(t *testing.T) {
	ts, d := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/api/moves", `{"notation": "R'"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var mr moveResponse
	decode(t, resp, &mr)
	if mr.Move != "R'" || mr.Started == 0 {
		t.Errorf("response = %+v", mr)
	}

	now := time.Unix(0, 0)
	for i := 0; i < 200; i++ {
		now = now.Add(16 * time.Millisecond)
		d.Step(now)
	}

	resp = do(t, http.MethodPost, ts.URL+"/api/solve", "")
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("solve status = %d", resp.StatusCode)
	}
	if d.Store().Snapshot().Playback != cubegrid.PlaybackStop {
		t.Error("solve should stop playback")
	}
	d.Step(now.Add(16 * time.Millisecond))

	resp = do(t, http.MethodGet, ts.URL+"/api/instances", "")
	var views []InstanceView
	decode(t, resp, &views)
	if len(views) == 0 {
		t.Fatal("no instances")
	}
	for _, v := range views {
		if v.State != "solving" || v.Move != "R" {
			t.Errorf("instance %s: state %s move %q, want solving R", v.ID, v.State, v.Move)
		}
	}
}

func TestPostMoveInvalid(t *testing.T) {
	ts, _ := newTestServer(t)
	for _, body := range []string{`{"notation": "Q"}`, `{"notation": ""}`, `not json`} {
		resp := do(t, http.MethodPost, ts.URL+"/api/moves", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, resp.StatusCode)
		}
	}
}

func TestGetInstance(t *testing.T) {
	ts, d := newTestServer(t)
	var id string
	d.Do(func(g *cubegrid.Grid) { id = g.Instances()[0].ID() })

	resp := do(t, http.MethodGet, ts.URL+"/api/instances/"+id, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var v InstanceView
	decode(t, resp, &v)
	if v.ID != id || v.State != "idle" || !v.Solved {
		t.Errorf("instance = %+v", v)
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/instances/missing", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing instance status = %d", resp.StatusCode)
	}
}

func TestGetLayout(t *testing.T) {
	ts, d := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/api/layout", "")
	var v LayoutView
	decode(t, resp, &v)

	var want int
	d.Do(func(g *cubegrid.Grid) { want = len(g.Instances()) })
	if v.Instances != want || v.Viewport.Width != 400 || v.Palette != "classic" {
		t.Errorf("layout = %+v", v)
	}
	if v.HalfW <= 0 || v.Layout.Width <= 0 {
		t.Errorf("layout metrics = %+v", v)
	}
}

func TestSnapshot(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/snapshot.png?width=160&height=120", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 160 || b.Dy() != 120 {
		t.Errorf("image %dx%d", b.Dx(), b.Dy())
	}

	resp = do(t, http.MethodGet, ts.URL+"/snapshot.png?width=0", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid width status = %d", resp.StatusCode)
	}
}
