package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubegrid"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenMigrates(t *testing.T) {
	db := openTestDB(t)
	v, err := db.CurrentVersion()
	if err != nil {
		t.Fatal(err)
	}
	if v != SchemaVersion() {
		t.Errorf("schema version = %d, want %d", v, SchemaVersion())
	}

	// Reopening must not re-run migrations.
	path := db.Path()
	db.Close()
	again, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	if v, _ := again.CurrentVersion(); v != SchemaVersion() {
		t.Errorf("schema version after reopen = %d", v)
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepository(db)

	id, err := repo.Create(SessionInfo{Mode: "sync", GridSize: 5, Frequency: 3, ColorScheme: "classic", Instances: 12})
	if err != nil {
		t.Fatal(err)
	}

	s, err := repo.Get(id)
	if err != nil || s == nil {
		t.Fatalf("Get: %v, %v", s, err)
	}
	if s.Mode != "sync" || s.GridSize != 5 || s.Instances != 12 || s.EndedAt != nil {
		t.Errorf("session = %+v", s)
	}
	if s.AppVersion != nil || s.Notes != nil {
		t.Error("empty optional fields should be NULL")
	}

	if err := repo.UpdateInstances(id, 20); err != nil {
		t.Fatal(err)
	}
	if err := repo.End(id); err != nil {
		t.Fatal(err)
	}
	s, _ = repo.Get(id)
	if s.EndedAt == nil || s.DurationMs == nil || s.Instances != 20 {
		t.Errorf("ended session = %+v", s)
	}

	missing, err := repo.Get("nope")
	if err != nil || missing != nil {
		t.Errorf("Get(missing) = %v, %v", missing, err)
	}
}

func TestSessionListNewestFirst(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepository(db)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := repo.Create(SessionInfo{Mode: "independent", GridSize: i + 1, Frequency: 3, ColorScheme: "classic"})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	list, err := repo.List(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].SessionID != ids[2] || list[1].SessionID != ids[1] {
		t.Errorf("List(2) = %+v", list)
	}

	last, err := repo.GetLast()
	if err != nil || last == nil || last.SessionID != ids[2] {
		t.Errorf("GetLast = %+v, %v", last, err)
	}
}

func TestMovesRoundTrip(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)
	moves := NewMoveRepository(db)

	id, err := sessions.Create(SessionInfo{Mode: "independent", GridSize: 5, Frequency: 3, ColorScheme: "classic"})
	if err != nil {
		t.Fatal(err)
	}

	ts := time.UnixMilli(1_700_000_000_000)
	seq := []cubegrid.Move{cubegrid.R, cubegrid.U2, cubegrid.MPrime}
	var recs []MoveRecord
	for i, m := range seq {
		recs = append(recs, NewMoveRecord(id, "inst-a", m, i == 2, ts.Add(time.Duration(i)*time.Second)))
	}
	if err := moves.CreateBatch(recs[:2]); err != nil {
		t.Fatal(err)
	}
	if err := moves.CreateBatch(recs[2:]); err != nil {
		t.Fatal(err)
	}

	got, err := moves.GetBySession(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d moves, want 3", len(got))
	}
	for i, rec := range got {
		if rec.MoveIndex != i {
			t.Errorf("move %d has index %d", i, rec.MoveIndex)
		}
	}
	if cubegrid.FormatMoves(ToMoves(got)) != "R U2 M'" {
		t.Errorf("moves = %s", cubegrid.FormatMoves(ToMoves(got)))
	}
	if got[2].Move() != cubegrid.MPrime || !got[2].Solving || got[0].Solving {
		t.Errorf("records = %+v", got)
	}
	if got[1].TsMs != ts.Add(time.Second).UnixMilli() {
		t.Errorf("ts = %d", got[1].TsMs)
	}

	if n, _ := moves.Count(id); n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}

	if err := sessions.Delete(id); err != nil {
		t.Fatal(err)
	}
	if n, _ := moves.Count(id); n != 0 {
		t.Errorf("moves should cascade on delete, %d left", n)
	}
}

func TestSolveRuns(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)
	runs := NewSolveRunRepository(db)

	id, _ := sessions.Create(SessionInfo{Mode: "sync", GridSize: 5, Frequency: 3, ColorScheme: "classic"})
	start := time.UnixMilli(1_700_000_000_000)

	if _, err := runs.Start(id, "a", 12, start); err != nil {
		t.Fatal(err)
	}
	if _, err := runs.Start(id, "b", 4, start); err != nil {
		t.Fatal(err)
	}
	if err := runs.Finish(id, "a", start.Add(3*time.Second)); err != nil {
		t.Fatal(err)
	}

	got, err := runs.GetBySession(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d runs, want 2", len(got))
	}
	if got[0].Duration() != 3*time.Second || got[0].MoveCount != 12 {
		t.Errorf("run a = %+v", got[0])
	}
	if got[1].FinishedMs != nil || got[1].Duration() != 0 {
		t.Errorf("run b should be open: %+v", got[1])
	}
}
