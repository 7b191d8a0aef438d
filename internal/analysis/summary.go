// Package analysis summarises the move journal.
package analysis

import (
	"sort"
	"time"

	"github.com/SeamusWaldron/cubegrid"
	"github.com/SeamusWaldron/cubegrid/internal/storage"
)

// SessionSummary contains statistics for one recorded session.
type SessionSummary struct {
	SessionID      string           `json:"session_id"`
	StartedAt      string           `json:"started_at"`
	EndedAt        string           `json:"ended_at,omitempty"`
	DurationMs     int64            `json:"duration_ms"`
	Mode           string           `json:"mode"`
	GridSize       int              `json:"grid_size"`
	Frequency      int              `json:"frequency"`
	ColorScheme    string           `json:"color_scheme"`
	Instances      int              `json:"instances"`
	TotalMoves     int              `json:"total_moves"`
	RandomMoves    int              `json:"random_moves"`
	SolveMoves     int              `json:"solve_moves"`
	HalfTurnRatio  float64          `json:"half_turn_ratio"`
	RedundantPairs int              `json:"redundant_pairs"`
	NetMoves       int              `json:"net_moves"`
	MovesPerSecond float64          `json:"moves_per_second"`
	AvgGapMs       float64          `json:"avg_gap_ms"`
	LongestGapMs   int64            `json:"longest_gap_ms"`
	SolveRuns      int              `json:"solve_runs"`
	SolvesFinished int              `json:"solves_finished"`
	AvgSolveMs     float64          `json:"avg_solve_ms"`
	Profile        *MovementProfile `json:"profile"`
}

// Summarize builds the summary of a session from its journal.
func Summarize(s storage.Session, moves []storage.MoveRecord, runs []storage.SolveRun) *SessionSummary {
	sum := &SessionSummary{
		SessionID:   s.SessionID,
		StartedAt:   s.StartedAt.Format(time.RFC3339),
		Mode:        s.Mode,
		GridSize:    s.GridSize,
		Frequency:   s.Frequency,
		ColorScheme: s.ColorScheme,
		TotalMoves:  len(moves),
		SolveRuns:   len(runs),
		Profile:     AnalyzeMovementProfile(moves),
	}
	if s.EndedAt != nil {
		sum.EndedAt = s.EndedAt.Format(time.RFC3339)
	}
	if s.DurationMs != nil {
		sum.DurationMs = *s.DurationMs
	}

	streams := ByInstance(moves)
	sum.Instances = len(streams)
	if s.Instances > sum.Instances {
		sum.Instances = s.Instances
	}

	halves := 0
	for _, m := range moves {
		if m.Solving {
			sum.SolveMoves++
		} else {
			sum.RandomMoves++
		}
		if m.Turns == 2 {
			halves++
		}
	}
	if len(moves) > 0 {
		sum.HalfTurnRatio = float64(halves) / float64(len(moves))
	}

	var gapTotal int64
	gaps := 0
	for _, stream := range streams {
		sum.RedundantPairs += CountRedundant(stream)
		sum.NetMoves += len(Simplify(randomMoves(stream)))
		for i := 1; i < len(stream); i++ {
			gap := stream[i].TsMs - stream[i-1].TsMs
			gapTotal += gap
			gaps++
			if gap > sum.LongestGapMs {
				sum.LongestGapMs = gap
			}
		}
	}
	if gaps > 0 {
		sum.AvgGapMs = float64(gapTotal) / float64(gaps)
	}
	sum.MovesPerSecond = CalculateRate(moves)

	var solveTotal time.Duration
	for _, r := range runs {
		if r.FinishedMs != nil {
			sum.SolvesFinished++
			solveTotal += r.Duration()
		}
	}
	if sum.SolvesFinished > 0 {
		sum.AvgSolveMs = float64(solveTotal.Milliseconds()) / float64(sum.SolvesFinished)
	}

	return sum
}

// ByInstance splits journal records into per-instance streams, keeping
// their journal order.
func ByInstance(moves []storage.MoveRecord) map[string][]storage.MoveRecord {
	streams := make(map[string][]storage.MoveRecord)
	for _, m := range moves {
		streams[m.InstanceID] = append(streams[m.InstanceID], m)
	}
	return streams
}

func sortedKeys(m map[string][]storage.MoveRecord) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func randomMoves(stream []storage.MoveRecord) []cubegrid.Move {
	out := make([]cubegrid.Move, 0, len(stream))
	for _, m := range stream {
		if !m.Solving {
			out = append(out, m.Move())
		}
	}
	return out
}

// CountRedundant counts consecutive random moves of one instance that
// repeat or cancel the move before them. Solve moves are skipped since
// they replay history verbatim.
func CountRedundant(stream []storage.MoveRecord) int {
	count := 0
	var last cubegrid.Move
	hasLast := false
	for _, m := range stream {
		if m.Solving {
			hasLast = false
			continue
		}
		if hasLast && cubegrid.Redundant(last, m.Move()) {
			count++
		}
		last, hasLast = m.Move(), true
	}
	return count
}

// CalculateRate returns moves per second across the journal's time span.
func CalculateRate(moves []storage.MoveRecord) float64 {
	if len(moves) < 2 {
		return 0
	}
	first, last := moves[0].TsMs, moves[0].TsMs
	for _, m := range moves {
		first = min(first, m.TsMs)
		last = max(last, m.TsMs)
	}
	if last <= first {
		return 0
	}
	return float64(len(moves)) / (float64(last-first) / 1000.0)
}

// MovementProfile analyzes which layers and turn kinds are most used.
type MovementProfile struct {
	FaceCounts    map[string]int `json:"face_counts"`
	AxisCounts    map[string]int `json:"axis_counts"`
	MostUsedFace  string         `json:"most_used_face"`
	FaceSequences map[string]int `json:"face_sequences"` // e.g., "RU" -> count
}

// AnalyzeMovementProfile counts layer usage across the journal.
func AnalyzeMovementProfile(moves []storage.MoveRecord) *MovementProfile {
	profile := &MovementProfile{
		FaceCounts:    make(map[string]int),
		AxisCounts:    make(map[string]int),
		FaceSequences: make(map[string]int),
	}

	for _, stream := range ByInstance(moves) {
		for i, rec := range stream {
			m := rec.Move()
			face := string(m.Face())
			profile.FaceCounts[face]++
			profile.AxisCounts[m.Axis.String()]++

			// Track 2-move face sequences
			if i > 0 {
				profile.FaceSequences[string(stream[i-1].Move().Face())+face]++
			}
		}
	}

	maxFaceCount := 0
	for face, count := range profile.FaceCounts {
		if count > maxFaceCount || (count == maxFaceCount && face < profile.MostUsedFace) {
			maxFaceCount = count
			profile.MostUsedFace = face
		}
	}

	return profile
}
