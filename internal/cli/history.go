package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubegrid/internal/analysis"
	"github.com/SeamusWaldron/cubegrid/internal/storage"
)

var (
	historyLimit int
	historyLast  bool
	historyJSON  bool
	historyTopK  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded sessions",
	Long:  `List the sessions in the move journal, newest first.`,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [session_id]",
	Short: "Summarise a recorded session",
	Long: `Print statistics for one session: move counts, pacing, solve runs, layer
usage and the most repeated move sequences.

Examples:
  cubegrid history show --last
  cubegrid history show <session_id> --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <session_id>",
	Short: "Delete a recorded session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of sessions to list")
	historyShowCmd.Flags().BoolVar(&historyLast, "last", false, "Show the last session")
	historyShowCmd.Flags().BoolVar(&historyJSON, "json", false, "Print JSON")
	historyShowCmd.Flags().IntVar(&historyTopK, "top", 5, "Repeated sequences to list per length")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := storage.NewSessionRepository(db).List(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded. Use 'cubegrid run --record' to start one.")
		return nil
	}
	moves := storage.NewMoveRepository(db)
	fmt.Fprintf(out, "%-36s  %-19s  %-11s  %5s  %7s\n", "SESSION", "STARTED", "MODE", "CUBES", "MOVES")
	for _, s := range sessions {
		n, err := moves.Count(s.SessionID)
		if err != nil {
			return fmt.Errorf("failed to count moves: %w", err)
		}
		fmt.Fprintf(out, "%-36s  %-19s  %-11s  %5d  %7d\n",
			s.SessionID, s.StartedAt.Local().Format("2006-01-02 15:04:05"), s.Mode, s.Instances, n)
	}
	return nil
}

// sessionReport is the JSON output of history show.
type sessionReport struct {
	Summary *analysis.SessionSummary `json:"summary"`
	NGrams  *analysis.NGramReport    `json:"ngrams"`
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var id string
	if len(args) > 0 {
		id = args[0]
	}
	sessionID, err := resolveSession(db, id, historyLast)
	if err != nil {
		return err
	}

	session, err := storage.NewSessionRepository(db).Get(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return fmt.Errorf("session %s not found", sessionID)
	}
	moves, err := storage.NewMoveRepository(db).GetBySession(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get moves: %w", err)
	}
	runs, err := storage.NewSolveRunRepository(db).GetBySession(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get solve runs: %w", err)
	}

	report := sessionReport{
		Summary: analysis.Summarize(*session, moves, runs),
		NGrams:  analysis.MineNGrams(moves, 2, 6, historyTopK),
	}
	logger.Debug("session analysed", "session", sessionID, "moves", len(moves), "runs", len(runs))

	if historyJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(cmd.OutOrStdout(), report)
	return nil
}

func printReport(w io.Writer, r sessionReport) {
	s := r.Summary
	fmt.Fprintf(w, "Session %s\n", s.SessionID)
	fmt.Fprintf(w, "  started    %s\n", s.StartedAt)
	if s.EndedAt != "" {
		fmt.Fprintf(w, "  duration   %s\n", (time.Duration(s.DurationMs) * time.Millisecond).Round(time.Millisecond))
	}
	fmt.Fprintf(w, "  grid       size %d, %s, frequency %d, %s colors, %d cubes\n",
		s.GridSize, s.Mode, s.Frequency, s.ColorScheme, s.Instances)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  moves      %d (%d random, %d solving)\n", s.TotalMoves, s.RandomMoves, s.SolveMoves)
	fmt.Fprintf(w, "  half turns %.1f%%\n", 100*s.HalfTurnRatio)
	fmt.Fprintf(w, "  redundant  %d (%d after simplifying)\n", s.RedundantPairs, s.NetMoves)
	fmt.Fprintf(w, "  rate       %.2f moves/s\n", s.MovesPerSecond)
	fmt.Fprintf(w, "  gaps       avg %.0fms, longest %dms\n", s.AvgGapMs, s.LongestGapMs)
	fmt.Fprintf(w, "  solves     %d started, %d finished, avg %.0fms\n", s.SolveRuns, s.SolvesFinished, s.AvgSolveMs)

	if p := s.Profile; p != nil && len(p.FaceCounts) > 0 {
		faces := make([]string, 0, len(p.FaceCounts))
		for f := range p.FaceCounts {
			faces = append(faces, f)
		}
		sort.Strings(faces)
		parts := make([]string, 0, len(faces))
		for _, f := range faces {
			parts = append(parts, fmt.Sprintf("%s:%d", f, p.FaceCounts[f]))
		}
		fmt.Fprintf(w, "  layers     %s (most used %s)\n", strings.Join(parts, " "), p.MostUsedFace)
	}

	if r.NGrams == nil || len(r.NGrams.TopNGrams) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Repeated sequences")
	lengths := make([]int, 0, len(r.NGrams.TopNGrams))
	for n := range r.NGrams.TopNGrams {
		lengths = append(lengths, n)
	}
	sort.Ints(lengths)
	for _, n := range lengths {
		for _, g := range r.NGrams.TopNGrams[n] {
			fmt.Fprintf(w, "  %d x %s\n", g.Count, g.String())
		}
	}
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.NewSessionRepository(db).Delete(args[0]); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	logger.Info("session deleted", "session", args[0])
	return nil
}
