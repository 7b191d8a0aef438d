package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubegrid/internal/analysis"
	"github.com/SeamusWaldron/cubegrid/internal/storage"
)

var (
	exportSessionID string
	exportInstance  string
	exportFormat    string
	exportOutput    string
	exportLast      bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export journal data",
	Long:  `Export recorded sessions in various formats.`,
}

var exportMovesCmd = &cobra.Command{
	Use:   "moves",
	Short: "Export moves from a session",
	Long: `Export the move sequence of a recorded session in text or JSON format.
Text output has one line per cube instance.

Examples:
  cubegrid export moves --last
  cubegrid export moves --id <session_id> --format json
  cubegrid export moves --id <session_id> --instance <instance_id> -o moves.txt`,
	RunE: runExportMoves,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.AddCommand(exportMovesCmd)
	exportMovesCmd.Flags().StringVar(&exportSessionID, "id", "", "Session ID to export")
	exportMovesCmd.Flags().BoolVar(&exportLast, "last", false, "Export the last session")
	exportMovesCmd.Flags().StringVar(&exportInstance, "instance", "", "Only export moves of this instance")
	exportMovesCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json)")
	exportMovesCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

// resolveSession returns id, or the latest session when last is set.
func resolveSession(db *storage.DB, id string, last bool) (string, error) {
	if id != "" {
		return id, nil
	}
	if !last {
		return "", fmt.Errorf("specify --id or --last")
	}
	s, err := storage.NewSessionRepository(db).GetLast()
	if err != nil {
		return "", fmt.Errorf("failed to get last session: %w", err)
	}
	if s == nil {
		return "", fmt.Errorf("no sessions found")
	}
	return s.SessionID, nil
}

// formatMoves renders records as text or JSON.
func formatMoves(moves []storage.MoveRecord, format string) (string, error) {
	switch strings.ToLower(format) {
	case "txt":
		streams := analysis.ByInstance(moves)
		var lines []string
		seen := make(map[string]bool)
		for _, m := range moves {
			if seen[m.InstanceID] {
				continue
			}
			seen[m.InstanceID] = true
			notations := make([]string, 0, len(streams[m.InstanceID]))
			for _, r := range streams[m.InstanceID] {
				notations = append(notations, r.Notation)
			}
			lines = append(lines, strings.Join(notations, " "))
		}
		return strings.Join(lines, "\n"), nil

	case "json":
		type MoveJSON struct {
			InstanceID string `json:"instance_id"`
			MoveIndex  int    `json:"move_index"`
			TsMs       int64  `json:"ts_ms"`
			Notation   string `json:"notation"`
			Solving    bool   `json:"solving,omitempty"`
		}

		movesJSON := make([]MoveJSON, 0, len(moves))
		for _, m := range moves {
			movesJSON = append(movesJSON, MoveJSON{
				InstanceID: m.InstanceID,
				MoveIndex:  m.MoveIndex,
				TsMs:       m.TsMs,
				Notation:   m.Notation,
				Solving:    m.Solving,
			})
		}

		data, err := json.MarshalIndent(movesJSON, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil

	default:
		return "", fmt.Errorf("unknown format: %s (use txt or json)", format)
	}
}

func runExportMoves(cmd *cobra.Command, args []string) error {
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

	sessionID, err := resolveSession(db, exportSessionID, exportLast)
	if err != nil {
		return err
	}

	moves, err := storage.NewMoveRepository(db).GetBySession(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get moves: %w", err)
	}
	if exportInstance != "" {
		moves = analysis.ByInstance(moves)[exportInstance]
	}
	if len(moves) == 0 {
		return fmt.Errorf("no moves found for session %s", sessionID)
	}

	output, err := formatMoves(moves, exportFormat)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if exportOutput == "" {
		fmt.Fprintln(out, output)
		return nil
	}

	dir := filepath.Dir(exportOutput)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutput, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(out, "Exported %d moves to %s\n", len(moves), exportOutput)
	return nil
}
