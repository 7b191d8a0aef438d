package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubegrid/internal/config"
	"github.com/SeamusWaldron/cubegrid/internal/render"
	"github.com/SeamusWaldron/cubegrid/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and journal information",
	Long:  `Display the effective settings, where the config and journal live, and the most recent recorded session.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "cubegrid Status")
	fmt.Fprintln(out, "===============")
	fmt.Fprintln(out)

	path := configPath
	if path == "" {
		path, _ = config.DefaultPath()
	}
	fmt.Fprintf(out, "Config: %s\n", path)
	fmt.Fprintf(out, "Settings: %s\n", render.SettingsLine(cfg.Settings))
	fmt.Fprintf(out, "Viewport: %dx%d at %d fps\n", cfg.Render.Width, cfg.Render.Height, cfg.Render.FPS)
	fmt.Fprintln(out)

	db, err := openDB(cfg)
	if err != nil {
		fmt.Fprintf(out, "Journal unavailable: %v\n", err)
		return nil
	}
	defer db.Close()
	fmt.Fprintf(out, "Journal: %s\n", db.Path())

	sessions, err := storage.NewSessionRepository(db).List(10000)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	fmt.Fprintf(out, "Sessions: %d\n", len(sessions))
	if len(sessions) == 0 {
		return nil
	}

	last := sessions[0]
	count, err := storage.NewMoveRepository(db).Count(last.SessionID)
	if err != nil {
		return fmt.Errorf("failed to count moves: %w", err)
	}
	fmt.Fprintf(out, "Last session: %s (%s, %d moves)\n",
		last.SessionID, last.StartedAt.Local().Format(time.RFC3339), count)
	if last.EndedAt == nil {
		fmt.Fprintln(out, "  (still open or interrupted)")
	}
	return nil
}
