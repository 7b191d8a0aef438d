package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/cubegrid"
	"github.com/SeamusWaldron/cubegrid/internal/engine"
	"github.com/SeamusWaldron/cubegrid/internal/server"
)

var (
	serveAddr   string
	serveRecord bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the grid headlessly behind an HTTP API",
	Long: `Run the grid frame loop and serve a control API:

  GET  /api/settings        current settings
  PUT  /api/settings        change settings (partial JSON)
  POST /api/solve           stop playback and solve every cube
  POST /api/moves           {"notation": "R'"} turns a layer on every idle cube
  GET  /api/instances       per-cube state
  GET  /api/instances/{id}  one cube
  GET  /api/layout          tiling metrics
  GET  /snapshot.png        current frame (?width=&height=)`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveRecord, "record", false, "Journal every move")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	rec, err := startRecording(cfg, serveRecord || cfg.Storage.Record, logger)
	if err != nil {
		return err
	}
	defer rec.close()

	g := cubegrid.NewGrid(append(rec.observe(), cubegrid.WithLogger(logger))...)
	defer g.Close()

	store := cubegrid.NewSettingsStore(cfg.Settings)
	d := engine.New(g, store,
		engine.WithInterval(cfg.FrameInterval()),
		engine.WithLogger(logger),
		engine.WithFrameHook(rec.frameHook()))
	d.Resize(cfg.Viewport())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error { return d.Run(ctx) })
	grp.Go(func() error {
		if err := server.New(d, logger).ListenAndServe(ctx, addr); err != nil {
			return err
		}
		return ctx.Err()
	})

	if err := grp.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
