package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubegrid"
)

var (
	layoutWidth    int
	layoutHeight   int
	layoutGridSize int
	layoutSlots    bool
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print tiling metrics for a viewport",
	Long: `Print the projected cube metrics, the visible area and the tile slots the
grid would create for a viewport and grid size.`,
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.Flags().IntVar(&layoutWidth, "width", 0, "Viewport width (default from config)")
	layoutCmd.Flags().IntVar(&layoutHeight, "height", 0, "Viewport height (default from config)")
	layoutCmd.Flags().IntVar(&layoutGridSize, "grid-size", 0, "Cubes across the short side (default from config)")
	layoutCmd.Flags().BoolVar(&layoutSlots, "slots", false, "List every slot")
}

func runLayout(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(loggerFromContext(cmd.Context()))
	if err != nil {
		return err
	}
	v := cfg.Viewport()
	if layoutWidth > 0 {
		v.Width = layoutWidth
	}
	if layoutHeight > 0 {
		v.Height = layoutHeight
	}
	gridSize := cfg.Settings.GridSize
	if layoutGridSize > 0 {
		gridSize = layoutGridSize
	}
	if !v.Valid() {
		return fmt.Errorf("invalid viewport %dx%d", v.Width, v.Height)
	}

	l := cubegrid.NewLayout(cubegrid.CubeSide, cubegrid.CubieGap)
	halfW, halfH := l.Frustum(v, gridSize)
	slots := l.Slots(halfW, halfH)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Viewport:   %dx%d, grid size %d\n", v.Width, v.Height, gridSize)
	fmt.Fprintf(out, "Cube:       %.3f x %.3f (top face %.3f x %.3f)\n", l.Width, l.Height, l.TopWidth, l.TopHeight)
	fmt.Fprintf(out, "Spacing:    x %.3f, y %.3f, row shift %.3f\n", l.SpacingX, l.SpacingY, l.ShiftX)
	fmt.Fprintf(out, "Visible:    %.3f x %.3f\n", 2*halfW, 2*halfH)
	fmt.Fprintf(out, "Instances:  %d\n", len(slots))

	if layoutSlots {
		fmt.Fprintln(out)
		for _, s := range slots {
			fmt.Fprintf(out, "  %4d %4d  %8.3f %8.3f\n", s.Row, s.Col, s.X, s.Y)
		}
	}
	return nil
}
