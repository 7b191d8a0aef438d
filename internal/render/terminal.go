package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubegrid"
)

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	idleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	rotatingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	solvingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))
)

const barWidth = 12

// Board renders a per-instance status table. At most maxRows instances
// are listed; zero lists all of them.
func Board(g *cubegrid.Grid, s cubegrid.Settings, maxRows int) string {
	var b strings.Builder

	insts := g.Instances()
	b.WriteString(headerStyle.Render(fmt.Sprintf("%d cubes", len(insts))))
	b.WriteString("  ")
	b.WriteString(SettingsLine(s))
	b.WriteString("\n\n")

	shown := insts
	if maxRows > 0 && len(shown) > maxRows {
		shown = shown[:maxRows]
	}
	for _, inst := range shown {
		b.WriteString(instanceLine(inst))
		b.WriteString("\n")
	}
	if len(shown) < len(insts) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("... %d more", len(insts)-len(shown))))
		b.WriteString("\n")
	}
	return b.String()
}

// SettingsLine summarises s on one line.
func SettingsLine(s cubegrid.Settings) string {
	mode := "independent"
	if s.Sync {
		mode = "sync"
	}
	fields := []string{
		label("playback", string(s.Playback)),
		label("speed", fmt.Sprintf("%.1fx", s.Speed)),
		label("grid", fmt.Sprintf("%d", s.GridSize)),
		label("freq", fmt.Sprintf("%d", s.Frequency)),
		label("mode", mode),
		label("colors", s.ColorScheme),
	}
	return strings.Join(fields, "  ")
}

func label(name, value string) string {
	return labelStyle.Render(name+":") + " " + value
}

func instanceLine(inst *cubegrid.Instance) string {
	slot := inst.Slot()
	id := inst.ID()
	if len(id) > 8 {
		id = id[:8]
	}

	state := inst.State()
	var status string
	switch state {
	case cubegrid.StateRotating:
		status = rotatingStyle.Render(fmt.Sprintf("%-8s", state))
	case cubegrid.StateSolving:
		status = solvingStyle.Render(fmt.Sprintf("%-8s", state))
	default:
		status = idleStyle.Render(fmt.Sprintf("%-8s", state))
	}

	move := "  "
	if m, ok := inst.ActiveMove(); ok {
		move = fmt.Sprintf("%-2s", m.Notation())
	}

	detail := fmt.Sprintf("history %d", len(inst.History()))
	if q := inst.SolveQueue(); state == cubegrid.StateSolving {
		detail = fmt.Sprintf("solve %d left", len(q))
	}

	return fmt.Sprintf("%4d,%-4d %s %s %-3s %s %s",
		slot.Row, slot.Col, labelStyle.Render(id), status, move, ProgressBar(inst.Progress(), barWidth), detail)
}

// ProgressBar draws p in [0,1] as a fixed-width bar.
func ProgressBar(p float64, width int) string {
	p = min(max(p, 0), 1)
	filled := int(p*float64(width) + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
