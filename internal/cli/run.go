package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubegrid"
	"github.com/SeamusWaldron/cubegrid/internal/engine"
	"github.com/SeamusWaldron/cubegrid/internal/render"
)

var runRecordFlag bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Interactive grid in the terminal",
	Long: `Start an interactive TUI that drives the grid and shows the state of
every cube.

Keyboard shortcuts:
  space   - Play
  p       - Pause (rotations freeze mid-turn)
  s       - Stop (rotations finish, nothing new starts)
  x       - Solve every cube
  + / -   - Speed up / slow down
  [ / ]   - Fewer / more cubes
  f       - Cycle move frequency
  y       - Toggle synchronized mode
  c       - Cycle color scheme
  m       - Type a move (e.g. R', M2) and press enter
  q/Esc   - Quit`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runRecordFlag, "record", false, "Journal every move")
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	inputStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const speedStep = 0.25

type frameMsg time.Time

type runModel struct {
	driver   *engine.Driver
	interval time.Duration
	rec      *recording

	width  int
	height int

	typing bool
	input  string
	status string
	err    error
}

func newRunModel(d *engine.Driver, interval time.Duration, rec *recording) *runModel {
	return &runModel{driver: d, interval: interval, rec: rec}
}

func (m *runModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *runModel) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.driver.Step(time.Time(msg))
		return m, m.tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.typing {
			m.typeKey(msg)
			return m, nil
		}
		if k := msg.String(); k == "q" || k == "esc" || k == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.String() == "m" {
			m.typing, m.input, m.err = true, "", nil
			return m, nil
		}
		status, err := applyKey(m.driver.Store(), msg.String())
		if status != "" || err != nil {
			m.status, m.err = status, err
		}
	}
	return m, nil
}

// typeKey edits the manual move being typed.
func (m *runModel) typeKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.typing = false
	case tea.KeyEnter:
		m.typing = false
		mv, err := cubegrid.ParseMove(m.input)
		if err != nil {
			m.err = err
			return
		}
		n := m.driver.TriggerMove(mv)
		m.status = fmt.Sprintf("%s started on %d cubes", mv.Notation(), n)
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
}

// applyKey maps a settings shortcut onto the store. It returns a short
// status line for keys it handled.
func applyKey(store *cubegrid.SettingsStore, key string) (string, error) {
	var update func(*cubegrid.Settings)
	switch key {
	case " ":
		update = func(s *cubegrid.Settings) { s.Playback = cubegrid.PlaybackPlay }
	case "p":
		update = func(s *cubegrid.Settings) { s.Playback = cubegrid.PlaybackPause }
	case "s":
		update = func(s *cubegrid.Settings) { s.Playback = cubegrid.PlaybackStop }
	case "x":
		store.RequestSolve()
		return "solving", nil
	case "+", "=":
		update = func(s *cubegrid.Settings) { s.Speed = min(s.Speed+speedStep, cubegrid.MaxSpeed) }
	case "-":
		update = func(s *cubegrid.Settings) { s.Speed = max(s.Speed-speedStep, speedStep) }
	case "[":
		update = func(s *cubegrid.Settings) { s.GridSize = max(s.GridSize-1, 1) }
	case "]":
		update = func(s *cubegrid.Settings) { s.GridSize = min(s.GridSize+1, cubegrid.MaxGridSize) }
	case "f":
		update = func(s *cubegrid.Settings) { s.Frequency = s.Frequency%5 + 1 }
	case "y":
		update = func(s *cubegrid.Settings) { s.Sync = !s.Sync }
	case "c":
		update = func(s *cubegrid.Settings) { s.ColorScheme = nextScheme(s.ColorScheme) }
	default:
		return "", nil
	}
	if err := store.Update(update); err != nil {
		return "", err
	}
	return render.SettingsLine(store.Snapshot()), nil
}

func nextScheme(cur string) string {
	names := cubegrid.SchemeNames()
	i := slices.Index(names, cur)
	return names[(i+1)%len(names)]
}

func (m *runModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("cubegrid"))
	if m.rec != nil {
		b.WriteString("  ")
		b.WriteString(errorStyle.Render("REC"))
		b.WriteString(statusStyle.Render(fmt.Sprintf(" %d moves", m.rec.session.MoveCount())))
	}
	b.WriteString("\n\n")

	rows := 0
	if m.height > 10 {
		rows = m.height - 10
	}
	s := m.driver.Store().Snapshot()
	m.driver.Do(func(g *cubegrid.Grid) {
		b.WriteString(render.Board(g, s, rows))
	})
	b.WriteString("\n")

	if m.typing {
		b.WriteString(inputStyle.Render("move: " + m.input + "_"))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	help := "space=play p=pause s=stop x=solve +/-=speed [/]=size f=freq y=sync c=colors m=move q=quit"
	if m.typing {
		help = "type a move, enter=turn esc=cancel"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	rec, err := startRecording(cfg, runRecordFlag || cfg.Storage.Record, logger)
	if err != nil {
		return err
	}
	defer rec.close()

	// The TUI owns the terminal, so the core logs nowhere.
	g := cubegrid.NewGrid(rec.observe()...)
	defer g.Close()

	d := engine.New(g, cubegrid.NewSettingsStore(cfg.Settings),
		engine.WithFrameHook(rec.frameHook()))
	d.Resize(cfg.Viewport())

	p := tea.NewProgram(newRunModel(d, cfg.FrameInterval(), rec), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
