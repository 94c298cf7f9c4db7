package viz

import (
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/bouncelab/internal/config"
	"github.com/san-kum/bouncelab/internal/sim"
)

var presetInfo = map[string]string{
	"custom":    "the loaded configuration",
	"calm":      "few bodies, soft contacts",
	"zero-g":    "no gravity, bouncy walls",
	"crowd":     "many small bodies",
	"billiards": "kinematic, equal radii",
}

const (
	stateMenu = iota
	stateSim
)

var (
	menuTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// App is the preset picker that launches a live Model.
type App struct {
	state, cursor int
	names         []string
	base          *config.Config
	logger        *log.Logger
	width, height int
	live          Model
	err           error
}

// NewApp offers base as "custom" followed by the built-in presets. World
// logs go to logger.
func NewApp(base *config.Config, logger *log.Logger) *App {
	return &App{
		names:  append([]string{"custom"}, config.ListPresets()...),
		base:   base,
		logger: logger,
	}
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		a.width, a.height = ws.Width, ws.Height
	}
	if a.state == stateSim {
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		return a.menuKey(key)
	}
	return a, nil
}

func (a *App) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.names)-1 {
			a.cursor++
		}
	case "enter", " ":
		return a, a.start(a.names[a.cursor])
	}
	return a, nil
}

func (a *App) start(name string) tea.Cmd {
	cfg := a.base
	if name != "custom" {
		p, err := config.GetPreset(name)
		if err != nil {
			a.err = err
			return nil
		}
		p.Window = a.base.Window
		p.Seed = a.base.Seed
		cfg = p
	}
	wc, err := cfg.World()
	if err != nil {
		a.err = err
		return nil
	}
	wc.Logger = a.logger

	a.live = NewModel(sim.New(wc), name, cfg.FPS)
	if a.width > 0 {
		a.live.resize(a.width, a.height)
	}
	a.state = stateSim
	return a.live.Init()
}

func (a *App) View() string {
	if a.state == stateSim {
		return a.live.View()
	}
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("BOUNCELAB") + "\n    " + menuSub.Render("circles, walls and fading words") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range a.names {
		desc := presetInfo[name]
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-12s", name)), menuDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-12s", name)), menuIdle.Render(desc)))
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + StatusPaused.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuIdle.Render(" navigate  ") + menuKey.Render("enter") + menuIdle.Render(" start  ") + menuKey.Render("q") + menuIdle.Render(" quit") + "\n")
	return b.String()
}

// Run starts a bubbletea program on the alternate screen with mouse
// reporting.
func Run(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
