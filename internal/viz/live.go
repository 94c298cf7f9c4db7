package viz

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/bouncelab/internal/dynamo"
	"github.com/san-kum/bouncelab/internal/metrics"
	"github.com/san-kum/bouncelab/internal/sim"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 42
	historyCapacity = 60
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).Padding(0, 2).Width(statsWidth)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))

	wallTint = color.RGBA{R: 80, G: 80, B: 110, A: 255}
)

type TickMsg time.Time

// Model drives a World from bubbletea ticks and draws it on a braille
// canvas next to a stats panel.
type Model struct {
	world    *sim.World
	name     string
	dt       float64
	clock    *sim.Clock
	energy   *metrics.KineticEnergy
	contacts *metrics.ContactRate
	spark    []float64

	canvas        *Canvas
	width, height int
	running       bool
	showHelp      bool
	theme         Theme
	err           error
}

// NewModel wraps w. fps sets both the tick rate and the fixed step.
func NewModel(w *sim.World, name string, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	energy := metrics.NewKineticEnergy(historyCapacity)
	contacts := metrics.NewContactRate()
	w.AddMetric(energy)
	w.AddMetric(contacts)

	return Model{
		world:    w,
		name:     name,
		dt:       1 / float64(fps),
		clock:    sim.NewClock(),
		energy:   energy,
		contacts: contacts,
		spark:    make([]float64, 0, historyCapacity),
		canvas:   NewCanvas(width, height),
		width:    width,
		height:   height,
		running:  true,
		theme:    Themes[0],
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Duration(m.dt*float64(time.Second)), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "space":
			m.running = !m.running
		case "g":
			m.dispatch(sim.ToggleGravity{})
		case "i":
			m.dispatch(sim.Intro{})
		case "s":
			size := m.world.Engine().Size()
			m.dispatch(sim.Spawn{Pos: dynamo.Vec2{Y: size.Y / 4}, Scatter: true})
		case "l":
			m.dispatch(sim.AddLabel{Text: "bounce"})
		case "w":
			m.dispatch(sim.AddLabel{Text: "wall", Color: color.RGBA{R: 255, G: 120, B: 40, A: 255}})
		case "f":
			if id, ok := m.world.OldestLabel(); ok {
				m.dispatch(sim.FadeOutLabel{ID: id})
			}
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			m.click(msg)
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) dispatch(ev sim.Event) {
	if err := m.world.Dispatch(ev); err != nil {
		m.err = err
	}
}

// click spawns a body on empty space or flashes the one under the cursor;
// right click fades out the label under it.
func (m *Model) click(msg tea.MouseMsg) {
	p, ok := m.toWorld(msg.X, msg.Y)
	if !ok {
		return
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		if h, hit := m.world.BodyAt(p); hit {
			m.dispatch(sim.Flash{Handle: h})
		} else {
			m.dispatch(sim.Spawn{Pos: p})
		}
	case tea.MouseButtonRight:
		if id, hit := m.world.LabelAt(p); hit {
			m.dispatch(sim.FadeOutLabel{ID: id})
		}
	}
}

func (m *Model) resize(w, h int) {
	cols := w - statsWidth - 4
	rows := h - 1
	if cols < 20 {
		cols = 20
	}
	if rows < 8 {
		rows = 8
	}
	m.width, m.height = cols, rows
	m.canvas = NewCanvas(cols, rows)
}

func (m *Model) step() {
	if err := m.world.Step(m.dt); err != nil {
		m.err = err
		m.running = false
		return
	}
	m.clock.Tick()
	c := m.contacts.Last()
	m.spark = append(m.spark, float64(c.Bodies+c.Walls+c.Labels))
	if len(m.spark) > historyCapacity {
		m.spark = m.spark[1:]
	}
}

// scale maps world pixels to canvas dots, preserving aspect, and returns
// the offsets that center the world on the canvas.
func (m *Model) scale(size dynamo.Vec2) (s, ox, oy float64) {
	sx := float64(m.canvas.DotsWide()) / size.X
	sy := float64(m.canvas.DotsHigh()) / size.Y
	s = math.Min(sx, sy)
	ox = (float64(m.canvas.DotsWide()) - size.X*s) / 2
	oy = (float64(m.canvas.DotsHigh()) - size.Y*s) / 2
	return s, ox, oy
}

// toWorld converts a terminal cell to world pixels.
func (m *Model) toWorld(col, row int) (dynamo.Vec2, bool) {
	left, top := canvasStyle.GetPaddingLeft(), canvasStyle.GetPaddingTop()
	col, row = col-left, row-top
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return dynamo.Vec2{}, false
	}
	size := m.world.Engine().Size()
	s, ox, oy := m.scale(size)
	p := dynamo.Vec2{
		X: (float64(col*2) + 1 - ox) / s,
		Y: (float64(row*4) + 2 - oy) / s,
	}
	if p.X < 0 || p.Y < 0 || p.X > size.X || p.Y > size.Y {
		return dynamo.Vec2{}, false
	}
	return p, true
}

func (m *Model) draw(f *sim.Frame) {
	m.canvas.Clear()
	s, ox, oy := m.scale(f.Size)
	dot := func(p dynamo.Vec2) (int, int) {
		return int(p.X*s + ox), int(p.Y*s + oy)
	}

	x0, y0 := dot(dynamo.Vec2{})
	x1, y1 := dot(f.Size)
	m.canvas.DrawRect(x0, y0, x1-1, y1-1, wallTint)

	for _, l := range f.Labels {
		if l.Alpha <= 0 {
			continue
		}
		clr := Dim(l.Color, l.Alpha)
		lo := l.Pos.Sub(l.Size.Scale(0.5))
		hi := l.Pos.Add(l.Size.Scale(0.5))
		if l.Collidable {
			ax, ay := dot(lo)
			bx, by := dot(hi)
			m.canvas.DrawRect(ax, ay, bx, by, clr)
		}
		cx, cy := dot(l.Pos)
		m.canvas.PutText(cx/2-len([]rune(l.Text))/2, cy/4, l.Text, clr)
	}

	for _, b := range f.Bodies {
		cx, cy := dot(b.Pos)
		m.canvas.FillCircle(cx, cy, int(b.Radius*s), b.Color)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	f := m.world.Snapshot()
	m.draw(f)
	canvasView := canvasStyle.Render(m.canvas.Render())

	label := MetricLabel.Render
	value := MetricValue.Render
	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.name), m.theme.Primary, m.theme.Accent) + "\n")
	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n")
	s.WriteString(Separator(statsWidth-4) + "\n")

	s.WriteString(label("Mode") + value(f.Mode.String()) + "\n")
	s.WriteString(label("Gravity") + value(onOff(f.Gravity)) + "\n")
	s.WriteString(label("Intro") + value(onOff(f.Intro)) + "\n")
	s.WriteString(label("Bodies") + value(fmt.Sprintf("%d", len(f.Bodies))) + "\n")
	s.WriteString(label("Labels") + value(fmt.Sprintf("%d", len(f.Labels))) + "\n")
	s.WriteString(label("Time") + value(fmt.Sprintf("%.2fs", f.Time)) + "\n")
	s.WriteString(label("FPS") + value(fmt.Sprintf("%.0f", m.clock.FPS())) + "\n")
	s.WriteString(label("Energy") + value(fmt.Sprintf("%.3f J", m.energy.Current())) + "\n")

	if hist := m.energy.History(); len(hist) > 1 {
		chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}
	s.WriteString("\n" + label("Contacts") + SparklineChart(m.spark, 24) + "\n")
	if m.err != nil {
		s.WriteString(StatusPaused.Render("error: "+m.err.Error()) + "\n")
	}

	s.WriteString("\n" + KeyHint.Render("SP:Pause G:Gravity I:Intro Q:Quit\nS:Spawn L:Label W:Wall F:Fade\nT:Theme ?:Help  click:spawn/flash"))
	panel := statsStyle.BorderForeground(m.theme.Border).Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panel)
	if m.showHelp {
		help := helpText + "\n\nthemes: " + strings.Join(ThemeNames(), ", ")
		return GlassPanel.BorderForeground(m.theme.Accent).Render(help) + "\n" + mainView
	}
	return mainView
}

const helpText = `KEYBOARD & MOUSE
Space         pause / resume
G             toggle gravity
I             show / dismiss the intro
S             spawn a body
L / W         add a label / a solid wall label
F             fade out the oldest label
T             cycle themes
Q             quit
left click    spawn, or flash the body under the cursor
right click   fade out the label under the cursor`

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
