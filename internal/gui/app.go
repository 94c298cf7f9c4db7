package gui

import (
	"fmt"
	"image/color"
	"io"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/bouncelab/internal/config"
	"github.com/san-kum/bouncelab/internal/dynamo"
	"github.com/san-kum/bouncelab/internal/metrics"
	"github.com/san-kum/bouncelab/internal/sim"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
)

const maxTelemetry = 200

var wallColor = color.RGBA{R: 255, G: 120, B: 40, A: 255}

// Options configures a window session. FixedSize keeps the configured
// window size instead of the desktop resolution.
type Options struct {
	Config    *config.Config
	Name      string
	FixedSize bool
	Logger    *log.Logger
}

type App struct {
	World     *sim.World
	Name      string
	Clock     *sim.Clock
	Energy    *metrics.KineticEnergy
	Running   bool
	ShowHUD   bool
	Telemetry []float64 // ring buffer of kinetic energy
	Err       error

	quit bool
	log  *log.Logger
}

// initWindow opens the window at the configured size, then grows it to the
// desktop resolution unless fixed is set. It returns the final size.
func initWindow(c *config.Config, fixed bool) (int, int) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	rl.InitWindow(int32(c.Window.Width), int32(c.Window.Height), "bouncelab")
	rl.SetTargetFPS(int32(c.FPS))
	rl.SetExitKey(0)

	w, h := c.Window.Width, c.Window.Height
	if !fixed {
		mon := rl.GetCurrentMonitor()
		if mw, mh := rl.GetMonitorWidth(mon), rl.GetMonitorHeight(mon); mw > 0 && mh > 0 {
			w, h = mw, mh
			rl.SetWindowSize(w, h)
		}
	}
	return w, h
}

// measureText sizes labels with raylib's default font.
func measureText(text string, charSize int) (float64, float64) {
	return float64(rl.MeasureText(text, int32(charSize))), float64(charSize)
}

func NewApp(w *sim.World, name string, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	energy := metrics.NewKineticEnergy(maxTelemetry)
	w.AddMetric(energy)
	return &App{
		World:     w,
		Name:      name,
		Clock:     sim.NewClock(),
		Energy:    energy,
		Running:   true,
		ShowHUD:   true,
		Telemetry: make([]float64, 0, maxTelemetry),
		log:       logger,
	}
}

// Run opens a window and blocks until it is closed.
func Run(opts Options) error {
	cfg := *opts.Config
	w, h := initWindow(&cfg, opts.FixedSize)
	defer rl.CloseWindow()

	cfg.Window.Width, cfg.Window.Height = w, h
	wc, err := cfg.World()
	if err != nil {
		return err
	}
	wc.Measure = measureText
	wc.Logger = opts.Logger

	app := NewApp(sim.New(wc), opts.Name, opts.Logger)
	app.log.Printf("[gui] window %dx%d, %d bodies", w, h, app.World.NumBodies())
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.quit = true
		return
	}
	mouse := rl.GetMousePosition()
	cursor := dynamo.Vec2{X: float64(mouse.X), Y: float64(mouse.Y)}

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyG):
		a.dispatch(sim.ToggleGravity{})
	case rl.IsKeyPressed(rl.KeyI):
		a.dispatch(sim.Intro{})
	case rl.IsKeyPressed(rl.KeyL):
		a.dispatch(sim.AddLabel{Text: "bounce", Pos: &cursor})
	case rl.IsKeyPressed(rl.KeyW):
		a.dispatch(sim.AddLabel{Text: "wall", Pos: &cursor, Color: wallColor})
	case rl.IsKeyPressed(rl.KeyF):
		if id, ok := a.World.OldestLabel(); ok {
			a.dispatch(sim.FadeOutLabel{ID: id})
		}
	case rl.IsKeyPressed(rl.KeyH):
		a.ShowHUD = !a.ShowHUD
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		if h, ok := a.World.BodyAt(cursor); ok {
			a.dispatch(sim.Flash{Handle: h})
		} else {
			a.dispatch(sim.Spawn{Pos: cursor})
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		if id, ok := a.World.LabelAt(cursor); ok {
			a.dispatch(sim.FadeOutLabel{ID: id})
		}
	}

	dt := a.Clock.Tick()
	if !a.Running {
		return
	}
	if err := a.World.Step(dt); err != nil {
		a.log.Printf("[gui] step failed: %v", err)
		a.Err = err
		a.Running = false
		return
	}
	a.Telemetry = pushRing(a.Telemetry, a.Energy.Current(), maxTelemetry)
}

func (a *App) dispatch(ev sim.Event) {
	if err := a.World.Dispatch(ev); err != nil {
		a.log.Printf("[gui] %T: %v", ev, err)
	}
}

func pushRing(buf []float64, v float64, capacity int) []float64 {
	if len(buf) >= capacity {
		copy(buf, buf[1:])
		buf = buf[:len(buf)-1]
	}
	return append(buf, v)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	f := a.World.Snapshot()
	a.drawLabels(f)
	a.drawBodies(f)
	if a.ShowHUD {
		a.DrawHUD(f)
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD(f *sim.Frame) {
	a.drawText("bouncelab", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Name), 170, 34, 16, ColText)

	a.DrawTelemetry()

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	right := int(f.Size.X) - 130
	bottom := int(f.Size.Y) - 40
	a.drawText(status, right, 30, 16, col)
	a.drawText(fmt.Sprintf("GRAVITY %s", onOff(f.Gravity)), right, 52, 14, ColText)
	if f.Intro {
		a.drawText("INTRO", right, 72, 14, ColAccent)
	}

	a.drawText(fmt.Sprintf("%d FPS  %d BODIES  %d LABELS", rl.GetFPS(), len(f.Bodies), len(f.Labels)), 30, bottom, 14, ColTextDim)
	a.drawText("[SPACE] PAUSE  [G] GRAVITY  [I] INTRO  [L/W] LABEL  [F] FADE  [H] HUD  [Q] QUIT", 30, bottom-22, 14, ColTextDim)
	if a.Err != nil {
		a.drawText(a.Err.Error(), 30, bottom-44, 14, rl.Red)
	}
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawText(text, int32(x), int32(y), int32(size), color)
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
