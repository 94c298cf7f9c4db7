// Package arcade is an Ebitengine front end for a sim.World.
package arcade

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/bouncelab/internal/config"
	"github.com/san-kum/bouncelab/internal/dynamo"
	"github.com/san-kum/bouncelab/internal/sim"
)

var (
	background = color.RGBA{R: 10, G: 10, B: 10, A: 255}
	wallColor  = color.RGBA{R: 255, G: 120, B: 40, A: 255}
)

// Options configures a window session.
type Options struct {
	Config    *config.Config
	Name      string
	FixedSize bool
	Logger    *log.Logger
}

type Game struct {
	world   *sim.World
	name    string
	clock   *sim.Clock
	fonts   *fontCache
	width   int
	height  int
	running bool
	showHUD bool
	err     error
	log     *log.Logger
}

// Run opens a window and blocks until it is closed.
func Run(opts Options) error {
	cfg := *opts.Config
	if !opts.FixedSize {
		if w, h := ebiten.Monitor().Size(); w > 0 && h > 0 {
			cfg.Window.Width, cfg.Window.Height = w, h
		}
	}
	g, err := NewGame(&cfg, opts.Name, opts.Logger)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle("bouncelab")
	ebiten.SetTPS(cfg.FPS)
	g.log.Printf("[arcade] window %dx%d, %d bodies", g.width, g.height, g.world.NumBodies())

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// NewGame builds the world for cfg, sizing labels with the game's fonts.
func NewGame(cfg *config.Config, name string, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	fonts, err := newFontCache()
	if err != nil {
		return nil, err
	}
	wc, err := cfg.World()
	if err != nil {
		return nil, err
	}
	wc.Measure = fonts.measure
	wc.Logger = logger

	return &Game{
		world:   sim.New(wc),
		name:    name,
		clock:   sim.NewClock(),
		fonts:   fonts,
		width:   cfg.Window.Width,
		height:  cfg.Window.Height,
		running: true,
		showHUD: true,
		log:     logger,
	}, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	mx, my := ebiten.CursorPosition()
	cursor := dynamo.Vec2{X: float64(mx), Y: float64(my)}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.running = !g.running
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.dispatch(sim.ToggleGravity{})
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		g.dispatch(sim.Intro{})
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		g.dispatch(sim.AddLabel{Text: "bounce", Pos: &cursor})
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		g.dispatch(sim.AddLabel{Text: "wall", Pos: &cursor, Color: wallColor})
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		if id, ok := g.world.OldestLabel(); ok {
			g.dispatch(sim.FadeOutLabel{ID: id})
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.showHUD = !g.showHUD
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if h, ok := g.world.BodyAt(cursor); ok {
			g.dispatch(sim.Flash{Handle: h})
		} else {
			g.dispatch(sim.Spawn{Pos: cursor})
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		if id, ok := g.world.LabelAt(cursor); ok {
			g.dispatch(sim.FadeOutLabel{ID: id})
		}
	}

	dt := g.clock.Tick()
	if !g.running {
		return nil
	}
	if err := g.world.Step(dt); err != nil {
		g.log.Printf("[arcade] step failed: %v", err)
		g.err = err
		g.running = false
	}
	return nil
}

func (g *Game) dispatch(ev sim.Event) {
	if err := g.world.Dispatch(ev); err != nil {
		g.log.Printf("[arcade] %T: %v", ev, err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	f := g.world.Snapshot()

	for _, l := range f.Labels {
		if l.Alpha <= 0 {
			continue
		}
		x := l.Pos.X - l.Size.X/2
		y := l.Pos.Y - l.Size.Y/2
		if l.Collidable {
			outline := l.Color
			outline.A = uint8(l.Alpha * 80)
			vector.StrokeRect(screen, float32(x), float32(y), float32(l.Size.X), float32(l.Size.Y), 1, outline, false)
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(l.Color)
		text.Draw(screen, l.Text, g.fonts.face(l.CharSize), op)
	}

	for _, b := range f.Bodies {
		vector.DrawFilledCircle(screen, float32(b.Pos.X), float32(b.Pos.Y), float32(b.Radius), b.Color, true)
	}

	if g.showHUD {
		status := "RUNNING"
		if !g.running {
			status = "PAUSED"
		}
		hud := fmt.Sprintf("%s :: %s  %.0f FPS\nbodies %d  labels %d  gravity %v  intro %v\n[SPACE] pause [G] gravity [I] intro [L/W] label [F] fade [H] hud [Q] quit",
			g.name, status, ebiten.ActualFPS(), len(f.Bodies), len(f.Labels), f.Gravity, f.Intro)
		if g.err != nil {
			hud += "\n" + g.err.Error()
		}
		ebitenutil.DebugPrintAt(screen, hud, 10, 10)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
