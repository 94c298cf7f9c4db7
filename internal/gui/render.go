package gui

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/bouncelab/internal/sim"
)

func toColor(c color.RGBA, alpha float64) rl.Color {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	return rl.NewColor(c.R, c.G, c.B, uint8(alpha*255))
}

func (a *App) drawBodies(f *sim.Frame) {
	for _, b := range f.Bodies {
		center := rl.NewVector2(float32(b.Pos.X), float32(b.Pos.Y))
		rl.DrawCircleV(center, float32(b.Radius), toColor(b.Color, 1))
	}
}

// drawLabels centers each label on its position. Solid labels get a faint
// outline of their collision box.
func (a *App) drawLabels(f *sim.Frame) {
	for _, l := range f.Labels {
		if l.Alpha <= 0 {
			continue
		}
		x := int32(l.Pos.X - l.Size.X/2)
		y := int32(l.Pos.Y - l.Size.Y/2)
		if l.Collidable {
			rl.DrawRectangleLines(x, y, int32(l.Size.X), int32(l.Size.Y), toColor(l.Color, l.Alpha*0.3))
		}
		rl.DrawText(l.Text, x, y, int32(l.CharSize), toColor(l.Color, 1))
	}
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}
	rectX, rectY := float32(30), float32(80)
	width, height := float32(200), float32(60)
	rl.DrawRectangleLines(int32(rectX), int32(rectY), int32(width), int32(height), ColGrid)

	lo, hi := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, v := range a.Telemetry {
		px := rectX + float32(i)/float32(maxTelemetry-1)*width
		py := rectY + height - float32((v-lo)/span)*height
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("KE: %.2e J", a.Telemetry[len(a.Telemetry)-1]), int(rectX+width+10), int(rectY+height-10), 14, ColText)
}
