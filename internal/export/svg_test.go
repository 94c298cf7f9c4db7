package export

import (
	"image/color"
	"strings"
	"testing"

	"github.com/san-kum/bouncelab/internal/dynamo"
	"github.com/san-kum/bouncelab/internal/sim"
)

func testFrame() *sim.Frame {
	return &sim.Frame{
		Size: dynamo.Vec2{X: 400, Y: 300},
		Bodies: []sim.BodySnapshot{
			{Handle: 0, Pos: dynamo.Vec2{X: 100, Y: 50}, Radius: 30, Color: color.RGBA{R: 255, A: 255}},
		},
		Labels: []sim.LabelSnapshot{
			{Text: "a<b", Pos: dynamo.Vec2{X: 200, Y: 150}, CharSize: 30, Color: color.RGBA{G: 255, A: 255}, Alpha: 0.5},
			{Text: "hidden", Alpha: 0},
		},
	}
}

func TestFrameToSVG(t *testing.T) {
	svg := FrameToSVG(testFrame(), nil)

	for _, want := range []string{
		`width="400" height="300"`,
		`<circle cx="100.0" cy="50.0" r="30.0" fill="#ff0000"/>`,
		`fill-opacity="0.50">a&lt;b</text>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %s", want)
		}
	}
	if strings.Contains(svg, "hidden") {
		t.Error("invisible label was drawn")
	}
	if strings.Contains(svg, "<path") {
		t.Error("trails drawn without a recorder")
	}
	if FrameToSVG(nil, nil) != "" {
		t.Error("nil frame should give empty output")
	}
}

func TestTrails(t *testing.T) {
	tr := NewTrails(3)
	f := testFrame()
	for i := 0; i < 5; i++ {
		f.Bodies[0].Pos.X = float64(i)
		tr.OnFrame(f)
	}
	path := tr.Path(0)
	if len(path) != 3 || path[0].X != 2 || path[2].X != 4 {
		t.Errorf("path = %v, want x 2..4", path)
	}

	svg := FrameToSVG(f, tr)
	if !strings.Contains(svg, `<path stroke="#ff0000" d="M2.0,50.0 L3.0,50.0 L4.0,50.0"/>`) {
		t.Errorf("trail not drawn:\n%s", svg)
	}
}
