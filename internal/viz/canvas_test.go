package viz

import (
	"image/color"
	"strings"
	"testing"
)

var red = color.RGBA{R: 255, A: 255}

func TestCanvasSet(t *testing.T) {
	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, 0x2801},
		{1, 0, 0x2808},
		{0, 3, 0x2840},
		{1, 3, 0x2880},
	}
	for _, tt := range tests {
		c := NewCanvas(2, 2)
		c.Set(tt.x, tt.y)
		if got := c.Grid[0][0]; got != tt.want {
			t.Errorf("Set(%d, %d) cell = %U, want %U", tt.x, tt.y, got, tt.want)
		}
	}

	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 8)
	if c.String() != strings.Repeat(string(rune(blank))+string(rune(blank))+"\n", 2) {
		t.Error("out of range dots were drawn")
	}
}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(10, 10, 3, red)

	if c.Grid[10/4][10/2] == blank {
		t.Error("center not lit")
	}
	if c.Colors[10/4][10/2] != red {
		t.Errorf("center color = %v", c.Colors[10/4][10/2])
	}
	if c.Grid[0][9] != blank {
		t.Error("far cell lit")
	}

	c.Clear()
	c.FillCircle(0, 0, 0, red)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("tiny circle cell = %U", c.Grid[0][0])
	}
}

func TestPutTextBlocksDots(t *testing.T) {
	c := NewCanvas(6, 2)
	c.PutText(1, 0, "hey", red)
	c.FillCircle(4, 2, 3, color.RGBA{G: 255, A: 255})

	if got := string(c.Grid[0][1:4]); got != "hey" {
		t.Errorf("text = %q", got)
	}
	if c.Colors[0][2] != red {
		t.Error("dots recolored a text cell")
	}

	c.PutText(4, 1, "overflow", red)
	if string(c.Grid[1][4:]) != "ov" {
		t.Errorf("clipped text = %q", string(c.Grid[1][4:]))
	}
}

func TestRenderKeepsGlyphs(t *testing.T) {
	c := NewCanvas(4, 1)
	c.PutText(0, 0, "ab", red)
	out := c.Render()
	if !strings.Contains(out, "a") || !strings.Contains(out, "b") {
		t.Errorf("render lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("render has %d lines", strings.Count(out, "\n"))
	}
}

func TestHexColor(t *testing.T) {
	if got := HexColor(color.RGBA{R: 255, G: 128, B: 0, A: 255}); got != "#ff8000" {
		t.Errorf("HexColor = %s", got)
	}
}

func TestDim(t *testing.T) {
	if got := Dim(red, 0); got != (color.RGBA{A: 255}) {
		t.Errorf("Dim(red, 0) = %v", got)
	}
	if got := Dim(red, 1); got != red {
		t.Errorf("Dim(red, 1) = %v", got)
	}
}

func TestNextTheme(t *testing.T) {
	seen := map[string]bool{}
	th := Themes[0]
	for range Themes {
		seen[th.Name] = true
		th = NextTheme(th.Name)
	}
	if len(seen) != len(Themes) || th.Name != Themes[0].Name {
		t.Errorf("cycle visited %v and ended on %s", seen, th.Name)
	}
	if GetTheme("nope").Name != Themes[0].Name {
		t.Error("unknown theme should fall back to the first")
	}
}
