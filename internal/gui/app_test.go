package gui

import (
	"image/color"
	"testing"
)

func TestPushRing(t *testing.T) {
	var buf []float64
	for i := 1; i <= 5; i++ {
		buf = pushRing(buf, float64(i), 3)
	}
	if len(buf) != 3 || buf[0] != 3 || buf[2] != 5 {
		t.Errorf("ring = %v, want [3 4 5]", buf)
	}
}

func TestToColor(t *testing.T) {
	c := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	tests := []struct {
		alpha float64
		want  uint8
	}{
		{1, 255},
		{0, 0},
		{-1, 0},
		{2, 255},
		{0.5, 127},
	}
	for _, tt := range tests {
		got := toColor(c, tt.alpha)
		if got.A != tt.want || got.R != 10 || got.B != 30 {
			t.Errorf("toColor(%v) = %+v", tt.alpha, got)
		}
	}
}
