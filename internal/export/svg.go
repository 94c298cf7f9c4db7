// Package export writes simulation frames as SVG pictures.
package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/bouncelab/internal/dynamo"
	"github.com/san-kum/bouncelab/internal/sim"
)

// Trails records the recent positions of every body. It is a sim.Observer.
type Trails struct {
	capacity int
	paths    map[sim.BodyHandle][]dynamo.Vec2
}

func NewTrails(capacity int) *Trails {
	if capacity < 2 {
		capacity = 2
	}
	return &Trails{capacity: capacity, paths: make(map[sim.BodyHandle][]dynamo.Vec2)}
}

func (t *Trails) OnFrame(f *sim.Frame) {
	for _, b := range f.Bodies {
		p := t.paths[b.Handle]
		if len(p) >= t.capacity {
			p = p[1:]
		}
		t.paths[b.Handle] = append(p, b.Pos)
	}
}

// Path returns the recorded positions of h, oldest first.
func (t *Trails) Path(h sim.BodyHandle) []dynamo.Vec2 { return t.paths[h] }

// FrameToSVG draws f at its pixel size: labels as text, bodies as filled
// circles, and the trails under them when trails is non-nil.
func FrameToSVG(f *sim.Frame, trails *Trails) string {
	if f == nil {
		return ""
	}
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, f.Size.X, f.Size.Y, f.Size.X, f.Size.Y))

	if trails != nil {
		sb.WriteString(`<g fill="none" stroke-width="1.5" stroke-opacity="0.4">` + "\n")
		for _, b := range f.Bodies {
			path := trails.Path(b.Handle)
			if len(path) < 2 {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<path stroke="%s" d="`, hex(b.Color.R, b.Color.G, b.Color.B)))
			for i, p := range path {
				if i == 0 {
					sb.WriteString(fmt.Sprintf("M%.1f,%.1f", p.X, p.Y))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
				}
			}
			sb.WriteString(`"/>` + "\n")
		}
		sb.WriteString("</g>\n")
	}

	for _, l := range f.Labels {
		if l.Alpha <= 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="monospace" font-size="%d" text-anchor="middle" dominant-baseline="middle" fill="%s" fill-opacity="%.2f">%s</text>
`, l.Pos.X, l.Pos.Y, l.CharSize, hex(l.Color.R, l.Color.G, l.Color.B), l.Alpha, html.EscapeString(l.Text)))
	}

	for _, b := range f.Bodies {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, b.Pos.X, b.Pos.Y, b.Radius, hex(b.Color.R, b.Color.G, b.Color.B)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func hex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
