package metrics

import (
	"github.com/san-kum/bouncelab/internal/physics"
	"github.com/san-kum/bouncelab/internal/sim"
)

// ContactRate is the mean number of collision events per frame.
type ContactRate struct {
	name    string
	totals  physics.Contacts
	last    physics.Contacts
	samples int
}

func NewContactRate() *ContactRate {
	return &ContactRate{name: "contacts_per_frame"}
}

func (c *ContactRate) Name() string { return c.name }

func (c *ContactRate) Observe(f *sim.Frame) {
	c.last = f.Contacts
	c.totals.Bodies += f.Contacts.Bodies
	c.totals.Walls += f.Contacts.Walls
	c.totals.Labels += f.Contacts.Labels
	c.samples++
}

func (c *ContactRate) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	n := c.totals.Bodies + c.totals.Walls + c.totals.Labels
	return float64(n) / float64(c.samples)
}

func (c *ContactRate) Totals() physics.Contacts { return c.totals }
func (c *ContactRate) Last() physics.Contacts   { return c.last }

func (c *ContactRate) Reset() {
	c.totals = physics.Contacts{}
	c.last = physics.Contacts{}
	c.samples = 0
}

// Containment is the fraction of frames in which every body sat inside the
// window. Positions within tolerance pixels of the limit count as inside.
type Containment struct {
	name       string
	tolerance  float64
	violations int
	samples    int
}

func NewContainment(tolerance float64) *Containment {
	return &Containment{
		name:      "containment",
		tolerance: tolerance,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(f *sim.Frame) {
	c.samples++
	for _, b := range f.Bodies {
		if !c.inside(b, f) {
			c.violations++
			break
		}
	}
}

func (c *Containment) inside(b sim.BodySnapshot, f *sim.Frame) bool {
	lo := b.Radius - c.tolerance
	if b.Pos.X < lo || b.Pos.X > f.Size.X-lo || b.Pos.Y > f.Size.Y-lo {
		return false
	}
	return f.Intro || b.Pos.Y >= lo
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
