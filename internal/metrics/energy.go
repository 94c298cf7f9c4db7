package metrics

import "github.com/san-kum/bouncelab/internal/sim"

// DefaultHistory is how many samples KineticEnergy keeps for plotting.
const DefaultHistory = 120

// KineticEnergy tracks the total ½mv² of all bodies, with speeds in m/s.
// Value is the mean over all observed frames.
type KineticEnergy struct {
	name    string
	current float64
	total   float64
	samples int
	history []float64
	limit   int
}

func NewKineticEnergy(history int) *KineticEnergy {
	if history <= 0 {
		history = DefaultHistory
	}
	return &KineticEnergy{
		name:    "kinetic_energy",
		limit:   history,
		history: make([]float64, 0, history),
	}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(f *sim.Frame) {
	ke := 0.0
	for _, b := range f.Bodies {
		ke += 0.5 * b.Mass * b.Velocity.LengthSquared()
	}
	e.current = ke
	e.total += ke
	e.samples++

	if len(e.history) == e.limit {
		copy(e.history, e.history[1:])
		e.history = e.history[:e.limit-1]
	}
	e.history = append(e.history, ke)
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

// Current is the energy of the last observed frame.
func (e *KineticEnergy) Current() float64 { return e.current }

// History returns the most recent samples, oldest first. The slice is
// reused by later observations.
func (e *KineticEnergy) History() []float64 { return e.history }

func (e *KineticEnergy) Reset() {
	e.current = 0
	e.total = 0
	e.samples = 0
	e.history = e.history[:0]
}
