package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/bouncelab/internal/dynamo"
	"github.com/san-kum/bouncelab/internal/physics"
	"github.com/san-kum/bouncelab/internal/sim"
)

func frameWith(bodies ...sim.BodySnapshot) *sim.Frame {
	return &sim.Frame{Size: dynamo.Vec2{X: 800, Y: 600}, Bodies: bodies}
}

func TestKineticEnergy(t *testing.T) {
	m := NewKineticEnergy(3)

	m.Observe(frameWith(
		sim.BodySnapshot{Mass: 2, Velocity: dynamo.Vec2{X: 3, Y: 4}},
		sim.BodySnapshot{Mass: 1, Velocity: dynamo.Vec2{X: 0, Y: 2}},
	))
	if math.Abs(m.Current()-27) > 1e-9 {
		t.Errorf("expected energy 27, got %f", m.Current())
	}

	m.Observe(frameWith())
	if math.Abs(m.Value()-13.5) > 1e-9 {
		t.Errorf("expected mean 13.5, got %f", m.Value())
	}
}

func TestKineticEnergyHistory(t *testing.T) {
	m := NewKineticEnergy(3)
	for i := 1; i <= 5; i++ {
		m.Observe(frameWith(sim.BodySnapshot{Mass: 2, Velocity: dynamo.Vec2{X: float64(i)}}))
	}

	h := m.History()
	want := []float64{9, 16, 25}
	if len(h) != len(want) {
		t.Fatalf("history len %d, want %d", len(h), len(want))
	}
	for i := range want {
		if h[i] != want[i] {
			t.Errorf("history[%d] = %v, want %v", i, h[i], want[i])
		}
	}
}

func TestKineticEnergyReset(t *testing.T) {
	m := NewKineticEnergy(0)
	m.Observe(frameWith(sim.BodySnapshot{Mass: 1, Velocity: dynamo.Vec2{X: 1}}))
	if m.Value() == 0 {
		t.Error("expected non-zero energy")
	}

	m.Reset()
	if m.Value() != 0 || len(m.History()) != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestContactRate(t *testing.T) {
	m := NewContactRate()
	m.Observe(&sim.Frame{Contacts: physics.Contacts{Bodies: 2, Walls: 1}})
	m.Observe(&sim.Frame{Contacts: physics.Contacts{Labels: 3}})

	if m.Value() != 3 {
		t.Errorf("expected 3 contacts per frame, got %f", m.Value())
	}
	if m.Totals() != (physics.Contacts{Bodies: 2, Walls: 1, Labels: 3}) {
		t.Errorf("totals = %+v", m.Totals())
	}
	if m.Last().Labels != 3 {
		t.Errorf("last = %+v", m.Last())
	}
}

func TestContainment(t *testing.T) {
	tests := []struct {
		name  string
		pos   dynamo.Vec2
		intro bool
		want  float64
	}{
		{"inside", dynamo.Vec2{X: 400, Y: 300}, false, 1},
		{"on the edge", dynamo.Vec2{X: 30, Y: 570}, false, 1},
		{"past the floor", dynamo.Vec2{X: 400, Y: 590}, false, 0},
		{"above the top", dynamo.Vec2{X: 400, Y: -20}, false, 0},
		{"above the top during intro", dynamo.Vec2{X: 400, Y: -20}, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewContainment(1e-6)
			f := frameWith(sim.BodySnapshot{Pos: tt.pos, Radius: 30})
			f.Intro = tt.intro
			m.Observe(f)
			if got := m.Value(); got != tt.want {
				t.Errorf("Value() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMetricsOnWorld(t *testing.T) {
	cfg := sim.DefaultConfig(800, 600)
	cfg.Seed = 4
	w := sim.New(cfg)
	ke := NewKineticEnergy(0)
	cont := NewContainment(1e-6)
	w.AddMetric(ke)
	w.AddMetric(cont)

	res, err := w.Run(t.Context(), 120, 1.0/60)
	if err != nil {
		t.Fatal(err)
	}
	if res.Metrics["containment"] != 1 {
		t.Errorf("bodies escaped: containment = %v", res.Metrics["containment"])
	}
	if res.Metrics["kinetic_energy"] <= 0 {
		t.Error("falling bodies should carry kinetic energy")
	}
}
