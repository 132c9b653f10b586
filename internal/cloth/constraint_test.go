package cloth

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func twoParticles(a, b Particle) *Particles {
	return newParticles([]Particle{a, b})
}

func TestNewConstraint(t *testing.T) {
	ps := twoParticles(NewParticle(0, 0), NewParticle(3, 4))

	c, err := NewConstraint(ps, 0, 1)
	if err != nil {
		t.Fatalf("NewConstraint failed: %v", err)
	}
	if c.RestLength() != 5 {
		t.Errorf("expected rest length 5, got %f", c.RestLength())
	}
	if !c.Active() {
		t.Error("new constraint should be active")
	}
	if i, j := c.Indices(); i != 0 || j != 1 {
		t.Errorf("expected indices (0, 1), got (%d, %d)", i, j)
	}
}

func TestNewConstraint_Invalid(t *testing.T) {
	ps := twoParticles(NewParticle(0, 0), NewParticle(3, 4))

	tests := []struct {
		name string
		i, j int
		want error
	}{
		{"self loop", 1, 1, ErrSelfLoop},
		{"negative", -1, 0, ErrIndexOutOfRange},
		{"past end", 0, 2, ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConstraint(ps, tt.i, tt.j)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestConstraint_SatisfyRestoresLength(t *testing.T) {
	ps := twoParticles(NewParticle(0, 0), NewParticle(10, 0))
	c, _ := NewConstraint(ps, 0, 1)

	a, b := ps.Pair(0, 1)
	a.Position = mgl64.Vec2{-2, 0}
	b.Position = mgl64.Vec2{12, 0}

	c.Satisfy(ps)

	if got := c.Length(ps); math.Abs(got-10) > 1e-9 {
		t.Errorf("expected length 10 after satisfy, got %f", got)
	}
	if got := ps.Position(0); !got.ApproxEqualThreshold(mgl64.Vec2{0, 0}, 1e-9) {
		t.Errorf("expected p1 at (0, 0), got %v", got)
	}
	if got := ps.Position(1); !got.ApproxEqualThreshold(mgl64.Vec2{10, 0}, 1e-9) {
		t.Errorf("expected p2 at (10, 0), got %v", got)
	}
}

func TestConstraint_AfterIntegrateAlreadySatisfied(t *testing.T) {
	ps := twoParticles(NewParticle(0, 0), NewParticle(7, 0))
	c, _ := NewConstraint(ps, 0, 1)

	for i := 0; i < ps.Len(); i++ {
		ps.items[i].Integrate(0.1)
	}
	c.Satisfy(ps)

	if got := c.Length(ps); math.Abs(got-7) > 1e-9 {
		t.Errorf("expected distance 7, got %f", got)
	}
}

func TestConstraint_SatisfyIdempotent(t *testing.T) {
	ps := twoParticles(NewParticle(1, 2), NewParticle(4, 6))
	c, _ := NewConstraint(ps, 0, 1)

	before := []mgl64.Vec2{ps.Position(0), ps.Position(1)}
	for i := 0; i < 10; i++ {
		c.Satisfy(ps)
	}

	for i, want := range before {
		if got := ps.Position(i); got != want {
			t.Errorf("particle %d moved from %v to %v", i, want, got)
		}
	}
}

func TestConstraint_PinnedAbsorbsNothing(t *testing.T) {
	ps := twoParticles(NewPinnedParticle(0, 0), NewParticle(10, 0))
	c, _ := NewConstraint(ps, 0, 1)

	_, b := ps.Pair(0, 1)
	b.Position = mgl64.Vec2{14, 0}
	c.Satisfy(ps)

	if got := ps.Position(0); got != (mgl64.Vec2{0, 0}) {
		t.Errorf("pinned end moved to %v", got)
	}
	// free end takes only its half of the correction
	if got := ps.Position(1); !got.ApproxEqualThreshold(mgl64.Vec2{12, 0}, 1e-9) {
		t.Errorf("expected free end at (12, 0), got %v", got)
	}
}

func TestConstraint_BothPinned(t *testing.T) {
	ps := twoParticles(NewPinnedParticle(0, 0), NewPinnedParticle(10, 0))
	c, _ := NewConstraint(ps, 0, 1)
	c.rest = 4
	c.Satisfy(ps)

	if ps.Position(0) != (mgl64.Vec2{0, 0}) || ps.Position(1) != (mgl64.Vec2{10, 0}) {
		t.Error("constraint between two pinned particles should have no effect")
	}
}

func TestConstraint_DegenerateLengthSkipped(t *testing.T) {
	ps := twoParticles(NewParticle(0, 0), NewParticle(5, 0))
	c, _ := NewConstraint(ps, 0, 1)

	_, b := ps.Pair(0, 1)
	b.Position = mgl64.Vec2{0, 0}
	c.Satisfy(ps)

	for i := 0; i < 2; i++ {
		p := ps.Position(i)
		if math.IsNaN(p.X()) || math.IsNaN(p.Y()) {
			t.Fatalf("particle %d became NaN", i)
		}
		if p != (mgl64.Vec2{0, 0}) {
			t.Errorf("particle %d moved to %v", i, p)
		}
	}
}

func TestConstraint_Deactivate(t *testing.T) {
	ps := twoParticles(NewParticle(0, 0), NewParticle(10, 0))
	c, _ := NewConstraint(ps, 0, 1)

	c.Deactivate()
	c.Deactivate()
	if c.Active() {
		t.Fatal("constraint still active after Deactivate")
	}

	_, b := ps.Pair(0, 1)
	b.Position = mgl64.Vec2{30, 0}
	c.Satisfy(ps)

	if got := ps.Position(1); got != (mgl64.Vec2{30, 0}) {
		t.Errorf("inactive constraint moved particle to %v", got)
	}
}

func TestRelax_MoreSweepsConvergeCloser(t *testing.T) {
	residual := func(sweeps int) float64 {
		ps := newParticles([]Particle{
			NewPinnedParticle(0, 0),
			NewParticle(10, 0),
			NewParticle(20, 0),
			NewParticle(30, 0),
		})
		cs := make([]Constraint, 0, 3)
		for i := 0; i < 3; i++ {
			c, _ := NewConstraint(ps, i, i+1)
			cs = append(cs, c)
		}
		ps.items[3].Position = mgl64.Vec2{45, 0}

		Relax(ps, cs, sweeps)

		total := 0.0
		for i := range cs {
			total += math.Abs(cs[i].Length(ps) - cs[i].RestLength())
		}
		return total
	}

	one, ten := residual(1), residual(10)
	if ten >= one {
		t.Errorf("expected 10 sweeps (%f) to beat 1 sweep (%f)", ten, one)
	}
}

func TestRelax_Deterministic(t *testing.T) {
	run := func() []mgl64.Vec2 {
		ps := newParticles([]Particle{NewPinnedParticle(0, 0), NewParticle(3, 1), NewParticle(5, 7)})
		c1, _ := NewConstraint(ps, 0, 1)
		c2, _ := NewConstraint(ps, 1, 2)
		c3, _ := NewConstraint(ps, 2, 0)
		ps.items[2].Position = mgl64.Vec2{9, 9}
		Relax(ps, []Constraint{c1, c2, c3}, 4)
		return []mgl64.Vec2{ps.Position(0), ps.Position(1), ps.Position(2)}
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("particle %d differs between runs: %v vs %v", i, a[i], b[i])
		}
	}
}
