package cloth

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the segment length at or below which a constraint skips its
// correction for the pass.
const Epsilon = 1e-9

// Constraint keeps two particles at the distance they had when it was
// created. It references particles by index and never owns them.
type Constraint struct {
	p1, p2 int
	rest   float64
	active bool
}

// NewConstraint links particles i and j at their current distance.
func NewConstraint(ps *Particles, i, j int) (Constraint, error) {
	if i == j {
		return Constraint{}, fmt.Errorf("%w: index %d", ErrSelfLoop, i)
	}
	if !ps.valid(i) || !ps.valid(j) {
		return Constraint{}, fmt.Errorf("%w: (%d, %d) with %d particles", ErrIndexOutOfRange, i, j, ps.Len())
	}
	return Constraint{
		p1:     i,
		p2:     j,
		rest:   ps.Position(j).Sub(ps.Position(i)).Len(),
		active: true,
	}, nil
}

// Satisfy moves both ends halfway toward the rest length. Pinned ends
// absorb no correction.
func (c *Constraint) Satisfy(ps *Particles) {
	if !c.active {
		return
	}
	p1, p2 := ps.Pair(c.p1, c.p2)

	delta := p2.Position.Sub(p1.Position)
	current := delta.Len()
	if current <= Epsilon {
		return
	}

	difference := (current - c.rest) / current
	correction := delta.Mul(0.5 * difference)

	if !p1.pinned {
		p1.Position = p1.Position.Add(correction)
	}
	if !p2.pinned {
		p2.Position = p2.Position.Sub(correction)
	}
}

func (c *Constraint) Deactivate() { c.active = false }

func (c *Constraint) Active() bool        { return c.active }
func (c *Constraint) RestLength() float64 { return c.rest }
func (c *Constraint) Indices() (int, int) { return c.p1, c.p2 }

func (c *Constraint) P1Position(ps *Particles) mgl64.Vec2 { return ps.Position(c.p1) }
func (c *Constraint) P2Position(ps *Particles) mgl64.Vec2 { return ps.Position(c.p2) }

// Length returns the current distance between the two ends.
func (c *Constraint) Length(ps *Particles) float64 {
	return c.P2Position(ps).Sub(c.P1Position(ps)).Len()
}

// Relax runs sweeps full Gauss-Seidel passes over constraints in slice order.
func Relax(ps *Particles, constraints []Constraint, sweeps int) {
	for s := 0; s < sweeps; s++ {
		for i := range constraints {
			constraints[i].Satisfy(ps)
		}
	}
}
