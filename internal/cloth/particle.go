package cloth

import "github.com/go-gl/mathgl/mgl64"

// Particle is a point mass integrated with position Verlet. Velocity is
// implicit in Position - Previous.
type Particle struct {
	Position     mgl64.Vec2
	Previous     mgl64.Vec2
	Acceleration mgl64.Vec2
	pinned       bool
}

func NewParticle(x, y float64) Particle {
	p := mgl64.Vec2{x, y}
	return Particle{Position: p, Previous: p}
}

// NewPinnedParticle returns an anchor with infinite effective mass.
func NewPinnedParticle(x, y float64) Particle {
	p := NewParticle(x, y)
	p.pinned = true
	return p
}

func (p *Particle) Pinned() bool { return p.pinned }

// Velocity returns the displacement over the last step.
func (p *Particle) Velocity() mgl64.Vec2 {
	return p.Position.Sub(p.Previous)
}

// ApplyForce accumulates force until the next Integrate. Pinned particles
// ignore it.
func (p *Particle) ApplyForce(force mgl64.Vec2) {
	if p.pinned {
		return
	}
	p.Acceleration = p.Acceleration.Add(force)
}

func (p *Particle) Integrate(dt float64) {
	if p.pinned {
		return
	}
	velocity := p.Position.Sub(p.Previous)
	p.Previous = p.Position
	p.Position = p.Position.Add(velocity).Add(p.Acceleration.Mul(dt * dt))
	p.Acceleration = mgl64.Vec2{}
}

// ClampToBounds keeps the particle inside the bounds inset by the margin.
// It applies regardless of pin state.
func (p *Particle) ClampToBounds(b Bounds) {
	p.Position[0] = clamp(p.Position[0], b.Margin, b.Width-b.Margin)
	p.Position[1] = clamp(p.Position[1], b.Margin, b.Height-b.Margin)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}
