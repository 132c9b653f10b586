package cloth

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Particles is a fixed-size arena of particles addressed by index.
type Particles struct {
	items []Particle
}

func newParticles(items []Particle) *Particles {
	ps := &Particles{items: make([]Particle, len(items))}
	copy(ps.items, items)
	return ps
}

func (ps *Particles) Len() int { return len(ps.items) }

// At returns a copy of the particle at i.
func (ps *Particles) At(i int) Particle { return ps.items[i] }

func (ps *Particles) Position(i int) mgl64.Vec2 { return ps.items[i].Position }

func (ps *Particles) valid(i int) bool { return i >= 0 && i < len(ps.items) }

// Pair returns mutable views of two distinct particles. Asking for the same
// index twice is a programming error and panics.
func (ps *Particles) Pair(i, j int) (*Particle, *Particle) {
	if i == j {
		panic(fmt.Sprintf("cloth: Pair called with identical indices (%d)", i))
	}
	return &ps.items[i], &ps.items[j]
}

func (ps *Particles) each(fn func(p *Particle)) {
	for i := range ps.items {
		fn(&ps.items[i])
	}
}
