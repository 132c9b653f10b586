package cloth

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// PointerEvent is a single click, consumed once by the tick it is passed to.
type PointerEvent struct {
	Button Button
	X, Y   float64
}

func (e PointerEvent) Pos() mgl64.Vec2 { return mgl64.Vec2{e.X, e.Y} }

// Bounds is the area particles are kept inside. Margin insets every edge;
// renderers drawing particles as discs set it to the disc radius.
type Bounds struct {
	Width  float64
	Height float64
	Margin float64
}

func (b Bounds) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: bounds must be positive, got %gx%g", ErrInvalidConfig, b.Width, b.Height)
	}
	if b.Margin < 0 || 2*b.Margin > b.Width || 2*b.Margin > b.Height {
		return fmt.Errorf("%w: margin %g does not fit %gx%g", ErrInvalidConfig, b.Margin, b.Width, b.Height)
	}
	return nil
}

// Config holds the per-world simulation parameters.
type Config struct {
	Gravity       mgl64.Vec2
	Dt            float64
	Sweeps        int
	TearTolerance float64
}

func DefaultConfig() Config {
	return Config{
		Gravity:       mgl64.Vec2{0, 10},
		Dt:            0.1,
		Sweeps:        5,
		TearTolerance: 5,
	}
}

func (c Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, c.Dt)
	}
	if c.Sweeps < 1 {
		return fmt.Errorf("%w: sweeps must be at least 1, got %d", ErrInvalidConfig, c.Sweeps)
	}
	if c.TearTolerance <= 0 {
		return fmt.Errorf("%w: tear tolerance must be positive, got %f", ErrInvalidConfig, c.TearTolerance)
	}
	return nil
}

// Builder collects particles and constraints during setup.
type Builder struct {
	particles []Particle
	links     [][2]int
}

func NewBuilder() *Builder {
	return &Builder{}
}

// AddParticle appends a particle and returns its index.
func (b *Builder) AddParticle(x, y float64, pinned bool) int {
	p := NewParticle(x, y)
	p.pinned = pinned
	b.particles = append(b.particles, p)
	return len(b.particles) - 1
}

// Connect records a constraint between two existing particles.
func (b *Builder) Connect(i, j int) error {
	if i == j {
		return fmt.Errorf("%w: index %d", ErrSelfLoop, i)
	}
	n := len(b.particles)
	if i < 0 || j < 0 || i >= n || j >= n {
		return fmt.Errorf("%w: (%d, %d) with %d particles", ErrIndexOutOfRange, i, j, n)
	}
	b.links = append(b.links, [2]int{i, j})
	return nil
}

// CheckBounds reports ErrInvalidConfig if any particle lies outside bounds
// inset by the margin. A layout that passes is never moved by the clamp at
// setup, so pinned particles keep their creation position.
func (b *Builder) CheckBounds(bounds Bounds) error {
	if err := bounds.Validate(); err != nil {
		return err
	}
	for i, p := range b.particles {
		x, y := p.Position.X(), p.Position.Y()
		if x < bounds.Margin || x > bounds.Width-bounds.Margin || y < bounds.Margin || y > bounds.Height-bounds.Margin {
			return fmt.Errorf("%w: particle %d at (%g, %g) outside %gx%g with margin %g",
				ErrInvalidConfig, i, x, y, bounds.Width, bounds.Height, bounds.Margin)
		}
	}
	return nil
}

func (b *Builder) NumParticles() int   { return len(b.particles) }
func (b *Builder) NumConstraints() int { return len(b.links) }

// Build freezes the layout into a World. Rest lengths are measured here.
func (b *Builder) Build(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(b.particles) == 0 {
		return nil, ErrEmpty
	}

	ps := newParticles(b.particles)
	constraints := make([]Constraint, 0, len(b.links))
	for _, l := range b.links {
		c, err := NewConstraint(ps, l[0], l[1])
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, c)
	}

	return &World{
		cfg:         cfg,
		particles:   ps,
		constraints: constraints,
	}, nil
}

// TickInput is what the host hands the world each frame. Forces are added
// on top of the configured gravity. Bounds must be valid (see
// Bounds.Validate) and contain the layout the world was built from; the
// zero value clamps every particle to the origin.
type TickInput struct {
	Forces []mgl64.Vec2
	Bounds Bounds
	Events []PointerEvent
}

// Segment is the pair of endpoints of an active constraint.
type Segment struct {
	Index int
	A, B  mgl64.Vec2
}

// World owns the particle and constraint stores and is their only mutator.
type World struct {
	cfg         Config
	particles   *Particles
	constraints []Constraint
	ticks       int
}

// Tick advances the world one frame and returns the indices of the
// constraints torn by the frame's pointer events.
func (w *World) Tick(in TickInput) []int {
	dt := w.cfg.Dt
	w.particles.each(func(p *Particle) {
		p.ApplyForce(w.cfg.Gravity)
		for _, f := range in.Forces {
			p.ApplyForce(f)
		}
		p.Integrate(dt)
		p.ClampToBounds(in.Bounds)
	})

	Relax(w.particles, w.constraints, w.cfg.Sweeps)

	var torn []int
	for _, ev := range in.Events {
		if ev.Button != ButtonPrimary {
			continue
		}
		if i, ok := HandlePointerClick(ev.Pos(), w.constraints, w.particles, w.cfg.TearTolerance); ok {
			torn = append(torn, i)
		}
	}

	w.ticks++
	return torn
}

func (w *World) Config() Config              { return w.cfg }
func (w *World) Ticks() int                  { return w.ticks }
func (w *World) Particles() *Particles       { return w.particles }
func (w *World) NumConstraints() int         { return len(w.constraints) }
func (w *World) Constraint(i int) Constraint { return w.constraints[i] }

// Positions returns a snapshot of every particle position in index order.
func (w *World) Positions() []mgl64.Vec2 {
	out := make([]mgl64.Vec2, w.particles.Len())
	for i := range out {
		out[i] = w.particles.Position(i)
	}
	return out
}

// Segments returns the endpoints of every active constraint. Torn
// constraints keep their index but are left out.
func (w *World) Segments() []Segment {
	out := make([]Segment, 0, len(w.constraints))
	for i := range w.constraints {
		c := &w.constraints[i]
		if !c.active {
			continue
		}
		out = append(out, Segment{Index: i, A: c.P1Position(w.particles), B: c.P2Position(w.particles)})
	}
	return out
}

func (w *World) ActiveCount() int {
	n := 0
	for i := range w.constraints {
		if w.constraints[i].active {
			n++
		}
	}
	return n
}

// Tear deactivates the constraint nearest to (x, y) as if it had been
// clicked with the primary button.
func (w *World) Tear(x, y float64) (int, bool) {
	return HandlePointerClick(mgl64.Vec2{x, y}, w.constraints, w.particles, w.cfg.TearTolerance)
}
