package metrics

import "github.com/san-kum/clothsim/internal/cloth"

// KineticEnergy is 1/2 sum |v|^2 over free particles with unit mass, where
// v is the implicit per-tick displacement. Value is the final sample.
type KineticEnergy struct {
	name    string
	current float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(w *cloth.World, tick int) {
	ps := w.Particles()
	ke := 0.0
	for i := 0; i < ps.Len(); i++ {
		p := ps.At(i)
		if p.Pinned() {
			continue
		}
		v := p.Velocity()
		ke += 0.5 * v.Dot(v)
	}
	e.current = ke
}

func (e *KineticEnergy) Current() float64 { return e.current }
func (e *KineticEnergy) Value() float64   { return e.current }
func (e *KineticEnergy) Reset()           { e.current = 0 }

// Sag is the mean downward displacement of free particles from where they
// were before the first tick. Without a Baseline call the first observed
// tick is the reference.
type Sag struct {
	name    string
	start   []float64
	current float64
}

func NewSag() *Sag {
	return &Sag{name: "sag"}
}

func (s *Sag) Name() string { return s.name }

// Baseline records the reference heights.
func (s *Sag) Baseline(w *cloth.World) {
	ps := w.Particles()
	s.start = make([]float64, ps.Len())
	for i := range s.start {
		s.start[i] = ps.Position(i).Y()
	}
}

func (s *Sag) Observe(w *cloth.World, tick int) {
	if s.start == nil {
		s.Baseline(w)
	}
	ps := w.Particles()

	sum := 0.0
	n := 0
	for i := 0; i < ps.Len(); i++ {
		p := ps.At(i)
		if p.Pinned() {
			continue
		}
		sum += p.Position.Y() - s.start[i]
		n++
	}
	if n > 0 {
		s.current = sum / float64(n)
	}
}

func (s *Sag) Current() float64 { return s.current }
func (s *Sag) Value() float64   { return s.current }

func (s *Sag) Reset() {
	s.start = nil
	s.current = 0
}
