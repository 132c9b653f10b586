package metrics

import (
	"math"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Stretch is the mean relative deviation |len/rest - 1| of active
// constraints. Value averages it over the run.
type Stretch struct {
	name    string
	current float64
	total   float64
	samples int
}

func NewStretch() *Stretch {
	return &Stretch{name: "stretch"}
}

func (s *Stretch) Name() string { return s.name }

func (s *Stretch) Observe(w *cloth.World, tick int) {
	s.current = meanStrain(w)
	s.total += s.current
	s.samples++
}

func (s *Stretch) Current() float64 { return s.current }

func (s *Stretch) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *Stretch) Reset() {
	s.current = 0
	s.total = 0
	s.samples = 0
}

// MaxStretch is the largest single-constraint strain seen during the run.
type MaxStretch struct {
	name    string
	current float64
	max     float64
}

func NewMaxStretch() *MaxStretch {
	return &MaxStretch{name: "max_stretch"}
}

func (m *MaxStretch) Name() string { return m.name }

func (m *MaxStretch) Observe(w *cloth.World, tick int) {
	m.current = 0
	ps := w.Particles()
	for i := 0; i < w.NumConstraints(); i++ {
		c := w.Constraint(i)
		if !c.Active() {
			continue
		}
		if s := strain(&c, ps); s > m.current {
			m.current = s
		}
	}
	if m.current > m.max {
		m.max = m.current
	}
}

func (m *MaxStretch) Current() float64 { return m.current }
func (m *MaxStretch) Value() float64   { return m.max }

func (m *MaxStretch) Reset() {
	m.current = 0
	m.max = 0
}

func strain(c *cloth.Constraint, ps *cloth.Particles) float64 {
	rest := c.RestLength()
	if rest == 0 {
		return 0
	}
	return math.Abs(c.Length(ps)/rest - 1)
}

func meanStrain(w *cloth.World) float64 {
	ps := w.Particles()
	sum := 0.0
	n := 0
	for i := 0; i < w.NumConstraints(); i++ {
		c := w.Constraint(i)
		if !c.Active() {
			continue
		}
		sum += strain(&c, ps)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
