package metrics

import "github.com/san-kum/clothsim/internal/cloth"

// Integrity is the fraction of constraints still active.
type Integrity struct {
	name    string
	current float64
}

func NewIntegrity() *Integrity {
	return &Integrity{name: "integrity", current: 1}
}

func (g *Integrity) Name() string { return g.name }

func (g *Integrity) Observe(w *cloth.World, tick int) {
	if w.NumConstraints() == 0 {
		g.current = 1
		return
	}
	g.current = float64(w.ActiveCount()) / float64(w.NumConstraints())
}

func (g *Integrity) Current() float64 { return g.current }
func (g *Integrity) Value() float64   { return g.current }
func (g *Integrity) Reset()           { g.current = 1 }
