package metrics

import "github.com/san-kum/clothsim/internal/sim"

// Defaults returns a fresh set of the standard cloth metrics.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewStretch(),
		NewMaxStretch(),
		NewSag(),
		NewKineticEnergy(),
		NewIntegrity(),
	}
}
