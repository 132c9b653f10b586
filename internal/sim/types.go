package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Metric aggregates an observation of the world over a run.
type Metric interface {
	Name() string
	Observe(w *cloth.World, tick int)
	Value() float64
	Reset()
}

// Sampler is implemented by metrics that also have a per-tick value worth
// recording as a series.
type Sampler interface {
	Current() float64
}

// Baseliner is implemented by metrics measured against the world as it was
// before the first tick. Run calls Baseline once, after Reset.
type Baseliner interface {
	Baseline(w *cloth.World)
}

type Observer interface {
	OnTick(w *cloth.World, tick int, torn []int)
}

// Script maps a tick number to the pointer events delivered on that tick.
type Script map[int][]cloth.PointerEvent

// Click schedules a primary-button click at (x, y) on tick.
func (s Script) Click(tick int, x, y float64) {
	s[tick] = append(s[tick], cloth.PointerEvent{Button: cloth.ButtonPrimary, X: x, Y: y})
}

type Config struct {
	Ticks  int
	Bounds cloth.Bounds
	Forces []mgl64.Vec2
	Script Script
}

type Tear struct {
	Tick       int `json:"tick"`
	Constraint int `json:"constraint"`
}

type Result struct {
	Ticks   int
	Series  map[string][]float64
	Metrics map[string]float64
	Tears   []Tear
	Final   []mgl64.Vec2
	Active  int
	Total   int
}

type SimError struct {
	Tick    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d: %s", e.Tick, e.Message)
}
