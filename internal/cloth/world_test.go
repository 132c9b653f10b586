package cloth

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
)

var roomy = Bounds{Width: 1000, Height: 1000}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative dt", func(c *Config) { c.Dt = -0.1 }},
		{"zero sweeps", func(c *Config) { c.Sweeps = 0 }},
		{"zero tolerance", func(c *Config) { c.TearTolerance = 0 }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestBounds_Validate(t *testing.T) {
	tests := []struct {
		name  string
		b     Bounds
		valid bool
	}{
		{"flush", Bounds{100, 50, 0}, true},
		{"radius margin", Bounds{1080, 640, 30}, true},
		{"zero width", Bounds{0, 50, 0}, false},
		{"negative margin", Bounds{100, 50, -1}, false},
		{"margin too big", Bounds{100, 50, 30}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.b.Validate(); (err == nil) != tt.valid {
				t.Errorf("Validate() = %v, valid %v", err, tt.valid)
			}
		})
	}
}

func TestBuilder_Errors(t *testing.T) {
	b := NewBuilder()
	a := b.AddParticle(0, 0, true)
	c := b.AddParticle(1, 0, false)

	if err := b.Connect(a, a); !errors.Is(err, ErrSelfLoop) {
		t.Errorf("expected ErrSelfLoop, got %v", err)
	}
	if err := b.Connect(a, 7); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := b.Connect(a, c); err != nil {
		t.Errorf("valid connect failed: %v", err)
	}
	if b.NumParticles() != 2 || b.NumConstraints() != 1 {
		t.Errorf("expected 2 particles and 1 constraint, got %d and %d", b.NumParticles(), b.NumConstraints())
	}

	if _, err := NewBuilder().Build(DefaultConfig()); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
	bad := DefaultConfig()
	bad.Sweeps = 0
	if _, err := b.Build(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestBuilder_CheckBounds(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		bounds Bounds
		valid  bool
	}{
		{"inside", 50, 50, Bounds{100, 100, 0}, true},
		{"on flush edge", 0, 100, Bounds{100, 100, 0}, true},
		{"on margin", 1, 99, Bounds{100, 100, 1}, true},
		{"left of wall", -90, 20, Bounds{400, 300, 0}, false},
		{"below floor", 50, 101, Bounds{100, 100, 0}, false},
		{"inside margin", 0.5, 50, Bounds{100, 100, 1}, false},
		{"invalid bounds", 50, 50, Bounds{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			b.AddParticle(tt.x, tt.y, true)
			err := b.CheckBounds(tt.bounds)
			if tt.valid && err != nil {
				t.Errorf("expected layout to fit, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestWorld_CheckedLayoutKeepsPinsOnFirstTick(t *testing.T) {
	bounds := Bounds{Width: 100, Height: 100}
	b := NewBuilder()
	for i := 0; i < 5; i++ {
		b.AddParticle(float64(i)*25, 0, true)
	}
	if err := b.CheckBounds(bounds); err != nil {
		t.Fatalf("layout should fit: %v", err)
	}
	w, err := b.Build(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	before := w.Positions()
	w.Tick(TickInput{Bounds: bounds})
	if diff := cmp.Diff(before, w.Positions()); diff != "" {
		t.Errorf("pinned particles moved (-before +after):\n%s", diff)
	}
}

func pendulum(t *testing.T) *World {
	t.Helper()
	b := NewBuilder()
	top := b.AddParticle(100, 100, true)
	mid := b.AddParticle(100, 120, false)
	end := b.AddParticle(100, 140, false)
	if err := b.Connect(top, mid); err != nil {
		t.Fatal(err)
	}
	if err := b.Connect(mid, end); err != nil {
		t.Fatal(err)
	}
	w, err := b.Build(DefaultConfig())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return w
}

func TestWorld_TickPinnedStaysPut(t *testing.T) {
	w := pendulum(t)
	for i := 0; i < 200; i++ {
		w.Tick(TickInput{Bounds: roomy, Forces: []mgl64.Vec2{{3, 0}}})
	}

	if got := w.Positions()[0]; got != (mgl64.Vec2{100, 100}) {
		t.Errorf("pinned particle moved to %v", got)
	}
	if w.Ticks() != 200 {
		t.Errorf("expected 200 ticks, got %d", w.Ticks())
	}
}

func TestWorld_ExtraForcesAddToGravity(t *testing.T) {
	b := NewBuilder()
	b.AddParticle(500, 500, false)
	cfg := DefaultConfig()
	w, _ := b.Build(cfg)

	w.Tick(TickInput{Bounds: roomy, Forces: []mgl64.Vec2{{10, 0}, {0, -4}}})

	dt2 := cfg.Dt * cfg.Dt
	want := mgl64.Vec2{500 + 10*dt2, 500 + (cfg.Gravity.Y()-4)*dt2}
	if got := w.Positions()[0]; !got.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestWorld_TickClampsToBounds(t *testing.T) {
	b := NewBuilder()
	b.AddParticle(5, 5, false)
	w, _ := b.Build(DefaultConfig())

	bounds := Bounds{Width: 10, Height: 10, Margin: 1}
	for i := 0; i < 500; i++ {
		w.Tick(TickInput{Bounds: bounds})
	}

	if got := w.Positions()[0]; got.Y() != 9 {
		t.Errorf("expected particle resting on y=9, got %v", got)
	}
}

func TestWorld_PointerEvents(t *testing.T) {
	w := pendulum(t)
	miss := PointerEvent{Button: ButtonPrimary, X: 400, Y: 400}
	secondary := PointerEvent{Button: ButtonSecondary, X: 100, Y: 110}

	if torn := w.Tick(TickInput{Bounds: roomy, Events: []PointerEvent{miss, secondary}}); len(torn) != 0 {
		t.Errorf("expected nothing torn, got %v", torn)
	}
	if w.ActiveCount() != 2 {
		t.Fatalf("expected 2 active constraints, got %d", w.ActiveCount())
	}

	top := w.Positions()[0]
	hit := PointerEvent{Button: ButtonPrimary, X: top.X() + 1, Y: top.Y() + 2}
	if torn := w.Tick(TickInput{Bounds: roomy, Events: []PointerEvent{hit, hit}}); len(torn) != 1 || torn[0] != 0 {
		t.Fatalf("expected only the top link torn, got %v", torn)
	}
	if w.ActiveCount() != 1 {
		t.Errorf("expected 1 active constraint, got %d", w.ActiveCount())
	}
	if c := w.Constraint(0); c.Active() {
		t.Error("expected the top constraint to be torn")
	}
	if w.NumConstraints() != 2 {
		t.Errorf("torn constraint slot removed: %d constraints", w.NumConstraints())
	}
}

func TestWorld_SegmentsExcludeTorn(t *testing.T) {
	w := pendulum(t)
	if _, ok := w.Tear(100, 130); !ok {
		t.Fatal("expected a tear at the lower link")
	}

	want := []Segment{{Index: 0, A: mgl64.Vec2{100, 100}, B: mgl64.Vec2{100, 120}}}
	if diff := cmp.Diff(want, w.Segments()); diff != "" {
		t.Errorf("Segments() mismatch (-want +got):\n%s", diff)
	}
}

func TestWorld_PositionsIsSnapshot(t *testing.T) {
	w := pendulum(t)
	pos := w.Positions()
	pos[1] = mgl64.Vec2{-1, -1}

	if w.Particles().Position(1) == (mgl64.Vec2{-1, -1}) {
		t.Error("Positions() exposed internal storage")
	}
}
