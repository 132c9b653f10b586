package cloth_test

import (
	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/clothsim/internal/cloth"
)

const (
	gridSize    = 10
	gridSpacing = 20.0
	gridOriginX = 110.0
	gridOriginY = 20.0
)

func buildGrid(cfg cloth.Config) *cloth.World {
	b := cloth.NewBuilder()
	idx := func(r, c int) int { return r*gridSize + c }
	for r := 0; r < gridSize; r++ {
		for c := 0; c < gridSize; c++ {
			b.AddParticle(gridOriginX+float64(c)*gridSpacing, gridOriginY+float64(r)*gridSpacing, r == 0)
		}
	}
	for r := 0; r < gridSize; r++ {
		for c := 0; c < gridSize; c++ {
			if c+1 < gridSize {
				Expect(b.Connect(idx(r, c), idx(r, c+1))).To(Succeed())
			}
			if r+1 < gridSize {
				Expect(b.Connect(idx(r, c), idx(r+1, c))).To(Succeed())
			}
		}
	}
	w, err := b.Build(cfg)
	Expect(err).NotTo(HaveOccurred())
	return w
}

var _ = Describe("a hanging grid", func() {
	var (
		world   *cloth.World
		initial []mgl64.Vec2
		bounds  = cloth.Bounds{Width: 400, Height: 600}
	)

	BeforeEach(func() {
		cfg := cloth.DefaultConfig()
		cfg.Sweeps = 4
		world = buildGrid(cfg)
		initial = world.Positions()
	})

	Context("after 1000 ticks of gravity", func() {
		BeforeEach(func() {
			for i := 0; i < 1000; i++ {
				world.Tick(cloth.TickInput{Bounds: bounds})
			}
		})

		It("keeps the pinned row in place", func() {
			pos := world.Positions()
			for c := 0; c < gridSize; c++ {
				Expect(pos[c]).To(Equal(initial[c]))
			}
		})

		It("moves every free particle downward", func() {
			pos := world.Positions()
			for i := gridSize; i < len(pos); i++ {
				Expect(pos[i].Y()).To(BeNumerically(">", initial[i].Y()), "particle %d", i)
			}
		})

		It("does not collapse or blow apart", func() {
			total := 0.0
			for i := 0; i < world.NumConstraints(); i++ {
				c := world.Constraint(i)
				total += c.Length(world.Particles())
			}
			mean := total / float64(world.NumConstraints())
			Expect(mean).To(BeNumerically(">=", 0.5*gridSpacing))
			Expect(mean).To(BeNumerically("<=", 1.5*gridSpacing))
		})

		It("keeps every constraint", func() {
			Expect(world.ActiveCount()).To(Equal(world.NumConstraints()))
			Expect(world.Segments()).To(HaveLen(2 * gridSize * (gridSize - 1)))
		})
	})

	Context("when torn", func() {
		It("drops the torn link from the segments but keeps its slot", func() {
			a := initial[0]
			torn, ok := world.Tear(a.X()+gridSpacing/2, a.Y()+1)
			Expect(ok).To(BeTrue())
			Expect(torn).To(Equal(0))

			c := world.Constraint(torn)
			Expect(c.Active()).To(BeFalse())
			Expect(world.NumConstraints()).To(Equal(2 * gridSize * (gridSize - 1)))
			for _, s := range world.Segments() {
				Expect(s.Index).NotTo(Equal(torn))
			}
		})

		It("ignores clicks from other buttons", func() {
			a := initial[0]
			ev := cloth.PointerEvent{Button: cloth.ButtonSecondary, X: a.X() + gridSpacing/2, Y: a.Y()}
			Expect(world.Tick(cloth.TickInput{Bounds: bounds, Events: []cloth.PointerEvent{ev}})).To(BeEmpty())
			Expect(world.ActiveCount()).To(Equal(world.NumConstraints()))
		})

		It("tears exactly one link per click", func() {
			a := initial[gridSize*5+3]
			ev := cloth.PointerEvent{Button: cloth.ButtonPrimary, X: a.X() + gridSpacing/2, Y: a.Y()}
			Expect(world.Tick(cloth.TickInput{Bounds: bounds, Events: []cloth.PointerEvent{ev}})).To(HaveLen(1))
			Expect(world.ActiveCount()).To(Equal(world.NumConstraints() - 1))
		})
	})
})
