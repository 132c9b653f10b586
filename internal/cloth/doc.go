// Package cloth provides the physics core of a tearable 2D cloth.
//
// A cloth is a fixed set of point masses connected by distance
// constraints:
//
//   - [Particle]: Verlet state with pin semantics and force accumulation
//   - [Particles]: fixed-size arena with a disjoint pair accessor
//   - [Constraint]: distance relation between two particle indices
//   - [World]: owns both stores and drives one tick at a time
//
// # Tick
//
// Every call to [World.Tick] runs the same sequence: external forces are
// accumulated, each particle is integrated and clamped into the bounds,
// the constraint list is swept a fixed number of times, and pointer events
// are turned into tears.
//
//	b := cloth.NewBuilder()
//	a := b.AddParticle(0, 0, true)
//	c := b.AddParticle(10, 0, false)
//	_ = b.Connect(a, c)
//	w, _ := b.Build(cloth.DefaultConfig())
//	w.Tick(cloth.TickInput{Bounds: cloth.Bounds{Width: 100, Height: 100}})
//
// # Thread Safety
//
// A World is NOT safe for concurrent use. Independent worlds may be stepped
// from different goroutines.
package cloth
