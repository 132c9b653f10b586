package cloth

import "github.com/go-gl/mathgl/mgl64"

// PointToSegmentDistance returns the distance from p to the segment ab.
func PointToSegmentDistance(p, a, b mgl64.Vec2) float64 {
	ab := b.Sub(a)
	lengthSq := ab.Dot(ab)
	if lengthSq == 0 {
		return p.Sub(a).Len()
	}

	t := p.Sub(a).Dot(ab) / lengthSq
	switch {
	case t < 0:
		return p.Sub(a).Len()
	case t > 1:
		return p.Sub(b).Len()
	}
	return p.Sub(a.Add(ab.Mul(t))).Len()
}

// FindNearestActive returns the index of the active constraint closest to
// pointer, provided it lies strictly within tolerance. Ties keep the
// earliest constraint.
func FindNearestActive(pointer mgl64.Vec2, constraints []Constraint, ps *Particles, tolerance float64) (int, bool) {
	nearest := -1
	minDist := tolerance
	for i := range constraints {
		c := &constraints[i]
		if !c.active {
			continue
		}
		d := PointToSegmentDistance(pointer, c.P1Position(ps), c.P2Position(ps))
		if d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest, nearest >= 0
}

// HandlePointerClick tears the constraint nearest to pointer, if any.
func HandlePointerClick(pointer mgl64.Vec2, constraints []Constraint, ps *Particles, tolerance float64) (int, bool) {
	i, ok := FindNearestActive(pointer, constraints, ps, tolerance)
	if !ok {
		return -1, false
	}
	constraints[i].Deactivate()
	return i, true
}
