package optim

import (
	"context"
	"fmt"
	"math"
)

// Point is one evaluated parameter combination.
type Point struct {
	Params map[string]float64
	Value  float64
}

// Objective scores a parameter combination; lower is better.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search evaluates every combination in the grid and returns the best one
// together with all evaluated points in grid order. Ties keep the first.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (Point, []Point, error) {
	if len(g.paramNames) != len(g.ranges) {
		return Point{}, nil, fmt.Errorf("grid has %d names but %d ranges", len(g.paramNames), len(g.ranges))
	}
	for i, r := range g.ranges {
		if len(r) == 0 {
			return Point{}, nil, fmt.Errorf("parameter %s has no values", g.paramNames[i])
		}
	}

	best := Point{Value: math.Inf(1)}
	var all []Point

	err := g.searchRecursive(ctx, 0, make(map[string]float64), objective, func(p Point) {
		all = append(all, p)
		if p.Value < best.Value {
			best = p
		}
	})
	if err != nil {
		return Point{}, all, err
	}

	return best, all, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	objective Objective,
	visit func(Point),
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		val, err := objective(ctx, current)
		if err != nil {
			return fmt.Errorf("%v: %w", current, err)
		}
		visit(Point{Params: current, Value: val})
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, objective, visit); err != nil {
			return err
		}
	}
	return nil
}
