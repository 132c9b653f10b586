package scene

import (
	"fmt"

	"github.com/san-kum/clothsim/internal/cloth"
)

// PinMode selects which grid particles are anchored.
type PinMode string

const (
	PinTopRow     PinMode = "top"
	PinTopCorners PinMode = "corners"
	PinLeftColumn PinMode = "left"
	PinEveryOther PinMode = "alternate"
	PinNone       PinMode = "none"
)

// Spec describes a rectangular cloth.
type Spec struct {
	Rows    int     `yaml:"rows"`
	Cols    int     `yaml:"cols"`
	Spacing float64 `yaml:"spacing"`
	OriginX float64 `yaml:"origin_x"`
	OriginY float64 `yaml:"origin_y"`
	Pin     PinMode `yaml:"pin"`
	Shear   bool    `yaml:"shear"`
}

func (s Spec) Validate() error {
	if s.Rows < 1 || s.Cols < 1 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", s.Rows, s.Cols)
	}
	if s.Rows*s.Cols < 2 {
		return fmt.Errorf("grid needs at least two particles")
	}
	if s.Spacing <= 0 {
		return fmt.Errorf("spacing must be positive, got %f", s.Spacing)
	}
	switch s.Pin {
	case PinTopRow, PinTopCorners, PinLeftColumn, PinEveryOther, PinNone:
	default:
		return fmt.Errorf("unknown pin mode: %s", s.Pin)
	}
	return nil
}

// Centered returns a copy of s placed horizontally in the middle of width.
func Centered(s Spec, width float64) Spec {
	s.OriginX = (width - float64(s.Cols-1)*s.Spacing) / 2
	return s
}

// Index is the particle index of grid cell (r, c).
func (s Spec) Index(r, c int) int { return r*s.Cols + c }

func (s Spec) pinned(r, c int) bool {
	switch s.Pin {
	case PinTopRow:
		return r == 0
	case PinTopCorners:
		return r == 0 && (c == 0 || c == s.Cols-1)
	case PinLeftColumn:
		return c == 0
	case PinEveryOther:
		return r == 0 && c%2 == 0
	}
	return false
}

// Build lays out the grid row-major and links structural neighbours, plus
// both diagonals of every cell when Shear is set.
func Build(s Spec) (*cloth.Builder, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	b := cloth.NewBuilder()
	for r := 0; r < s.Rows; r++ {
		for c := 0; c < s.Cols; c++ {
			x := s.OriginX + float64(c)*s.Spacing
			y := s.OriginY + float64(r)*s.Spacing
			b.AddParticle(x, y, s.pinned(r, c))
		}
	}

	link := func(r1, c1, r2, c2 int) error {
		return b.Connect(s.Index(r1, c1), s.Index(r2, c2))
	}

	for r := 0; r < s.Rows; r++ {
		for c := 0; c < s.Cols; c++ {
			if c+1 < s.Cols {
				if err := link(r, c, r, c+1); err != nil {
					return nil, err
				}
			}
			if r+1 < s.Rows {
				if err := link(r, c, r+1, c); err != nil {
					return nil, err
				}
			}
			if s.Shear && r+1 < s.Rows && c+1 < s.Cols {
				if err := link(r, c, r+1, c+1); err != nil {
					return nil, err
				}
				if err := link(r, c+1, r+1, c); err != nil {
					return nil, err
				}
			}
		}
	}

	return b, nil
}
