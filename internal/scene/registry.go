package scene

import (
	"fmt"
	"sort"
)

type Registry struct {
	scenes map[string]Spec
	info   map[string]string
}

func NewRegistry() *Registry {
	r := &Registry{
		scenes: make(map[string]Spec),
		info:   make(map[string]string),
	}

	r.Register("curtain", "top row pinned, hangs straight", Spec{Rows: 20, Cols: 30, Spacing: 10, OriginY: 20, Pin: PinTopRow})
	r.Register("drape", "every other top particle pinned", Spec{Rows: 20, Cols: 31, Spacing: 10, OriginY: 20, Pin: PinEveryOther})
	r.Register("hammock", "two top corners pinned", Spec{Rows: 12, Cols: 30, Spacing: 10, OriginY: 40, Pin: PinTopCorners})
	r.Register("flag", "left edge pinned", Spec{Rows: 12, Cols: 24, Spacing: 10, OriginY: 40, Pin: PinLeftColumn})
	r.Register("net", "top row pinned with shear links", Spec{Rows: 16, Cols: 24, Spacing: 12, OriginY: 20, Pin: PinTopRow, Shear: true})

	return r
}

func (r *Registry) Register(name, info string, s Spec) {
	r.scenes[name] = s
	r.info[name] = info
}

func (r *Registry) Get(name string) (Spec, error) {
	s, ok := r.scenes[name]
	if !ok {
		return Spec{}, fmt.Errorf("unknown scene: %s", name)
	}
	return s, nil
}

func (r *Registry) Info(name string) string { return r.info[name] }

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
