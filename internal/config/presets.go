package config

import "sort"

var Presets = map[string]map[string]*Config{
	"curtain": {
		"default": preset("curtain", func(c *Config) {}),
		"stiff": preset("curtain", func(c *Config) {
			c.Physics.Sweeps = 15
		}),
		"loose": preset("curtain", func(c *Config) {
			c.Physics.Sweeps = 2
		}),
		"heavy": preset("curtain", func(c *Config) {
			c.Physics.Gravity = Vector{Y: 25}
			c.Physics.Sweeps = 8
		}),
	},
	"drape": {
		"default": preset("drape", func(c *Config) {}),
		"breeze": preset("drape", func(c *Config) {
			c.Physics.Wind = Vector{X: 2}
		}),
	},
	"hammock": {
		"default": preset("hammock", func(c *Config) {}),
		"sagging": preset("hammock", func(c *Config) {
			c.Physics.Sweeps = 3
			c.Ticks = 1200
		}),
	},
	"flag": {
		"calm": preset("flag", func(c *Config) {}),
		"windy": preset("flag", func(c *Config) {
			c.Physics.Wind = Vector{X: 15, Y: -2}
			c.Physics.Sweeps = 8
		}),
	},
	"net": {
		"default": preset("net", func(c *Config) {}),
		"fine": preset("net", func(c *Config) {
			c.Grid = GridConfig{Rows: 24, Cols: 32, Spacing: 8}
			c.Physics.Sweeps = 10
		}),
	},
}

func preset(sceneName string, apply func(c *Config)) *Config {
	c := DefaultConfig()
	c.Scene = sceneName
	apply(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(sceneName, name string) *Config {
	scenePresets, ok := Presets[sceneName]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(sceneName string) []string {
	scenePresets, ok := Presets[sceneName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
