package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/scene"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/viz"
)

var (
	configFile string
	preset     string

	dt        float64
	sweeps    int
	gravity   float64
	wind      float64
	tolerance float64
	ticks     int

	width   float64
	height  float64
	margin  float64
	rows    int
	cols    int
	spacing float64
	pin     string
	shear   bool

	frameRate int
	theme     string

	tearSpecs     []string
	jsonOut       bool
	metricName    string
	analyzeMetric string
	outPath       string
)

func addWorldFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")

	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	f.IntVar(&sweeps, "sweeps", config.DefaultSweeps, "relaxation sweeps per tick")
	f.Float64Var(&gravity, "gravity", config.DefaultGravity, "downward gravity")
	f.Float64Var(&wind, "wind", 0, "horizontal wind force")
	f.Float64Var(&tolerance, "tolerance", config.DefaultTearTolerance, "tear distance tolerance")
	f.IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks (headless)")

	f.Float64Var(&width, "width", config.DefaultWidth, "world width")
	f.Float64Var(&height, "height", config.DefaultHeight, "world height")
	f.Float64Var(&margin, "margin", 0, "wall inset, the particle radius")
	f.IntVar(&rows, "rows", 0, "override scene rows")
	f.IntVar(&cols, "cols", 0, "override scene columns")
	f.Float64Var(&spacing, "spacing", 0, "override scene spacing")
	f.StringVar(&pin, "pin", "", "override pin mode (top, corners, left, alternate, none)")
	f.BoolVar(&shear, "shear", false, "add diagonal shear links")

	f.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate (live)")
	f.StringVar(&theme, "theme", config.DefaultTheme, "color theme (live): "+strings.Join(viz.ThemeNames(), ", "))
}

func addTearFlag(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&tearSpecs, "tear", nil, "scripted click x,y@tick (repeatable)")
}

// resolveConfig builds the run configuration. Later sources win: defaults,
// then --preset, then --config, then the scene argument and explicit flags.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	sceneName := config.DefaultScene
	if len(args) > 0 {
		sceneName = args[0]
	}

	cfg := config.DefaultConfig()
	cfg.Scene = sceneName

	if preset != "" {
		p := config.GetPreset(sceneName, preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(sceneName))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadWith(configFile, cfg)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Scene = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Physics.Dt = dt
	}
	if flags.Changed("sweeps") {
		cfg.Physics.Sweeps = sweeps
	}
	if flags.Changed("gravity") {
		cfg.Physics.Gravity.Y = gravity
	}
	if flags.Changed("wind") {
		cfg.Physics.Wind.X = wind
	}
	if flags.Changed("tolerance") {
		cfg.Physics.TearTolerance = tolerance
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("width") {
		cfg.World.Width = width
	}
	if flags.Changed("height") {
		cfg.World.Height = height
	}
	if flags.Changed("margin") {
		cfg.World.Margin = margin
	}
	if flags.Changed("rows") {
		cfg.Grid.Rows = rows
	}
	if flags.Changed("cols") {
		cfg.Grid.Cols = cols
	}
	if flags.Changed("spacing") {
		cfg.Grid.Spacing = spacing
	}
	if flags.Changed("pin") {
		cfg.Grid.Pin = scene.PinMode(pin)
	}
	if flags.Changed("shear") {
		cfg.Grid.Shear = &shear
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	logger.Debug("resolved config",
		"scene", cfg.Scene,
		"preset", preset,
		"config", configFile,
		"dt", cfg.Physics.Dt,
		"sweeps", cfg.Physics.Sweeps,
		"tolerance", cfg.Physics.TearTolerance,
	)
	return cfg, preset, nil
}

// parseTears turns "x,y@tick" specs into a click script.
func parseTears(specs []string) (sim.Script, error) {
	script := make(sim.Script)
	for _, spec := range specs {
		pos, tickStr, ok := strings.Cut(spec, "@")
		if !ok {
			return nil, fmt.Errorf("tear %q: expected x,y@tick", spec)
		}
		xStr, yStr, ok := strings.Cut(pos, ",")
		if !ok {
			return nil, fmt.Errorf("tear %q: expected x,y@tick", spec)
		}

		x, err := strconv.ParseFloat(strings.TrimSpace(xStr), 64)
		if err != nil {
			return nil, fmt.Errorf("tear %q: x: %w", spec, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(yStr), 64)
		if err != nil {
			return nil, fmt.Errorf("tear %q: y: %w", spec, err)
		}
		tick, err := strconv.Atoi(strings.TrimSpace(tickStr))
		if err != nil {
			return nil, fmt.Errorf("tear %q: tick: %w", spec, err)
		}

		script.Click(tick, x, y)
	}
	return script, nil
}
