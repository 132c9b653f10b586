package automation

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/scene"
	"github.com/san-kum/clothsim/internal/sim"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single run. Config is laid over the preset, or the defaults,
// the same way a --config file is.
type Step struct {
	Name   string    `yaml:"name"`
	Scene  string    `yaml:"scene"`
	Preset string    `yaml:"preset"`
	Config yaml.Node `yaml:"config"`
	Tears  []Click   `yaml:"tears"`
}

type Click struct {
	Tick int     `yaml:"tick"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}

	return &scenario, nil
}

// Resolve returns the step's configuration and click script.
func (s *Step) Resolve() (*config.Config, sim.Script, error) {
	sceneName := s.Scene
	if sceneName == "" {
		sceneName = config.DefaultScene
	}

	cfg := config.DefaultConfig()
	cfg.Scene = sceneName
	if s.Preset != "" {
		p := config.GetPreset(sceneName, s.Preset)
		if p == nil {
			return nil, nil, fmt.Errorf("unknown preset: %s (available: %v)", s.Preset, config.ListPresets(sceneName))
		}
		cfg = p
	}

	if !s.Config.IsZero() {
		if err := s.Config.Decode(cfg); err != nil {
			return nil, nil, fmt.Errorf("config: %w", err)
		}
	}
	if s.Scene != "" {
		cfg.Scene = s.Scene
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	script := make(sim.Script)
	for _, c := range s.Tears {
		script.Click(c.Tick, c.X, c.Y)
	}

	return cfg, script, nil
}

func (s *Step) label(i int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("step-%d", i+1)
}

type StepResult struct {
	Name   string
	Config *config.Config
	Result *sim.Result
}

// RunScenario executes all steps in order. On failure it returns the
// results of the steps that completed.
func RunScenario(ctx context.Context, scenario *Scenario, reg *scene.Registry, newMetrics func() []sim.Metric) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i := range scenario.Steps {
		step := &scenario.Steps[i]
		name := step.label(i)

		cfg, script, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %s: %w", name, err)
		}

		w, err := cfg.NewWorld(reg)
		if err != nil {
			return results, fmt.Errorf("step %s: %w", name, err)
		}

		result, err := sim.New(newMetrics()...).Run(ctx, w, sim.Config{
			Ticks:  cfg.Ticks,
			Bounds: cfg.Bounds(),
			Forces: cfg.Forces(),
			Script: script,
		})
		if err != nil {
			return results, fmt.Errorf("step %s run: %w", name, err)
		}

		results = append(results, StepResult{Name: name, Config: cfg, Result: result})
	}

	return results, nil
}

// MonteCarloConfig defines random tearing trials on one configuration
type MonteCarloConfig struct {
	Trials int
	Clicks int
	Seed   int64
}

// MonteCarloResult holds the outcome of one trial
type MonteCarloResult struct {
	Trial     int
	Clicks    []Click
	Torn      int
	Integrity float64
}

// RunMonteCarlo clicks at random points over the cloth's starting area on
// random ticks and reports how much of it survives each trial.
func RunMonteCarlo(ctx context.Context, mc MonteCarloConfig, cfg *config.Config, reg *scene.Registry) ([]MonteCarloResult, error) {
	if mc.Trials <= 0 || mc.Clicks < 0 {
		return nil, fmt.Errorf("invalid monte carlo config: %d trials, %d clicks", mc.Trials, mc.Clicks)
	}

	spec, err := cfg.SceneSpec(reg)
	if err != nil {
		return nil, err
	}
	clothW := float64(spec.Cols-1) * spec.Spacing
	clothH := float64(spec.Rows-1) * spec.Spacing

	rng := rand.New(rand.NewSource(mc.Seed))
	if mc.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results := make([]MonteCarloResult, 0, mc.Trials)
	for trial := 0; trial < mc.Trials; trial++ {
		w, err := cfg.NewWorld(reg)
		if err != nil {
			return nil, err
		}

		clicks := make([]Click, mc.Clicks)
		script := make(sim.Script)
		for i := range clicks {
			clicks[i] = Click{
				Tick: rng.Intn(cfg.Ticks),
				X:    spec.OriginX + rng.Float64()*clothW,
				Y:    spec.OriginY + rng.Float64()*clothH,
			}
			script.Click(clicks[i].Tick, clicks[i].X, clicks[i].Y)
		}

		result, err := sim.New().Run(ctx, w, sim.Config{
			Ticks:  cfg.Ticks,
			Bounds: cfg.Bounds(),
			Forces: cfg.Forces(),
			Script: script,
		})
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", trial, err)
		}

		integrity := 1.0
		if result.Total > 0 {
			integrity = float64(result.Active) / float64(result.Total)
		}

		results = append(results, MonteCarloResult{
			Trial:     trial,
			Clicks:    clicks,
			Torn:      len(result.Tears),
			Integrity: integrity,
		})
	}

	return results, nil
}
