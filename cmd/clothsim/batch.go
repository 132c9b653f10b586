package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/clothsim/internal/automation"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/optim"
	"github.com/san-kum/clothsim/internal/scene"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
)

var (
	saveRuns   bool
	trials     int
	clicks     int
	seed       int64
	gridSpecs  []string
	tuneMetric string
)

func batchCommands() []*cobra.Command {
	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "run every step of a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	scriptCmd.Flags().BoolVar(&saveRuns, "save", true, "save each step as a run")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [scene]",
		Short: "tear at random points and measure what survives",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	addWorldFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().IntVar(&clicks, "clicks", 10, "random clicks per trial")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")

	tuneCmd := &cobra.Command{
		Use:   "tune [scene]",
		Short: "grid search parameters to minimise a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTune,
	}
	addWorldFlags(tuneCmd)
	addTearFlag(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&gridSpecs, "grid", nil, "name=v1,v2,... (repeatable; names: "+strings.Join(config.Tunable, ", ")+")")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "max_stretch", "metric to minimise")

	return []*cobra.Command{scriptCmd, monteCarloCmd, tuneCmd}
}

func runScript(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running scenario %s (%d steps)\n", scenario.Name, len(scenario.Steps))
	results, runErr := automation.RunScenario(ctx, scenario, scene.NewRegistry(), metrics.Defaults)

	var st *storage.Store
	if saveRuns {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSCENE\tTICKS\tLINKS\tTORN\tSTRETCH\tRUN")
	for _, r := range results {
		runID := "-"
		if st != nil {
			meta := runMetadata(r.Config, "")
			if runID, err = st.Save(meta, r.Result); err != nil {
				return err
			}
			logger.Debug("saved step", "step", r.Name, "run", runID)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d/%d\t%d\t%.6f\t%s\n",
			r.Name,
			r.Config.Scene,
			r.Result.Ticks,
			r.Result.Active,
			r.Result.Total,
			len(r.Result.Tears),
			r.Result.Metrics["stretch"],
			runID,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	return runErr
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	mc := automation.MonteCarloConfig{Trials: trials, Clicks: clicks, Seed: seed}
	fmt.Printf("%d trials of %d random clicks on %s...\n\n", trials, clicks, cfg.Scene)

	results, err := automation.RunMonteCarlo(context.Background(), mc, cfg, scene.NewRegistry())
	if err != nil {
		return err
	}

	sumTorn, sumIntegrity := 0, 0.0
	minIntegrity := 1.0
	for _, r := range results {
		logger.Debug("trial", "trial", r.Trial, "torn", r.Torn, "integrity", r.Integrity)
		sumTorn += r.Torn
		sumIntegrity += r.Integrity
		if r.Integrity < minIntegrity {
			minIntegrity = r.Integrity
		}
	}

	n := float64(len(results))
	fmt.Printf("mean torn:      %.2f of %d clicks\n", float64(sumTorn)/n, clicks)
	fmt.Printf("mean integrity: %.4f\n", sumIntegrity/n)
	fmt.Printf("min integrity:  %.4f\n", minIntegrity)
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	base, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	names, ranges, err := parseGrid(gridSpecs)
	if err != nil {
		return err
	}

	script, err := parseTears(tearSpecs)
	if err != nil {
		return err
	}

	reg := scene.NewRegistry()
	objective := func(ctx context.Context, params map[string]float64) (float64, error) {
		cfg := base.Clone()
		for name, v := range params {
			if err := cfg.Set(name, v); err != nil {
				return 0, err
			}
		}
		if err := cfg.Validate(); err != nil {
			return 0, err
		}

		w, err := cfg.NewWorld(reg)
		if err != nil {
			return 0, err
		}
		result, err := sim.New(metrics.Defaults()...).Run(ctx, w, sim.Config{
			Ticks:  cfg.Ticks,
			Bounds: cfg.Bounds(),
			Forces: cfg.Forces(),
			Script: script,
		})
		if err != nil {
			return 0, err
		}

		val, ok := result.Metrics[tuneMetric]
		if !ok {
			return 0, fmt.Errorf("unknown metric: %s", tuneMetric)
		}
		return val, nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	best, all, err := optim.NewGridSearch(names, ranges).Search(ctx, objective)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(tuneMetric))
	for _, p := range all {
		row := make([]string, 0, len(names)+1)
		for _, name := range names {
			row = append(row, strconv.FormatFloat(p.Params[name], 'g', -1, 64))
		}
		row = append(row, fmt.Sprintf("%.6f", p.Value))
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest %s = %.6f at %v\n", tuneMetric, best.Value, best.Params)
	return nil
}

// parseGrid turns "name=v1,v2" specs into parameter names and value lists.
func parseGrid(specs []string) ([]string, [][]float64, error) {
	if len(specs) == 0 {
		return nil, nil, fmt.Errorf("at least one --grid is required")
	}

	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok || name == "" {
			return nil, nil, fmt.Errorf("grid %q: expected name=v1,v2", spec)
		}
		if err := config.DefaultConfig().Set(name, 0); err != nil {
			return nil, nil, fmt.Errorf("grid %q: %w", spec, err)
		}

		var values []float64
		for _, s := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("grid %q: %w", spec, err)
			}
			values = append(values, v)
		}

		names = append(names, name)
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}
