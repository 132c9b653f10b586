package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/clothsim/internal/analysis"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/export"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/scene"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
	"github.com/san-kum/clothsim/internal/viz"
)

var (
	dataDir string
	verbose bool
	logger  = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

// main registers the commands and runs the live view when no subcommand is
// given. It exits with status 1 if the command returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "clothsim",
		Short: "tearable cloth simulation",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		},
		RunE: runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".clothsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addWorldFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run the cloth in the terminal; click to tear",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addWorldFlags(liveCmd)

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run headless and save the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addWorldFlags(runCmd)
	addTearFlag(runCmd)
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON instead of saving it")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot metric series of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&metricName, "metric", "", "plot only this metric")
	plotCmd.Flags().StringVar(&outPath, "svg", "", "write the metric as SVG to this path")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a metric series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&analyzeMetric, "metric", "sag", "metric to analyse")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [scene]",
		Short: "run a scene and draw the final cloth as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	addWorldFlags(exportSVGCmd)
	addTearFlag(exportSVGCmd)
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list available presets for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scene: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list built-in scenes",
		RunE:  listScenes,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [scene] [sweeps1] [sweeps2] ...",
		Short: "compare relaxation sweep counts on the same scene",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareSweeps,
	}
	addWorldFlags(compareCmd)
	addTearFlag(compareCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "measure ticks per second",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}
	addWorldFlags(benchCmd)

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportSVGCmd, presetsCmd, scenesCmd, compareCmd, benchCmd)
	rootCmd.AddCommand(batchCommands()...)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("margin") && cfg.World.Margin == 0 {
		cfg.World.Margin = 1
	}
	bounds := cfg.Bounds()
	if r := viz.ClickRadius(bounds); r > cfg.Physics.TearTolerance {
		logger.Debug("widening tear tolerance to one terminal cell", "from", cfg.Physics.TearTolerance, "to", r)
		cfg.Physics.TearTolerance = r
	}

	reg := scene.NewRegistry()
	model, err := viz.NewModel(func() (*cloth.World, error) { return cfg.NewWorld(reg) }, viz.Options{
		Title:  cfg.Scene,
		Bounds: bounds,
		Forces: cfg.Forces(),
		FPS:    cfg.FPS,
		Theme:  cfg.Theme,
	})
	if err != nil {
		return err
	}

	logger.Debug("starting live view", "scene", cfg.Scene, "particles", model.World().Particles().Len(), "links", model.World().NumConstraints())
	return viz.Run(model)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, presetName, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	result, err := simulate(cfg)
	if err != nil {
		return err
	}

	meta := runMetadata(cfg, presetName)
	if jsonOut {
		return export.ResultJSON(os.Stdout, meta, result.Result)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(meta, result.Result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.Ticks)
	fmt.Printf("links: %d/%d active, %d torn\n", result.Active, result.Total, len(result.Tears))
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

type timedResult struct {
	*sim.Result
	world   *cloth.World
	elapsed time.Duration
}

// simulate runs cfg headless with the default metrics and the scripted
// tears from --tear.
func simulate(cfg *config.Config) (*timedResult, error) {
	w, err := cfg.NewWorld(scene.NewRegistry())
	if err != nil {
		return nil, err
	}

	script, err := parseTears(tearSpecs)
	if err != nil {
		return nil, err
	}

	simulator := sim.New(metrics.Defaults()...)
	simulator.AddObserver(tearLog{})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Debug("running", "scene", cfg.Scene, "ticks", cfg.Ticks, "sweeps", cfg.Physics.Sweeps, "particles", w.Particles().Len(), "links", w.NumConstraints())
	start := time.Now()

	result, err := simulator.Run(ctx, w, sim.Config{
		Ticks:  cfg.Ticks,
		Bounds: cfg.Bounds(),
		Forces: cfg.Forces(),
		Script: script,
	})
	if err != nil {
		return nil, err
	}

	return &timedResult{Result: result, world: w, elapsed: time.Since(start)}, nil
}

type tearLog struct{}

func (tearLog) OnTick(w *cloth.World, tick int, torn []int) {
	for _, idx := range torn {
		logger.Debug("tear", "tick", tick, "constraint", idx, "active", w.ActiveCount())
	}
}

func runMetadata(cfg *config.Config, presetName string) storage.RunMetadata {
	return storage.RunMetadata{
		Scene:         cfg.Scene,
		Preset:        presetName,
		Dt:            cfg.Physics.Dt,
		Sweeps:        cfg.Physics.Sweeps,
		TearTolerance: cfg.Physics.TearTolerance,
		Gravity:       cfg.Physics.Gravity.Vec2(),
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tTICKS\tSWEEPS\tLINKS\tTORN")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d/%d\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Sweeps,
			run.Active,
			run.Constraints,
			len(run.Tears),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	names, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if metricName != "" {
		if _, ok := series[metricName]; !ok {
			return fmt.Errorf("run %s has no metric %q (available: %v)", runID, metricName, names)
		}
		names = []string{metricName}
	}

	if len(names) == 0 {
		return fmt.Errorf("run %s has no metric series", runID)
	}

	if outPath != "" {
		name := names[0]
		svg := export.SeriesToSVG(series[name], 800, 300, "#00ffff")
		if svg == "" {
			return fmt.Errorf("metric %s has too few samples to plot", name)
		}
		if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s to %s\n", name, outPath)
		return nil
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("ticks: %d\n\n", meta.Ticks)

	for _, name := range names {
		data := series[name]
		if len(data) == 0 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	data, ok := series[analyzeMetric]
	if !ok || len(data) < 4 {
		return fmt.Errorf("run %s has no usable %s series", runID, analyzeMetric)
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scene: %s\n\n", meta.Scene)

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/4+1]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", analyzeMetric)),
	)
	fmt.Println(graph)
	fmt.Println()

	if freq, ok := analysis.Dominant(data, meta.Dt); ok {
		fmt.Printf("dominant frequency: %.4f\n", freq)
		fmt.Printf("period: %.2f (%.0f ticks)\n", 1/freq, 1/(freq*meta.Dt))
	} else {
		fmt.Println("no oscillation found")
	}

	final := data[len(data)-1]
	settle := analysis.SettlingTick(data, math.Max(math.Abs(final)*0.01, 1e-6))
	fmt.Printf("settles within 1%% of %.4f at tick %d\n", final, settle)

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	return export.RunJSON(os.Stdout, *meta, series)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	result, err := simulate(cfg)
	if err != nil {
		return err
	}

	w := result.world
	svg := export.SegmentsToSVG(w.Positions(), w.Segments(), cfg.World.Width, cfg.World.Height, cfg.World.Margin)
	if outPath == "" {
		fmt.Println(svg)
		return nil
	}

	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s after %d ticks (%d/%d links)\n", outPath, result.Ticks, result.Active, result.Total)
	return nil
}

func listScenes(cmd *cobra.Command, args []string) error {
	reg := scene.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tPIN\tDESCRIPTION")

	for _, name := range reg.Names() {
		s, err := reg.Get(name)
		if err != nil {
			return err
		}
		size := fmt.Sprintf("%dx%d", s.Rows, s.Cols)
		if s.Shear {
			size += "+shear"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, size, s.Pin, reg.Info(name))
	}

	return w.Flush()
}

func compareSweeps(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args[:1])
	if err != nil {
		return err
	}

	sweeps := make([]int, 0, len(args)-1)
	for _, arg := range args[1:] {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid sweep count %q: %w", arg, err)
		}
		sweeps = append(sweeps, n)
	}

	script, err := parseTears(tearSpecs)
	if err != nil {
		return err
	}

	reg := scene.NewRegistry()
	ensemble := sim.NewEnsemble(func(n int) (*cloth.World, error) {
		c := cfg.Clone()
		c.Physics.Sweeps = n
		return c.NewWorld(reg)
	}, metrics.Defaults)

	fmt.Printf("comparing %d sweep counts on %s...\n\n", len(sweeps), cfg.Scene)
	start := time.Now()

	results, err := ensemble.Run(context.Background(), sweeps, sim.Config{
		Ticks:  cfg.Ticks,
		Bounds: cfg.Bounds(),
		Forces: cfg.Forces(),
		Script: script,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SWEEPS\tSTRETCH\tMAX_STRETCH\tSAG\tLINKS")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%.3f\t%d/%d\n",
			sweeps[i],
			r.Metrics["stretch"],
			r.Metrics["max_stretch"],
			r.Metrics["sag"],
			r.Active,
			r.Total,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", time.Since(start))
	return nil
}

func benchScene(cmd *cobra.Command, args []string) error {
	base, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	reg := scene.NewRegistry()

	fmt.Printf("benchmarking %s\n\n", base.Scene)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SWEEPS\tTICKS\tTIME\tTICKS/SEC")

	for _, sweeps := range []int{1, 5, 15} {
		cfg := base.Clone()
		cfg.Physics.Sweeps = sweeps

		world, err := cfg.NewWorld(reg)
		if err != nil {
			return err
		}

		in := cloth.TickInput{Forces: cfg.Forces(), Bounds: cfg.Bounds()}
		start := time.Now()
		for i := 0; i < cfg.Ticks; i++ {
			world.Tick(in)
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", sweeps, cfg.Ticks, elapsed, float64(cfg.Ticks)/elapsed.Seconds())
	}

	return w.Flush()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
