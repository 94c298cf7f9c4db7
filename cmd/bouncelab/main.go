package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/bouncelab/internal/arcade"
	"github.com/san-kum/bouncelab/internal/config"
	"github.com/san-kum/bouncelab/internal/export"
	"github.com/san-kum/bouncelab/internal/gui"
	"github.com/san-kum/bouncelab/internal/metrics"
	"github.com/san-kum/bouncelab/internal/sim"
	"github.com/san-kum/bouncelab/internal/viz"
)

var (
	configFile string
	preset     string
	seed       int64
	numBodies  int
	mode       string
	fixedSize  bool
	// window
	backend string
	// tui
	logFile string
	// run
	frames  int
	runs    int
	verbose bool
	svgPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "bouncelab",
		Short:         "bouncing circles, fading labels",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runWindow,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	rootCmd.PersistentFlags().IntVar(&numBodies, "bodies", 0, "number of bodies at start")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "", "integration mode: verlet or kinematic")
	rootCmd.PersistentFlags().BoolVar(&fixedSize, "fixed-size", false, "keep the configured window size instead of the desktop resolution")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "open the simulation in a desktop window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	windowCmd.Flags().StringVar(&backend, "backend", "raylib", "window backend: raylib or ebiten")
	rootCmd.Flags().StringVar(&backend, "backend", "raylib", "window backend: raylib or ebiten")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&logFile, "log", "", "write logs to this file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "step the simulation headlessly and summarize it",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 600, "frames to simulate")
	runCmd.Flags().IntVar(&runs, "runs", 1, "independent runs with consecutive seeds")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log world events")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the last frame with body trails to this SVG file (single run)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "print the effective configuration, or save it to path",
		Args:  cobra.MaximumNArgs(1),
		RunE:  dumpConfig,
	}

	rootCmd.AddCommand(windowCmd, tuiCmd, runCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves the preset or config file, then applies the flags
// that were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case preset != "":
		cfg, err = config.GetPreset(preset)
	case configFile != "":
		cfg, err = config.Load(configFile)
	default:
		cfg = config.DefaultConfig()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("bodies") {
		cfg.Bodies.Count = numBodies
	}
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sessionName() string {
	if preset != "" {
		return preset
	}
	return "custom"
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := log.Default()

	switch backend {
	case "raylib":
		return gui.Run(gui.Options{Config: cfg, Name: sessionName(), FixedSize: fixedSize, Logger: logger})
	case "ebiten":
		return arcade.Run(arcade.Options{Config: cfg, Name: sessionName(), FixedSize: fixedSize, Logger: logger})
	}
	return fmt.Errorf("unknown backend %q (want raylib or ebiten)", backend)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "bouncelab")
		if err != nil {
			return err
		}
		defer f.Close()
		logger = log.Default()
	}

	if preset == "" && configFile == "" {
		return viz.Run(viz.NewApp(cfg, logger))
	}
	wc, err := cfg.World()
	if err != nil {
		return err
	}
	wc.Logger = logger
	return viz.Run(viz.NewModel(sim.New(wc), sessionName(), cfg.FPS))
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", runs)
	}
	wc, err := cfg.World()
	if err != nil {
		return err
	}
	wc.Logger = log.New(io.Discard, "", 0)
	if verbose {
		wc.Logger = log.Default()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dt := cfg.FrameDt()
	if runs == 1 {
		w := sim.New(wc)
		energy := metrics.NewKineticEnergy(frames)
		w.AddMetric(energy)
		w.AddMetric(metrics.NewContactRate())
		w.AddMetric(metrics.NewContainment(0.5))
		var trails *export.Trails
		if svgPath != "" {
			trails = export.NewTrails(120)
			w.AddObserver(trails)
		}

		result, err := w.Run(ctx, frames, dt)
		if result != nil {
			printResults([]*sim.Result{result})
		}
		if err != nil {
			return err
		}
		if trails != nil {
			if err := os.WriteFile(svgPath, []byte(export.FrameToSVG(w.Snapshot(), trails)), 0644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", svgPath)
		}
		if hist := energy.History(); len(hist) > 1 {
			fmt.Println()
			fmt.Println(asciigraph.Plot(hist,
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption("kinetic energy (J)"),
			))
		}
		return nil
	}

	if wc.Seed == 0 {
		wc.Seed = 1
	}
	ens := sim.NewEnsemble(wc, runs, wc.Seed, func() []sim.Metric {
		return []sim.Metric{
			metrics.NewKineticEnergy(1),
			metrics.NewContactRate(),
			metrics.NewContainment(0.5),
		}
	})
	results, err := ens.Run(ctx, frames, dt)
	printResults(results)
	return err
}

func printResults(results []*sim.Result) {
	var names []string
	for _, r := range results {
		if r == nil {
			continue
		}
		for name := range r.Metrics {
			names = append(names, name)
		}
		break
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "RUN\tFRAMES\tTIME\tBODY HITS\tWALL HITS\tLABEL HITS")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)

	for i, r := range results {
		if r == nil {
			continue
		}
		fmt.Fprintf(w, "%d\t%d\t%.2fs\t%d\t%d\t%d", i, r.Frames, r.Time, r.Contacts.Bodies, r.Contacts.Walls, r.Contacts.Labels)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4g", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMODE\tBODIES\tGRAVITY\tRADIUS")
	for _, name := range config.ListPresets() {
		p, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%v\t%.0f-%.0f\n", name, p.Mode, p.Bodies.Count, p.Gravity.Enabled, p.Bodies.MinRadius, p.Bodies.MaxRadius)
	}
	return w.Flush()
}

func dumpConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if err := config.Save(args[0], cfg); err != nil {
			return err
		}
		fmt.Printf("saved config to %s\n", args[0])
		return nil
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
