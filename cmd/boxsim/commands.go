package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	jsoniter "github.com/json-iterator/go"
	"github.com/san-kum/boxsim/internal/config"
	"github.com/san-kum/boxsim/internal/export"
	"github.com/san-kum/boxsim/internal/metrics"
	"github.com/san-kum/boxsim/internal/observability"
	"github.com/san-kum/boxsim/internal/sim"
	"github.com/san-kum/boxsim/internal/storage"
	"github.com/san-kum/boxsim/internal/tui"
	"github.com/san-kum/boxsim/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	log := observability.GetLogger()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	set, err := cfg.InitialSet(rng)
	if err != nil {
		return err
	}
	box := cfg.Box()

	s := sim.New(box)
	s.SetLogger(log)
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}

	if cfg.Animate {
		r := tui.NewLiveRenderer(box, cfg.FrameRate)
		s.AddObserver(r)
		s.SetPacer(tui.NewPacer(speed))
		r.Start()
		defer r.Stop()
	}

	log.Info("running simulation",
		zap.Int("particles", set.Len()),
		zap.Float64("side_length", box.SideLength),
		zap.Float64("radius", box.Radius),
		zap.Int64("seed", cfg.Seed),
	)
	start := time.Now()

	result, err := s.Run(cmd.Context(), set, cfg.SimConfig())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if result == nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(box, set.Len(), cfg.Seed, cfg.Duration, result)
	if err != nil {
		return err
	}
	log.Info("run stored", zap.String("run_id", runID), zap.String("reason", string(result.Reason)))

	if svgPath != "" {
		final := set.Snapshot(result.Steps, result.Elapsed, 0)
		if err := os.WriteFile(svgPath, []byte(export.FrameToSVG(final, box, svgScale)), 0644); err != nil {
			return err
		}
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Printf("simulated: %.4f (%s)\n", result.Elapsed, result.Reason)
	fmt.Printf("reflections: %d\n", result.Reflections)
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	rng := rand.New(rand.NewSource(cfg.Seed))
	set, err := cfg.InitialSet(rng)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg.Box(), set, cfg.Duration)
	if err != nil {
		return err
	}
	m.SetTheme(theme)

	p := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
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
	fmt.Fprintln(w, "ID\tTIME\tN\tSIDE\tRADIUS\tSTEPS\tELAPSED\tREASON")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.1f\t%.3f\t%d\t%.3f\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.Box.SideLength,
			run.Box.Radius,
			run.Steps,
			run.Elapsed,
			run.Reason,
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

	frames, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 || frames[0].Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particles: %d\n", meta.Particles)
	fmt.Printf("samples: %d\n\n", len(frames))

	shown := frames[0].Len()
	const maxPlots = 3
	if shown > maxPlots {
		shown = maxPlots
	}

	for i := 0; i < shown; i++ {
		xs := make([]float64, len(frames))
		ys := make([]float64, len(frames))
		for j, f := range frames {
			xs[j], ys[j] = f.X[i], f.Y[i]
		}

		graph := asciigraph.PlotMany([][]float64{xs, ys},
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
			asciigraph.Caption(fmt.Sprintf("particle %d: x (cyan), y (magenta)", i)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportCSV(os.Stdout, args[0])
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	svg := export.TrajectoryToSVG(frames, meta.Box, svgScale)
	if svgPath == "" {
		_, err = fmt.Println(svg)
		return err
	}
	return os.WriteFile(svgPath, []byte(svg), 0644)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tN\tSIDE\tRADIUS\tMAX SPEED\tDURATION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		n := fmt.Sprintf("%d", p.Particles)
		if p.InitialState != nil && len(p.InitialState) > 0 {
			n = fmt.Sprintf("%d (fixed)", len(p.InitialState[0]))
		}
		box := p.Box()
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.3f\t%.1f\t%.1f\n",
			name, n, box.SideLength, box.Radius, p.MaxSpeed, p.Duration)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
