package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/san-kum/boxsim/internal/config"
	"github.com/san-kum/boxsim/internal/observability"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	svgPath    string
	svgScale   float64
	speed      float64
	theme      string

	v   = newViper()
	cfg *config.Config
)

// A zero duration means different things to the two simulating commands:
// run takes a single step, live keeps stepping until the user quits.
const (
	runDurationUsage  = "simulated time to run (0 = a single step)"
	liveDurationUsage = "simulated time before stopping (0 = run until quit)"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "boxsim",
		Short:         "particles bouncing in a square box",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			resolved, err := resolveConfig(v, preset, configFile)
			if err != nil {
				return err
			}
			cfg = resolved
			observability.InitializeLogger(cfg.Log)
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".boxsim", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console, json)")
	pf.String("log-file", "", "also log to this file, rotated")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd, runDurationUsage)
	runCmd.Flags().Bool("animate", false, "draw the box while running, paced in real time")
	runCmd.Flags().Float64Var(&speed, "speed", 1, "playback speed when animating")
	runCmd.Flags().Int("max-steps", 0, "stop after this many steps (0 = no cap)")
	runCmd.Flags().Int("record-every", config.DefaultRecordEvery, "store every n-th frame (0 = none)")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame as svg")
	runCmd.Flags().Float64Var(&svgScale, "scale", 4, "svg units per box unit")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive view of a running box",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd, liveDurationUsage)
	liveCmd.Flags().StringVar(&theme, "theme", "neon", "colour theme (neon, mono, ocean)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored particle positions",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "print the stored trajectory as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "print metadata and trajectory as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the stored trajectory as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgPath, "out", "", "output file (default stdout)")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 4, "svg units per box unit")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initConfigCmd.Flags().StringVar(&preset, "preset", "", "start from a preset configuration")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, exportCSVCmd,
		exportJSONCmd, exportSVGCmd, presetsCmd, initConfigCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	observability.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command, durationUsage string) {
	f := cmd.Flags()
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Float64("side-length", config.DefaultSideLength, "box side length")
	f.Float64("radius", config.DefaultRadius, "particle radius")
	f.Float64("relative-radius", 0, "particle radius as a fraction of the side length (overrides --radius)")
	f.Int("particles", config.DefaultParticles, "number of particles")
	f.Int64("seed", 0, "random seed (0 = from clock)")
	f.Float64("duration", config.DefaultDuration, durationUsage)
	f.Float64("max-speed", config.DefaultMaxSpeed, "bound on each random velocity component")
	f.Int("fps", config.DefaultFrameRate, "frame rate when drawing")
}
