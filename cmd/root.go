package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/activerecon/activerecon/recon"
	"github.com/activerecon/activerecon/recon/adapter"
	"github.com/activerecon/activerecon/recon/flyingcam"
	"github.com/activerecon/activerecon/recon/trace"
)

var (
	configPath       string        // Path to the reconstruction YAML bundle
	logLevel         string        // Log verbosity level
	seed             int64         // Seed for simulated camera faults and point sampling
	maxCalls         int           // Overrides termination.max_calls when set
	settlingInterval time.Duration // Overrides adapter.settling_interval when set
	traceOut         string        // Optional path for the per-iteration trace (JSON)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "activerecon",
	Short: "Active reconstruction view-planning loop over a simulated flying camera",
}

// runCmd executes a reconstruction run using the YAML bundle plus CLI overrides
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a reconstruction loop against the simulated camera",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		bundle := mustLoadBundle(configPath)
		// Only explicit flags override the bundle; defaults must not clobber YAML values.
		if cmd.Flags().Changed("max-calls") {
			bundle.Termination.MaxCalls = &maxCalls
		}
		if cmd.Flags().Changed("settling-interval") {
			bundle.Adapter.SettlingInterval = &settlingInterval
		}
		if err := bundle.Validate(); err != nil {
			logrus.Fatalf("Invalid reconstruction config: %v", err)
		}

		loop, bus, err := buildLoop(bundle, seed)
		if err != nil {
			logrus.Fatalf("Failed to set up reconstruction: %v", err)
		}

		logrus.Infof("Starting reconstruction run %s with %d candidate views, termination=%q, settler=%q",
			loop.Trace.RunID, len(bundle.Views), bundle.Termination.Policy, bundle.Adapter.Settler)
		startTime := time.Now()

		res := loop.Run()

		_, out := bundle.Adapter.Channels()
		printSummary(os.Stdout, trace.Summarize(loop.Trace), bus.Len(out), time.Since(startTime))
		if traceOut != "" {
			if err := saveTrace(traceOut, loop.Trace); err != nil {
				logrus.Fatalf("Failed to write trace: %v", err)
			}
			logrus.Infof("Trace written to %s", traceOut)
		}
		logrus.Infof("Reconstruction complete: %s", res.StopReason)
	},
}

// validateCmd loads and validates a bundle without running it
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a reconstruction config file",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		bundle := mustLoadBundle(configPath)
		if err := bundle.Validate(); err != nil {
			logrus.Fatalf("Invalid reconstruction config: %v", err)
		}
		logrus.Infof("%s: ok (%d candidate views)", configPath, len(bundle.Views))
	},
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

func mustLoadBundle(path string) *recon.ReconBundle {
	if path == "" {
		logrus.Fatalf("--config not provided. Exiting.")
	}
	bundle, err := recon.LoadReconBundle(path)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	return bundle
}

// buildLoop wires the simulated camera, bus and rerouter behind a view adapter
// and pairs it with the configured termination criteria and planner.
// The bundle must already be validated.
func buildLoop(bundle *recon.ReconBundle, seed int64) (*recon.Loop, *flyingcam.Bus, error) {
	bus := flyingcam.NewBus()
	cam := flyingcam.NewCameraFromBundle(bundle, bus, flyingcam.NewPartitionedRNG(seed))
	in, out := bundle.Adapter.Channels()

	comm := adapter.New(cam, flyingcam.NewRerouter(bus, in, out),
		adapter.WithSettler(adapter.NewSettler(bundle.Adapter, cam)),
		adapter.WithLogger(logrus.WithField("component", "adapter")),
	)

	term, err := recon.NewTerminationCriteria(bundle.Termination)
	if err != nil {
		return nil, nil, err
	}

	return &recon.Loop{
		Comm:        comm,
		Termination: term,
		Planner:     recon.NewViewPlanner(bundle.Planner.Policy, bundle.CandidateViews(), bundle.Planner.DefaultUnknownCost),
		Trace:       trace.NewRunTrace(),
	}, bus, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, validateCmd} {
		c.Flags().StringVar(&configPath, "config", "", "Path to the reconstruction YAML config")
		c.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	}

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for simulated camera faults and point sampling")
	runCmd.Flags().IntVar(&maxCalls, "max-calls", recon.DefaultMaxCalls, "Override termination.max_calls")
	runCmd.Flags().DurationVar(&settlingInterval, "settling-interval", recon.DefaultSettlingInterval, "Override adapter.settling_interval")
	runCmd.Flags().StringVar(&traceOut, "trace-out", "", "Write the per-iteration trace as JSON to this path")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
