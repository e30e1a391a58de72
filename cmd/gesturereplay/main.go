// gesturereplay runs a phonelab pipeline over recorded logcat traces and
// reports the gestures the detectors find in the InputDispatcher and
// SensorService logs.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	phonelab "github.com/shaseley/phonelab-go"
	"github.com/spf13/cobra"

	gesture "github.com/shaseley/libgesturego"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "gesturereplay",
		Short:        "Replay logcat traces through the gesture detectors",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(handler).With(slog.String("component", "gesturereplay")))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(newRunCmd(), newConfigCmd())
	return root
}

type runOptions struct {
	pipeline   string
	configPath string
	out        string
	useSysTime bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a pipeline and collect detected gestures",
		Long: `run loads a phonelab pipeline description (YAML) and executes it. The
pipeline's data collector must be named "gestures"; every detected gesture
it receives is written out as JSON.

Processors available to the pipeline:
  gestures   detect gestures (args: detect, plus any config key)
  timesync   emit trace/uptime clock offsets`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.pipeline, "pipeline", "p", "", "pipeline description (YAML)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "detector config file (.toml, .yaml or .json)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file for the gestures (default stdout)")
	cmd.Flags().BoolVar(&opts.useSysTime, "use-systime", false, "stamp gestures with the event uptime clock")
	_ = cmd.MarkFlagRequired("pipeline")

	return cmd
}

func run(opts *runOptions) error {
	logger := slog.Default()

	conf, err := gesture.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pipeline, err := os.ReadFile(opts.pipeline)
	if err != nil {
		return fmt.Errorf("read pipeline: %w", err)
	}

	gesture.GlobalConf.UseSysTime = opts.useSysTime

	env := phonelab.NewEnvironment()
	gesture.AddParsers(env)
	gesture.AddProcessors(env, conf)

	collector := gesture.NewEventCollector()
	collector.PersistOnFinish = true
	collector.Filename = opts.out
	collector.Logger = logger
	env.DataCollectors["gestures"] = func() phonelab.DataCollector {
		return collector
	}

	runnerConf, err := phonelab.RunnerConfFromString(string(pipeline))
	if err != nil {
		return fmt.Errorf("parse pipeline: %w", err)
	}
	runner, err := runnerConf.ToRunner(env)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	logger.Info("running pipeline", "pipeline", opts.pipeline)
	if errs := runner.Run(); len(errs) > 0 {
		for _, err := range errs {
			logger.Error("pipeline error", "error", err)
		}
		return fmt.Errorf("pipeline finished with %d errors", len(errs))
	}

	counts := collector.Counts()
	kinds := make([]gesture.EventKind, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, kind := range kinds {
		logger.Info("detected", "kind", kind, "count", counts[kind])
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective detector config as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := gesture.LoadConfig(configPath)
			if err != nil {
				return err
			}
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(conf)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "detector config file (.toml, .yaml or .json)")
	return cmd
}
