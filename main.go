package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/savanna/config"
)

// errReported marks a failure whose message has already been printed.
var errReported = errors.New("reported")

var (
	// Global flags
	configPath string
	logLevel   string
	logFormat  string

	// Run flags
	outputDir string
	eventLog  string
	indexDB   string
	logStats  bool

	// Validate and runs flags
	printDoc bool
	showRun  string
)

var rootCmd = &cobra.Command{
	Use:   "savanna",
	Short: "Discrete-day ecosystem simulator",
	Long: `savanna simulates grazers and hunters sharing a field of grass.

Each day every living animal feeds in input order, the grass regrows,
every animal pays one unit of energy, and the dead are removed.
The sounds of the survivors are printed when the run ends.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(configPath); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg := config.Cfg()
		if cmd.Flags().Changed("log-level") {
			cfg.Logging.Level = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.Logging.Format = logFormat
		}
		slog.SetDefault(newLogger(cfg.Logging))
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run [input]",
	Short: "Run a simulation and print the survivors' sounds",
	Long: `Reads a scenario and simulates it day by day.

Feeding failures are printed as they happen, followed by one line per
survivor with its sound. Input errors print a single message.

The input is the text format (days, grass, count, then one
"<Species> <weight> <speed> <energy>" line per animal) or a
.yaml/.yml/.json document. Without an argument, input.path from the
config is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulation,
}

var validateCmd = &cobra.Command{
	Use:   "validate [input]",
	Short: "Check a scenario without running it",
	Args:  cobra.MaximumNArgs(1),
	RunE:  validateScenario,
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List runs recorded in a run index",
	Args:  cobra.NoArgs,
	RunE:  listRuns,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "Log format: json or text")

	runCmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory for CSV logs and config snapshot")
	runCmd.Flags().StringVar(&eventLog, "event-log", "", "Write a zstd-compressed JSONL day log to this file")
	runCmd.Flags().StringVar(&indexDB, "index-db", "", "Record the run in this SQLite index")
	runCmd.Flags().BoolVar(&logStats, "log-stats", false, "Output day stats via slog")

	validateCmd.Flags().BoolVar(&printDoc, "print", false, "Print the scenario as a YAML document instead of a summary")

	runsCmd.Flags().StringVar(&indexDB, "index-db", "", "SQLite run index to read (empty = telemetry.index_db from config)")
	runsCmd.Flags().StringVar(&showRun, "run", "", "Show the per-day population of this run")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(runsCmd)
}

// newLogger builds the slog logger. Logs go to stderr; stdout carries the simulation output.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
