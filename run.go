package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/savanna/config"
	"github.com/pthm-cable/savanna/game"
	"github.com/pthm-cable/savanna/scenario"
	"github.com/pthm-cable/savanna/telemetry"
)

// loadScenario reads the input named by args, or the configured default.
// Input errors are printed to out as their bare message.
func loadScenario(out io.Writer, cfg *config.Config, args []string) (*scenario.Scenario, error) {
	path := cfg.Input.Path
	if len(args) > 0 {
		path = args[0]
	}
	cat, err := scenario.NewCatalog(cfg.Species)
	if err != nil {
		return nil, err
	}
	sc, err := scenario.Open(path, cfg.Input.Format, cat)
	if err != nil {
		slog.Debug("invalid scenario", "path", path, "error", err)
		fmt.Fprintln(out, scenario.Message(err))
		return nil, errReported
	}
	return sc, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg := config.Cfg()
	out := cmd.OutOrStdout()

	// CLI flags override config
	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.Telemetry.OutputDir = outputDir
	}
	if flags.Changed("event-log") {
		cfg.Telemetry.EventLog = eventLog
	}
	if flags.Changed("index-db") {
		cfg.Telemetry.IndexDB = indexDB
	}
	if flags.Changed("log-stats") {
		cfg.Telemetry.LogStats = logStats
	}

	sc, err := loadScenario(out, cfg, args)
	if err != nil {
		return err
	}
	reg, pool, err := scenario.Build(sc)
	if err != nil {
		fmt.Fprintln(out, scenario.Message(err))
		return errReported
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.NewString()
	opts, closeSinks, err := openSinks(cfg, runID)
	if err != nil {
		return err
	}
	defer closeSinks()

	opts.OnEvent = func(ev game.Event) {
		fmt.Fprintln(out, ev.Message())
	}

	sim, err := game.New(sc.Days, reg, pool, opts)
	if err != nil {
		return err
	}

	slog.Info("starting simulation",
		"run_id", runID,
		"days", sc.Days,
		"grass", sc.Grass,
		"animals", len(sc.Animals),
	)
	if err := sim.Run(ctx); err != nil {
		return fmt.Errorf("simulation stopped on day %d: %w", sim.Day(), err)
	}

	for _, sound := range sim.Sounds() {
		fmt.Fprintln(out, sound)
	}
	return nil
}

// openSinks creates the telemetry outputs enabled in cfg.
// The returned func closes them and logs any close error.
func openSinks(cfg *config.Config, runID string) (game.Options, func(), error) {
	opts := game.Options{
		RunID:      runID,
		Bookmarks:  &cfg.Bookmarks,
		PerfWindow: cfg.Telemetry.PerfWindow,
		LogStats:   cfg.Telemetry.LogStats,
	}

	var closers []func() error
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				slog.Error("failed to close telemetry sink", "error", err)
			}
		}
	}

	om, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		return opts, nil, err
	}
	closers = append(closers, om.Close)
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}
	opts.Output = om

	dl, err := telemetry.NewDayLogger(cfg.Telemetry.EventLog)
	if err != nil {
		closeAll()
		return opts, nil, err
	}
	closers = append(closers, dl.Close)
	opts.DayLog = dl

	idx, err := telemetry.OpenRunIndex(cfg.Telemetry.IndexDB)
	if err != nil {
		closeAll()
		return opts, nil, fmt.Errorf("opening run index: %w", err)
	}
	closers = append(closers, idx.Close)
	opts.Index = idx

	if om != nil {
		slog.Info("writing output", "dir", om.Dir())
	}
	return opts, closeAll, nil
}

func validateScenario(cmd *cobra.Command, args []string) error {
	cfg := config.Cfg()
	out := cmd.OutOrStdout()
	sc, err := loadScenario(out, cfg, args)
	if err != nil {
		return err
	}

	if printDoc {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(sc.Document()); err != nil {
			return fmt.Errorf("encoding scenario: %w", err)
		}
		return enc.Close()
	}

	// Species in order of first appearance
	var names []string
	counts := make(map[string]int)
	for _, a := range sc.Animals {
		if counts[a.Species] == 0 {
			names = append(names, a.Species)
		}
		counts[a.Species]++
	}
	fmt.Fprintf(out, "valid: %d days, grass %g, %d animals\n", sc.Days, sc.Grass, len(sc.Animals))
	for _, name := range names {
		sp, ok := cfg.LookupSpecies(name)
		if !ok {
			return fmt.Errorf("species %s missing from config", name)
		}
		fmt.Fprintf(out, "  %-8s %d (%s, %s)\n", sp.Name, counts[name], sp.Kind, sp.Sound)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	path := config.Cfg().Telemetry.IndexDB
	if cmd.Flags().Changed("index-db") {
		path = indexDB
	}
	if path == "" {
		return fmt.Errorf("no run index: pass --index-db or set telemetry.index_db")
	}

	idx, err := telemetry.OpenRunIndex(path)
	if err != nil {
		return fmt.Errorf("opening run index: %w", err)
	}
	defer idx.Close()

	if showRun != "" {
		return printRunDays(cmd, idx, showRun)
	}

	runs, err := idx.Runs(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tDAYS\tGRASS\tANIMALS\tSURVIVORS")
	for _, r := range runs {
		survivors := "-"
		if r.Survivors.Valid {
			survivors = fmt.Sprint(r.Survivors.Int64)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%g\t%d\t%s\n", r.ID, r.StartedAt, r.Days, r.Grass, r.Animals, survivors)
	}
	return w.Flush()
}

// printRunDays lists the end-of-day population of one indexed run.
func printRunDays(cmd *cobra.Command, idx *telemetry.RunIndex, runID string) error {
	pops, err := idx.DayPopulations(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if len(pops) == 0 {
		return fmt.Errorf("run %s has no recorded days", runID)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DAY\tPOPULATION")
	for i, n := range pops {
		fmt.Fprintf(w, "%d\t%d\n", i+1, n)
	}
	return w.Flush()
}
