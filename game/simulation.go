// Package game runs the day-by-day ecosystem simulation.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/savanna/systems"
	"github.com/pthm-cable/savanna/telemetry"
)

// ErrFinished is returned when stepping a simulation that has run all its days.
var ErrFinished = errors.New("simulation finished")

// State is the lifecycle stage of a Simulation.
type State uint8

const (
	StateNotStarted State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Simulation owns the population and the resource pool for a fixed number of days.
type Simulation struct {
	reg  *systems.Registry
	pool *systems.ResourcePool

	days  int
	day   int // last completed day
	state State

	events []Event
	opts   Options

	// Telemetry
	collector *telemetry.Collector
	lifetime  *telemetry.LifetimeTracker
	bookmarks *telemetry.BookmarkDetector
	perf      *telemetry.PerfCollector
	dayEvents []telemetry.Event
}

// New creates a simulation of days days over an already validated population and pool.
func New(days int, reg *systems.Registry, pool *systems.ResourcePool, opts Options) (*Simulation, error) {
	if days < 1 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}
	if reg == nil || pool == nil {
		return nil, errors.New("registry and pool are required")
	}

	s := &Simulation{
		reg:       reg,
		pool:      pool,
		days:      days,
		opts:      opts,
		collector: telemetry.NewCollector(),
		lifetime:  telemetry.NewLifetimeTracker(),
	}
	if opts.Bookmarks != nil {
		s.bookmarks = telemetry.NewBookmarkDetector(*opts.Bookmarks)
	}
	if opts.PerfWindow > 0 {
		s.perf = telemetry.NewPerfCollector(opts.PerfWindow)
	}

	for _, a := range reg.Snapshot() {
		s.lifetime.Register(a.ID(), a.Species(), a.Kind(), a.Energy())
	}
	return s, nil
}

// Step advances the simulation by one day.
func (s *Simulation) Step(ctx context.Context) (DayReport, error) {
	switch s.state {
	case StateFinished:
		return DayReport{}, ErrFinished
	case StateNotStarted:
		s.start(ctx)
	}

	s.day++
	report := s.runDay()
	s.flushTelemetry(ctx, &report)

	if s.opts.OnDay != nil {
		s.opts.OnDay(report)
	}
	if s.day == s.days {
		s.finish(ctx)
	}
	return report, nil
}

// Run advances through every remaining day.
// It stops early if ctx is cancelled between days.
func (s *Simulation) Run(ctx context.Context) error {
	if s.state == StateFinished {
		return ErrFinished
	}
	for s.state != StateFinished {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// start culls organisms that are dead before the first day, so they never act or become prey.
func (s *Simulation) start(ctx context.Context) {
	s.state = StateRunning

	if err := s.opts.Index.BeginRun(ctx, telemetry.RunInfo{
		ID:        s.opts.RunID,
		StartedAt: s.opts.now(),
		Days:      s.days,
		Grass:     s.pool.Quantity(),
		Animals:   s.reg.Len(),
	}); err != nil {
		slog.Error("failed to index run", "run_id", s.opts.RunID, "error", err)
	}

	removed := s.reg.Cull()
	if s.bookmarks != nil {
		q := s.pool.Quantity()
		s.bookmarks.Seed(s.collector.Flush(0, q, q, s.reg.Tally()))
	}
	if len(removed) == 0 {
		return
	}
	deaths := make([]telemetry.Event, 0, len(removed))
	for _, r := range removed {
		ev := telemetry.NewDeathEvent(0, r.ID, r.Kind)
		s.lifetime.Record(ev)
		deaths = append(deaths, ev)
	}
	if err := s.opts.Output.WriteEvents(deaths); err != nil {
		slog.Error("failed to write events", "day", 0, "error", err)
	}
	slog.Info("initial_cull", "removed", len(removed), "remaining", s.reg.Len())
}

func (s *Simulation) finish(ctx context.Context) {
	s.state = StateFinished

	survivors := s.Survivors()
	if err := s.opts.Output.WriteSurvivors(survivors); err != nil {
		slog.Error("failed to write survivors", "error", err)
	}
	if err := s.opts.Output.WriteLifetimes(s.lifetime.All()); err != nil {
		slog.Error("failed to write lifetimes", "error", err)
	}
	if err := s.opts.Index.FinishRun(ctx, s.opts.RunID, len(survivors)); err != nil {
		slog.Error("failed to index run", "run_id", s.opts.RunID, "error", err)
	}
	if s.perf != nil {
		slog.Debug("perf", "stats", s.perf.Stats())
	}
	slog.Info("run_complete", "days", s.day, "survivors", len(survivors), "failures", len(s.events))
}

// Day returns the number of completed days.
func (s *Simulation) Day() int {
	return s.day
}

// Days returns the configured run length.
func (s *Simulation) Days() int {
	return s.days
}

// State returns the lifecycle stage.
func (s *Simulation) State() State {
	return s.state
}

// Pool returns the current resource quantity.
func (s *Simulation) Pool() float32 {
	return s.pool.Quantity()
}

// Survivors returns the live organisms in registry order.
func (s *Simulation) Survivors() []systems.ActorRecord {
	actors := s.reg.Survivors()
	out := make([]systems.ActorRecord, len(actors))
	for i, a := range actors {
		out[i] = a.Record()
	}
	return out
}

// Sounds returns the signature sound of each survivor, in registry order.
func (s *Simulation) Sounds() []string {
	actors := s.reg.Survivors()
	out := make([]string, len(actors))
	for i, a := range actors {
		out[i] = a.Sound()
	}
	return out
}

// Events returns every feeding failure so far, in the order they happened.
func (s *Simulation) Events() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Lifetimes returns per-organism statistics, including culled organisms.
func (s *Simulation) Lifetimes() []telemetry.LifetimeStats {
	return s.lifetime.All()
}
