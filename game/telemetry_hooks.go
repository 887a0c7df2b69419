package game

import (
	"context"
	"log/slog"

	"github.com/pthm-cable/savanna/telemetry"
)

// flushTelemetry closes the day's stats and hands them to every configured sink.
// Sink failures are logged and never stop the run.
func (s *Simulation) flushTelemetry(ctx context.Context, report *DayReport) {
	s.perf.StartPhase(telemetry.PhaseTelemetry)
	defer s.perf.EndDay()

	stats := s.collector.Flush(s.day, report.GrassBefore, report.GrassAfter, s.reg.Tally())
	report.Stats = stats
	events := s.dayEvents
	s.dayEvents = nil

	if s.opts.LogStats {
		stats.LogStats()
	}

	if err := s.opts.Output.WriteDay(stats); err != nil {
		slog.Error("failed to write day stats", "day", s.day, "error", err)
	}
	if err := s.opts.Output.WriteEvents(events); err != nil {
		slog.Error("failed to write events", "day", s.day, "error", err)
	}

	if err := s.opts.DayLog.WriteDay(telemetry.DayEntry{
		RunID:     s.opts.RunID,
		Day:       s.day,
		Stats:     stats,
		Events:    events,
		Survivors: s.Survivors(),
	}); err != nil {
		slog.Error("failed to write day log", "day", s.day, "error", err)
	}

	if err := s.opts.Index.RecordDay(ctx, s.opts.RunID, stats); err != nil {
		slog.Error("failed to index day", "day", s.day, "error", err)
	}

	if s.bookmarks == nil {
		return
	}
	for _, bm := range s.bookmarks.Check(stats) {
		report.Bookmarks = append(report.Bookmarks, bm)
		if s.opts.LogStats {
			bm.LogBookmark()
		}
		if err := s.opts.Output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}
