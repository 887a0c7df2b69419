package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one simulated day.
const (
	PhaseFeeding    = "feeding"
	PhaseRegrowth   = "regrowth"
	PhaseMetabolism = "metabolism"
	PhaseCull       = "cull"
	PhaseTelemetry  = "telemetry"
)

var phaseOrder = []string{PhaseFeeding, PhaseRegrowth, PhaseMetabolism, PhaseCull, PhaseTelemetry}

// PerfSample holds timing data for a single day.
type PerfSample struct {
	DayDuration time.Duration
	Phases      map[string]time.Duration
}

// PerfCollector tracks wall-clock cost of each day over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	dayStart      time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a new performance collector averaging over windowSize days.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 30
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartDay begins timing a new simulated day.
func (p *PerfCollector) StartDay() {
	if p == nil {
		return
	}
	p.dayStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	if p == nil {
		return
	}
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndDay finishes timing the current day and records the sample.
func (p *PerfCollector) EndDay() {
	if p == nil {
		return
	}
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		DayDuration: now.Sub(p.dayStart),
		Phases:      p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	p.lastPhase = ""
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	Days int

	AvgDayDuration time.Duration
	MinDayDuration time.Duration
	MaxDayDuration time.Duration

	// Phase breakdown (average durations and share of the day)
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p == nil || p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.DayDuration
		if i == 0 || s.DayDuration < stats.MinDayDuration {
			stats.MinDayDuration = s.DayDuration
		}
		if s.DayDuration > stats.MaxDayDuration {
			stats.MaxDayDuration = s.DayDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	stats.Days = p.sampleCount
	stats.AvgDayDuration = total / time.Duration(p.sampleCount)
	for phase, sum := range phaseSum {
		stats.PhaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if stats.AvgDayDuration > 0 {
			stats.PhasePct[phase] = float64(stats.PhaseAvg[phase]) / float64(stats.AvgDayDuration) * 100
		}
	}
	return stats
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("days", s.Days),
		slog.Int64("avg_day_us", s.AvgDayDuration.Microseconds()),
		slog.Int64("min_day_us", s.MinDayDuration.Microseconds()),
		slog.Int64("max_day_us", s.MaxDayDuration.Microseconds()),
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}
