package telemetry

import "github.com/pthm-cable/savanna/components"

// LifetimeStats tracks per-organism statistics over its lifetime.
type LifetimeStats struct {
	ID       uint32          `csv:"id"`
	Species  string          `csv:"species"`
	Kind     components.Kind `csv:"kind"`
	Died     bool            `csv:"died"`
	DeathDay int             `csv:"death_day"` // 0 for the cull before day 1

	// Feeding
	Grazes   int     `csv:"grazes"`
	Grazed   float32 `csv:"grazed"`
	Kills    int     `csv:"kills"`
	Failures int     `csv:"failures"`

	// Energy
	StartEnergy float32 `csv:"start_energy"`
	PeakEnergy  float32 `csv:"peak_energy"`
	FinalEnergy float32 `csv:"final_energy"`
}

// LifetimeTracker manages per-organism lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
	order []uint32
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for an organism entering the run.
func (lt *LifetimeTracker) Register(id uint32, species string, kind components.Kind, energy float32) {
	if _, ok := lt.stats[id]; !ok {
		lt.order = append(lt.order, id)
	}
	lt.stats[id] = &LifetimeStats{
		ID:          id,
		Species:     species,
		Kind:        kind,
		StartEnergy: energy,
		PeakEnergy:  energy,
		FinalEnergy: energy,
	}
}

// Get returns the lifetime stats for an organism, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Record applies an event to the organism it concerns.
func (lt *LifetimeTracker) Record(ev Event) {
	s := lt.stats[ev.EntityID]
	if s == nil {
		return
	}
	switch {
	case ev.Type == EventGraze:
		s.Grazes++
		s.Grazed += ev.Amount
	case ev.Type == EventKill:
		s.Kills++
	case ev.Type == EventDeath:
		s.Died = true
		s.DeathDay = ev.Day
	case ev.Type.IsFailure():
		s.Failures++
	}
}

// UpdateEnergy tracks peak and latest energy.
func (lt *LifetimeTracker) UpdateEnergy(id uint32, energy float32) {
	if s := lt.stats[id]; s != nil {
		if energy > s.PeakEnergy {
			s.PeakEnergy = energy
		}
		s.FinalEnergy = energy
	}
}

// All returns every tracked organism in registration order.
func (lt *LifetimeTracker) All() []LifetimeStats {
	out := make([]LifetimeStats, 0, len(lt.order))
	for _, id := range lt.order {
		out = append(out, *lt.stats[id])
	}
	return out
}

// Count returns the number of tracked organisms.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
