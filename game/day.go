package game

import (
	"github.com/pthm-cable/savanna/systems"
	"github.com/pthm-cable/savanna/telemetry"
)

// Event is a recoverable feeding failure.
type Event struct {
	Day     int
	Failure systems.Failure
	ActorID uint32
	PreyID  uint32 // 0 for self-hunting
	Species string
}

// Message returns the line printed for the event.
func (e Event) Message() string {
	return e.Failure.Message()
}

// DayReport summarizes one simulated day.
type DayReport struct {
	Day         int
	GrassBefore float32
	GrassAfter  float32

	Events    []Event               // feeding failures, in turn order
	Removed   []systems.ActorRecord // culled at day end, with their final energy
	Survivors int

	Stats     telemetry.DayStats
	Bookmarks []telemetry.Bookmark
}

// runDay performs feeding, regrowth, metabolism and the cull for the current day.
func (s *Simulation) runDay() DayReport {
	s.perf.StartDay()

	report := DayReport{Day: s.day, GrassBefore: s.pool.Quantity()}
	snapshot := s.reg.Snapshot()

	s.perf.StartPhase(telemetry.PhaseFeeding)
	for i := range snapshot {
		res := systems.Feed(snapshot, i, s.pool)
		if ev, ok := s.recordFeed(snapshot[i], res); ok {
			report.Events = append(report.Events, ev)
		}
	}

	s.perf.StartPhase(telemetry.PhaseRegrowth)
	s.pool.Regenerate()
	report.GrassAfter = s.pool.Quantity()

	// Every organism in the snapshot pays, including those already dead
	s.perf.StartPhase(telemetry.PhaseMetabolism)
	for _, a := range snapshot {
		a.DecrementEnergy()
		s.lifetime.UpdateEnergy(a.ID(), a.Energy())
	}

	s.perf.StartPhase(telemetry.PhaseCull)
	report.Removed = s.reg.Cull()
	for _, r := range report.Removed {
		s.record(telemetry.NewDeathEvent(s.day, r.ID, r.Kind))
	}
	report.Survivors = s.reg.Len()

	return report
}

// recordFeed turns a feeding result into telemetry and, for failures, a reported Event.
func (s *Simulation) recordFeed(a systems.Actor, res systems.FeedResult) (Event, bool) {
	if res.Skipped {
		return Event{}, false
	}
	kind := a.Kind()

	if res.Grazed > 0 {
		s.record(telemetry.NewGrazeEvent(s.day, res.ActorID, kind, res.Grazed))
	}
	if res.Hunted {
		s.record(telemetry.NewKillEvent(s.day, res.ActorID, res.PreyID, kind, res.HuntGain))
		s.lifetime.UpdateEnergy(res.PreyID, 0)
	}
	s.lifetime.UpdateEnergy(res.ActorID, a.Energy())

	if res.Failure == systems.FailNone {
		return Event{}, false
	}
	s.record(telemetry.NewFailureEvent(failureEventType(res.Failure), s.day, res.ActorID, res.PreyID, kind))

	ev := Event{
		Day:     s.day,
		Failure: res.Failure,
		ActorID: res.ActorID,
		PreyID:  res.PreyID,
		Species: a.Species(),
	}
	s.events = append(s.events, ev)
	if s.opts.OnEvent != nil {
		s.opts.OnEvent(ev)
	}
	return ev, true
}

func (s *Simulation) record(ev telemetry.Event) {
	s.dayEvents = append(s.dayEvents, ev)
	s.collector.Record(ev)
	s.lifetime.Record(ev)
}

func failureEventType(f systems.Failure) telemetry.EventType {
	switch f {
	case systems.FailSelfHunt:
		return telemetry.EventSelfHunt
	case systems.FailCannibalism:
		return telemetry.EventCannibalism
	default:
		return telemetry.EventPreyTooStrong
	}
}
