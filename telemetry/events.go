// Package telemetry provides per-day ecosystem statistics, bookmarks and run output.
package telemetry

import (
	"fmt"

	"github.com/pthm-cable/savanna/components"
)

// EventType identifies telemetry events.
type EventType uint8

const (
	EventGraze EventType = iota
	EventKill
	EventSelfHunt
	EventCannibalism
	EventPreyTooStrong
	EventDeath
)

// String returns the event identifier used in CSV and log output.
func (t EventType) String() string {
	switch t {
	case EventGraze:
		return "graze"
	case EventKill:
		return "kill"
	case EventSelfHunt:
		return "self_hunt"
	case EventCannibalism:
		return "cannibalism"
	case EventPreyTooStrong:
		return "prey_too_strong"
	case EventDeath:
		return "death"
	default:
		return "unknown"
	}
}

// MarshalText writes the event identifier.
func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText reads an event identifier.
func (t *EventType) UnmarshalText(b []byte) error {
	for et := EventGraze; et <= EventDeath; et++ {
		if et.String() == string(b) {
			*t = et
			return nil
		}
	}
	return fmt.Errorf("unknown event type %q", b)
}

// IsFailure reports whether the event is a recoverable feeding failure.
func (t EventType) IsFailure() bool {
	return t == EventSelfHunt || t == EventCannibalism || t == EventPreyTooStrong
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType       `csv:"type" json:"type"`
	Day      int             `csv:"day" json:"day"`
	EntityID uint32          `csv:"entity" json:"entity"`
	Kind     components.Kind `csv:"kind" json:"kind"`

	// Optional fields depending on event type
	TargetID uint32  `csv:"target" json:"target,omitempty"` // prey for kill/failure events
	Amount   float32 `csv:"amount" json:"amount,omitempty"` // energy gained (graze, kill)
}

// NewGrazeEvent creates a grazing event.
func NewGrazeEvent(day int, id uint32, kind components.Kind, amount float32) Event {
	return Event{Type: EventGraze, Day: day, EntityID: id, Kind: kind, Amount: amount}
}

// NewKillEvent creates a successful hunt event.
func NewKillEvent(day int, hunterID, preyID uint32, kind components.Kind, gain float32) Event {
	return Event{Type: EventKill, Day: day, EntityID: hunterID, Kind: kind, TargetID: preyID, Amount: gain}
}

// NewFailureEvent creates a feeding failure event of type t.
func NewFailureEvent(t EventType, day int, id, preyID uint32, kind components.Kind) Event {
	return Event{Type: t, Day: day, EntityID: id, Kind: kind, TargetID: preyID}
}

// NewDeathEvent creates a death event (organism culled at day end).
func NewDeathEvent(day int, id uint32, kind components.Kind) Event {
	return Event{Type: EventDeath, Day: day, EntityID: id, Kind: kind}
}
