package game

import (
	"time"

	"github.com/pthm-cable/savanna/config"
	"github.com/pthm-cable/savanna/telemetry"
)

// Options wires observers and telemetry sinks into a Simulation.
// Every field is optional; nil sinks discard their output.
type Options struct {
	// OnEvent is called synchronously for each feeding failure as it happens.
	OnEvent func(Event)
	// OnDay is called after each day's telemetry has been flushed.
	OnDay func(DayReport)

	RunID  string
	Output *telemetry.OutputManager
	DayLog *telemetry.DayLogger
	Index  *telemetry.RunIndex

	Bookmarks  *config.BookmarksConfig // nil disables bookmark detection
	PerfWindow int                     // 0 disables day timing
	LogStats   bool

	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}
