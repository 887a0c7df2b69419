package telemetry

import "github.com/pthm-cable/savanna/systems"

// Collector accumulates events within a day and produces DayStats.
type Collector struct {
	// Event counters for the current day
	grazes        int
	grazed        float64
	kills         int
	selfHunts     int
	cannibalism   int
	preyTooStrong int
	deaths        [3]int
}

// NewCollector creates a new stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record counts a single event.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventGraze:
		c.grazes++
		c.grazed += float64(ev.Amount)
	case EventKill:
		c.kills++
	case EventSelfHunt:
		c.selfHunts++
	case EventCannibalism:
		c.cannibalism++
	case EventPreyTooStrong:
		c.preyTooStrong++
	case EventDeath:
		if int(ev.Kind) < len(c.deaths) {
			c.deaths[ev.Kind]++
		}
	}
}

// Flush produces stats for the day just finished and resets counters.
// tally is sampled after the cull, so it describes the survivors of the day.
func (c *Collector) Flush(day int, grassBefore, grassAfter float32, tally systems.KindTally) DayStats {
	var energies []float64
	for _, e := range tally.Energies {
		energies = append(energies, e...)
	}
	mean, std, p10, p50, p90 := ComputeEnergyStats(energies)

	stats := DayStats{
		Day:           day,
		GrassBefore:   float64(grassBefore),
		GrassAfter:    float64(grassAfter),
		Grazers:       tally.Count[0],
		Hunters:       tally.Count[1],
		Both:          tally.Count[2],
		Grazes:        c.grazes,
		Grazed:        c.grazed,
		Kills:         c.kills,
		SelfHunts:     c.selfHunts,
		Cannibalism:   c.cannibalism,
		PreyTooStrong: c.preyTooStrong,
		GrazerDeaths:  c.deaths[0],
		HunterDeaths:  c.deaths[1],
		BothDeaths:    c.deaths[2],
		EnergyMean:    mean,
		EnergyStd:     std,
		EnergyP10:     p10,
		EnergyP50:     p50,
		EnergyP90:     p90,
	}
	stats.Population = stats.Grazers + stats.Hunters + stats.Both

	*c = Collector{}
	return stats
}
