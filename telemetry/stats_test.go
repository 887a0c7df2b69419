package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/systems"
)

func TestComputeEnergyStats(t *testing.T) {
	values := []float64{5, 3, 1, 4, 2}
	mean, std, p10, p50, p90 := ComputeEnergyStats(values)

	if math.Abs(mean-3) > 1e-9 {
		t.Errorf("mean = %v, want 3", mean)
	}
	if math.Abs(std-math.Sqrt2) > 1e-9 {
		t.Errorf("std = %v, want %v", std, math.Sqrt2)
	}

	// Empirical quantiles pick an observed value
	if p10 != 1 {
		t.Errorf("p10 = %v, want 1", p10)
	}
	if p50 != 3 {
		t.Errorf("p50 = %v, want 3", p50)
	}
	if p90 != 5 {
		t.Errorf("p90 = %v, want 5", p90)
	}

	if values[0] != 5 {
		t.Error("ComputeEnergyStats must not reorder its input")
	}
}

func TestComputeEnergyStatsEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeEnergyStats(nil)

	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestDayStatsTotals(t *testing.T) {
	s := DayStats{
		SelfHunts:     1,
		Cannibalism:   2,
		PreyTooStrong: 3,
		GrazerDeaths:  4,
		HunterDeaths:  5,
		BothDeaths:    6,
	}
	if got := s.Failures(); got != 6 {
		t.Errorf("Failures() = %d, want 6", got)
	}
	if got := s.Deaths(); got != 15 {
		t.Errorf("Deaths() = %d, want 15", got)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector()

	c.Record(NewGrazeEvent(1, 1, components.KindGrazer, 2.5))
	c.Record(NewGrazeEvent(1, 3, components.KindBoth, 1.5))
	c.Record(NewKillEvent(1, 2, 1, components.KindHunter, 30))
	c.Record(NewFailureEvent(EventCannibalism, 1, 3, 2, components.KindBoth))
	c.Record(NewFailureEvent(EventPreyTooStrong, 1, 2, 3, components.KindHunter))
	c.Record(NewDeathEvent(1, 1, components.KindGrazer))

	tally := systems.KindTally{
		Count:    [3]int{0, 1, 1},
		Energies: [3][]float64{nil, {40}, {20}},
	}
	stats := c.Flush(1, 50, 92, tally)

	tests := []struct {
		name      string
		got, want float64
	}{
		{"grass_before", stats.GrassBefore, 50},
		{"grass_after", stats.GrassAfter, 92},
		{"population", float64(stats.Population), 2},
		{"grazes", float64(stats.Grazes), 2},
		{"grazed", stats.Grazed, 4},
		{"kills", float64(stats.Kills), 1},
		{"failures", float64(stats.Failures()), 2},
		{"grazer_deaths", float64(stats.GrazerDeaths), 1},
		{"energy_mean", stats.EnergyMean, 30},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	next := c.Flush(2, 92, 100, systems.KindTally{})
	if next.Grazes != 0 || next.Kills != 0 || next.Deaths() != 0 {
		t.Errorf("counters not reset after flush: %+v", next)
	}
}

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(2, "Lion", components.KindHunter, 40)
	lt.Register(1, "Zebra", components.KindGrazer, 10)

	lt.Record(NewKillEvent(1, 2, 1, components.KindHunter, 100))
	lt.UpdateEnergy(2, 100)
	lt.Record(NewFailureEvent(EventPreyTooStrong, 2, 2, 1, components.KindHunter))
	lt.UpdateEnergy(2, 98)
	lt.Record(NewDeathEvent(1, 1, components.KindGrazer))
	lt.Record(NewGrazeEvent(1, 99, components.KindGrazer, 1)) // unknown id is ignored

	all := lt.All()
	if len(all) != 2 || lt.Count() != 2 {
		t.Fatalf("tracked %d organisms, want 2", len(all))
	}
	if all[0].ID != 2 || all[1].ID != 1 {
		t.Errorf("All() order = [%d %d], want registration order [2 1]", all[0].ID, all[1].ID)
	}

	lion := lt.Get(2)
	if lion.Kills != 1 || lion.Failures != 1 {
		t.Errorf("lion kills/failures = %d/%d, want 1/1", lion.Kills, lion.Failures)
	}
	if lion.PeakEnergy != 100 || lion.FinalEnergy != 98 || lion.StartEnergy != 40 {
		t.Errorf("lion energy start/peak/final = %v/%v/%v, want 40/100/98",
			lion.StartEnergy, lion.PeakEnergy, lion.FinalEnergy)
	}
	if lion.Died {
		t.Error("lion should still be alive")
	}
	if zebra := lt.Get(1); !zebra.Died || zebra.DeathDay != 1 {
		t.Errorf("zebra died/day = %v/%d, want true/1", zebra.Died, zebra.DeathDay)
	}
}

func TestEventTypeText(t *testing.T) {
	for et := EventGraze; et <= EventDeath; et++ {
		b, err := et.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back EventType
		if err := back.UnmarshalText(b); err != nil {
			t.Errorf("UnmarshalText(%q) error: %v", b, err)
		}
		if back != et {
			t.Errorf("UnmarshalText(%q) = %v, want %v", b, back, et)
		}
	}

	var et EventType
	if err := et.UnmarshalText([]byte("stampede")); err == nil {
		t.Error("expected error for unknown event type")
	}
}
