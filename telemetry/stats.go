package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DayStats holds aggregated statistics for one simulated day.
type DayStats struct {
	Day int `csv:"day" json:"day"`

	// Resource pool before feeding and after regeneration
	GrassBefore float64 `csv:"grass_before" json:"grass_before"`
	GrassAfter  float64 `csv:"grass_after" json:"grass_after"`

	// Population at day end (after the cull)
	Population int `csv:"population" json:"population"`
	Grazers    int `csv:"grazers" json:"grazers"`
	Hunters    int `csv:"hunters" json:"hunters"`
	Both       int `csv:"both" json:"both"`

	// Feeding
	Grazes        int     `csv:"grazes" json:"grazes"`
	Grazed        float64 `csv:"grazed" json:"grazed"`
	Kills         int     `csv:"kills" json:"kills"`
	SelfHunts     int     `csv:"self_hunts" json:"self_hunts"`
	Cannibalism   int     `csv:"cannibalism" json:"cannibalism"`
	PreyTooStrong int     `csv:"prey_too_strong" json:"prey_too_strong"`

	// Deaths by kind
	GrazerDeaths int `csv:"grazer_deaths" json:"grazer_deaths"`
	HunterDeaths int `csv:"hunter_deaths" json:"hunter_deaths"`
	BothDeaths   int `csv:"both_deaths" json:"both_deaths"`

	// Energy distribution of survivors
	EnergyMean float64 `csv:"energy_mean" json:"energy_mean"`
	EnergyStd  float64 `csv:"energy_std" json:"energy_std"`
	EnergyP10  float64 `csv:"energy_p10" json:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50" json:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90" json:"energy_p90"`
}

// Failures returns the total number of recoverable feeding failures.
func (s DayStats) Failures() int {
	return s.SelfHunts + s.Cannibalism + s.PreyTooStrong
}

// Deaths returns the total number of organisms culled at day end.
func (s DayStats) Deaths() int {
	return s.GrazerDeaths + s.HunterDeaths + s.BothDeaths
}

// ComputeEnergyStats calculates mean, population std, and percentiles from energy values.
// Percentiles use the empirical (lower) quantile.
func ComputeEnergyStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	// Sort for percentiles
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogStats outputs the day stats via slog.
func (s DayStats) LogStats() {
	slog.Info("day_stats",
		"day", s.Day,
		"grass_before", s.GrassBefore,
		"grass_after", s.GrassAfter,
		"population", s.Population,
		"grazers", s.Grazers,
		"hunters", s.Hunters,
		"both", s.Both,
		"grazes", s.Grazes,
		"kills", s.Kills,
		"failures", s.Failures(),
		"deaths", s.Deaths(),
		"energy_mean", s.EnergyMean,
		"energy_p50", s.EnergyP50,
	)
}
