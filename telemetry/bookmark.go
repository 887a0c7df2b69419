package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/savanna/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkExtinction       BookmarkType = "extinction"
	BookmarkPopulationCrash  BookmarkType = "population_crash"
	BookmarkHuntingSpree     BookmarkType = "hunting_spree"
	BookmarkBarrenField      BookmarkType = "barren_field"
	BookmarkStablePopulation BookmarkType = "stable_population"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Day         int          `csv:"day"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"day", b.Day,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable days in the simulation.
type BookmarkDetector struct {
	cfg config.BookmarksConfig

	history  []DayStats
	baseline *DayStats // population before day 1, if seeded

	peakPopulation int
	stableDays     int
	barrenReported bool
}

// NewBookmarkDetector creates a detector with the given thresholds.
func NewBookmarkDetector(cfg config.BookmarksConfig) *BookmarkDetector {
	return &BookmarkDetector{cfg: cfg}
}

// Seed records the population before day 1 so that changes on the first
// day are compared against it.
func (bd *BookmarkDetector) Seed(initial DayStats) {
	bd.baseline = &initial
	if initial.Population > bd.peakPopulation {
		bd.peakPopulation = initial.Population
	}
}

// Check analyzes the latest day and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats DayStats) []Bookmark {
	var bookmarks []Bookmark

	if prev, ok := bd.previous(); ok {
		bookmarks = append(bookmarks, bd.checkExtinction(prev, stats)...)
		if b := bd.checkStable(prev, stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}
	// The kill average needs at least one simulated day
	if len(bd.history) > 0 {
		if b := bd.checkHuntingSpree(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	if b := bd.checkPopulationCrash(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkBarren(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.history = append(bd.history, stats)
	if stats.Population > bd.peakPopulation {
		bd.peakPopulation = stats.Population
	}

	return bookmarks
}

func (bd *BookmarkDetector) previous() (DayStats, bool) {
	if n := len(bd.history); n > 0 {
		return bd.history[n-1], true
	}
	if bd.baseline != nil {
		return *bd.baseline, true
	}
	return DayStats{}, false
}

func (bd *BookmarkDetector) checkExtinction(prev, cur DayStats) []Bookmark {
	var out []Bookmark
	pairs := []struct {
		name      string
		prev, cur int
	}{
		{"grazers", prev.Grazers, cur.Grazers},
		{"hunters", prev.Hunters, cur.Hunters},
		{"omnivores", prev.Both, cur.Both},
	}
	for _, p := range pairs {
		if p.prev > 0 && p.cur == 0 {
			out = append(out, Bookmark{
				Type:        BookmarkExtinction,
				Day:         cur.Day,
				Description: fmt.Sprintf("Last of the %s died (%d on day %d)", p.name, p.prev, prev.Day),
			})
		}
	}
	return out
}

func (bd *BookmarkDetector) checkPopulationCrash(stats DayStats) *Bookmark {
	peak := bd.peakPopulation
	if peak == 0 {
		// First day: compare against the day's own starting population
		peak = stats.Population + stats.Deaths()
	}
	if peak == 0 {
		return nil
	}

	drop := peak - stats.Population
	dropPercent := float64(drop) / float64(peak)
	if dropPercent >= bd.cfg.PopulationCrash.DropPercent && drop >= bd.cfg.PopulationCrash.MinDrop {
		// Reset peak after crash
		bd.peakPopulation = stats.Population
		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Day:         stats.Day,
			Description: fmt.Sprintf("Population crashed %.0f%% from %d to %d", dropPercent*100, peak, stats.Population),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkHuntingSpree(stats DayStats) *Bookmark {
	if stats.Kills < bd.cfg.HuntingSpree.MinKills {
		return nil
	}

	var total int
	for _, h := range bd.history {
		total += h.Kills
	}
	avg := float64(total) / float64(len(bd.history))

	if float64(stats.Kills) > avg*bd.cfg.HuntingSpree.Multiplier {
		return &Bookmark{
			Type:        BookmarkHuntingSpree,
			Day:         stats.Day,
			Description: fmt.Sprintf("%d kills against a daily average of %.2f", stats.Kills, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkBarren(stats DayStats) *Bookmark {
	// An empty pool doubles to zero, so it never recovers
	if bd.barrenReported || stats.GrassAfter > 0 {
		return nil
	}
	bd.barrenReported = true
	return &Bookmark{
		Type:        BookmarkBarrenField,
		Day:         stats.Day,
		Description: fmt.Sprintf("Grass exhausted (%.2f before feeding)", stats.GrassBefore),
	}
}

func (bd *BookmarkDetector) checkStable(prev, cur DayStats) *Bookmark {
	if cur.Population == 0 || cur.Population != prev.Population || cur.Deaths() > 0 {
		bd.stableDays = 0
		return nil
	}

	bd.stableDays++
	if bd.stableDays == bd.cfg.StablePopulation.Days { // trigger exactly once per stable stretch
		return &Bookmark{
			Type:        BookmarkStablePopulation,
			Day:         cur.Day,
			Description: fmt.Sprintf("Population held at %d for %d days", cur.Population, bd.stableDays),
		}
	}
	return nil
}
