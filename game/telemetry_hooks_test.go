package game

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/savanna/config"
	"github.com/pthm-cable/savanna/telemetry"
)

func TestSinksRecordShortRun(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	out, err := telemetry.NewOutputManager(filepath.Join(dir, "out"))
	require.NoError(t, err)
	dayLog, err := telemetry.NewDayLogger(filepath.Join(dir, "days.jsonl.zst"))
	require.NoError(t, err)
	index, err := telemetry.OpenRunIndex(filepath.Join(dir, "runs.db"))
	require.NoError(t, err)

	cfg, err := config.Load("")
	require.NoError(t, err)

	var reports []DayReport
	runID := uuid.NewString()
	sim := newTestSimulation(t, 2, 50, Options{
		OnDay:      func(r DayReport) { reports = append(reports, r) },
		RunID:      runID,
		Output:     out,
		DayLog:     dayLog,
		Index:      index,
		Bookmarks:  &cfg.Bookmarks,
		PerfWindow: 5,
		Now:        func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
	},
		zebra(100, 40, 10),
		lion(150, 50, 80),
		boar(80, 20, 30),
	)

	require.NoError(t, sim.Run(ctx))
	require.NoError(t, out.Close())
	require.NoError(t, dayLog.Close())

	require.Len(t, reports, 2)
	require.Equal(t, 2, reports[0].Stats.Population)
	require.Equal(t, 1, reports[1].Stats.Population)
	require.Len(t, reports[0].Bookmarks, 1)
	require.Equal(t, telemetry.BookmarkExtinction, reports[0].Bookmarks[0].Type)

	// Day log
	entries, err := telemetry.ReadDayLog(filepath.Join(dir, "days.jsonl.zst"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, runID, entries[0].RunID)
	require.Len(t, entries[0].Survivors, 2)
	require.Equal(t, "Lion", entries[1].Survivors[0].Species)

	var types []string
	for _, ev := range entries[0].Events {
		types = append(types, ev.Type.String())
	}
	require.Equal(t, []string{"graze", "kill", "death"}, types)

	// Run index
	runs, err := index.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, 3, runs[0].Animals)
	require.True(t, runs[0].Survivors.Valid)
	require.EqualValues(t, 1, runs[0].Survivors.Int64)
	pops, err := index.DayPopulations(ctx, runID)
	require.NoError(t, err)
	require.Equal(t, []int{2, 1}, pops)
	require.NoError(t, index.Close())

	// CSV output
	for _, name := range []string{"days.csv", "events.csv", "survivors.csv", "lifetimes.csv", "bookmarks.csv"} {
		_, err := os.Stat(filepath.Join(dir, "out", name))
		require.NoError(t, err, name)
	}
	survivors, err := os.ReadFile(filepath.Join(dir, "out", "survivors.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(survivors)), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[1], "2,Lion,hunter,Roar,"))
}

func TestBookmarks_SeededAfterInitialCull(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	var reports []DayReport
	// The lion starts dead, so the initial cull leaves no hunters to go extinct
	sim := newTestSimulation(t, 1, 50, Options{
		OnDay:     func(r DayReport) { reports = append(reports, r) },
		Bookmarks: &cfg.Bookmarks,
	},
		zebra(50, 10, 50),
		lion(100, 20, 0),
		boar(80, 20, 30),
	)
	require.NoError(t, sim.Run(context.Background()))

	require.Len(t, reports, 1)
	var extinct []string
	for _, bm := range reports[0].Bookmarks {
		if bm.Type == telemetry.BookmarkExtinction {
			extinct = append(extinct, bm.Description)
		}
	}
	require.Equal(t, []string{"Last of the grazers died (1 on day 0)"}, extinct)
}

func TestNilSinksAreSilent(t *testing.T) {
	sim := newTestSimulation(t, 3, 20, Options{}, zebra(10, 10, 5), boar(20, 20, 50))
	require.NoError(t, sim.Run(context.Background()))
	require.Equal(t, StateFinished, sim.State())
}
