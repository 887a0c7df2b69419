// Package main prints a day-by-day summary of a recorded simulation run.
//
// Usage:
//
//	go run ./cmd/replay -log days.jsonl.zst
//	go run ./cmd/replay -log days.jsonl.zst -events -survivors
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pthm-cable/savanna/telemetry"
)

func main() {
	logPath := flag.String("log", "", "Day log written by 'savanna run --event-log'")
	showEvents := flag.Bool("events", false, "Print every event under its day")
	showSurvivors := flag.Bool("survivors", false, "Print the survivors after the last day")
	flag.Parse()

	if *logPath == "" {
		log.Fatal("-log is required")
	}

	entries, err := telemetry.ReadDayLog(*logPath)
	if err != nil {
		log.Fatalf("failed to read day log: %v", err)
	}
	if len(entries) == 0 {
		log.Fatalf("%s: no days recorded", *logPath)
	}

	printSummary(os.Stdout, entries, *showEvents)
	if *showSurvivors {
		printSurvivors(os.Stdout, entries[len(entries)-1])
	}
}

func printSummary(w io.Writer, entries []telemetry.DayEntry, showEvents bool) {
	fmt.Fprintf(w, "run %s\n", entries[0].RunID)
	fmt.Fprintf(w, "%4s %7s %7s %4s %6s %5s %8s %6s\n",
		"day", "grass", "regrown", "pop", "grazes", "kills", "failures", "deaths")

	for _, e := range entries {
		s := e.Stats
		fmt.Fprintf(w, "%4d %7.1f %7.1f %4d %6d %5d %8d %6d\n",
			e.Day, s.GrassBefore, s.GrassAfter, s.Population,
			s.Grazes, s.Kills, s.Failures(), s.Deaths())

		if !showEvents {
			continue
		}
		for _, ev := range e.Events {
			switch ev.Type {
			case telemetry.EventGraze:
				fmt.Fprintf(w, "       %-16s #%d (%s) +%.1f\n", ev.Type, ev.EntityID, ev.Kind, ev.Amount)
			case telemetry.EventKill:
				fmt.Fprintf(w, "       %-16s #%d (%s) ate #%d +%.1f\n", ev.Type, ev.EntityID, ev.Kind, ev.TargetID, ev.Amount)
			default:
				fmt.Fprintf(w, "       %-16s #%d (%s)\n", ev.Type, ev.EntityID, ev.Kind)
			}
		}
	}
}

func printSurvivors(w io.Writer, last telemetry.DayEntry) {
	fmt.Fprintf(w, "\n%d survivors after day %d\n", len(last.Survivors), last.Day)
	for _, a := range last.Survivors {
		fmt.Fprintf(w, "  #%-3d %-8s %-6s weight %5.1f speed %4.1f energy %5.1f\n",
			a.ID, a.Species, a.Kind, a.Weight, a.Speed, a.Energy)
	}
}
