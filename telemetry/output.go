package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/savanna/config"
	"github.com/pthm-cable/savanna/systems"
)

// csvFile is an output file whose header is written with the first record.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

func (c *csvFile) write(records any) error {
	if !c.headerWritten {
		if err := gocsv.Marshal(records, c.f); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, c.f)
}

// OutputManager handles structured run output with CSV logging.
// All methods are safe on a nil receiver, which disables output.
type OutputManager struct {
	dir       string
	days      csvFile
	events    csvFile
	bookmarks csvFile
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, out := range []struct {
		name string
		file *csvFile
	}{
		{"days.csv", &om.days},
		{"events.csv", &om.events},
		{"bookmarks.csv", &om.bookmarks},
	} {
		f, err := os.Create(filepath.Join(dir, out.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", out.name, err)
		}
		out.file.f = f
	}

	return om, nil
}

// WriteConfig saves the configuration used for the run as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteDay writes a day stats record to days.csv.
func (om *OutputManager) WriteDay(stats DayStats) error {
	if om == nil {
		return nil
	}
	if err := om.days.write([]DayStats{stats}); err != nil {
		return fmt.Errorf("writing day stats: %w", err)
	}
	return nil
}

// WriteEvents appends a batch of events to events.csv.
func (om *OutputManager) WriteEvents(events []Event) error {
	if om == nil || len(events) == 0 {
		return nil
	}
	if err := om.events.write(events); err != nil {
		return fmt.Errorf("writing events: %w", err)
	}
	return nil
}

// WriteBookmark writes a bookmark record to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	if err := om.bookmarks.write([]Bookmark{b}); err != nil {
		return fmt.Errorf("writing bookmark: %w", err)
	}
	return nil
}

// WriteSurvivors writes the final population to survivors.csv.
func (om *OutputManager) WriteSurvivors(survivors []systems.ActorRecord) error {
	if om == nil {
		return nil
	}
	return om.writeWhole("survivors.csv", survivors)
}

// WriteLifetimes writes per-organism lifetime stats to lifetimes.csv.
func (om *OutputManager) WriteLifetimes(stats []LifetimeStats) error {
	if om == nil {
		return nil
	}
	return om.writeWhole("lifetimes.csv", stats)
}

func (om *OutputManager) writeWhole(name string, records any) error {
	f, err := os.Create(filepath.Join(om.dir, name))
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if err := gocsv.Marshal(records, f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return f.Close()
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.days.f, om.events.f, om.bookmarks.f} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
