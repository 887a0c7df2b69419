package telemetry

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/pthm-cable/savanna/systems"
)

// DayEntry is one line of the day log: everything that happened on a day.
type DayEntry struct {
	RunID     string                `json:"run_id"`
	Day       int                   `json:"day"`
	Stats     DayStats              `json:"stats"`
	Events    []Event               `json:"events"`
	Survivors []systems.ActorRecord `json:"survivors"`
}

// DayLogger writes one zstd-compressed JSONL entry per simulated day.
// A nil *DayLogger discards everything.
type DayLogger struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// NewDayLogger creates the log file at path, truncating any previous run.
// Returns nil if path is empty (day log disabled).
func NewDayLogger(path string) (*DayLogger, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating day log directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating day log: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	return &DayLogger{f: f, enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}, nil
}

// WriteDay appends one entry.
func (l *DayLogger) WriteDay(entry DayEntry) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.w == nil {
		return fmt.Errorf("day log closed")
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if _, err := l.w.Write(b); err != nil {
		return err
	}
	return l.w.WriteByte('\n')
}

// Close flushes the encoder and closes the file.
func (l *DayLogger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	var firstErr error
	if l.w != nil {
		firstErr = l.w.Flush()
		l.w = nil
	}
	if l.enc != nil {
		if err := l.enc.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		l.enc = nil
	}
	if l.f != nil {
		if err := l.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		l.f = nil
	}
	return firstErr
}

// ReadDayLog decodes every entry of a day log written by DayLogger.
func ReadDayLog(path string) ([]DayEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()

	var entries []DayEntry
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for line := 1; sc.Scan(); line++ {
		var e DayEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("day log line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading day log: %w", err)
	}
	return entries, nil
}
