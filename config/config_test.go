package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if len(cfg.Species) != 3 {
		t.Fatalf("len(Species) = %d, want 3", len(cfg.Species))
	}

	tests := []struct {
		name, kind, sound string
	}{
		{"Lion", "hunter", "Roar"},
		{"Zebra", "grazer", "Ihoho"},
		{"Boar", "both", "Oink"},
	}
	for _, tt := range tests {
		sp, ok := cfg.LookupSpecies(tt.name)
		if !ok {
			t.Errorf("species %q missing from defaults", tt.name)
			continue
		}
		if sp.Kind != tt.kind || sp.Sound != tt.sound {
			t.Errorf("species %q = {%s %s}, want {%s %s}", tt.name, sp.Kind, sp.Sound, tt.kind, tt.sound)
		}
	}

	if cfg.Input.Path != "input.txt" {
		t.Errorf("Input.Path = %q, want input.txt", cfg.Input.Path)
	}
	if cfg.Telemetry.PerfWindow != 30 {
		t.Errorf("PerfWindow = %d, want 30", cfg.Telemetry.PerfWindow)
	}
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("logging:\n  level: debug\ntelemetry:\n  output_dir: out\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want default json", cfg.Logging.Format)
	}
	if cfg.Telemetry.OutputDir != "out" {
		t.Errorf("OutputDir = %q, want out", cfg.Telemetry.OutputDir)
	}
	if _, ok := cfg.LookupSpecies("Zebra"); !ok {
		t.Error("default species should survive a partial override")
	}
}

func TestLoadRejectsDuplicateSpecies(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("species:\n  - {name: Lion, kind: hunter, sound: Roar}\n  - {name: Lion, kind: grazer, sound: Meh}\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for duplicate species")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	if len(again.Species) != len(cfg.Species) {
		t.Errorf("reloaded %d species, want %d", len(again.Species), len(cfg.Species))
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic from Cfg() before Init()")
		}
	}()
	Cfg()
}
