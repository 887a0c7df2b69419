package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/savanna/config"
	"github.com/pthm-cable/savanna/scenario"
	"github.com/pthm-cable/savanna/telemetry"
)

// execute runs the root command with fresh flag values and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so tests do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	for _, c := range append([]*cobra.Command{cmd}, cmd.Commands()...) {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunPrintsEventsThenSounds(t *testing.T) {
	input := writeInput(t, "input.txt", "2\n0\n2\nLion 100 10 10\nZebra 50 30 50\n")

	out, err := execute(t, "run", input)
	require.NoError(t, err)
	require.Equal(t, "The prey is too strong or too fast to attack\n"+
		"The prey is too strong or too fast to attack\n"+
		"Roar\n"+
		"Ihoho\n", out)
}

func TestRunSelfHunt(t *testing.T) {
	input := writeInput(t, "input.txt", "1\n10\n1\nBoar 10 10 50\n")

	out, err := execute(t, "run", input)
	require.NoError(t, err)
	require.Equal(t, "Self-hunting is not allowed\nOink\n", out)
}

func TestRunNoSurvivors(t *testing.T) {
	input := writeInput(t, "input.txt", "3\n0\n1\nZebra 10 10 2\n")

	out, err := execute(t, "run", input)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestRunInvalidInputPrintsOnlyMessage(t *testing.T) {
	tests := []struct {
		name, input, want string
	}{
		{"grass", "1\n150\n1\nZebra 10 10 10\n", "The grass is out of bounds\n"},
		{"params", "1\n10\n1\nZebra 10 10\n", "Invalid number of animal parameters\n"},
		{"speed", "1\n10\n1\nZebra 10 99 10\n", "The speed is out of bounds\n"},
		{"count", "1\n10\n2\nZebra 10 10 10\n", "Invalid inputs\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "run", writeInput(t, "input.txt", tt.input))
			require.ErrorIs(t, err, errReported)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestRunStructuredInput(t *testing.T) {
	input := writeInput(t, "scenario.yaml", `days: 1
grass: 10
animals:
  - {species: Zebra, weight: 10, speed: 10, energy: 50}
  - {species: Boar, weight: 10, speed: 10, energy: 50}
`)

	out, err := execute(t, "run", input)
	require.NoError(t, err)
	require.Equal(t, "The prey is too strong or too fast to attack\nIhoho\nOink\n", out)
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", writeInput(t, "input.txt", "4\n20\n2\nZebra 10 10 10\nLion 50 20 30\n"))
	require.NoError(t, err)
	require.Equal(t, "valid: 4 days, grass 20, 2 animals\n"+
		"  Zebra    1 (grazer, Ihoho)\n"+
		"  Lion     1 (hunter, Roar)\n", out)
}

func TestValidatePrintsDocument(t *testing.T) {
	input := "4\n20.5\n2\nZebra 10 10 10\nLion 50 20 30\n"
	out, err := execute(t, "validate", "--print", writeInput(t, "input.txt", input))
	require.NoError(t, err)

	cfg, err := config.Load("")
	require.NoError(t, err)
	cat, err := scenario.NewCatalog(cfg.Species)
	require.NoError(t, err)

	fromDoc, err := scenario.Decode([]byte(out), scenario.FormatYAML, cat)
	require.NoError(t, err)
	fromText, err := scenario.ParseText(scenario.NewReader(strings.NewReader(input)), cat)
	require.NoError(t, err)
	require.Equal(t, fromText, fromDoc)
}

func TestRunWritesTelemetry(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, "input.txt", "2\n50\n3\nZebra 100 40 10\nLion 150 50 80\nBoar 80 20 30\n")
	dbPath := filepath.Join(dir, "runs.db")

	out, err := execute(t, "run", input,
		"--output-dir", filepath.Join(dir, "out"),
		"--event-log", filepath.Join(dir, "days.jsonl.zst"),
		"--index-db", dbPath,
	)
	require.NoError(t, err)
	require.Equal(t, "Roar\n", out)

	entries, err := telemetry.ReadDayLog(filepath.Join(dir, "days.jsonl.zst"))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	_, err = os.Stat(filepath.Join(dir, "out", "config.yaml"))
	require.NoError(t, err)

	out, err = execute(t, "runs", "--index-db", dbPath)
	require.NoError(t, err)
	require.Contains(t, out, entries[0].RunID)

	out, err = execute(t, "runs", "--index-db", dbPath, "--run", entries[0].RunID)
	require.NoError(t, err)
	require.Equal(t, "DAY  POPULATION\n1    2\n2    1\n", out)
}
