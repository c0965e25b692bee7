package preset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halcyra/cadence/internal/domain/event"
	"github.com/halcyra/cadence/internal/preset"
)

const sampleYAML = `
presets:
  - name: push-day
    exercises:
      - name: Bench press
        mode: reps
        sets: 3
        reps: 8
        weight_kg: 60
      - name: Dips
        mode: reps
        sets: 3
        reps: 12
  - name: easy-run
    exercises:
      - name: Run
        mode: distance
        distance_km: 5
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	return path
}

func TestLoadAndGet(t *testing.T) {
	lib, err := preset.Load(writeSample(t))
	require.NoError(t, err)

	require.Len(t, lib.List(), 2)

	p, ok := lib.Get("push-day")
	require.True(t, ok)
	require.Len(t, p.Exercises, 2)
	require.Equal(t, event.TrackReps, p.Exercises[0].Mode)
	require.Equal(t, 60.0, p.Exercises[0].WeightKg)

	_, ok = lib.Get("leg-day")
	require.False(t, ok)
}

func TestWorkoutLogReturnsCopy(t *testing.T) {
	lib, err := preset.Load(writeSample(t))
	require.NoError(t, err)

	log := lib.WorkoutLog("easy-run")
	require.Len(t, log, 1)
	log[0].Name = "Walk"

	again := lib.WorkoutLog("easy-run")
	require.Equal(t, "Run", again[0].Name, "library is read-only")

	require.Nil(t, lib.WorkoutLog("unknown"))
}

func TestMissingFileIsEmptyLibrary(t *testing.T) {
	lib, err := preset.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Empty(t, lib.List())

	lib, err = preset.Load("")
	require.NoError(t, err)
	require.Empty(t, lib.List())
}

func TestMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets: {not a list"), 0o644))

	_, err := preset.Load(path)
	require.Error(t, err)
}
