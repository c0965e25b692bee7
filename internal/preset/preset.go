// Package preset loads the read-only workout template library used to
// pre-populate a new event's workout log.
package preset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/halcyra/cadence/internal/domain/event"
)

// Preset is one named workout template.
type Preset struct {
	Name      string                `yaml:"name" json:"name"`
	Exercises []event.ExerciseEntry `yaml:"exercises" json:"exercises"`
}

// Library is an immutable keyed list of presets.
type Library struct {
	presets []Preset
	byName  map[string]Preset
}

// Load reads a preset library from a YAML file. A missing path yields an
// empty library rather than an error, since presets are optional.
func Load(path string) (*Library, error) {
	if path == "" {
		return empty(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return empty(), nil
		}
		return nil, fmt.Errorf("reading presets: %w", err)
	}

	var file struct {
		Presets []Preset `yaml:"presets"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}

	lib := &Library{presets: file.Presets, byName: make(map[string]Preset, len(file.Presets))}
	for _, p := range file.Presets {
		lib.byName[p.Name] = p
	}
	return lib, nil
}

func empty() *Library {
	return &Library{byName: map[string]Preset{}}
}

// List returns all presets in file order.
func (l *Library) List() []Preset {
	return l.presets
}

// Get looks a preset up by name.
func (l *Library) Get(name string) (Preset, bool) {
	p, ok := l.byName[name]
	return p, ok
}

// WorkoutLog returns a copy of the named preset's exercises, ready to
// seed a new event.
func (l *Library) WorkoutLog(name string) []event.ExerciseEntry {
	p, ok := l.byName[name]
	if !ok {
		return nil
	}
	out := make([]event.ExerciseEntry, len(p.Exercises))
	copy(out, p.Exercises)
	return out
}
