package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Sheepposu/bombparty/game"
)

// Preset is a named bundle of game settings. Nil fields are left
// alone when the preset is applied.
type Preset struct {
	Difficulty string `yaml:"difficulty,omitempty"`
	Timer      *int   `yaml:"timer,omitempty"`
	Grace      *int   `yaml:"minimum_time,omitempty"`
	Lives      *int   `yaml:"lives,omitempty"`
}

type presetsFile struct {
	Presets map[string]Preset `yaml:"presets"`
}

// LoadPresets reads named presets from a YAML file.
func LoadPresets(path string) (map[string]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	var f presetsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}
	return f.Presets, nil
}

// A Field is one populated preset value, named the way the settings
// store expects.
type Field struct {
	Name  string
	Value string
}

// Fields lists the preset's populated values in application order.
func (p Preset) Fields() []Field {
	var fields []Field
	if p.Difficulty != "" {
		fields = append(fields, Field{"difficulty", p.Difficulty})
	}
	if p.Timer != nil {
		fields = append(fields, Field{"timer", strconv.Itoa(*p.Timer)})
	}
	if p.Grace != nil {
		fields = append(fields, Field{"minimum_time", strconv.Itoa(*p.Grace)})
	}
	if p.Lives != nil {
		fields = append(fields, Field{"lives", strconv.Itoa(*p.Lives)})
	}
	return fields
}

// Apply pushes the preset through the settings store one field at a
// time, so preset values face exactly the validation chat input does.
// It returns the outcome message for each field it touched.
func (p Preset) Apply(s *game.Settings) []string {
	var outcomes []string
	for _, f := range p.Fields() {
		outcomes = append(outcomes, s.Set(f.Name, f.Value))
	}
	return outcomes
}
