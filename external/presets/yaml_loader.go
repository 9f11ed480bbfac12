package presets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rodneymbrown1/videodraft/internal/styles"
)

type presetFile struct {
	Presets []presetEntry `yaml:"presets"`
}

type presetEntry struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Overrides   styles.Overrides `yaml:"overrides"`
}

// Load reads user presets from a YAML file and registers them on top of
// the builtin table. Unknown keys and malformed property values are
// rejected so a typo never silently drops a property.
func Load(path string) (*styles.PresetTable, error) {
	table := styles.NewPresetTable()
	if path == "" {
		return table, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open preset file: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var file presetFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse preset file %s: %w", path, err)
	}
	for _, entry := range file.Presets {
		if entry.Name == "" {
			return nil, fmt.Errorf("preset file %s: preset without a name", path)
		}
		if err := table.Register(styles.Preset{
			Name:        entry.Name,
			Description: entry.Description,
			Overrides:   entry.Overrides,
		}); err != nil {
			return nil, fmt.Errorf("preset %q: %w", entry.Name, err)
		}
	}
	return table, nil
}
