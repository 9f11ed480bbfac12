package styles

import (
	"fmt"
	"sort"
)

// Preset is a named property table. Builtin presets define all seven
// properties; user presets may define a subset.
type Preset struct {
	Name        string
	Description string
	Overrides   Overrides
}

func builtinPresets() []Preset {
	return []Preset{
		{
			Name:        "youtube",
			Description: "Bold, high-contrast style for YouTube videos",
			Overrides: Props{
				FontFamily:      "Bfont",
				FontSizeTitle:   80,
				FontSizeBody:    40,
				FontColor:       "#FFFFFF",
				BackgroundColor: "#0F0F0F",
				TextAlignment:   "center",
				Padding:         50,
			}.AsOverrides(),
		},
		{
			Name:        "presentation",
			Description: "Clean, professional look for presentations",
			Overrides: Props{
				FontFamily:      "Bfont",
				FontSizeTitle:   64,
				FontSizeBody:    32,
				FontColor:       "#333333",
				BackgroundColor: "#F5F5F5",
				TextAlignment:   "left",
				Padding:         60,
			}.AsOverrides(),
		},
		{
			Name:        "cinematic",
			Description: "Minimal, dramatic style for cinematic content",
			Overrides: Props{
				FontFamily:      "Bfont",
				FontSizeTitle:   56,
				FontSizeBody:    28,
				FontColor:       "#E0E0E0",
				BackgroundColor: "#000000",
				TextAlignment:   "center",
				Padding:         80,
			}.AsOverrides(),
		},
	}
}

// PresetTable holds the presets offered to a session: the builtins plus any
// user-registered ones.
type PresetTable struct {
	presets map[string]Preset
}

// NewPresetTable returns a table seeded with the builtin presets.
func NewPresetTable() *PresetTable {
	t := &PresetTable{presets: make(map[string]Preset)}
	for _, p := range builtinPresets() {
		t.presets[p.Name] = p
	}
	return t
}

// Register adds or replaces a preset after validating its property table.
func (t *PresetTable) Register(p Preset) error {
	if p.Name == "" {
		return fmt.Errorf("preset name must not be empty")
	}
	if err := p.Overrides.Validate(); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	t.presets[p.Name] = p
	return nil
}

func (t *PresetTable) Lookup(name string) (Preset, bool) {
	p, ok := t.presets[name]
	return p, ok
}

// Names lists the available preset names in sorted order.
func (t *PresetTable) Names() []string {
	names := make([]string, 0, len(t.presets))
	for name := range t.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
