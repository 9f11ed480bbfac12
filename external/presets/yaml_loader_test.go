package presets

import (
	"os"
	"path/filepath"
	"testing"
)

func writePresetFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write preset file: %v", err)
	}
	return path
}

func TestLoad_EmptyPathReturnsBuiltins(t *testing.T) {
	table, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, name := range []string{"youtube", "presentation", "cinematic"} {
		if _, ok := table.Lookup(name); !ok {
			t.Fatalf("builtin preset %q missing", name)
		}
	}
}

func TestLoad_UserPresets(t *testing.T) {
	path := writePresetFile(t, `
presets:
  - name: brand
    description: Company brand colors
    overrides:
      font_color: "#1E90FF"
      background_color: "#FFFFFF"
      padding: 64
  - name: dark-terminal
    overrides:
      font_family: JetBrains Mono
      font_color: "#00FF00"
      background_color: "#000000"
`)
	table, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	p, ok := table.Lookup("brand")
	if !ok {
		t.Fatal("brand preset not registered")
	}
	if p.Overrides.FontColor == nil || *p.Overrides.FontColor != "#1E90FF" {
		t.Fatalf("font color not loaded: %+v", p.Overrides)
	}
	if p.Overrides.Padding == nil || *p.Overrides.Padding != 64 {
		t.Fatalf("padding not loaded: %+v", p.Overrides)
	}
	if p.Overrides.FontSizeTitle != nil {
		t.Fatalf("unset properties must stay nil: %+v", p.Overrides)
	}
	if _, ok := table.Lookup("dark-terminal"); !ok {
		t.Fatal("dark-terminal preset not registered")
	}
	if _, ok := table.Lookup("youtube"); !ok {
		t.Fatal("builtins must survive user presets")
	}
}

func TestLoad_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"unknown key", `
presets:
  - name: typo
    overrides:
      fnt_color: "#FFFFFF"
`},
		{"bad color", `
presets:
  - name: bad
    overrides:
      font_color: red
`},
		{"missing name", `
presets:
  - overrides:
      padding: 10
`},
		{"bad alignment", `
presets:
  - name: bad
    overrides:
      text_alignment: justify
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writePresetFile(t, tc.content)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/presets.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
