package presets

import (
	"github.com/samber/do/v2"

	"github.com/rodneymbrown1/videodraft/internal/config"
	"github.com/rodneymbrown1/videodraft/internal/styles"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*styles.PresetTable, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return Load(cfg.StylePresetsFile)
	})
}
