package renderer

import (
	"github.com/samber/do/v2"

	"github.com/rodneymbrown1/videodraft/internal/config"
	"github.com/rodneymbrown1/videodraft/internal/renderer"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (renderer.Renderer, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return NewBlenderRenderer(cfg.BlenderAddr), nil
	})
}
