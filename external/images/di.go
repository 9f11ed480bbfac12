package images

import (
	"github.com/samber/do/v2"

	"github.com/rodneymbrown1/videodraft/internal/config"
	"github.com/rodneymbrown1/videodraft/internal/images"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (images.Source, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.ImageLibraryDir == "" {
			return nil, nil
		}
		return NewLibrarySource(cfg.ImageLibraryDir), nil
	})
}
