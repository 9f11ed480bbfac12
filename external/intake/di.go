package intake

import (
	"github.com/samber/do/v2"

	"github.com/rodneymbrown1/videodraft/internal/config"
	"github.com/rodneymbrown1/videodraft/internal/intake"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (intake.Watcher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.IntakeDir == "" {
			return nil, nil
		}
		return NewDirWatcher(cfg.IntakeDir), nil
	})
}
