package workspace

import (
	"github.com/samber/do/v2"

	"github.com/rodneymbrown1/videodraft/internal/config"
	"github.com/rodneymbrown1/videodraft/internal/workspace"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (workspace.Workspace, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return Open(cfg.ProjectsDir, cfg.ProjectName)
	})
}
