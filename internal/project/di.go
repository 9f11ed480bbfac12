package project

import (
	"github.com/samber/do/v2"

	"github.com/rodneymbrown1/videodraft/internal/config"
	"github.com/rodneymbrown1/videodraft/internal/images"
	"github.com/rodneymbrown1/videodraft/internal/notify"
	"github.com/rodneymbrown1/videodraft/internal/renderer"
	"github.com/rodneymbrown1/videodraft/internal/repository"
	"github.com/rodneymbrown1/videodraft/internal/styles"
	"github.com/rodneymbrown1/videodraft/internal/transcriber"
	"github.com/rodneymbrown1/videodraft/internal/workspace"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Manager, error) {
		cfg := do.MustInvoke[*config.Config](i)
		stt := do.MustInvoke[transcriber.Transcriber](i)
		rnd := do.MustInvoke[renderer.Renderer](i)
		repo := do.MustInvoke[repository.Repository](i)
		notifier := do.MustInvoke[notify.Notifier](i)
		imgSource := do.MustInvoke[images.Source](i)
		presets := do.MustInvoke[*styles.PresetTable](i)
		ws := do.MustInvoke[workspace.Workspace](i)
		return NewManager(cfg, stt, rnd, repo, notifier, imgSource, presets, ws), nil
	})
}
