package notify

import (
	"github.com/samber/do/v2"

	"github.com/rodneymbrown1/videodraft/internal/config"
	"github.com/rodneymbrown1/videodraft/internal/notify"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (notify.Notifier, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return NewHTTPNotifier(cfg.SnapshotWebhookURL), nil
	})
}
