package intake

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rodneymbrown1/videodraft/internal/intake"
)

// settleDelay gives the producer time to finish writing before the file is
// read.
const settleDelay = 500 * time.Millisecond

var audioExtensions = map[string]struct{}{
	".wav":  {},
	".mp3":  {},
	".m4a":  {},
	".flac": {},
	".ogg":  {},
}

// DirWatcher watches one drop directory for new recordings. Files are
// handled serially in arrival order; a slow transcription backlogs the
// queue rather than running concurrently against one project.
type DirWatcher struct {
	dir string
}

func NewDirWatcher(dir string) *DirWatcher {
	return &DirWatcher{dir: dir}
}

func (w *DirWatcher) Start(ctx context.Context, handler intake.Handler) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	slog.Info("watching for new recordings", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			slog.Info("intake watcher stopped")
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !isAudioFile(event.Name) {
				slog.Debug("ignoring non-audio file", "path", event.Name)
				continue
			}
			slog.Info("new recording detected", "path", event.Name)
			time.Sleep(settleDelay)
			if err := handler(ctx, event.Name); err != nil {
				slog.Error("failed to process recording", "path", event.Name, "error", err)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

func isAudioFile(path string) bool {
	_, ok := audioExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}
