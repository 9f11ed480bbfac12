package project

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rodneymbrown1/videodraft/internal/config"
	"github.com/rodneymbrown1/videodraft/internal/images"
	"github.com/rodneymbrown1/videodraft/internal/notify"
	"github.com/rodneymbrown1/videodraft/internal/renderer"
	"github.com/rodneymbrown1/videodraft/internal/repository"
	"github.com/rodneymbrown1/videodraft/internal/session"
	"github.com/rodneymbrown1/videodraft/internal/styles"
	"github.com/rodneymbrown1/videodraft/internal/transcriber"
	"github.com/rodneymbrown1/videodraft/internal/transcript"
	"github.com/rodneymbrown1/videodraft/internal/workspace"
)

const renderFPS = 30

// Manager drives one project end to end: audio in, transcription,
// segmentation, editing session, persistence and rendering. repo, notifier
// and imgSource are optional collaborators and may be nil.
type Manager struct {
	cfg         *config.Config
	transcriber transcriber.Transcriber
	renderer    renderer.Renderer
	repo        repository.Repository
	notifier    notify.Notifier
	imgSource   images.Source
	presets     *styles.PresetTable
	ws          workspace.Workspace

	mu        sync.Mutex
	sess      *session.Session
	audioPath string
}

func NewManager(
	cfg *config.Config,
	stt transcriber.Transcriber,
	rnd renderer.Renderer,
	repo repository.Repository,
	notifier notify.Notifier,
	imgSource images.Source,
	presets *styles.PresetTable,
	ws workspace.Workspace,
) *Manager {
	return &Manager{
		cfg:         cfg,
		transcriber: stt,
		renderer:    rnd,
		repo:        repo,
		notifier:    notifier,
		imgSource:   imgSource,
		presets:     presets,
		ws:          ws,
	}
}

// Open restores the project's persisted session, or starts a fresh one for
// a new project.
func (m *Manager) Open(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, err := session.LoadFromWorkspace(ctx, m.ws, m.presets)
	if err != nil {
		return fmt.Errorf("open project %s: %w", m.ws.ProjectName(), err)
	}
	m.sess = sess
	m.audioPath = latestAudioPath(m.ws)
	slog.Info("project opened", "project", m.ws.ProjectName(), "slides", len(sess.Slides()))
	return nil
}

// Session returns the open editing session.
func (m *Manager) Session() *session.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess
}

// ProcessAudio registers the recording as a project asset, transcribes it
// and initializes the slide deck from the transcript. The resulting state
// is saved immediately.
func (m *Manager) ProcessAudio(ctx context.Context, audioPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return fmt.Errorf("%w: project not opened", session.ErrState)
	}

	slog.Info("processing recording", "project", m.ws.ProjectName(), "path", audioPath)
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return fmt.Errorf("read recording: %w", err)
	}
	asset, err := m.ws.RegisterAsset(ctx, workspace.AssetAudio, filepath.Base(audioPath), data, "intake")
	if err != nil {
		return fmt.Errorf("register recording: %w", err)
	}
	storedPath, ok := m.ws.AssetPath(asset.ID)
	if !ok {
		return fmt.Errorf("registered recording %s has no path", asset.ID)
	}

	tr, err := m.transcriber.Transcribe(ctx, storedPath, m.cfg.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("transcribe %s: %w", asset.Filename, err)
	}
	if err := m.sess.LoadTranscript(tr, transcript.Options{
		MinDuration:    m.cfg.SegmentMinDurationSec,
		MaxDuration:    m.cfg.SegmentMaxDurationSec,
		PauseThreshold: m.cfg.SegmentPauseThresholdSec,
	}); err != nil {
		return fmt.Errorf("segment transcript: %w", err)
	}
	m.audioPath = storedPath
	slog.Info("recording processed", "project", m.ws.ProjectName(), "asset_id", asset.ID, "slides", len(m.sess.Slides()))
	return m.saveLocked(ctx)
}

// Save persists the session to the workspace and, when configured,
// archives the snapshot and notifies the save webhook. Archive and webhook
// failures are logged but do not fail the save; the workspace copy is the
// source of truth.
func (m *Manager) Save(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return fmt.Errorf("%w: project not opened", session.ErrState)
	}
	return m.saveLocked(ctx)
}

func (m *Manager) saveLocked(ctx context.Context) error {
	if err := m.sess.Save(ctx); err != nil {
		return err
	}
	snap := m.sess.Snapshot()
	savedAt := time.Now()

	if m.repo != nil {
		doc, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		if _, err := m.repo.SaveSnapshot(ctx, repository.SaveSnapshotInput{
			ProjectName: m.ws.ProjectName(),
			SlideCount:  len(snap.Slides),
			Document:    doc,
			SavedAt:     savedAt,
		}); err != nil {
			slog.Error("failed to archive snapshot", "project", m.ws.ProjectName(), "error", err)
		}
	}
	if m.notifier != nil {
		if err := m.notifier.NotifySaved(ctx, notify.Event{
			ProjectName: m.ws.ProjectName(),
			SlideCount:  len(snap.Slides),
			SavedAt:     savedAt,
		}); err != nil {
			slog.Error("failed to notify save webhook", "project", m.ws.ProjectName(), "error", err)
		}
	}
	slog.Info("project saved", "project", m.ws.ProjectName(), "slides", len(snap.Slides))
	return nil
}

// FindImages searches the configured image source.
func (m *Manager) FindImages(ctx context.Context, query string, limit int) ([]images.Candidate, error) {
	if m.imgSource == nil {
		return nil, fmt.Errorf("%w: no image source configured", session.ErrState)
	}
	return m.imgSource.Search(ctx, query, limit)
}

// AttachImage fetches an image from the source, registers it as a project
// asset and attaches it to the slide.
func (m *Manager) AttachImage(ctx context.Context, slideID, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return fmt.Errorf("%w: project not opened", session.ErrState)
	}
	if m.imgSource == nil {
		return fmt.Errorf("%w: no image source configured", session.ErrState)
	}

	filename, data, err := m.imgSource.Fetch(ctx, ref)
	if err != nil {
		return fmt.Errorf("fetch image %s: %w", ref, err)
	}
	asset, err := m.ws.RegisterAsset(ctx, workspace.AssetImage, filename, data, "library")
	if err != nil {
		return fmt.Errorf("register image: %w", err)
	}
	return m.sess.SetImage(slideID, asset.ID)
}

// Render resolves every slide's style, flattens the deck and hands it to
// the renderer.
func (m *Manager) Render(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return fmt.Errorf("%w: project not opened", session.ErrState)
	}

	slides := m.sess.Slides()
	if len(slides) == 0 {
		return fmt.Errorf("%w: nothing to render", session.ErrState)
	}
	deck := renderer.Deck{
		Slides:    make([]renderer.Slide, 0, len(slides)),
		AudioPath: m.audioPath,
		FPS:       renderFPS,
	}
	for _, sl := range slides {
		props, err := m.sess.ResolveStyle(sl.ID)
		if err != nil {
			return err
		}
		out := renderer.Slide{
			Order:    sl.Order,
			Start:    sl.Start,
			End:      sl.End,
			Title:    sl.Title,
			BodyText: sl.BodyText,
			Style:    props,
		}
		if sl.ImageRef != "" {
			if path, ok := m.ws.AssetPath(sl.ImageRef); ok {
				out.ImagePath = path
			} else {
				slog.Warn("slide references unknown asset; rendering without image", "slide_id", sl.ID, "asset_id", sl.ImageRef)
			}
		}
		deck.Slides = append(deck.Slides, out)
	}
	if err := m.renderer.Render(ctx, deck); err != nil {
		return fmt.Errorf("render project %s: %w", m.ws.ProjectName(), err)
	}
	return nil
}

// latestAudioPath picks the narration track for rendering from the
// registered audio assets.
func latestAudioPath(ws workspace.Workspace) string {
	var path string
	for _, a := range ws.Assets() {
		if a.Kind != workspace.AssetAudio {
			continue
		}
		if p, ok := ws.AssetPath(a.ID); ok {
			path = p
		}
	}
	return path
}
