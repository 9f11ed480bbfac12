package intake

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsAudioFile(t *testing.T) {
	cases := map[string]bool{
		"take1.wav":      true,
		"take1.WAV":      true,
		"voice.mp3":      true,
		"memo.m4a":       true,
		"master.flac":    true,
		"clip.ogg":       true,
		"notes.txt":      false,
		"video.mp4":      false,
		"wav":            false,
		".wav.partial":   false,
		"dir/nested.ogg": true,
	}
	for path, want := range cases {
		if got := isAudioFile(path); got != want {
			t.Errorf("isAudioFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestStart_HandlesNewRecordings(t *testing.T) {
	dir := t.TempDir()
	w := NewDirWatcher(dir)

	handled := make(chan string, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx, func(_ context.Context, path string) error {
			handled <- path
			return nil
		})
	}()

	// Give the watcher a moment to register before producing events.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "take1.wav"), []byte("pcm"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case path := <-handled:
		if filepath.Base(path) != "take1.wav" {
			t.Fatalf("unexpected handled file %q", path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("handler never invoked")
	}

	select {
	case path := <-handled:
		t.Fatalf("non-audio file handled: %q", path)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestStart_MissingDirectory(t *testing.T) {
	w := NewDirWatcher("/nonexistent/intake")
	if err := w.Start(context.Background(), func(context.Context, string) error { return nil }); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
