package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rodneymbrown1/videodraft/internal/deck"
	"github.com/rodneymbrown1/videodraft/internal/workspace"
)

func TestOpen_CreatesLayoutAndSeedsNotes(t *testing.T) {
	dir := t.TempDir()
	w, err := Open(dir, "demo")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if w.ProjectName() != "demo" {
		t.Fatalf("project name %q", w.ProjectName())
	}
	for _, sub := range []string{"assets/images", "assets/audio", "assets/video", "assets/blender", "exports"} {
		if _, err := os.Stat(filepath.Join(dir, "demo", sub)); err != nil {
			t.Fatalf("missing %s: %v", sub, err)
		}
	}
	for _, name := range []string{"project.json", "user.md", "project.md"} {
		if _, err := os.Stat(filepath.Join(dir, "demo", name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}

func TestOpen_DoesNotOverwriteNotes(t *testing.T) {
	dir := t.TempDir()
	if _, err := Open(dir, "demo"); err != nil {
		t.Fatalf("open: %v", err)
	}
	path := filepath.Join(dir, "demo", "user.md")
	if err := os.WriteFile(path, []byte("my edits"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Open(dir, "demo"); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(raw) != "my edits" {
		t.Fatalf("user notes overwritten: %q", raw)
	}
}

func TestSnapshot_RoundTripsThroughProjectFile(t *testing.T) {
	dir := t.TempDir()
	w, err := Open(dir, "demo")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()

	if _, found, err := w.LoadSnapshot(ctx); err != nil || found {
		t.Fatalf("fresh project must have no snapshot, found=%v err=%v", found, err)
	}

	snap := workspace.Snapshot{
		Slides: []deck.Slide{
			{ID: "aa11bb22", Order: 0, Start: 0, End: 4.5, Title: "Intro", BodyText: "Hello world."},
		},
		ActivePreset: "youtube",
	}
	if err := w.SaveSnapshot(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Reopen to prove the snapshot survives the process.
	w2, err := Open(dir, "demo")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, found, err := w2.LoadSnapshot(ctx)
	if err != nil || !found {
		t.Fatalf("load after reopen: found=%v err=%v", found, err)
	}
	if len(got.Slides) != 1 || got.Slides[0] != snap.Slides[0] || got.ActivePreset != "youtube" {
		t.Fatalf("snapshot did not round-trip: %+v", got)
	}
}

func TestRegisterAsset(t *testing.T) {
	dir := t.TempDir()
	w, err := Open(dir, "demo")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()

	a, err := w.RegisterAsset(ctx, workspace.AssetImage, "cover.png", []byte("png bytes"), "local")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(a.ID) != 16 {
		t.Fatalf("expected a 16-hex content id, got %q", a.ID)
	}
	if !w.HasAsset(a.ID) {
		t.Fatal("registered asset not found")
	}
	path, ok := w.AssetPath(a.ID)
	if !ok {
		t.Fatal("no path for registered asset")
	}
	if raw, err := os.ReadFile(path); err != nil || string(raw) != "png bytes" {
		t.Fatalf("asset payload not stored: %q err=%v", raw, err)
	}

	// Same bytes register to the same asset.
	dup, err := w.RegisterAsset(ctx, workspace.AssetImage, "other-name.png", []byte("png bytes"), "local")
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if dup.ID != a.ID || dup.Filename != "cover.png" {
		t.Fatalf("duplicate content must return the existing asset, got %+v", dup)
	}

	// Assets survive a reopen.
	w2, err := Open(dir, "demo")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !w2.HasAsset(a.ID) {
		t.Fatal("asset lost on reopen")
	}
}

func TestRegisterAsset_SameFilenameDifferentContent(t *testing.T) {
	dir := t.TempDir()
	w, err := Open(dir, "demo")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()

	a, err := w.RegisterAsset(ctx, workspace.AssetImage, "cover.png", []byte("first draft"), "local")
	if err != nil {
		t.Fatalf("register first: %v", err)
	}
	b, err := w.RegisterAsset(ctx, workspace.AssetImage, "cover.png", []byte("second draft"), "local")
	if err != nil {
		t.Fatalf("register second: %v", err)
	}
	if a.ID == b.ID {
		t.Fatal("different content must yield different ids")
	}

	pathA, _ := w.AssetPath(a.ID)
	pathB, _ := w.AssetPath(b.ID)
	if pathA == pathB {
		t.Fatalf("assets must not share a path: %q", pathA)
	}
	if raw, err := os.ReadFile(pathA); err != nil || string(raw) != "first draft" {
		t.Fatalf("first payload clobbered: %q err=%v", raw, err)
	}
	if raw, err := os.ReadFile(pathB); err != nil || string(raw) != "second draft" {
		t.Fatalf("second payload missing: %q err=%v", raw, err)
	}
}

func TestRegisterAsset_RejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	w, err := Open(dir, "demo")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	if _, err := w.RegisterAsset(ctx, workspace.AssetKind("tarball"), "x.tar", nil, ""); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if _, err := w.RegisterAsset(ctx, workspace.AssetImage, "../escape.png", nil, ""); err == nil {
		t.Fatal("expected error for path traversal in filename")
	}
}
