package workspace

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"lukechampine.com/blake3"

	"github.com/rodneymbrown1/videodraft/internal/workspace"
)

const projectFileName = "project.json"

// projectDocument is the single on-disk document holding everything about a
// project apart from the asset payloads themselves.
type projectDocument struct {
	ProjectName string              `json:"project_name"`
	Assets      []workspace.Asset   `json:"assets"`
	Session     *workspace.Snapshot `json:"session,omitempty"`
}

var assetDirs = map[workspace.AssetKind]string{
	workspace.AssetImage:   "images",
	workspace.AssetAudio:   "audio",
	workspace.AssetVideo:   "video",
	workspace.AssetBlender: "blender",
}

// FSWorkspace keeps one project directory on the local filesystem:
//
//	<root>/project.json
//	<root>/assets/{images,audio,video,blender}/
//	<root>/exports/
//	<root>/user.md, <root>/project.md
//
// project.json is rewritten atomically on every change.
type FSWorkspace struct {
	root        string
	projectName string

	mu     sync.Mutex
	assets map[string]workspace.Asset
}

// Open creates or reopens the project directory under projectsDir and
// returns a workspace bound to it.
func Open(projectsDir, projectName string) (workspace.Workspace, error) {
	root := filepath.Join(projectsDir, projectName)
	for _, dir := range assetDirs {
		if err := os.MkdirAll(filepath.Join(root, "assets", dir), 0o755); err != nil {
			return nil, fmt.Errorf("create project layout: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(root, "exports"), 0o755); err != nil {
		return nil, fmt.Errorf("create project layout: %w", err)
	}

	w := &FSWorkspace{
		root:        root,
		projectName: projectName,
		assets:      make(map[string]workspace.Asset),
	}
	doc, err := w.readDocument()
	if err != nil {
		return nil, err
	}
	if doc != nil {
		for _, a := range doc.Assets {
			w.assets[a.ID] = a
		}
	} else {
		if err := w.writeDocument(&projectDocument{ProjectName: projectName, Assets: []workspace.Asset{}}); err != nil {
			return nil, err
		}
	}
	if err := w.seedNotes(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *FSWorkspace) ProjectName() string { return w.projectName }
func (w *FSWorkspace) Root() string        { return w.root }

func (w *FSWorkspace) SaveSnapshot(_ context.Context, snap workspace.Snapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc, err := w.readDocument()
	if err != nil {
		return err
	}
	if doc == nil {
		doc = &projectDocument{ProjectName: w.projectName}
	}
	doc.Session = &snap
	doc.Assets = w.assetList()
	return w.writeDocument(doc)
}

func (w *FSWorkspace) LoadSnapshot(_ context.Context) (workspace.Snapshot, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc, err := w.readDocument()
	if err != nil {
		return workspace.Snapshot{}, false, err
	}
	if doc == nil || doc.Session == nil {
		return workspace.Snapshot{}, false, nil
	}
	return *doc.Session, true, nil
}

// RegisterAsset stores the payload under assets/ and records it in
// project.json. The asset id is derived from the content, so registering
// the same bytes twice returns the already-registered asset.
func (w *FSWorkspace) RegisterAsset(_ context.Context, kind workspace.AssetKind, filename string, data []byte, source string) (workspace.Asset, error) {
	dir, ok := assetDirs[kind]
	if !ok {
		return workspace.Asset{}, fmt.Errorf("unknown asset kind %q", kind)
	}
	if filename == "" || filename != filepath.Base(filename) {
		return workspace.Asset{}, fmt.Errorf("invalid asset filename %q", filename)
	}

	sum := blake3.Sum256(data)
	id := hex.EncodeToString(sum[:8])

	w.mu.Lock()
	defer w.mu.Unlock()

	if existing, ok := w.assets[id]; ok {
		return existing, nil
	}

	// The id prefix keeps equally named assets with different content from
	// sharing one path.
	path := filepath.Join(w.root, "assets", dir, id+"_"+filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return workspace.Asset{}, fmt.Errorf("write asset %s: %w", filename, err)
	}
	a := workspace.Asset{ID: id, Filename: filename, Kind: kind, Source: source}
	w.assets[id] = a

	doc, err := w.readDocument()
	if err != nil {
		return workspace.Asset{}, err
	}
	if doc == nil {
		doc = &projectDocument{ProjectName: w.projectName}
	}
	doc.Assets = w.assetList()
	if err := w.writeDocument(doc); err != nil {
		return workspace.Asset{}, err
	}
	return a, nil
}

func (w *FSWorkspace) HasAsset(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.assets[id]
	return ok
}

func (w *FSWorkspace) AssetPath(id string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	a, ok := w.assets[id]
	if !ok {
		return "", false
	}
	return filepath.Join(w.root, "assets", assetDirs[a.Kind], a.ID+"_"+a.Filename), true
}

func (w *FSWorkspace) Assets() []workspace.Asset {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.assetList()
}

// assetList returns the registered assets sorted by id. Callers hold w.mu.
func (w *FSWorkspace) assetList() []workspace.Asset {
	out := make([]workspace.Asset, 0, len(w.assets))
	for _, a := range w.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (w *FSWorkspace) readDocument() (*projectDocument, error) {
	raw, err := os.ReadFile(filepath.Join(w.root, projectFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", projectFileName, err)
	}
	var doc projectDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", projectFileName, err)
	}
	return &doc, nil
}

func (w *FSWorkspace) writeDocument(doc *projectDocument) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", projectFileName, err)
	}
	tmp := filepath.Join(w.root, projectFileName+".tmp")
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", projectFileName, err)
	}
	if err := os.Rename(tmp, filepath.Join(w.root, projectFileName)); err != nil {
		return fmt.Errorf("replace %s: %w", projectFileName, err)
	}
	return nil
}

// seedNotes writes the user and project note files on first open. Existing
// files are never overwritten.
func (w *FSWorkspace) seedNotes() error {
	notes := map[string]string{
		"user.md":    userNotesTemplate,
		"project.md": fmt.Sprintf(projectNotesTemplate, w.projectName),
	}
	for name, content := range notes {
		path := filepath.Join(w.root, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat %s: %w", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
	}
	return nil
}

const userNotesTemplate = `# User Notes

Preferences that apply to every project: preferred presets, pacing,
narration style. Edit freely; this file is only seeded once.
`

const projectNotesTemplate = `# Project: %s

Notes for this project: goals, audience, open edits. Edit freely; this
file is only seeded once.
`
