package workspace

import (
	"context"

	"github.com/rodneymbrown1/videodraft/internal/deck"
	"github.com/rodneymbrown1/videodraft/internal/styles"
)

// Snapshot is the persisted session document. The workspace owns the
// on-disk layout; the core only produces and consumes this structure, and
// a load/save cycle must be lossless field for field.
type Snapshot struct {
	Slides          []deck.Slide      `json:"slides"`
	ActivePreset    string            `json:"active_preset,omitempty"`
	GlobalOverrides *styles.Overrides `json:"global_overrides,omitempty"`
}

type AssetKind string

const (
	AssetImage   AssetKind = "image"
	AssetAudio   AssetKind = "audio"
	AssetVideo   AssetKind = "video"
	AssetBlender AssetKind = "blender"
)

// Asset is one registered project file.
type Asset struct {
	ID       string    `json:"asset_id"`
	Filename string    `json:"filename"`
	Kind     AssetKind `json:"type"`
	Source   string    `json:"source,omitempty"`
}

// Workspace is the persistence collaborator: it owns the project directory
// and asset files. Implementations live outside the core.
type Workspace interface {
	ProjectName() string
	Root() string

	SaveSnapshot(ctx context.Context, snap Snapshot) error
	// LoadSnapshot reports found=false for a fresh project.
	LoadSnapshot(ctx context.Context) (snap Snapshot, found bool, err error)

	RegisterAsset(ctx context.Context, kind AssetKind, filename string, data []byte, source string) (Asset, error)
	HasAsset(id string) bool
	AssetPath(id string) (string, bool)
	Assets() []Asset
}
