package repository

import (
	"context"
	"time"
)

// SnapshotRecord is one archived project snapshot.
type SnapshotRecord struct {
	ID          string
	ProjectName string
	SlideCount  int
	Document    []byte
	SavedAt     time.Time
	CreatedAt   time.Time
}

type SaveSnapshotInput struct {
	ProjectName string
	SlideCount  int
	Document    []byte
	SavedAt     time.Time
}

// Repository archives project snapshots outside the project directory, so
// earlier saves stay recoverable after the workspace moves on.
type Repository interface {
	SaveSnapshot(ctx context.Context, input SaveSnapshotInput) (*SnapshotRecord, error)
	GetLatestSnapshot(ctx context.Context, projectName string) (*SnapshotRecord, error)
	ListSnapshots(ctx context.Context, projectName string, limit int) ([]SnapshotRecord, error)
}
