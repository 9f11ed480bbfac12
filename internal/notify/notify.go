package notify

import (
	"context"
	"time"
)

// Event describes one project save.
type Event struct {
	ProjectName string    `json:"project_name"`
	SlideCount  int       `json:"slide_count"`
	SavedAt     time.Time `json:"saved_at"`
}

// Notifier reports project saves to an external listener.
type Notifier interface {
	NotifySaved(ctx context.Context, ev Event) error
}
