package renderer

import (
	"context"

	"github.com/rodneymbrown1/videodraft/internal/styles"
)

// Slide is one fully resolved slide ready for rendering: the style cascade
// has been flattened into concrete properties and asset references have
// been replaced with file paths.
type Slide struct {
	Order     int          `json:"order"`
	Start     float64      `json:"start"`
	End       float64      `json:"end"`
	Title     string       `json:"title,omitempty"`
	BodyText  string       `json:"body_text"`
	Style     styles.Props `json:"style"`
	ImagePath string       `json:"image_path,omitempty"`
}

// Deck is the complete render input for one project.
type Deck struct {
	Slides    []Slide `json:"slides"`
	AudioPath string  `json:"audio_path,omitempty"`
	FPS       int     `json:"fps"`
}

// Renderer materializes a deck into a video editing timeline.
type Renderer interface {
	Render(ctx context.Context, deck Deck) error
}
