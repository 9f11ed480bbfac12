package deck

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/rodneymbrown1/videodraft/internal/styles"
)

// Slide is one timed segment of the output deck.
type Slide struct {
	ID             string            `json:"id"`
	Order          int               `json:"order"`
	Start          float64           `json:"start"`
	End            float64           `json:"end"`
	Title          string            `json:"title,omitempty"`
	BodyText       string            `json:"body_text"`
	SpeakerNotes   string            `json:"speaker_notes,omitempty"`
	StyleOverrides *styles.Overrides `json:"style_overrides,omitempty"`
	ImageRef       string            `json:"image_ref,omitempty"`
}

func (s Slide) Duration() float64 {
	return s.End - s.Start
}

// Clone deep-copies the slide, including its override record.
func (s Slide) Clone() Slide {
	if s.StyleOverrides != nil {
		ov := *s.StyleOverrides
		s.StyleOverrides = &ov
	}
	return s
}

const idBytes = 4

// NewID issues a random 8-hex slide id not rejected by taken. Ids are never
// reused within a session, even across deletes; taken must report retired
// ids too.
func NewID(taken func(string) bool) (string, error) {
	for attempt := 0; attempt < 64; attempt++ {
		b := make([]byte, idBytes)
		if _, err := rand.Read(b); err != nil {
			return "", fmt.Errorf("generate slide id: %w", err)
		}
		id := hex.EncodeToString(b)
		if taken == nil || !taken(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("exhausted slide id attempts")
}
