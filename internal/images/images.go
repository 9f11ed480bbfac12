package images

import "context"

// Candidate is one image the source can supply for a slide.
type Candidate struct {
	Ref      string `json:"ref"`
	Filename string `json:"filename"`
	Source   string `json:"source"`
}

// Source finds and fetches slide imagery.
type Source interface {
	// Search returns candidates matching the query, best first.
	Search(ctx context.Context, query string, limit int) ([]Candidate, error)
	// Fetch returns the image payload for a candidate ref.
	Fetch(ctx context.Context, ref string) (filename string, data []byte, err error)
}
