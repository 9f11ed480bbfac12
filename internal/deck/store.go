package deck

import "fmt"

// Store is the ordered, mutable slide collection of one session. Order
// values are kept dense (0..N-1) across every mutation. The store performs
// no precondition checks beyond index bounds; the session validates before
// it mutates.
type Store struct {
	slides []Slide
}

func NewStore() *Store {
	return &Store{}
}

func (st *Store) Len() int {
	return len(st.slides)
}

// Get returns a copy of the slide with the given id.
func (st *Store) Get(id string) (Slide, bool) {
	for _, s := range st.slides {
		if s.ID == id {
			return s.Clone(), true
		}
	}
	return Slide{}, false
}

// All returns copies of all slides in order.
func (st *Store) All() []Slide {
	out := make([]Slide, len(st.slides))
	for i, s := range st.slides {
		out[i] = s.Clone()
	}
	return out
}

// Insert places the slide at its Order position, shifting later slides.
func (st *Store) Insert(s Slide) error {
	if s.Order < 0 || s.Order > len(st.slides) {
		return fmt.Errorf("insert order %d out of range [0, %d]", s.Order, len(st.slides))
	}
	st.slides = append(st.slides, Slide{})
	copy(st.slides[s.Order+1:], st.slides[s.Order:])
	st.slides[s.Order] = s.Clone()
	st.reindex()
	return nil
}

// Remove deletes the slide and compacts the order of later slides. It
// returns a copy of the removed slide.
func (st *Store) Remove(id string) (Slide, error) {
	for i, s := range st.slides {
		if s.ID == id {
			removed := s.Clone()
			st.slides = append(st.slides[:i], st.slides[i+1:]...)
			st.reindex()
			return removed, nil
		}
	}
	return Slide{}, fmt.Errorf("slide %q not in store", id)
}

// Move shifts the slide to a new order position, sliding the slides in
// between by one.
func (st *Store) Move(id string, to int) error {
	if to < 0 || to >= len(st.slides) {
		return fmt.Errorf("move order %d out of range [0, %d]", to, len(st.slides)-1)
	}
	from := -1
	for i, s := range st.slides {
		if s.ID == id {
			from = i
			break
		}
	}
	if from == -1 {
		return fmt.Errorf("slide %q not in store", id)
	}
	s := st.slides[from]
	st.slides = append(st.slides[:from], st.slides[from+1:]...)
	st.slides = append(st.slides, Slide{})
	copy(st.slides[to+1:], st.slides[to:])
	st.slides[to] = s
	st.reindex()
	return nil
}

// Update replaces the stored slide that has the same id.
func (st *Store) Update(s Slide) error {
	for i, existing := range st.slides {
		if existing.ID == s.ID {
			s.Order = i
			st.slides[i] = s.Clone()
			return nil
		}
	}
	return fmt.Errorf("slide %q not in store", s.ID)
}

func (st *Store) reindex() {
	for i := range st.slides {
		st.slides[i].Order = i
	}
}

// Summary is one row of the deck listing.
type Summary struct {
	ID          string `json:"id"`
	Order       int    `json:"order"`
	TimeRange   string `json:"time_range"`
	Title       string `json:"title"`
	BodySnippet string `json:"body_snippet"`
	HasImage    bool   `json:"has_image"`
}

const snippetLen = 80

// Summaries renders the listing rows for every slide in order.
func (st *Store) Summaries() []Summary {
	out := make([]Summary, 0, len(st.slides))
	for _, s := range st.slides {
		title := s.Title
		if title == "" {
			title = "(untitled)"
		}
		snippet := s.BodyText
		if len(snippet) > snippetLen {
			snippet = snippet[:snippetLen] + "..."
		}
		out = append(out, Summary{
			ID:          s.ID,
			Order:       s.Order,
			TimeRange:   fmt.Sprintf("%.1fs - %.1fs", s.Start, s.End),
			Title:       title,
			BodySnippet: snippet,
			HasImage:    s.ImageRef != "",
		})
	}
	return out
}
