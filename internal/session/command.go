package session

import (
	"fmt"
	"sort"

	"github.com/rodneymbrown1/videodraft/internal/deck"
	"github.com/rodneymbrown1/videodraft/internal/styles"
)

// command is one reversible mutation step. Every operation builds a
// forward command and its precomputed inverse before anything is applied,
// so a logged entry can always be replayed in either direction without
// consulting state that no longer exists.
//
// Commands assume their preconditions were validated by the operation that
// built them; an apply failure indicates internal inconsistency, not a
// caller error.
type command interface {
	apply(s *Session) error
}

type insertSlide struct {
	slide deck.Slide
}

func (c insertSlide) apply(s *Session) error {
	if err := s.store.Insert(c.slide); err != nil {
		return fmt.Errorf("insert slide %s: %w", c.slide.ID, err)
	}
	return nil
}

type removeSlide struct {
	id string
}

func (c removeSlide) apply(s *Session) error {
	if _, err := s.store.Remove(c.id); err != nil {
		return fmt.Errorf("remove slide %s: %w", c.id, err)
	}
	return nil
}

// replaceSlides swaps one set of slides for another in a single step; it
// carries both directions of split and merge.
type replaceSlides struct {
	removeIDs []string
	insert    []deck.Slide
}

func (c replaceSlides) apply(s *Session) error {
	for _, id := range c.removeIDs {
		if _, err := s.store.Remove(id); err != nil {
			return fmt.Errorf("replace slides: %w", err)
		}
	}
	ins := make([]deck.Slide, len(c.insert))
	copy(ins, c.insert)
	sort.Slice(ins, func(i, j int) bool { return ins[i].Order < ins[j].Order })
	for _, sl := range ins {
		if err := s.store.Insert(sl); err != nil {
			return fmt.Errorf("replace slides: %w", err)
		}
	}
	return nil
}

type moveSlide struct {
	id string
	to int
}

func (c moveSlide) apply(s *Session) error {
	if err := s.store.Move(c.id, c.to); err != nil {
		return fmt.Errorf("move slide %s: %w", c.id, err)
	}
	return nil
}

type slideField int

const (
	fieldTitle slideField = iota
	fieldBody
	fieldSpeakerNotes
	fieldImageRef
)

func (f slideField) String() string {
	switch f {
	case fieldTitle:
		return "title"
	case fieldBody:
		return "body_text"
	case fieldSpeakerNotes:
		return "speaker_notes"
	default:
		return "image_ref"
	}
}

type setField struct {
	id    string
	field slideField
	value string
}

func (c setField) apply(s *Session) error {
	sl, ok := s.store.Get(c.id)
	if !ok {
		return fmt.Errorf("set %s: slide %q not in store", c.field, c.id)
	}
	switch c.field {
	case fieldTitle:
		sl.Title = c.value
	case fieldBody:
		sl.BodyText = c.value
	case fieldSpeakerNotes:
		sl.SpeakerNotes = c.value
	case fieldImageRef:
		sl.ImageRef = c.value
	}
	if err := s.store.Update(sl); err != nil {
		return fmt.Errorf("set %s: %w", c.field, err)
	}
	return nil
}

// setOverrides replaces a slide's whole override record. The forward
// command carries the merged result, the inverse the captured previous
// record.
type setOverrides struct {
	id        string
	overrides *styles.Overrides
}

func (c setOverrides) apply(s *Session) error {
	sl, ok := s.store.Get(c.id)
	if !ok {
		return fmt.Errorf("set style overrides: slide %q not in store", c.id)
	}
	if c.overrides != nil {
		ov := *c.overrides
		sl.StyleOverrides = &ov
	} else {
		sl.StyleOverrides = nil
	}
	if err := s.store.Update(sl); err != nil {
		return fmt.Errorf("set style overrides: %w", err)
	}
	return nil
}

// setGlobalStyle replaces the session-level style state (active preset
// name plus global override record) wholesale.
type setGlobalStyle struct {
	preset    string
	overrides styles.Overrides
}

func (c setGlobalStyle) apply(s *Session) error {
	s.activePreset = c.preset
	s.globalOverrides = c.overrides
	return nil
}
