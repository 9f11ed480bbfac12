package session

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rodneymbrown1/videodraft/internal/deck"
	"github.com/rodneymbrown1/videodraft/internal/styles"
	"github.com/rodneymbrown1/videodraft/internal/transcript"
	"github.com/rodneymbrown1/videodraft/internal/workspace"
)

// Session is the editing aggregate for one open project: it owns the slide
// store, the mutation log, the active style configuration, and a reference
// to the workspace collaborator. All operations are invoked serially by
// one caller; the session does no locking of its own.
type Session struct {
	store   *deck.Store
	log     mutationLog
	presets *styles.PresetTable

	activePreset    string
	globalOverrides styles.Overrides

	// usedIDs holds every id ever issued or restored, including deleted
	// slides; ids are never reused within a session.
	usedIDs map[string]struct{}

	ws workspace.Workspace
}

// New creates an empty session. presets may be nil for the builtin table;
// ws may be nil when no workspace collaborator is attached.
func New(presets *styles.PresetTable, ws workspace.Workspace) *Session {
	if presets == nil {
		presets = styles.NewPresetTable()
	}
	return &Session{
		store:   deck.NewStore(),
		presets: presets,
		usedIDs: make(map[string]struct{}),
		ws:      ws,
	}
}

func (s *Session) idTaken(id string) bool {
	_, ok := s.usedIDs[id]
	return ok
}

func (s *Session) newID() (string, error) {
	id, err := deck.NewID(s.idTaken)
	if err != nil {
		return "", err
	}
	s.usedIDs[id] = struct{}{}
	return id, nil
}

// commit applies the forward command and records the entry. Operations
// validate all preconditions before calling commit, so an apply failure is
// an internal inconsistency.
func (s *Session) commit(description string, forward, inverse command) error {
	if err := forward.apply(s); err != nil {
		return fmt.Errorf("apply %s: %w", description, err)
	}
	s.log.record(logEntry{
		description: description,
		forward:     forward,
		inverse:     inverse,
		at:          time.Now(),
	})
	return nil
}

// minSlideSpan is the slide-time resolution. A zero-width utterance, or a
// span collapsed by rounding, is padded to this so every stored slide
// keeps Start strictly before End.
const minSlideSpan = 0.01

// LoadTranscript segments the transcription result and (re)initializes the
// slide store from it. The mutation log is cleared: initialization is not
// an undoable edit.
func (s *Session) LoadTranscript(tr transcript.Transcript, opts transcript.Options) error {
	boundaries := transcript.Segment(tr, opts)
	store := deck.NewStore()
	for i, b := range boundaries {
		id, err := s.newID()
		if err != nil {
			return err
		}
		start, end := round2(b.Start), round2(b.End)
		if end <= start {
			end = start + minSlideSpan
		}
		if err := store.Insert(deck.Slide{
			ID:       id,
			Order:    i,
			Start:    start,
			End:      end,
			BodyText: b.BodyText,
		}); err != nil {
			return err
		}
	}
	s.store = store
	s.log.reset()
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ListSlides returns the deck listing in order.
func (s *Session) ListSlides() []deck.Summary {
	return s.store.Summaries()
}

// Slides returns copies of all slides in order.
func (s *Session) Slides() []deck.Slide {
	return s.store.All()
}

// Slide returns a copy of one slide.
func (s *Session) Slide(id string) (deck.Slide, error) {
	sl, ok := s.store.Get(id)
	if !ok {
		return deck.Slide{}, fmt.Errorf("%w: slide %q", ErrNotFound, id)
	}
	return sl, nil
}

// SlideFields carries the initial content of a created slide.
type SlideFields struct {
	Start          float64
	End            float64
	Title          string
	BodyText       string
	SpeakerNotes   string
	StyleOverrides *styles.Overrides
	ImageRef       string
}

// CreateSlide inserts a new slide directly after the given order position;
// afterOrder == -1 inserts at the head.
func (s *Session) CreateSlide(afterOrder int, fields SlideFields) (deck.Slide, error) {
	if afterOrder < -1 || afterOrder >= s.store.Len() {
		return deck.Slide{}, fmt.Errorf("%w: after_order %d out of range [-1, %d]", ErrValidation, afterOrder, s.store.Len()-1)
	}
	if fields.Start >= fields.End {
		return deck.Slide{}, fmt.Errorf("%w: slide start %v must precede end %v", ErrValidation, fields.Start, fields.End)
	}
	if fields.StyleOverrides != nil {
		if err := fields.StyleOverrides.Validate(); err != nil {
			return deck.Slide{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	if err := s.checkImageRef(fields.ImageRef); err != nil {
		return deck.Slide{}, err
	}

	id, err := s.newID()
	if err != nil {
		return deck.Slide{}, err
	}
	sl := deck.Slide{
		ID:             id,
		Order:          afterOrder + 1,
		Start:          fields.Start,
		End:            fields.End,
		Title:          fields.Title,
		BodyText:       fields.BodyText,
		SpeakerNotes:   fields.SpeakerNotes,
		StyleOverrides: fields.StyleOverrides,
		ImageRef:       fields.ImageRef,
	}
	if err := s.commit(
		fmt.Sprintf("create slide %s", id),
		insertSlide{slide: sl},
		removeSlide{id: id},
	); err != nil {
		return deck.Slide{}, err
	}
	created, _ := s.store.Get(id)
	return created, nil
}

// DeleteSlide removes a slide; undo restores it with its original order,
// id and all fields.
func (s *Session) DeleteSlide(id string) error {
	sl, ok := s.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: slide %q", ErrNotFound, id)
	}
	return s.commit(
		fmt.Sprintf("delete slide %s", id),
		removeSlide{id: id},
		insertSlide{slide: sl},
	)
}

// SplitSlide cuts one slide into two at atTime, splitting the body text at
// the nearest word boundary not past the cut. The first half keeps the
// original id and fields; the second half starts empty apart from its text.
func (s *Session) SplitSlide(id string, atTime float64) (deck.Slide, deck.Slide, error) {
	orig, ok := s.store.Get(id)
	if !ok {
		return deck.Slide{}, deck.Slide{}, fmt.Errorf("%w: slide %q", ErrNotFound, id)
	}
	if atTime <= orig.Start || atTime >= orig.End {
		return deck.Slide{}, deck.Slide{}, fmt.Errorf("%w: split point %v outside slide span (%v, %v)", ErrState, atTime, orig.Start, orig.End)
	}
	words := strings.Fields(orig.BodyText)
	fraction := (atTime - orig.Start) / (orig.End - orig.Start)
	cut := int(fraction * float64(len(words)))
	if cut < 1 || cut >= len(words) {
		return deck.Slide{}, deck.Slide{}, fmt.Errorf("%w: no word boundary at split point %v", ErrState, atTime)
	}

	first := orig.Clone()
	first.End = atTime
	first.BodyText = strings.Join(words[:cut], " ")

	secondID, err := s.newID()
	if err != nil {
		return deck.Slide{}, deck.Slide{}, err
	}
	second := deck.Slide{
		ID:       secondID,
		Order:    orig.Order + 1,
		Start:    atTime,
		End:      orig.End,
		BodyText: strings.Join(words[cut:], " "),
	}

	if err := s.commit(
		fmt.Sprintf("split slide %s at %.2fs", id, atTime),
		replaceSlides{removeIDs: []string{id}, insert: []deck.Slide{first, second}},
		replaceSlides{removeIDs: []string{id, secondID}, insert: []deck.Slide{orig}},
	); err != nil {
		return deck.Slide{}, deck.Slide{}, err
	}
	a, _ := s.store.Get(first.ID)
	b, _ := s.store.Get(secondID)
	return a, b, nil
}

// MergeSlides joins two order-adjacent slides into one spanning both. The
// earlier slide's id, title, notes prefix, image and style survive.
func (s *Session) MergeSlides(idA, idB string) (deck.Slide, error) {
	a, ok := s.store.Get(idA)
	if !ok {
		return deck.Slide{}, fmt.Errorf("%w: slide %q", ErrNotFound, idA)
	}
	b, ok := s.store.Get(idB)
	if !ok {
		return deck.Slide{}, fmt.Errorf("%w: slide %q", ErrNotFound, idB)
	}
	if a.Order > b.Order {
		a, b = b, a
	}
	if b.Order-a.Order != 1 {
		return deck.Slide{}, fmt.Errorf("%w: slides %s and %s are not adjacent", ErrState, idA, idB)
	}

	merged := a.Clone()
	merged.End = b.End
	merged.BodyText = joinNonEmpty(a.BodyText, b.BodyText)
	merged.SpeakerNotes = joinNonEmpty(a.SpeakerNotes, b.SpeakerNotes)

	if err := s.commit(
		fmt.Sprintf("merge slides %s and %s", a.ID, b.ID),
		replaceSlides{removeIDs: []string{a.ID, b.ID}, insert: []deck.Slide{merged}},
		replaceSlides{removeIDs: []string{merged.ID}, insert: []deck.Slide{a, b}},
	); err != nil {
		return deck.Slide{}, err
	}
	out, _ := s.store.Get(merged.ID)
	return out, nil
}

// ReorderSlide moves a slide to a new order position, shifting the slides
// in between by one.
func (s *Session) ReorderSlide(id string, newOrder int) error {
	sl, ok := s.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: slide %q", ErrNotFound, id)
	}
	if newOrder < 0 || newOrder >= s.store.Len() {
		return fmt.Errorf("%w: order %d out of range [0, %d]", ErrValidation, newOrder, s.store.Len()-1)
	}
	return s.commit(
		fmt.Sprintf("reorder slide %s to %d", id, newOrder),
		moveSlide{id: id, to: newOrder},
		moveSlide{id: id, to: sl.Order},
	)
}

// SetTitle updates a slide's title.
func (s *Session) SetTitle(id, title string) error {
	return s.updateField(id, fieldTitle, title)
}

// SetBody updates a slide's body text.
func (s *Session) SetBody(id, body string) error {
	return s.updateField(id, fieldBody, body)
}

// SetSpeakerNotes updates a slide's speaker notes.
func (s *Session) SetSpeakerNotes(id, notes string) error {
	return s.updateField(id, fieldSpeakerNotes, notes)
}

// SetImage attaches a workspace asset to a slide; an empty ref detaches.
func (s *Session) SetImage(id, assetRef string) error {
	if err := s.checkImageRef(assetRef); err != nil {
		return err
	}
	return s.updateField(id, fieldImageRef, assetRef)
}

func (s *Session) checkImageRef(ref string) error {
	if ref == "" || s.ws == nil {
		return nil
	}
	if !s.ws.HasAsset(ref) {
		return fmt.Errorf("%w: asset %q not registered in workspace", ErrValidation, ref)
	}
	return nil
}

func (s *Session) updateField(id string, field slideField, value string) error {
	sl, ok := s.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: slide %q", ErrNotFound, id)
	}
	var old string
	switch field {
	case fieldTitle:
		old = sl.Title
	case fieldBody:
		old = sl.BodyText
	case fieldSpeakerNotes:
		old = sl.SpeakerNotes
	case fieldImageRef:
		old = sl.ImageRef
	}
	return s.commit(
		fmt.Sprintf("edit %s of slide %s", field, id),
		setField{id: id, field: field, value: value},
		setField{id: id, field: field, value: old},
	)
}

// SetSlideStyle merges the given properties into the slide's override
// layer. Only explicitly set properties change.
func (s *Session) SetSlideStyle(id string, ov styles.Overrides) error {
	if err := ov.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	sl, ok := s.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: slide %q", ErrNotFound, id)
	}
	var merged styles.Overrides
	if sl.StyleOverrides != nil {
		merged = *sl.StyleOverrides
	}
	merged = styles.Merge(merged, ov)
	return s.commit(
		fmt.Sprintf("style slide %s", id),
		setOverrides{id: id, overrides: &merged},
		setOverrides{id: id, overrides: sl.StyleOverrides},
	)
}

// SetGlobalStyle updates the session-level style configuration. Choosing a
// preset replaces the active preset and resets the global override layer
// to the given properties; without a preset the properties merge into the
// existing layer.
func (s *Session) SetGlobalStyle(preset string, ov styles.Overrides) error {
	if err := ov.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	newPreset := s.activePreset
	newOverrides := s.globalOverrides
	if preset != "" {
		if _, ok := s.presets.Lookup(preset); !ok {
			return fmt.Errorf("%w: unknown preset %q (available: %s)", ErrValidation, preset, strings.Join(s.presets.Names(), ", "))
		}
		newPreset = preset
		newOverrides = ov
	} else {
		newOverrides = styles.Merge(newOverrides, ov)
	}
	return s.commit(
		"change global style",
		setGlobalStyle{preset: newPreset, overrides: newOverrides},
		setGlobalStyle{preset: s.activePreset, overrides: s.globalOverrides},
	)
}

// ActivePreset returns the active preset name, or "" when none is set.
func (s *Session) ActivePreset() string {
	return s.activePreset
}

// GlobalOverrides returns the session-level override layer.
func (s *Session) GlobalOverrides() styles.Overrides {
	return s.globalOverrides
}

// PresetNames lists the presets available to SetGlobalStyle.
func (s *Session) PresetNames() []string {
	return s.presets.Names()
}

// ResolveStyle computes the effective style of a slide from the four
// cascade layers. Pure read; nothing is materialized into the slide.
func (s *Session) ResolveStyle(id string) (styles.Props, error) {
	sl, ok := s.store.Get(id)
	if !ok {
		return styles.Props{}, fmt.Errorf("%w: slide %q", ErrNotFound, id)
	}
	layers := make([]styles.Overrides, 0, 3)
	if s.activePreset != "" {
		if p, ok := s.presets.Lookup(s.activePreset); ok {
			layers = append(layers, p.Overrides)
		}
	}
	layers = append(layers, s.globalOverrides)
	if sl.StyleOverrides != nil {
		layers = append(layers, *sl.StyleOverrides)
	}
	return styles.Resolve(layers...), nil
}

// Undo reverts the most recent mutation and returns its description.
func (s *Session) Undo() (string, error) {
	if !s.log.canUndo() {
		return "", fmt.Errorf("%w: nothing to undo", ErrState)
	}
	e := s.log.prev()
	if err := e.inverse.apply(s); err != nil {
		return "", fmt.Errorf("undo %s: %w", e.description, err)
	}
	s.log.cursor--
	return e.description, nil
}

// Redo re-applies the next undone mutation and returns its description.
func (s *Session) Redo() (string, error) {
	if !s.log.canRedo() {
		return "", fmt.Errorf("%w: nothing to redo", ErrState)
	}
	e := s.log.next()
	if err := e.forward.apply(s); err != nil {
		return "", fmt.Errorf("redo %s: %w", e.description, err)
	}
	s.log.cursor++
	return e.description, nil
}

// Save persists the current snapshot through the workspace collaborator.
func (s *Session) Save(ctx context.Context) error {
	if s.ws == nil {
		return fmt.Errorf("%w: session has no workspace", ErrState)
	}
	if err := s.ws.SaveSnapshot(ctx, s.Snapshot()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Workspace returns the attached workspace collaborator, or nil.
func (s *Session) Workspace() workspace.Workspace {
	return s.ws
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
