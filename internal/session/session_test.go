package session

import (
	"errors"
	"reflect"
	"testing"

	"github.com/rodneymbrown1/videodraft/internal/styles"
	"github.com/rodneymbrown1/videodraft/internal/transcript"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func newTestSession(t *testing.T, bodies ...string) *Session {
	t.Helper()
	s := New(nil, nil)
	for i, body := range bodies {
		if _, err := s.CreateSlide(i-1, SlideFields{
			Start:    float64(i) * 5,
			End:      float64(i)*5 + 5,
			BodyText: body,
		}); err != nil {
			t.Fatalf("seed slide %d: %v", i, err)
		}
	}
	return s
}

func TestLoadTranscript_InitializesDeck(t *testing.T) {
	tr, err := transcript.New("en-US", 3.4, []transcript.Word{
		{Text: "Hello", Start: 0, End: 0.4},
		{Text: "world.", Start: 0.4, End: 0.9},
		{Text: "Next", Start: 2.6, End: 3.0},
		{Text: "topic.", Start: 3.0, End: 3.4},
	})
	if err != nil {
		t.Fatalf("transcript: %v", err)
	}

	s := New(nil, nil)
	if err := s.LoadTranscript(tr, transcript.DefaultOptions()); err != nil {
		t.Fatalf("load transcript: %v", err)
	}
	slides := s.Slides()
	if len(slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(slides))
	}
	if slides[0].BodyText != "Hello world." || slides[1].BodyText != "Next topic." {
		t.Fatalf("unexpected bodies: %q, %q", slides[0].BodyText, slides[1].BodyText)
	}
	if slides[0].ID == slides[1].ID {
		t.Fatal("slide ids must be unique")
	}
	if _, err := s.Undo(); !errors.Is(err, ErrState) {
		t.Fatalf("initialization must not be undoable, got %v", err)
	}
}

func TestLoadTranscript_InstantWordYieldsValidSlide(t *testing.T) {
	// A word may carry identical start and end times; the resulting slide
	// must still satisfy Start < End so its own snapshot stays loadable.
	tr, err := transcript.New("en-US", 1, []transcript.Word{
		{Text: "Hi.", Start: 1, End: 1},
	})
	if err != nil {
		t.Fatalf("transcript: %v", err)
	}

	s := New(nil, nil)
	if err := s.LoadTranscript(tr, transcript.DefaultOptions()); err != nil {
		t.Fatalf("load transcript: %v", err)
	}
	slides := s.Slides()
	if len(slides) != 1 {
		t.Fatalf("expected 1 slide, got %d", len(slides))
	}
	if slides[0].Start >= slides[0].End {
		t.Fatalf("slide span must be positive, got [%v, %v]", slides[0].Start, slides[0].End)
	}
	if slides[0].BodyText != "Hi." {
		t.Fatalf("unexpected body %q", slides[0].BodyText)
	}

	restored, err := Restore(s.Snapshot(), nil, nil)
	if err != nil {
		t.Fatalf("session snapshot must restore: %v", err)
	}
	if !reflect.DeepEqual(restored.Slides(), slides) {
		t.Fatalf("round trip lost data:\nwant %+v\ngot  %+v", slides, restored.Slides())
	}
}

func TestLoadTranscript_RoundingCannotCollapseSlide(t *testing.T) {
	// Millisecond-scale spans round to equal 2-decimal times.
	tr, err := transcript.New("en-US", 2.01, []transcript.Word{
		{Text: "Beat.", Start: 2.001, End: 2.004},
	})
	if err != nil {
		t.Fatalf("transcript: %v", err)
	}

	s := New(nil, nil)
	if err := s.LoadTranscript(tr, transcript.DefaultOptions()); err != nil {
		t.Fatalf("load transcript: %v", err)
	}
	sl := s.Slides()[0]
	if sl.Start >= sl.End {
		t.Fatalf("slide span must be positive, got [%v, %v]", sl.Start, sl.End)
	}
	if _, err := Restore(s.Snapshot(), nil, nil); err != nil {
		t.Fatalf("session snapshot must restore: %v", err)
	}
}

func TestCreateSlide_Validation(t *testing.T) {
	s := newTestSession(t, "one")
	if _, err := s.CreateSlide(5, SlideFields{Start: 0, End: 1}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for out-of-range order, got %v", err)
	}
	if _, err := s.CreateSlide(0, SlideFields{Start: 2, End: 1}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for inverted span, got %v", err)
	}
	if _, err := s.CreateSlide(0, SlideFields{Start: 0, End: 1, StyleOverrides: &styles.Overrides{FontColor: strPtr("red")}}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for bad style value, got %v", err)
	}
	if len(s.Slides()) != 1 {
		t.Fatal("rejected creates must not touch the store")
	}
}

func TestDeleteSlide_UndoRestoresEverything(t *testing.T) {
	s := newTestSession(t, "one", "two", "three")
	before := s.Slides()
	victim := before[1]
	if err := s.SetTitle(victim.ID, "Chapter Two"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	before = s.Slides()

	if err := s.DeleteSlide(victim.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(s.Slides()) != 2 {
		t.Fatal("delete did not remove the slide")
	}
	if s.Slides()[1].Order != 1 {
		t.Fatal("orders not compacted after delete")
	}

	if _, err := s.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	after := s.Slides()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("undo did not restore the deck:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestDeleteSlide_NotFound(t *testing.T) {
	s := newTestSession(t, "one")
	if err := s.DeleteSlide("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestSplitSlide_RoundTripViaMerge(t *testing.T) {
	s := newTestSession(t)
	orig, err := s.CreateSlide(-1, SlideFields{
		Start:        0,
		End:          10,
		Title:        "Intro",
		BodyText:     "Hello world. Next topic.",
		SpeakerNotes: "keep it brisk",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, second, err := s.SplitSlide(orig.ID, 5.0)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if first.ID != orig.ID {
		t.Fatalf("first half must keep the original id, got %q", first.ID)
	}
	if first.End != 5.0 || second.Start != 5.0 || second.End != 10 {
		t.Fatalf("split timing wrong: %+v / %+v", first, second)
	}
	if first.BodyText != "Hello world." || second.BodyText != "Next topic." {
		t.Fatalf("split text wrong: %q / %q", first.BodyText, second.BodyText)
	}
	if second.Order != first.Order+1 {
		t.Fatalf("second half must follow the first, got orders %d/%d", first.Order, second.Order)
	}

	merged, err := s.MergeSlides(first.ID, second.ID)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if !reflect.DeepEqual(merged, orig) {
		t.Fatalf("split then merge must restore the slide:\norig   %+v\nmerged %+v", orig, merged)
	}
}

func TestSplitSlide_Preconditions(t *testing.T) {
	s := newTestSession(t, "only one word here honestly")
	sl := s.Slides()[0]
	if _, _, err := s.SplitSlide(sl.ID, sl.End+1); !errors.Is(err, ErrState) {
		t.Fatalf("expected state error for split outside span, got %v", err)
	}
	if _, _, err := s.SplitSlide("missing", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}

	single := newTestSession(t, "word")
	sl = single.Slides()[0]
	if _, _, err := single.SplitSlide(sl.ID, sl.Start+0.1); !errors.Is(err, ErrState) {
		t.Fatalf("expected state error when no word boundary exists, got %v", err)
	}
}

func TestMergeSlides_RequiresAdjacency(t *testing.T) {
	s := newTestSession(t, "one", "two", "three")
	slides := s.Slides()
	if _, err := s.MergeSlides(slides[0].ID, slides[2].ID); !errors.Is(err, ErrState) {
		t.Fatalf("expected state error for non-adjacent merge, got %v", err)
	}
	// Argument order must not matter.
	merged, err := s.MergeSlides(slides[1].ID, slides[0].ID)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if merged.ID != slides[0].ID || merged.BodyText != "one two" {
		t.Fatalf("unexpected merge result: %+v", merged)
	}
}

func TestReorderSlide(t *testing.T) {
	s := newTestSession(t, "one", "two", "three")
	slides := s.Slides()
	if err := s.ReorderSlide(slides[2].ID, 0); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	got := s.Slides()
	if got[0].ID != slides[2].ID || got[1].ID != slides[0].ID {
		t.Fatalf("unexpected order after reorder: %+v", got)
	}
	if err := s.ReorderSlide(slides[0].ID, 3); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for out-of-range order, got %v", err)
	}
	if _, err := s.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !reflect.DeepEqual(s.Slides(), slides) {
		t.Fatal("undo did not restore the original order")
	}
}

func TestUndoRedo_FullHistory(t *testing.T) {
	s := newTestSession(t, "alpha", "beta")
	initial := s.Slides()

	ids := []string{initial[0].ID, initial[1].ID}
	if err := s.SetTitle(ids[0], "First"); err != nil {
		t.Fatalf("mutation 1: %v", err)
	}
	if err := s.SetBody(ids[1], "rewritten"); err != nil {
		t.Fatalf("mutation 2: %v", err)
	}
	if _, err := s.MergeSlides(ids[0], ids[1]); err != nil {
		t.Fatalf("mutation 3: %v", err)
	}
	if err := s.SetSlideStyle(ids[0], styles.Overrides{Padding: intPtr(12)}); err != nil {
		t.Fatalf("mutation 4: %v", err)
	}
	final := s.Slides()

	for i := 0; i < 4; i++ {
		if _, err := s.Undo(); err != nil {
			t.Fatalf("undo %d: %v", i, err)
		}
	}
	if !reflect.DeepEqual(s.Slides(), initial) {
		t.Fatalf("4 undos must restore the initial deck:\nwant %+v\ngot  %+v", initial, s.Slides())
	}
	for i := 0; i < 4; i++ {
		if _, err := s.Redo(); err != nil {
			t.Fatalf("redo %d: %v", i, err)
		}
	}
	if !reflect.DeepEqual(s.Slides(), final) {
		t.Fatalf("4 redos must restore the final deck:\nwant %+v\ngot  %+v", final, s.Slides())
	}
	if _, err := s.Redo(); !errors.Is(err, ErrState) {
		t.Fatalf("redo at tail must fail with state error, got %v", err)
	}
}

func TestMutationAfterUndo_TruncatesRedoBranch(t *testing.T) {
	s := newTestSession(t, "one")
	id := s.Slides()[0].ID
	if err := s.SetTitle(id, "A"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if err := s.SetTitle(id, "B"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if _, err := s.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if err := s.SetTitle(id, "C"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if _, err := s.Redo(); !errors.Is(err, ErrState) {
		t.Fatalf("redo after new mutation must fail with state error, got %v", err)
	}
	sl, _ := s.Slide(id)
	if sl.Title != "C" {
		t.Fatalf("expected title C, got %q", sl.Title)
	}
}

func TestResolveStyle_PresetAndSlideOverride(t *testing.T) {
	s := newTestSession(t, "one")
	id := s.Slides()[0].ID

	if err := s.SetGlobalStyle("youtube", styles.Overrides{}); err != nil {
		t.Fatalf("set global style: %v", err)
	}
	if err := s.SetSlideStyle(id, styles.Overrides{FontColor: strPtr("#FF0000")}); err != nil {
		t.Fatalf("set slide style: %v", err)
	}

	got, err := s.ResolveStyle(id)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.FontColor != "#FF0000" {
		t.Fatalf("slide override must win, got %q", got.FontColor)
	}
	if got.BackgroundColor != "#0F0F0F" || got.FontSizeTitle != 80 || got.FontSizeBody != 40 || got.Padding != 50 {
		t.Fatalf("remaining properties must equal the youtube preset, got %+v", got)
	}
}

func TestSetGlobalStyle_Validation(t *testing.T) {
	s := newTestSession(t, "one")
	if err := s.SetGlobalStyle("vaporwave", styles.Overrides{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for unknown preset, got %v", err)
	}
	if err := s.SetGlobalStyle("", styles.Overrides{TextAlignment: strPtr("justify")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for bad alignment, got %v", err)
	}
	if _, err := s.Undo(); !errors.Is(err, ErrState) {
		t.Fatal("rejected style writes must not be logged")
	}
}

func TestSetGlobalStyle_UndoRestoresPreviousConfig(t *testing.T) {
	s := newTestSession(t, "one")
	if err := s.SetGlobalStyle("cinematic", styles.Overrides{}); err != nil {
		t.Fatalf("set preset: %v", err)
	}
	if err := s.SetGlobalStyle("", styles.Overrides{Padding: intPtr(99)}); err != nil {
		t.Fatalf("set override: %v", err)
	}
	if s.ActivePreset() != "cinematic" {
		t.Fatalf("expected cinematic preset, got %q", s.ActivePreset())
	}
	if _, err := s.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !s.GlobalOverrides().IsZero() {
		t.Fatalf("undo must drop the padding override, got %+v", s.GlobalOverrides())
	}
	if _, err := s.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if s.ActivePreset() != "" {
		t.Fatalf("undo must clear the preset, got %q", s.ActivePreset())
	}
}

func TestSetSlideStyle_MergesPerProperty(t *testing.T) {
	s := newTestSession(t, "one")
	id := s.Slides()[0].ID
	if err := s.SetSlideStyle(id, styles.Overrides{Padding: intPtr(10)}); err != nil {
		t.Fatalf("first style: %v", err)
	}
	if err := s.SetSlideStyle(id, styles.Overrides{FontColor: strPtr("#ABCDEF")}); err != nil {
		t.Fatalf("second style: %v", err)
	}
	sl, _ := s.Slide(id)
	if sl.StyleOverrides == nil || sl.StyleOverrides.Padding == nil || *sl.StyleOverrides.Padding != 10 {
		t.Fatalf("earlier property lost: %+v", sl.StyleOverrides)
	}
	if *sl.StyleOverrides.FontColor != "#ABCDEF" {
		t.Fatalf("later property missing: %+v", sl.StyleOverrides)
	}
}

func TestListSlides_Summaries(t *testing.T) {
	s := newTestSession(t, "a short body")
	id := s.Slides()[0].ID
	rows := s.ListSlides()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ID != id || rows[0].Title != "(untitled)" || rows[0].BodySnippet != "a short body" {
		t.Fatalf("unexpected summary: %+v", rows[0])
	}
	if rows[0].TimeRange != "0.0s - 5.0s" {
		t.Fatalf("unexpected time range: %q", rows[0].TimeRange)
	}
}

func TestSlideIDs_NeverReused(t *testing.T) {
	s := newTestSession(t, "one")
	id := s.Slides()[0].ID
	if err := s.DeleteSlide(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	seen := map[string]struct{}{id: {}}
	for i := 0; i < 20; i++ {
		sl, err := s.CreateSlide(s.store.Len()-1, SlideFields{Start: 0, End: 1})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if _, dup := seen[sl.ID]; dup {
			t.Fatalf("id %q reused", sl.ID)
		}
		seen[sl.ID] = struct{}{}
	}
}
