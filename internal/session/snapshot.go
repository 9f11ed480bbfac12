package session

import (
	"context"
	"fmt"
	"sort"

	"github.com/rodneymbrown1/videodraft/internal/deck"
	"github.com/rodneymbrown1/videodraft/internal/styles"
	"github.com/rodneymbrown1/videodraft/internal/workspace"
)

// Snapshot captures the persistable session state. Round-tripping through
// Restore reproduces it field for field.
func (s *Session) Snapshot() workspace.Snapshot {
	snap := workspace.Snapshot{
		Slides:       s.store.All(),
		ActivePreset: s.activePreset,
	}
	if !s.globalOverrides.IsZero() {
		ov := s.globalOverrides
		snap.GlobalOverrides = &ov
	}
	return snap
}

// Restore builds a session from a persisted snapshot with a fresh mutation
// log. The snapshot is validated as strictly as the write paths: dense
// orders, unique ids, well-formed spans and style values, known preset.
func Restore(snap workspace.Snapshot, presets *styles.PresetTable, ws workspace.Workspace) (*Session, error) {
	s := New(presets, ws)

	if snap.ActivePreset != "" {
		if _, ok := s.presets.Lookup(snap.ActivePreset); !ok {
			return nil, fmt.Errorf("%w: snapshot references unknown preset %q", ErrValidation, snap.ActivePreset)
		}
		s.activePreset = snap.ActivePreset
	}
	if snap.GlobalOverrides != nil {
		if err := snap.GlobalOverrides.Validate(); err != nil {
			return nil, fmt.Errorf("%w: snapshot global overrides: %v", ErrValidation, err)
		}
		s.globalOverrides = *snap.GlobalOverrides
	}

	slides := make([]deck.Slide, len(snap.Slides))
	for i, sl := range snap.Slides {
		slides[i] = sl.Clone()
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].Order < slides[j].Order })
	for i, sl := range slides {
		if sl.ID == "" {
			return nil, fmt.Errorf("%w: snapshot slide %d has no id", ErrValidation, i)
		}
		if _, dup := s.usedIDs[sl.ID]; dup {
			return nil, fmt.Errorf("%w: snapshot has duplicate slide id %q", ErrValidation, sl.ID)
		}
		if sl.Order != i {
			return nil, fmt.Errorf("%w: snapshot orders are not dense: slide %q has order %d at position %d", ErrValidation, sl.ID, sl.Order, i)
		}
		if sl.Start >= sl.End {
			return nil, fmt.Errorf("%w: snapshot slide %q has start %v not before end %v", ErrValidation, sl.ID, sl.Start, sl.End)
		}
		if sl.StyleOverrides != nil {
			if err := sl.StyleOverrides.Validate(); err != nil {
				return nil, fmt.Errorf("%w: snapshot slide %q: %v", ErrValidation, sl.ID, err)
			}
		}
		s.usedIDs[sl.ID] = struct{}{}
		if err := s.store.Insert(sl); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// LoadFromWorkspace restores the session persisted in ws, or returns a
// fresh empty session when the project has no snapshot yet.
func LoadFromWorkspace(ctx context.Context, ws workspace.Workspace, presets *styles.PresetTable) (*Session, error) {
	snap, found, err := ws.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if !found {
		return New(presets, ws), nil
	}
	return Restore(snap, presets, ws)
}
