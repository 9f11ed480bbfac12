package session

import "time"

// logEntry is one applied mutation with enough payload to replay it in
// either direction.
type logEntry struct {
	description string
	forward     command
	inverse     command
	at          time.Time
}

// mutationLog is a linear history with a cursor. Entries before the cursor
// are applied; entries at or after it are redoable. Recording a new entry
// while the cursor is behind the tail discards the stale redo branch.
type mutationLog struct {
	entries []logEntry
	cursor  int
}

func (l *mutationLog) record(e logEntry) {
	l.entries = append(l.entries[:l.cursor], e)
	l.cursor = len(l.entries)
}

func (l *mutationLog) canUndo() bool {
	return l.cursor > 0
}

func (l *mutationLog) canRedo() bool {
	return l.cursor < len(l.entries)
}

func (l *mutationLog) prev() logEntry {
	return l.entries[l.cursor-1]
}

func (l *mutationLog) next() logEntry {
	return l.entries[l.cursor]
}

func (l *mutationLog) reset() {
	l.entries = nil
	l.cursor = 0
}
