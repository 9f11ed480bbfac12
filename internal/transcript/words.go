package transcript

import "fmt"

// Word is one recognized word with its timing in seconds from the start of
// the source audio.
type Word struct {
	Text  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Transcript is one transcription result. The word slice is treated as
// immutable once constructed.
type Transcript struct {
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Words    []Word  `json:"words"`
}

// New validates the word sequence and wraps it. Start times must be
// non-decreasing and every word must satisfy start <= end; overlapping
// neighbours are tolerated as recognizer noise.
func New(language string, duration float64, words []Word) (Transcript, error) {
	for i, w := range words {
		if w.Start > w.End {
			return Transcript{}, fmt.Errorf("word %d (%q): start %v exceeds end %v", i, w.Text, w.Start, w.End)
		}
		if i > 0 && w.Start < words[i-1].Start {
			return Transcript{}, fmt.Errorf("word %d (%q): start %v precedes previous start %v", i, w.Text, w.Start, words[i-1].Start)
		}
	}
	return Transcript{Language: language, Duration: duration, Words: words}, nil
}
