package transcript

import "strings"

// Options tunes the slide segmenter.
type Options struct {
	// MinDuration is the span duration in seconds after which a sentence
	// boundary becomes an acceptable cut point.
	MinDuration float64

	// MaxDuration is the hard upper bound on slide duration in seconds.
	MaxDuration float64

	// PauseThreshold is the silence gap in seconds that forces a slide
	// boundary.
	PauseThreshold float64
}

// DefaultOptions returns the segmenter defaults.
func DefaultOptions() Options {
	return Options{
		MinDuration:    3.0,
		MaxDuration:    15.0,
		PauseThreshold: 1.5,
	}
}

// Boundary is one segmented slide span with its collected text.
type Boundary struct {
	Start    float64
	End      float64
	BodyText string
}

func (b Boundary) Duration() float64 {
	return b.End - b.Start
}

// Segment walks the word sequence once and groups it into slide spans.
//
// A silence gap above the pause threshold always closes the current span.
// A word ending a sentence closes the span once it is at least MinDuration
// long. A span that would grow past MaxDuration is cut at the latest
// sentence boundary at least MinDuration in, else at the latest silence gap
// inside the span, else hard at exactly MaxDuration. A final span shorter
// than MinDuration folds into the previous slide unless the two are
// separated by a pause, or it is the only span.
func Segment(t Transcript, opts Options) []Boundary {
	words := t.Words
	if len(words) == 0 {
		return nil
	}

	var (
		out       []Boundary
		span      []Word
		spanStart float64
		spanEnd   float64
	)

	closeSpan := func(end float64) {
		out = append(out, Boundary{Start: spanStart, End: end, BodyText: joinWords(span)})
		span = span[:0]
	}

	for _, w := range words {
		if len(span) > 0 && w.Start-spanEnd > opts.PauseThreshold {
			closeSpan(spanEnd)
		}
		for len(span) > 0 && w.End-spanStart > opts.MaxDuration {
			spanStart = forceCut(&out, &span, spanStart, w, opts)
		}
		if len(span) == 0 && w.Start > spanStart {
			spanStart = w.Start
		}
		span = append(span, w)
		if w.End > spanEnd || len(span) == 1 {
			spanEnd = w.End
		}
		if w.End-spanStart >= opts.MinDuration && endsSentence(w.Text) {
			closeSpan(spanEnd)
			spanStart = spanEnd
		}
	}
	if len(span) > 0 {
		closeSpan(spanEnd)
	}

	return mergeDanglingTail(out, opts)
}

// forceCut closes the leading part of an overfull span and returns the
// start time of what remains. The overflowing word w has not been appended
// yet; everything currently in the span keeps its text intact.
func forceCut(out *[]Boundary, span *[]Word, spanStart float64, w Word, opts Options) float64 {
	s := *span

	// Latest sentence boundary at least MinDuration in.
	for j := len(s) - 1; j >= 0; j-- {
		if endsSentence(s[j].Text) && s[j].End-spanStart >= opts.MinDuration {
			*out = append(*out, Boundary{Start: spanStart, End: s[j].End, BodyText: joinWords(s[:j+1])})
			rest := s[j+1:]
			*span = rest
			if len(rest) > 0 {
				return rest[0].Start
			}
			return w.Start
		}
	}

	// Latest silence gap inside the span. Gaps above the pause threshold
	// cannot occur here, so any positive gap qualifies.
	for j := len(s) - 1; j >= 1; j-- {
		if s[j].Start > s[j-1].End {
			*out = append(*out, Boundary{Start: spanStart, End: s[j-1].End, BodyText: joinWords(s[:j])})
			rest := s[j:]
			*span = rest
			return rest[0].Start
		}
	}

	// Continuous unpunctuated speech: hard cut at exactly MaxDuration.
	cut := spanStart + opts.MaxDuration
	*out = append(*out, Boundary{Start: spanStart, End: cut, BodyText: joinWords(s)})
	*span = s[:0]
	if w.Start > cut {
		return w.Start
	}
	return cut
}

func joinWords(words []Word) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		if t := strings.TrimSpace(w.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func endsSentence(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasSuffix(t, ".") || strings.HasSuffix(t, "?") || strings.HasSuffix(t, "!")
}

func mergeDanglingTail(out []Boundary, opts Options) []Boundary {
	if len(out) < 2 {
		return out
	}
	last := out[len(out)-1]
	prev := out[len(out)-2]
	if last.Duration() >= opts.MinDuration {
		return out
	}
	if last.Start-prev.End > opts.PauseThreshold {
		// A pause separated the tail from the rest; keep it as its own slide.
		return out
	}
	prev.End = last.End
	prev.BodyText = joinText(prev.BodyText, last.BodyText)
	out[len(out)-2] = prev
	return out[:len(out)-1]
}

func joinText(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
