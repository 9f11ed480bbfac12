package transcriber

import (
	"context"

	"github.com/rodneymbrown1/videodraft/internal/transcript"
)

// Transcriber turns one recorded audio file into a word-timed transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) (transcript.Transcript, error)
}
