package transcriber

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/rodneymbrown1/videodraft/internal/transcript"
)

type (
	whisperxResult struct {
		Language string            `json:"language"`
		Segments []whisperxSegment `json:"segments"`
	}

	whisperxSegment struct {
		Text  string          `json:"text"`
		Start decimal.Decimal `json:"start"`
		End   decimal.Decimal `json:"end"`
		Words []whisperxWord  `json:"words"`
	}

	whisperxWord struct {
		Text  string           `json:"word"`
		Start *decimal.Decimal `json:"start"`
		End   *decimal.Decimal `json:"end"`
	}
)

// WhisperxTranscriber shells out to the whisperx CLI, which writes its
// aligned result as a sibling .json file next to the input audio.
type WhisperxTranscriber struct {
	binary string
}

func NewWhisperxTranscriber(binary string) *WhisperxTranscriber {
	return &WhisperxTranscriber{binary: binary}
}

func (t *WhisperxTranscriber) Transcribe(ctx context.Context, audioPath, language string) (transcript.Transcript, error) {
	args := []string{audioPath, "--output_dir", filepath.Dir(audioPath)}
	slog.Info("transcribing with whisperx", "binary", t.binary, "path", audioPath, "language", language)

	cmd := exec.CommandContext(ctx, t.binary, args...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return transcript.Transcript{}, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return transcript.Transcript{}, err
	}
	if err := cmd.Start(); err != nil {
		return transcript.Transcript{}, fmt.Errorf("start whisperx: %w", err)
	}

	go logLines(stderr)
	go logLines(stdout)

	if err := cmd.Wait(); err != nil {
		return transcript.Transcript{}, fmt.Errorf("transcribing with whisperx: %w", err)
	}

	resultPath := audioPath[:len(audioPath)-len(filepath.Ext(audioPath))] + ".json"
	f, err := os.Open(resultPath)
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("open whisperx result: %w", err)
	}
	defer func() { _ = f.Close() }()

	var res whisperxResult
	if err := json.NewDecoder(f).Decode(&res); err != nil {
		return transcript.Transcript{}, fmt.Errorf("decode whisperx result: %w", err)
	}
	return fromWhisperxResult(res, language)
}

func logLines(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		slog.Debug("whisperx", "line", scanner.Text())
	}
}

// fromWhisperxResult flattens the segment/word structure into one timed
// word list. Words whisperx could not align carry no timestamps and are
// folded into the span of their neighbors by skipping them.
func fromWhisperxResult(res whisperxResult, language string) (transcript.Transcript, error) {
	if language == "" {
		language = res.Language
	}
	var words []transcript.Word
	for _, seg := range res.Segments {
		for _, w := range seg.Words {
			if w.Start == nil || w.End == nil {
				continue
			}
			words = append(words, transcript.Word{
				Text:  w.Text,
				Start: w.Start.InexactFloat64(),
				End:   w.End.InexactFloat64(),
			})
		}
	}
	if len(words) == 0 {
		return transcript.Transcript{}, fmt.Errorf("whisperx result has no aligned words")
	}
	return transcript.New(language, words[len(words)-1].End, words)
}
