package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/rodneymbrown1/videodraft/internal/renderer"
)

const (
	dialTimeout    = 5 * time.Second
	defaultTimeout = 5 * time.Minute
)

// command is the wire envelope of the Blender addon's socket server.
type command struct {
	Type   string `json:"type"`
	Params any    `json:"params,omitempty"`
}

type response struct {
	Status  string          `json:"status"`
	Result  json.RawMessage `json:"result,omitempty"`
	Message string          `json:"message,omitempty"`
}

type renderParams struct {
	SlidesJSON []renderer.Slide `json:"slides_json"`
	AudioPath  string           `json:"audio_path,omitempty"`
	FPS        int              `json:"fps"`
}

// BlenderRenderer drives a running Blender instance over its JSON socket
// addon. Each render opens a fresh connection; the addon processes one
// command per connection.
type BlenderRenderer struct {
	addr string
}

func NewBlenderRenderer(addr string) *BlenderRenderer {
	return &BlenderRenderer{addr: addr}
}

func (r *BlenderRenderer) Render(ctx context.Context, deck renderer.Deck) error {
	slog.Info("rendering deck to blender", "addr", r.addr, "slides", len(deck.Slides), "fps", deck.FPS)

	if _, err := r.send(ctx, command{
		Type: "render_slides_to_vse",
		Params: renderParams{
			SlidesJSON: deck.Slides,
			AudioPath:  deck.AudioPath,
			FPS:        deck.FPS,
		},
	}); err != nil {
		return err
	}
	slog.Info("blender render complete", "slides", len(deck.Slides))
	return nil
}

func (r *BlenderRenderer) send(ctx context.Context, cmd command) (json.RawMessage, error) {
	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", r.addr)
	if err != nil {
		return nil, fmt.Errorf("connect blender at %s: %w", r.addr, err)
	}
	defer func() { _ = conn.Close() }()

	deadline := time.Now().Add(defaultTimeout)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, err
	}

	if err := json.NewEncoder(conn).Encode(cmd); err != nil {
		return nil, fmt.Errorf("send %s command: %w", cmd.Type, err)
	}

	var resp response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return nil, fmt.Errorf("read %s response: %w", cmd.Type, err)
	}
	if resp.Status != "success" {
		return nil, fmt.Errorf("blender %s failed: %s", cmd.Type, resp.Message)
	}
	return resp.Result, nil
}
