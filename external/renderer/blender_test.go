package renderer

import (
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"

	"github.com/rodneymbrown1/videodraft/internal/renderer"
	"github.com/rodneymbrown1/videodraft/internal/styles"
)

// fakeBlender accepts one connection, records the decoded command and
// replies with the given response.
func fakeBlender(t *testing.T, reply string) (addr string, got *command) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })

	got = &command{}
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_ = json.NewDecoder(conn).Decode(got)
		_, _ = conn.Write([]byte(reply))
	}()
	return ln.Addr().String(), got
}

func TestRender_SendsRenderCommand(t *testing.T) {
	addr, got := fakeBlender(t, `{"status": "success", "result": {"slide_count": 1}}`)

	r := NewBlenderRenderer(addr)
	deck := renderer.Deck{
		Slides: []renderer.Slide{{
			Order:    0,
			Start:    0,
			End:      4.5,
			BodyText: "Hello world.",
			Style:    styles.Defaults(),
		}},
		AudioPath: "/tmp/narration.wav",
		FPS:       30,
	}
	if err := r.Render(context.Background(), deck); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got.Type != "render_slides_to_vse" {
		t.Fatalf("unexpected command type %q", got.Type)
	}

	raw, err := json.Marshal(got.Params)
	if err != nil {
		t.Fatalf("re-marshal params: %v", err)
	}
	var params renderParams
	if err := json.Unmarshal(raw, &params); err != nil {
		t.Fatalf("decode params: %v", err)
	}
	if len(params.SlidesJSON) != 1 || params.SlidesJSON[0].BodyText != "Hello world." {
		t.Fatalf("unexpected slides payload: %+v", params.SlidesJSON)
	}
	if params.AudioPath != "/tmp/narration.wav" || params.FPS != 30 {
		t.Fatalf("unexpected params: %+v", params)
	}
}

func TestRender_PropagatesAddonError(t *testing.T) {
	addr, _ := fakeBlender(t, `{"status": "error", "message": "no VSE area found"}`)

	r := NewBlenderRenderer(addr)
	err := r.Render(context.Background(), renderer.Deck{FPS: 30})
	if err == nil || !strings.Contains(err.Error(), "no VSE area found") {
		t.Fatalf("expected addon error to surface, got %v", err)
	}
}

func TestRender_ConnectFailure(t *testing.T) {
	r := NewBlenderRenderer("127.0.0.1:1")
	if err := r.Render(context.Background(), renderer.Deck{}); err == nil {
		t.Fatal("expected connection error")
	}
}
