package observability

import (
	"context"
	"testing"
	"time"
)

type recordingRenderHooks struct {
	NoopRenderHooks
	layoutStarts int
	renders      []string
}

func (h *recordingRenderHooks) OnLayoutStart(_ context.Context, _, _ int) {
	h.layoutStarts++
}

func (h *recordingRenderHooks) OnRenderComplete(_ context.Context, format string, _ time.Duration, _ error) {
	h.renders = append(h.renders, format)
}

func TestSetRenderHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingRenderHooks{}
	SetRenderHooks(rec)

	ctx := context.Background()
	Render().OnLayoutStart(ctx, 3, 2)
	Render().OnRenderComplete(ctx, "text", time.Millisecond, nil)
	Render().OnRenderComplete(ctx, "svg", time.Millisecond, nil)

	if rec.layoutStarts != 1 {
		t.Errorf("layoutStarts = %d, want 1", rec.layoutStarts)
	}
	if len(rec.renders) != 2 || rec.renders[0] != "text" || rec.renders[1] != "svg" {
		t.Errorf("renders = %v, want [text svg]", rec.renders)
	}
}

func TestSetHooksNilIgnored(t *testing.T) {
	t.Cleanup(Reset)

	SetRenderHooks(nil)
	if Render() == nil {
		t.Error("nil registration should keep the previous hooks")
	}
	SetServerHooks(nil)
	if Server() == nil {
		t.Error("nil registration should keep the previous hooks")
	}
}

func TestReset(t *testing.T) {
	SetRenderHooks(&recordingRenderHooks{})
	Reset()

	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset should restore the no-op render hooks")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Reset should restore the no-op server hooks")
	}
}
