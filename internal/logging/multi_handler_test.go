package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type failingHandler struct {
	slog.Handler
	err error
}

func (h failingHandler) Handle(context.Context, slog.Record) error { return h.err }

func TestMultiHandler_PerHandlerLevels(t *testing.T) {
	var term, file bytes.Buffer
	logger := slog.New(NewMultiHandler(
		slog.NewTextHandler(&term, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	))

	logger.Debug("cache miss", "source", "dbStats")
	logger.Warn("connection pressure")

	if strings.Contains(term.String(), "cache miss") {
		t.Errorf("terminal got debug record: %q", term.String())
	}
	if !strings.Contains(term.String(), "connection pressure") {
		t.Errorf("terminal missing warn record: %q", term.String())
	}
	for _, want := range []string{`"msg":"cache miss"`, `"msg":"connection pressure"`} {
		if !strings.Contains(file.String(), want) {
			t.Errorf("file missing %s: %q", want, file.String())
		}
	}
}

func TestMultiHandler_Enabled(t *testing.T) {
	h := NewMultiHandler(
		slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)

	if !h.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("Info should be enabled by the second handler")
	}
	if h.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("Debug should be disabled everywhere")
	}
}

func TestMultiHandler_FlattensAndDropsNil(t *testing.T) {
	a := slog.NewJSONHandler(&bytes.Buffer{}, nil)
	b := slog.NewJSONHandler(&bytes.Buffer{}, nil)

	h := NewMultiHandler(nil, NewMultiHandler(a, nil), b)
	if len(h.handlers) != 2 {
		t.Fatalf("handlers = %d, want 2", len(h.handlers))
	}
}

func TestMultiHandler_JoinsErrors(t *testing.T) {
	errTerm := errors.New("terminal closed")
	errFile := errors.New("disk full")
	var ok bytes.Buffer
	base := slog.NewJSONHandler(&bytes.Buffer{}, nil)

	h := NewMultiHandler(
		failingHandler{Handler: base, err: errTerm},
		slog.NewJSONHandler(&ok, nil),
		failingHandler{Handler: base, err: errFile},
	)

	err := h.Handle(t.Context(), slog.NewRecord(time.Time{}, slog.LevelInfo, "run finished", 0))
	if !errors.Is(err, errTerm) || !errors.Is(err, errFile) {
		t.Errorf("Handle() error = %v, want both failures", err)
	}
	if !strings.Contains(ok.String(), "run finished") {
		t.Errorf("healthy handler skipped after a failure: %q", ok.String())
	}
}

func TestMultiHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(slog.NewJSONHandler(&buf, nil))

	if got := h.WithAttrs(nil); got != h {
		t.Error("WithAttrs(nil) should return the receiver")
	}
	if got := h.WithGroup(""); got != h {
		t.Error("WithGroup(\"\") should return the receiver")
	}

	slog.New(h.WithAttrs([]slog.Attr{slog.String("run_id", "r1")}).WithGroup("check")).
		Info("done", "issue", "storage:fragmentation")

	out := buf.String()
	for _, want := range []string{`"run_id":"r1"`, `"check":{"issue":"storage:fragmentation"}`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %q", want, out)
		}
	}
}
