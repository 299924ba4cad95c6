package diag

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecorderAndMulti(t *testing.T) {
	var first, second Recorder
	sink := Multi(&first, nil, &second)

	Warn(sink, "page.missing_context", "missing params", map[string]any{"path": "/x/update"})
	Info(sink, "page.id_removed", "id removed", nil)

	want := []string{"page.missing_context", "page.id_removed"}
	if diff := cmp.Diff(want, first.Codes()); diff != "" {
		t.Fatalf("first codes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(first.Events(), second.Events()); diff != "" {
		t.Fatalf("sinks diverged (-first +second):\n%s", diff)
	}
	if first.Events()[0].Level != LevelWarn {
		t.Fatalf("expected warn level, got %s", first.Events()[0].Level)
	}
}

func TestNilSinkIsSafe(t *testing.T) {
	Warn(nil, "code", "message", nil)
	SinkFunc(nil).Emit(Event{})
}

func TestChannelDropsWhenFull(t *testing.T) {
	ch := NewChannel(1)
	ch.Emit(Event{Code: "a"})
	ch.Emit(Event{Code: "b"})

	if got := (<-ch.Events()).Code; got != "a" {
		t.Fatalf("expected first event, got %q", got)
	}
	if ch.Dropped() != 1 {
		t.Fatalf("expected one dropped event, got %d", ch.Dropped())
	}
}

func TestZapSink(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sink := NewZapSink(zap.New(core))

	sink.Emit(Event{Level: LevelDebug, Code: "skip", Message: "hidden"})
	sink.Emit(Event{Level: LevelWarn, Code: "widgets.unknown_kind", Message: "unknown value kind", Fields: map[string]any{"kind": "txet"}})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Level != zapcore.WarnLevel || entry.Message != "unknown value kind" {
		t.Fatalf("unexpected entry %+v", entry.Entry)
	}
	ctx := entry.ContextMap()
	if ctx["code"] != "widgets.unknown_kind" || ctx["kind"] != "txet" {
		t.Fatalf("unexpected context %v", ctx)
	}
}
