// Package diag carries structured diagnostics out of library code. Packages
// report through a Sink instead of logging; hosts decide where events go.
package diag

import (
	"sync"
)

// Level grades an event.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Event is one diagnostic.
type Event struct {
	Level   Level          `json:"level"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// Sink receives events. Implementations must not block the caller for long.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Emit calls f.
func (f SinkFunc) Emit(event Event) {
	if f != nil {
		f(event)
	}
}

type nopSink struct{}

func (nopSink) Emit(Event) {}

// Nop discards every event.
var Nop Sink = nopSink{}

// OrNop returns sink, or Nop when sink is nil.
func OrNop(sink Sink) Sink {
	if sink == nil {
		return Nop
	}
	return sink
}

// Warn emits a warn-level event.
func Warn(sink Sink, code, message string, fields map[string]any) {
	OrNop(sink).Emit(Event{Level: LevelWarn, Code: code, Message: message, Fields: fields})
}

// Info emits an info-level event.
func Info(sink Sink, code, message string, fields map[string]any) {
	OrNop(sink).Emit(Event{Level: LevelInfo, Code: code, Message: message, Fields: fields})
}

// Multi fans events out to every non-nil sink.
func Multi(sinks ...Sink) Sink {
	filtered := make([]Sink, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			filtered = append(filtered, sink)
		}
	}
	return SinkFunc(func(event Event) {
		for _, sink := range filtered {
			sink.Emit(event)
		}
	})
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Emit records the event.
func (r *Recorder) Emit(event Event) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Codes returns the code of each recorded event in order.
func (r *Recorder) Codes() []string {
	events := r.Events()
	out := make([]string, len(events))
	for i, event := range events {
		out[i] = event.Code
	}
	return out
}

// Channel delivers events on a buffered channel. Events are dropped when the
// buffer is full.
type Channel struct {
	ch      chan Event
	mu      sync.Mutex
	dropped int
}

// NewChannel returns a channel sink with the given buffer size.
func NewChannel(size int) *Channel {
	if size <= 0 {
		size = 64
	}
	return &Channel{ch: make(chan Event, size)}
}

// Emit enqueues the event without blocking.
func (c *Channel) Emit(event Event) {
	select {
	case c.ch <- event:
	default:
		c.mu.Lock()
		c.dropped++
		c.mu.Unlock()
	}
}

// Events exposes the receive side.
func (c *Channel) Events() <-chan Event {
	return c.ch
}

// Dropped reports how many events were discarded.
func (c *Channel) Dropped() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped
}
