package channel

import (
	"context"
	"testing"

	"github.com/nmoreau/foliobot/assist"
)

type stubChannel struct {
	name    string
	started bool
	stopped bool
	events  chan *Event
	pushed  []assist.State
}

func newStubChannel(name string) *stubChannel {
	return &stubChannel{name: name, events: make(chan *Event, 4)}
}

func (s *stubChannel) Name() string                { return s.name }
func (s *stubChannel) Start(context.Context) error { s.started = true; return nil }
func (s *stubChannel) Stop() error                 { s.stopped = true; return nil }
func (s *stubChannel) Events() <-chan *Event       { return s.events }
func (s *stubChannel) Push(st assist.State)        { s.pushed = append(s.pushed, st) }

func TestManagerRegisterAndGet(t *testing.T) {
	m := NewManager()
	ch := newStubChannel("stub")
	m.Register(ch)
	m.Register(nil) // ignored

	got, ok := m.Get("stub")
	if !ok || got != Channel(ch) {
		t.Fatalf("Get() = %v, %v", got, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Fatal("Get() found unregistered channel")
	}
}

func TestManagerStartStopAll(t *testing.T) {
	m := NewManager()
	a := newStubChannel("a")
	b := newStubChannel("b")
	m.Register(a)
	m.Register(b)

	if err := m.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll() error = %v", err)
	}
	if !a.started || !b.started {
		t.Fatal("StartAll() did not start every channel")
	}

	if err := m.StopAll(); err != nil {
		t.Fatalf("StopAll() error = %v", err)
	}
	if !a.stopped || !b.stopped {
		t.Fatal("StopAll() did not stop every channel")
	}
}

func TestManagerBroadcast(t *testing.T) {
	m := NewManager()
	a := newStubChannel("a")
	b := newStubChannel("b")
	m.Register(a)
	m.Register(b)

	st := assist.State{Typing: true}
	m.Broadcast(st)

	for _, ch := range []*stubChannel{a, b} {
		if len(ch.pushed) != 1 || !ch.pushed[0].Typing {
			t.Fatalf("channel %s pushed = %+v", ch.name, ch.pushed)
		}
	}
}
