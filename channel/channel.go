// Package channel provides UI-surface adapters for the chat widget. A
// channel forwards widget events (submit, draft, open, close) into the
// assistant and renders the state snapshots pushed back after each
// mutation.
package channel

import (
	"context"

	"github.com/nmoreau/foliobot/assist"
	"github.com/nmoreau/foliobot/logger"
)

// EventKind enumerates the widget events a UI surface can emit.
type EventKind string

const (
	EventSubmit EventKind = "submit"
	EventDraft  EventKind = "draft"
	EventOpen   EventKind = "open"
	EventClose  EventKind = "close"
)

// Event is a single widget event from a UI surface.
type Event struct {
	Kind   EventKind `json:"kind"`
	Text   string    `json:"text,omitempty"`
	Source string    `json:"source,omitempty"`
}

// Channel is the interface for UI surfaces.
type Channel interface {
	// Name returns the channel name (e.g. "cli", "web").
	Name() string

	// Start begins listening for widget events.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the channel.
	Stop() error

	// Events returns the stream of incoming widget events.
	Events() <-chan *Event

	// Push delivers a fresh state snapshot for rendering.
	Push(st assist.State)
}

// Manager manages registered channels as a pure registry.
type Manager struct {
	channels map[string]Channel
}

// NewManager creates a new channel manager.
func NewManager() *Manager {
	return &Manager{
		channels: make(map[string]Channel),
	}
}

// Register adds a channel to the manager. Nil is silently ignored.
func (m *Manager) Register(ch Channel) {
	if ch == nil {
		return
	}
	m.channels[ch.Name()] = ch
	logger.Info("channel registered", "channel", ch.Name())
}

// Get returns a channel by name.
func (m *Manager) Get(name string) (Channel, bool) {
	ch, ok := m.channels[name]
	return ch, ok
}

// StartAll starts all registered channels.
func (m *Manager) StartAll(ctx context.Context) error {
	for _, ch := range m.channels {
		if err := ch.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

// StopAll stops all registered channels.
func (m *Manager) StopAll() error {
	for _, ch := range m.channels {
		if err := ch.Stop(); err != nil {
			return err
		}
	}
	return nil
}

// Broadcast pushes a state snapshot to every channel.
func (m *Manager) Broadcast(st assist.State) {
	for _, ch := range m.channels {
		ch.Push(st)
	}
}

// Each iterates over all registered channels.
func (m *Manager) Each(fn func(Channel)) {
	for _, ch := range m.channels {
		fn(ch)
	}
}
