package assist

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/nmoreau/foliobot/logger"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is a single immutable conversation entry.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// State is the read projection handed to UI surfaces after every mutation.
type State struct {
	Messages         []Message `json:"messages"`
	Typing           bool      `json:"typing"`
	Draft            string    `json:"draft"`
	HintVisible      bool      `json:"hintVisible"`
	OrnamentsVisible bool      `json:"ornamentsVisible"`
}

// Listener receives a state snapshot after each mutation.
type Listener func(State)

// Delays holds the three simulated-latency windows of the widget.
type Delays struct {
	Reply    time.Duration
	Ornament time.Duration
	Hint     time.Duration
}

// DefaultDelays returns the stock widget timing.
func DefaultDelays() Delays {
	return Delays{
		Reply:    800 * time.Millisecond,
		Ornament: 250 * time.Millisecond,
		Hint:     5000 * time.Millisecond,
	}
}

// Tagged phases. Keeping these as explicit states rather than independent
// booleans makes illegal combinations unrepresentable.
type replyPhase int

const (
	replyIdle replyPhase = iota
	replyAwaiting
)

type hintPhase int

const (
	hintIdle hintPhase = iota
	hintPending
	hintDismissed
)

type panelPhase int

const (
	panelClosed panelPhase = iota
	panelOrnamentsPending
	panelOrnamentsVisible
)

// lineage keys the three independent timer families. Each lineage holds at
// most one outstanding task; scheduling cancels the previous one first.
type lineage int

const (
	lineageReply lineage = iota
	lineageOrnament
	lineageHint
)

// Controller owns the conversation state and sequences every transition.
// Submit, OpenPanel and ClosePanel return immediately; their deferred
// effects run through cancellable clock tasks. Dispose synchronously
// prevents any not-yet-fired task from mutating state.
type Controller struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	kb     KnowledgeBase
	delays Delays

	messages []Message
	draft    string
	queue    []string // queries awaiting a reply, submission order

	reply replyPhase
	hint  hintPhase
	panel panelPhase

	cancels   map[lineage]func()
	listeners []Listener
	disposed  bool
}

// NewController creates a controller seeded with one bot greeting message.
func NewController(kb KnowledgeBase, greeting string, delays Delays, clock clockwork.Clock) *Controller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	c := &Controller{
		clock:   clock,
		kb:      kb,
		delays:  delays,
		cancels: make(map[lineage]func()),
	}
	if greeting != "" {
		c.messages = append(c.messages, c.newMessage(greeting, SenderBot))
	}
	return c
}

// Subscribe registers a listener for state snapshots.
func (c *Controller) Subscribe(fn Listener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Mount starts the widget lifecycle: the onboarding hint becomes visible
// and expires after the hint delay unless the panel opens first.
func (c *Controller) Mount() {
	c.mu.Lock()
	if c.disposed || c.hint == hintDismissed {
		c.mu.Unlock()
		return
	}
	c.hint = hintPending
	c.scheduleLocked(lineageHint, c.delays.Hint, c.expireHint)
	c.emitAndUnlock()
}

// Submit appends a user message and queues exactly one bot reply for it.
// Whitespace-only input is a no-op. Submissions are accepted while a reply
// is still pending; replies resolve strictly in submission order.
func (c *Controller) Submit(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.messages = append(c.messages, c.newMessage(text, SenderUser))
	c.draft = ""
	c.queue = append(c.queue, text)
	if c.reply == replyIdle {
		c.reply = replyAwaiting
		c.scheduleLocked(lineageReply, c.delays.Reply, c.fireReply)
	}
	c.emitAndUnlock()
}

// SetDraft mirrors the widget's input buffer into the state.
func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.draft = text
	c.emitAndUnlock()
}

// OpenPanel dismisses the hint permanently and starts the deferred
// ornament reveal for this open cycle.
func (c *Controller) OpenPanel() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	if c.hint == hintPending {
		c.cancelLocked(lineageHint)
	}
	c.hint = hintDismissed
	c.cancelLocked(lineageOrnament)
	c.panel = panelOrnamentsPending
	c.scheduleLocked(lineageOrnament, c.delays.Ornament, c.revealOrnaments)
	c.emitAndUnlock()
}

// ClosePanel hides the ornaments immediately and cancels a pending reveal.
func (c *Controller) ClosePanel() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.cancelLocked(lineageOrnament)
	c.panel = panelClosed
	c.emitAndUnlock()
}

// ReplaceKnowledgeBase swaps in a knowledge base rebuilt from a changed
// snapshot. Pending replies use the new base when they fire.
func (c *Controller) ReplaceKnowledgeBase(kb KnowledgeBase) {
	c.mu.Lock()
	c.kb = kb
	c.mu.Unlock()
	logger.Debug("assistant knowledge base replaced")
}

// Dispose cancels every outstanding task. No task scheduled before Dispose
// mutates state after it returns.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposed = true
	for _, cancel := range c.cancels {
		cancel()
	}
	c.cancels = make(map[lineage]func())
	c.queue = nil
	c.reply = replyIdle
}

func (c *Controller) fireReply() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	delete(c.cancels, lineageReply)
	if len(c.queue) == 0 {
		c.reply = replyIdle
		c.mu.Unlock()
		return
	}

	query := c.queue[0]
	c.queue = c.queue[1:]
	c.messages = append(c.messages, c.newMessage(Match(query, c.kb), SenderBot))
	if len(c.queue) > 0 {
		c.scheduleLocked(lineageReply, c.delays.Reply, c.fireReply)
	} else {
		c.reply = replyIdle
	}
	c.emitAndUnlock()
}

func (c *Controller) revealOrnaments() {
	c.mu.Lock()
	if c.disposed || c.panel != panelOrnamentsPending {
		c.mu.Unlock()
		return
	}
	delete(c.cancels, lineageOrnament)
	c.panel = panelOrnamentsVisible
	c.emitAndUnlock()
}

func (c *Controller) expireHint() {
	c.mu.Lock()
	if c.disposed || c.hint != hintPending {
		c.mu.Unlock()
		return
	}
	delete(c.cancels, lineageHint)
	c.hint = hintDismissed
	c.emitAndUnlock()
}

// scheduleLocked replaces the lineage's outstanding task, if any.
func (c *Controller) scheduleLocked(l lineage, d time.Duration, fn func()) {
	c.cancelLocked(l)
	timer := c.clock.AfterFunc(d, fn)
	c.cancels[l] = func() { timer.Stop() }
}

func (c *Controller) cancelLocked(l lineage) {
	if cancel, ok := c.cancels[l]; ok {
		cancel()
		delete(c.cancels, l)
	}
}

func (c *Controller) newMessage(text string, sender Sender) Message {
	return Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: c.clock.Now(),
	}
}

func (c *Controller) stateLocked() State {
	msgs := make([]Message, len(c.messages))
	copy(msgs, c.messages)
	return State{
		Messages:         msgs,
		Typing:           c.reply == replyAwaiting,
		Draft:            c.draft,
		HintVisible:      c.hint == hintPending,
		OrnamentsVisible: c.panel == panelOrnamentsVisible,
	}
}

// emitAndUnlock snapshots state under the lock, then notifies listeners after
// releasing it so a listener may call back into the controller.
func (c *Controller) emitAndUnlock() {
	st := c.stateLocked()
	listeners := make([]Listener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(st)
	}
}
