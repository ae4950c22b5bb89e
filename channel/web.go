package channel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/nmoreau/foliobot/assist"
	"github.com/nmoreau/foliobot/logger"
)

const (
	webEventBufferSize = 32
	webWriteTimeout    = 5 * time.Second
	webStopTimeout     = 3 * time.Second
)

// WebConfig configures the web channel.
type WebConfig struct {
	Addr string
}

// webChannel exposes the widget over HTTP: a websocket that accepts widget
// events and receives every state snapshot, plus /state and /healthz.
type webChannel struct {
	cfg      WebConfig
	events   chan *Event
	done     chan struct{}
	stopOnce sync.Once
	srv      *http.Server

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
	last  assist.State
	dirty bool
}

// NewWebChannel creates a web channel listening on cfg.Addr.
func NewWebChannel(cfg WebConfig) Channel {
	return &webChannel{
		cfg:    cfg,
		events: make(chan *Event, webEventBufferSize),
		done:   make(chan struct{}),
		conns:  make(map[*websocket.Conn]struct{}),
	}
}

func (c *webChannel) Name() string {
	return "web"
}

func (c *webChannel) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/state", c.serveState)
	mux.HandleFunc("/ws", c.serveWS)

	c.srv = &http.Server{Addr: c.cfg.Addr, Handler: mux}

	go func() {
		logger.Info("web channel listening", "addr", c.cfg.Addr)
		if err := c.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("web channel server error", "err", err)
		}
	}()
	return nil
}

func (c *webChannel) Stop() error {
	if c.srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), webStopTimeout)
	defer cancel()

	c.stopOnce.Do(func() { close(c.done) })

	c.mu.Lock()
	for conn := range c.conns {
		_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
	c.conns = make(map[*websocket.Conn]struct{})
	c.mu.Unlock()

	logger.Info("web channel stopped")
	return c.srv.Shutdown(ctx)
}

func (c *webChannel) Events() <-chan *Event {
	return c.events
}

// Push fans the snapshot out to every connected socket.
func (c *webChannel) Push(st assist.State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.last = st
	c.dirty = true
	for conn := range c.conns {
		c.writeLocked(conn, st)
	}
}

func (c *webChannel) writeLocked(conn *websocket.Conn, st assist.State) {
	ctx, cancel := context.WithTimeout(context.Background(), webWriteTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, conn, st); err != nil {
		logger.Debug("web push failed, dropping connection", "err", err)
		delete(c.conns, conn)
		_ = conn.CloseNow()
	}
}

func (c *webChannel) serveState(w http.ResponseWriter, _ *http.Request) {
	c.mu.Lock()
	st := c.last
	ok := c.dirty
	c.mu.Unlock()

	if !ok {
		http.Error(w, "no state yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(st)
}

func (c *webChannel) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		logger.Warn("websocket accept failed", "err", err)
		return
	}

	c.mu.Lock()
	c.conns[conn] = struct{}{}
	if c.dirty {
		c.writeLocked(conn, c.last)
	}
	c.mu.Unlock()

	// The browser widget just connected: treat it as a panel open.
	c.emit(&Event{Kind: EventOpen, Source: "web"})

	// Block the handler: the request context dies when it returns.
	c.readLoop(r.Context(), conn)
}

func (c *webChannel) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer func() {
		c.mu.Lock()
		delete(c.conns, conn)
		c.mu.Unlock()
		_ = conn.CloseNow()
	}()

	for {
		var ev Event
		if err := wsjson.Read(ctx, conn, &ev); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				logger.Debug("websocket closed")
			}
			// A closed widget stops rendering: mirror it as a panel close.
			c.emit(&Event{Kind: EventClose, Source: "web"})
			return
		}

		switch ev.Kind {
		case EventSubmit, EventDraft, EventOpen, EventClose:
			ev.Source = "web"
			c.emit(&ev)
		default:
			logger.Warn("unknown widget event", "kind", ev.Kind)
		}
	}
}

// emit sends an event unless the channel has been stopped.
func (c *webChannel) emit(ev *Event) {
	select {
	case c.events <- ev:
	case <-c.done:
	}
}
