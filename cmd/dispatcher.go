package cmd

import (
	"context"

	"github.com/nmoreau/foliobot/assist"
	"github.com/nmoreau/foliobot/channel"
	"github.com/nmoreau/foliobot/logger"
)

// Dispatcher routes widget events from channels to the controller. It is
// the bridge between the channel layer (pure I/O) and the conversation
// state machine.
type Dispatcher struct {
	channels *channel.Manager
	ctrl     *assist.Controller
}

// NewDispatcher creates a new dispatcher and wires controller state
// emissions back to every channel.
func NewDispatcher(channels *channel.Manager, ctrl *assist.Controller) *Dispatcher {
	d := &Dispatcher{channels: channels, ctrl: ctrl}
	ctrl.Subscribe(channels.Broadcast)
	return d
}

// Run starts a goroutine per channel that forwards events into the
// controller. Blocks until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	d.channels.Each(func(ch channel.Channel) {
		go d.processChannel(ctx, ch)
	})
	<-ctx.Done()
}

func (d *Dispatcher) processChannel(ctx context.Context, ch channel.Channel) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch.Events():
			if !ok {
				return
			}
			d.apply(ch.Name(), ev)
		}
	}
}

func (d *Dispatcher) apply(source string, ev *channel.Event) {
	logger.Debug("dispatching widget event", "channel", source, "kind", ev.Kind)

	switch ev.Kind {
	case channel.EventSubmit:
		d.ctrl.Submit(ev.Text)
	case channel.EventDraft:
		d.ctrl.SetDraft(ev.Text)
	case channel.EventOpen:
		d.ctrl.OpenPanel()
	case channel.EventClose:
		d.ctrl.ClosePanel()
	default:
		logger.Warn("unknown widget event kind", "kind", ev.Kind)
	}
}
