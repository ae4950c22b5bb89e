package channel

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/nmoreau/foliobot/assist"
	"github.com/nmoreau/foliobot/logger"
)

const (
	cliEventBufferSize = 10
	cliStopWaitTimeout = 500 * time.Millisecond
)

// CLIConfig configures the interactive CLI channel.
type CLIConfig struct {
	Prompt string
}

// cliChannel implements Channel over stdin/stdout with a bufio.Scanner.
// Each input line is a submit event; bot messages print as they land.
type cliChannel struct {
	prompt    string
	events    chan *Event
	done      chan struct{}
	wg        sync.WaitGroup
	stopOnce  sync.Once
	closeOnce sync.Once

	mu   sync.Mutex
	seen int // messages already printed
}

// NewCLIChannel creates a CLI channel.
func NewCLIChannel(cfg CLIConfig) Channel {
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = "you> "
	}
	return &cliChannel{
		prompt: prompt,
		events: make(chan *Event, cliEventBufferSize),
		done:   make(chan struct{}),
	}
}

func (c *cliChannel) Name() string {
	return "cli"
}

func (c *cliChannel) Start(ctx context.Context) error {
	logger.Info("cli channel started")

	// Opening the panel is implicit for a terminal session.
	c.events <- &Event{Kind: EventOpen, Source: "cli"}

	c.wg.Add(1)
	go c.readInput(ctx)

	// The event stream ends when the input loop exits (EOF or an exit
	// command), so consumers can tell an interactive session is over.
	go func() {
		c.wg.Wait()
		c.closeOnce.Do(func() { close(c.events) })
	}()
	return nil
}

func (c *cliChannel) Stop() error {
	c.stopOnce.Do(func() {
		close(c.done)

		waitDone := make(chan struct{})
		go func() {
			c.wg.Wait()
			close(waitDone)
		}()

		select {
		case <-waitDone:
		case <-time.After(cliStopWaitTimeout):
			logger.Warn("cli channel stop timed out waiting for input loop")
		}

		logger.Info("cli channel stopped")
	})
	return nil
}

func (c *cliChannel) Events() <-chan *Event {
	return c.events
}

// Push prints any messages not yet shown. User messages are skipped since
// the user just typed them.
func (c *cliChannel) Push(st assist.State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for ; c.seen < len(st.Messages); c.seen++ {
		msg := st.Messages[c.seen]
		if msg.Sender != assist.SenderBot {
			continue
		}
		fmt.Printf("\nbot> %s\n\n%s", msg.Text, c.prompt)
	}
}

func (c *cliChannel) readInput(ctx context.Context) {
	defer c.wg.Done()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print(c.prompt)

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		default:
			if !scanner.Scan() {
				return
			}

			text := scanner.Text()
			if strings.TrimSpace(text) == "" {
				fmt.Print(c.prompt)
				continue
			}
			if text == "exit" || text == "quit" || text == "/exit" || text == "/quit" {
				fmt.Println("Goodbye!")
				return
			}

			select {
			case c.events <- &Event{Kind: EventSubmit, Text: text, Source: "cli"}:
			case <-c.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}
}
