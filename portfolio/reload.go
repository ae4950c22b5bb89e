package portfolio

import (
	"crypto/sha256"
	"errors"
	"os"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/nmoreau/foliobot/logger"
)

// ReloadFunc receives the freshly parsed snapshot after an identity change.
type ReloadFunc func(*Snapshot)

// Reloader polls the snapshot file on a cron schedule and invokes onChange
// only when the file's content identity (sha256) actually changes. The
// initial load is the caller's job; Start primes the identity from the
// current file so an unchanged file never triggers a rebuild.
type Reloader struct {
	cron     *cron.Cron
	path     string
	spec     string
	onChange ReloadFunc

	mu   sync.Mutex
	sum  [sha256.Size]byte
	seen bool
}

// NewReloader creates a reloader for path, checking on the given cron spec
// (e.g. "@every 30s").
func NewReloader(path, spec string, onChange ReloadFunc) *Reloader {
	return &Reloader{
		cron:     cron.New(),
		path:     path,
		spec:     spec,
		onChange: onChange,
	}
}

// Start primes the current identity and begins the periodic checks.
func (r *Reloader) Start() error {
	r.prime()
	if _, err := r.cron.AddFunc(r.spec, r.check); err != nil {
		return err
	}
	r.cron.Start()
	logger.Info("portfolio reloader started", "path", r.path, "spec", r.spec)
	return nil
}

// Stop halts the periodic checks and waits for a running check to finish.
func (r *Reloader) Stop() {
	<-r.cron.Stop().Done()
}

func (r *Reloader) prime() {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return
	}
	r.mu.Lock()
	r.sum = sha256.Sum256(data)
	r.seen = true
	r.mu.Unlock()
}

func (r *Reloader) check() {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("portfolio reload read failed", "path", r.path, "err", err)
		}
		return
	}

	sum := sha256.Sum256(data)
	r.mu.Lock()
	unchanged := r.seen && sum == r.sum
	r.sum = sum
	r.seen = true
	r.mu.Unlock()
	if unchanged {
		return
	}

	snap, err := Parse(data)
	if err != nil {
		logger.Warn("portfolio reload parse failed", "path", r.path, "err", err)
		return
	}

	logger.Info("portfolio snapshot changed, rebuilding", "path", r.path)
	if r.onChange != nil {
		r.onChange(snap)
	}
}
