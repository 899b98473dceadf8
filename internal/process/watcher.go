package process

import (
	"context"
	"sync"
	"time"

	"github.com/iksnae/valswitch/internal"
)

// DefaultPollInterval is the watcher tick period
const DefaultPollInterval = 5 * time.Second

// Prober reports whether the game process is present
type Prober interface {
	IsTargetRunning(ctx context.Context) bool
}

// Watcher polls the game process for one account at a time.
// Starting a new watch supersedes the previous one; a tick that was already
// in flight for a superseded generation is dropped instead of emitted.
type Watcher struct {
	probe    Prober
	interval time.Duration
	// emit is called with the watcher lock held; it must not call Start or Stop.
	emit func(internal.LaunchEvent)

	mu         sync.Mutex
	generation uint64
	accountID  string
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewWatcher creates an idle watcher
func NewWatcher(probe Prober, interval time.Duration, emit func(internal.LaunchEvent)) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if emit == nil {
		emit = func(internal.LaunchEvent) {}
	}
	return &Watcher{probe: probe, interval: interval, emit: emit}
}

// Start begins watching for accountID and returns the new generation
func (w *Watcher) Start(accountID string) uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopLocked()
	w.generation++
	gen := w.generation

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	w.accountID = accountID
	w.cancel = cancel
	w.done = done

	internal.LogDebug("Watching %s (generation %d)", accountID, gen)
	go w.run(ctx, gen, accountID, done)
	return gen
}

// Stop cancels the active watch, if any
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopLocked()
}

// Active returns the watched account id
func (w *Watcher) Active() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.accountID, w.cancel != nil
}

// Generation returns the current generation counter
func (w *Watcher) Generation() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.generation
}

// Done returns a channel closed when the current watch loop exits
func (w *Watcher) Done() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return w.done
}

func (w *Watcher) stopLocked() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	w.cancel = nil
	w.accountID = ""
	// Retire the generation so in-flight ticks stay silent.
	w.generation++
}

func (w *Watcher) run(ctx context.Context, gen uint64, accountID string, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	seen := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		running := w.probe.IsTargetRunning(ctx)
		switch {
		case running && !seen:
			seen = true
			if !w.deliver(gen, internal.LaunchEvent{AccountID: accountID, Phase: internal.PhaseRunning}, false) {
				return
			}
		case !running && seen:
			w.deliver(gen, internal.LaunchEvent{AccountID: accountID, Phase: internal.PhaseClosed}, true)
			return
		}
	}
}

// deliver emits ev if gen is still current; final also ends the watch
func (w *Watcher) deliver(gen uint64, ev internal.LaunchEvent, final bool) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.generation {
		internal.LogDebug("Dropping %s event for superseded watch of %s", ev.Phase, ev.AccountID)
		return false
	}
	w.emit(ev)
	if final {
		w.stopLocked()
	}
	return true
}
