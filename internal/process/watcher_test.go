package process

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/iksnae/valswitch/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 5 * time.Millisecond

type switchProber struct{ running atomic.Bool }

func (p *switchProber) IsTargetRunning(context.Context) bool { return p.running.Load() }

// gatedProber blocks its first call until gate is closed, like an OS query
// that is still in flight when the watch is superseded.
type gatedProber struct {
	running atomic.Bool
	once    sync.Once
	entered chan struct{}
	gate    chan struct{}
}

func newGatedProber() *gatedProber {
	return &gatedProber{entered: make(chan struct{}), gate: make(chan struct{})}
}

func (p *gatedProber) IsTargetRunning(context.Context) bool {
	first := false
	p.once.Do(func() { first = true })
	if first {
		close(p.entered)
		<-p.gate
	}
	return p.running.Load()
}

type eventLog struct {
	mu     sync.Mutex
	events []internal.LaunchEvent
}

func (l *eventLog) emit(ev internal.LaunchEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) snapshot() []internal.LaunchEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]internal.LaunchEvent(nil), l.events...)
}

func (l *eventLog) has(accountID string, phase internal.LaunchPhase) bool {
	for _, ev := range l.snapshot() {
		if ev.AccountID == accountID && ev.Phase == phase {
			return true
		}
	}
	return false
}

func TestWatcher_RunningThenClosed(t *testing.T) {
	probe := &switchProber{}
	log := &eventLog{}
	w := NewWatcher(probe, tick, log.emit)

	w.Start("abc123")
	id, active := w.Active()
	require.True(t, active)
	require.Equal(t, "abc123", id)

	// Not running yet: the watcher keeps waiting silently.
	time.Sleep(5 * tick)
	assert.Empty(t, log.snapshot())

	probe.running.Store(true)
	require.Eventually(t, func() bool { return log.has("abc123", internal.PhaseRunning) }, time.Second, tick)

	probe.running.Store(false)
	require.Eventually(t, func() bool { return log.has("abc123", internal.PhaseClosed) }, time.Second, tick)

	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("watch loop should exit after closed")
	}
	_, active = w.Active()
	assert.False(t, active, "watcher stops itself after closed")

	events := log.snapshot()
	require.Len(t, events, 2)
	assert.Equal(t, internal.PhaseRunning, events[0].Phase)
	assert.Equal(t, internal.PhaseClosed, events[1].Phase)
}

func TestWatcher_RunningEmittedOnce(t *testing.T) {
	probe := &switchProber{}
	probe.running.Store(true)
	log := &eventLog{}
	w := NewWatcher(probe, tick, log.emit)
	defer w.Stop()

	w.Start("abc123")
	require.Eventually(t, func() bool { return len(log.snapshot()) == 1 }, time.Second, tick)
	time.Sleep(10 * tick)
	assert.Len(t, log.snapshot(), 1)
}

func TestWatcher_SupersededTickIsDropped(t *testing.T) {
	probe := newGatedProber()
	probe.running.Store(true)
	log := &eventLog{}
	w := NewWatcher(probe, tick, log.emit)
	defer w.Stop()

	genA := w.Start("first")
	<-probe.entered // first's tick is now in flight

	genB := w.Start("second")
	assert.Greater(t, genB, genA)
	require.Eventually(t, func() bool { return log.has("second", internal.PhaseRunning) }, time.Second, tick)

	close(probe.gate) // let the stale tick finish
	time.Sleep(10 * tick)

	assert.False(t, log.has("first", internal.PhaseRunning), "superseded watch must not emit")
	for _, ev := range log.snapshot() {
		assert.Equal(t, "second", ev.AccountID)
	}
}

func TestWatcher_Stop(t *testing.T) {
	probe := &switchProber{}
	log := &eventLog{}
	w := NewWatcher(probe, tick, log.emit)

	gen := w.Start("abc123")
	w.Stop()
	assert.Greater(t, w.Generation(), gen)

	probe.running.Store(true)
	time.Sleep(10 * tick)
	assert.Empty(t, log.snapshot())

	_, active := w.Active()
	assert.False(t, active)
	w.Stop() // idempotent
}

func TestWatcher_DoneWhenIdle(t *testing.T) {
	w := NewWatcher(&switchProber{}, 0, nil)
	select {
	case <-w.Done():
	default:
		t.Fatal("Done() of an idle watcher should be closed")
	}
	assert.Equal(t, DefaultPollInterval, w.interval)
}
