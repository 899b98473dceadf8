// Package launcher switches the Riot Client to a stored account and follows
// the game until it exits.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iksnae/valswitch/internal"
	"github.com/iksnae/valswitch/internal/codec"
	"github.com/iksnae/valswitch/internal/process"
)

// Launch steps, reported in LaunchError.Step
const (
	StepValidate = "validate"
	StepInstall  = "install"
	StepClose    = "close"
	StepResolve  = "resolve"
	StepWrite    = "write"
	StepSpawn    = "spawn"
	StepRecover  = "recover"
)

// Accounts is the part of the account directory a launch needs
type Accounts interface {
	Get(id string) (internal.Account, bool)
	TouchLastUsed(id string) error
}

// Secrets reads stored session secrets
type Secrets interface {
	Retrieve(accountID string) (internal.SecretRecord, bool, error)
}

// EventSink receives launch status transitions
type EventSink func(internal.LaunchEvent)

// LaunchSession is the in-flight launch. It lives in memory only.
type LaunchSession struct {
	ID        string               `json:"id"`
	AccountID string               `json:"accountId"`
	Phase     internal.LaunchPhase `json:"phase"`
	Err       error                `json:"-"`
	StartedAt time.Time            `json:"startedAt"`
}

// Options wires an Orchestrator
type Options struct {
	Accounts   Accounts
	Secrets    Secrets
	Settings   internal.KeyValueStore
	Controller process.Controller
	// RiotDataRoot overrides the Riot Games data root; empty means the OS default.
	RiotDataRoot string
	Locale       string
	PollInterval time.Duration
	Sink         EventSink
}

// Orchestrator runs launches one at a time
type Orchestrator struct {
	accounts   Accounts
	secrets    Secrets
	settings   internal.KeyValueStore
	controller process.Controller
	root       string
	locale     string
	sink       EventSink
	watcher    *process.Watcher

	// launchMu serializes Launch; mu guards session.
	launchMu sync.Mutex
	mu       sync.Mutex
	session  *LaunchSession
}

// New creates an orchestrator with its own process watcher
func New(opts Options) *Orchestrator {
	o := &Orchestrator{
		accounts:   opts.Accounts,
		secrets:    opts.Secrets,
		settings:   opts.Settings,
		controller: opts.Controller,
		root:       opts.RiotDataRoot,
		locale:     opts.Locale,
		sink:       opts.Sink,
	}
	if o.locale == "" {
		o.locale = codec.DefaultLocale
	}
	if o.sink == nil {
		o.sink = func(internal.LaunchEvent) {}
	}
	o.watcher = process.NewWatcher(opts.Controller, opts.PollInterval, o.onWatch)
	return o
}

// Current returns the active launch session, if any
func (o *Orchestrator) Current() (LaunchSession, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.session == nil {
		return LaunchSession{}, false
	}
	return *o.session, true
}

// Phase returns the phase of the active session, or idle
func (o *Orchestrator) Phase() internal.LaunchPhase {
	if s, ok := o.Current(); ok {
		return s.Phase
	}
	return internal.PhaseIdle
}

// WatchDone returns a channel closed when the current watch ends
func (o *Orchestrator) WatchDone() <-chan struct{} {
	return o.watcher.Done()
}

// Stop cancels the process watcher and forgets the session
func (o *Orchestrator) Stop() {
	o.watcher.Stop()
	o.mu.Lock()
	o.session = nil
	o.mu.Unlock()
}

// Launch writes the account's session into the Riot Client files and starts
// the client. It returns once the client is spawned; the watcher reports
// running and closed afterwards through the sink.
func (o *Orchestrator) Launch(ctx context.Context, accountID string) (err error) {
	o.launchMu.Lock()
	defer o.launchMu.Unlock()

	o.watcher.Stop()
	o.begin(accountID)

	defer func() {
		if r := recover(); r != nil {
			err = o.fail(accountID, StepRecover, internal.ErrUnexpected, fmt.Errorf("%v", r), false)
		}
	}()

	account, secret, err := o.validate(accountID)
	if err != nil {
		return o.fail(accountID, StepValidate, internal.ErrIncompleteAccountData, err, false)
	}

	exe, err := o.resolveExecutable()
	if err != nil {
		return o.fail(accountID, StepInstall, internal.ErrTargetNotConfigured, err, true)
	}

	if err := o.controller.CloseAll(ctx); err != nil {
		internal.LogWarn("Closing Riot Client processes: %v", err)
	}
	// Canceled during the settle delay: nothing has been written yet.
	if cerr := ctx.Err(); cerr != nil {
		return o.fail(accountID, StepClose, cerr, nil, false)
	}

	paths, err := internal.DetectRiotPaths(o.root)
	if err != nil {
		return o.fail(accountID, StepResolve, internal.ErrPathResolutionFailed, err, false)
	}

	if err := o.writeSession(paths, account, secret); err != nil {
		return o.fail(accountID, StepWrite, internal.ErrConfigWriteFailed, err, false)
	}

	if err := o.controller.Start(exe, process.LaunchArgs); err != nil {
		return o.fail(accountID, StepSpawn, internal.ErrSpawnFailed, err, false)
	}

	if err := o.accounts.TouchLastUsed(accountID); err != nil {
		internal.LogWarn("Recording last use of %s: %v", accountID, err)
	}

	gen := o.watcher.Start(accountID)
	internal.LogInfo("Launched Riot Client for %s (watch generation %d)", accountID, gen)
	return nil
}

func (o *Orchestrator) begin(accountID string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.session = &LaunchSession{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Phase:     internal.PhaseLaunching,
		StartedAt: time.Now().UTC(),
	}
	internal.LogDebug("Launch %s started for %s", o.session.ID, accountID)
	o.sink(internal.LaunchEvent{AccountID: accountID, Phase: internal.PhaseLaunching})
}

func (o *Orchestrator) fail(accountID, step string, kind, cause error, blocking bool) error {
	lerr := &internal.LaunchError{AccountID: accountID, Step: step, Kind: kind, Err: cause}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.session != nil && o.session.AccountID == accountID {
		o.session.Phase = internal.PhaseError
		o.session.Err = lerr
	}
	internal.LogError("%v", lerr)
	o.sink(internal.LaunchEvent{
		AccountID: accountID,
		Phase:     internal.PhaseError,
		Message:   lerr.Error(),
		Blocking:  blocking,
	})
	return lerr
}

func (o *Orchestrator) validate(accountID string) (internal.Account, internal.SecretRecord, error) {
	account, ok := o.accounts.Get(accountID)
	if !ok {
		return internal.Account{}, internal.SecretRecord{}, fmt.Errorf("%w: %s", internal.ErrAccountNotFound, accountID)
	}

	secret, ok, err := o.secrets.Retrieve(accountID)
	if err != nil {
		return internal.Account{}, internal.SecretRecord{}, err
	}
	if !ok {
		return internal.Account{}, internal.SecretRecord{}, errors.New("no stored session")
	}
	if !secret.Complete() {
		return internal.Account{}, internal.SecretRecord{}, errors.New("stored session is missing ssid or sub")
	}
	if secret.Sub != account.ID {
		internal.LogWarn("Stored session for %s belongs to another account", accountID)
		return internal.Account{}, internal.SecretRecord{}, errors.New("stored session belongs to another account")
	}
	return account, secret, nil
}

func (o *Orchestrator) resolveExecutable() (string, error) {
	settings, err := internal.LoadSettings(o.settings)
	if err != nil {
		return "", err
	}
	if err := internal.ValidateInstallDir(settings.ValorantPath); err != nil {
		return "", err
	}
	return o.controller.FindExecutable()
}

// writeSession writes the private settings first, then the client settings.
// A failure in between leaves the first file in place; the next launch
// rewrites both.
func (o *Orchestrator) writeSession(paths internal.RiotPaths, account internal.Account, secret internal.SecretRecord) error {
	private, client, err := codec.Encode(codec.CookiesFromRecord(secret), account.Region, o.locale)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(paths.DataDir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(paths.PrivateSettingsPath(), private, 0600); err != nil {
		return err
	}
	if err := os.MkdirAll(paths.ConfigDir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(paths.ClientSettingsPath(), client, 0644); err != nil {
		return err
	}
	internal.LogDebug("Wrote session files under %s (%s)", paths.Root, paths.Variant)
	return nil
}

// onWatch runs with the watcher lock held
func (o *Orchestrator) onWatch(ev internal.LaunchEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session == nil || o.session.AccountID != ev.AccountID {
		internal.LogDebug("Ignoring %s event for %s", ev.Phase, ev.AccountID)
		return
	}

	switch ev.Phase {
	case internal.PhaseRunning:
		o.session.Phase = internal.PhaseRunning
		internal.LogInfo("VALORANT is running for %s", ev.AccountID)
	case internal.PhaseClosed:
		internal.LogInfo("VALORANT closed for %s", ev.AccountID)
		o.session = nil
	}
	o.sink(ev)
}
