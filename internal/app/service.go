// Package app is the request/response surface the CLI (or any UI) drives.
// Every call returns a Result; launch transitions and theme changes arrive
// asynchronously on Events.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/iksnae/valswitch/internal"
	"github.com/iksnae/valswitch/internal/auth"
	"github.com/iksnae/valswitch/internal/export"
	"github.com/iksnae/valswitch/internal/launcher"
	"github.com/iksnae/valswitch/internal/session"
)

// eventBuffer is the capacity of the Events channel
const eventBuffer = 64

// Event names
const (
	EventLaunchStatus = "launch-status"
	EventThemeChanged = "theme-changed"
)

// Result is the reply to every command
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	// Err keeps the typed error for errors.Is checks.
	Err error `json:"-"`
}

func ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func fail[T any](err error) Result[T] {
	return Result[T]{Error: err.Error(), Err: err}
}

// Event is pushed to the UI without a request
type Event struct {
	Name   string                `json:"name"`
	Launch *internal.LaunchEvent `json:"launch,omitempty"`
	Theme  internal.Theme        `json:"theme,omitempty"`
}

// SecretStore is the vault as the service sees it
type SecretStore interface {
	Store(accountID string, record internal.SecretRecord) error
	Retrieve(accountID string) (internal.SecretRecord, bool, error)
	Delete(accountID string) error
}

// SessionImporter reads the account currently signed in to the Riot Client
type SessionImporter interface {
	ImportCurrentSession() (session.Imported, error)
}

// Launcher starts the Riot Client for an account
type Launcher interface {
	Launch(ctx context.Context, accountID string) error
	Current() (launcher.LaunchSession, bool)
	Stop()
}

// Deps are the collaborators of a Service
type Deps struct {
	Settings  internal.KeyValueStore
	Directory *internal.Directory
	Vault     SecretStore
	Importer  SessionImporter
	Auth      auth.Authenticator
	Launcher  Launcher
	// OpenURL hands a link to the system browser.
	OpenURL func(string) error
	// PickDir proposes a VALORANT install directory.
	PickDir func() (string, error)
	// Closer releases the settings store.
	Closer io.Closer
}

// Service implements the command surface
type Service struct {
	settings  internal.KeyValueStore
	directory *internal.Directory
	vault     SecretStore
	importer  SessionImporter
	auth      auth.Authenticator
	launcher  Launcher
	openURL   func(string) error
	pickDir   func() (string, error)
	closer    io.Closer
	events    chan Event
}

// NewService creates a service; a nil Auth rejects credential logins
func NewService(deps Deps) *Service {
	s := &Service{
		settings:  deps.Settings,
		directory: deps.Directory,
		vault:     deps.Vault,
		importer:  deps.Importer,
		auth:      deps.Auth,
		launcher:  deps.Launcher,
		openURL:   deps.OpenURL,
		pickDir:   deps.PickDir,
		closer:    deps.Closer,
		events:    make(chan Event, eventBuffer),
	}
	if s.auth == nil {
		s.auth = auth.Placeholder{}
	}
	if s.pickDir == nil {
		s.pickDir = DetectInstallDir
	}
	return s
}

// Events delivers launch status transitions and theme changes
func (s *Service) Events() <-chan Event {
	return s.events
}

// PublishLaunch forwards a launch transition to Events; it is the launcher's sink
func (s *Service) PublishLaunch(ev internal.LaunchEvent) {
	s.publish(Event{Name: EventLaunchStatus, Launch: &ev})
}

func (s *Service) publish(ev Event) {
	select {
	case s.events <- ev:
	default:
		internal.LogWarn("Event buffer full, dropping %s event", ev.Name)
	}
}

// Close stops any watch and closes the settings store
func (s *Service) Close() error {
	if s.launcher != nil {
		s.launcher.Stop()
	}
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// GetAccounts lists the stored accounts in insertion order
func (s *Service) GetAccounts() Result[[]internal.Account] {
	return ok(s.directory.List())
}

// GetAccount returns one account
func (s *Service) GetAccount(id string) Result[internal.Account] {
	a, found := s.directory.Get(id)
	if !found {
		return fail[internal.Account](fmt.Errorf("%w: %s", internal.ErrAccountNotFound, id))
	}
	return ok(a)
}

// HasSession reports whether the vault holds a usable session for id
func (s *Service) HasSession(id string) Result[bool] {
	record, found, err := s.vault.Retrieve(id)
	if err != nil {
		return fail[bool](err)
	}
	return ok(found && record.Complete())
}

// AddAccount signs in with credentials and stores the resulting session
func (s *Service) AddAccount(ctx context.Context, username, password, displayName, region string) Result[internal.Account] {
	region, err := internal.NormalizeRegion(region)
	if err != nil {
		return fail[internal.Account](err)
	}

	record, err := s.auth.AuthenticateWithCredentials(ctx, username, password)
	if err != nil {
		return fail[internal.Account](err)
	}
	if !record.Complete() {
		return fail[internal.Account](fmt.Errorf("%w: login returned no session", internal.ErrIncompleteAccountData))
	}

	if displayName == "" {
		displayName = username
	}
	account := internal.Account{ID: record.Sub, DisplayName: displayName, Region: region}
	if err := s.save(account, record); err != nil {
		return fail[internal.Account](err)
	}
	return s.GetAccount(account.ID)
}

// ImportSession copies the session the Riot Client is signed in with.
// Re-importing a known account refreshes its secrets but keeps the name
// and region the user chose.
func (s *Service) ImportSession() Result[internal.Account] {
	imported, err := s.importer.ImportCurrentSession()
	if err != nil {
		return fail[internal.Account](err)
	}

	account := imported.Account
	if _, exists := s.directory.Get(account.ID); exists {
		account.DisplayName = ""
		account.Region = ""
	}
	if err := s.save(account, imported.Secret); err != nil {
		return fail[internal.Account](err)
	}
	internal.LogInfo("Imported account %s", account.ID)
	return s.GetAccount(account.ID)
}

// save writes the vault before the directory so no account is listed without secrets.
// If the directory write fails for a new account its vault entry is removed again.
func (s *Service) save(account internal.Account, record internal.SecretRecord) error {
	_, existed := s.directory.Get(account.ID)
	if err := s.vault.Store(account.ID, record); err != nil {
		return err
	}
	if err := s.directory.Upsert(account); err != nil {
		if !existed {
			if derr := s.vault.Delete(account.ID); derr != nil {
				internal.LogWarn("Failed to remove vault entry for %s after a failed save: %v", account.ID, derr)
			}
		}
		return err
	}
	return nil
}

// UpdateAccount changes the display name and/or region; empty values are kept
func (s *Service) UpdateAccount(id, displayName, region string) Result[internal.Account] {
	if _, found := s.directory.Get(id); !found {
		return fail[internal.Account](fmt.Errorf("%w: %s", internal.ErrAccountNotFound, id))
	}
	if region != "" {
		if _, err := internal.NormalizeRegion(region); err != nil {
			return fail[internal.Account](err)
		}
	}
	update := internal.Account{ID: id, DisplayName: strings.TrimSpace(displayName), Region: region}
	if err := s.directory.Upsert(update); err != nil {
		return fail[internal.Account](err)
	}
	return s.GetAccount(id)
}

// RemoveAccount deletes the vault entry, then the directory entry
func (s *Service) RemoveAccount(id string) Result[bool] {
	if err := s.vault.Delete(id); err != nil {
		return fail[bool](err)
	}
	if err := s.directory.Remove(id); err != nil {
		return fail[bool](err)
	}
	internal.LogInfo("Removed account %s", id)
	return ok(true)
}

// Launch switches the Riot Client to the account and starts it
func (s *Service) Launch(ctx context.Context, id string) Result[launcher.LaunchSession] {
	if s.launcher == nil {
		return fail[launcher.LaunchSession](errors.New("launcher not configured"))
	}
	if err := s.launcher.Launch(ctx, id); err != nil {
		return fail[launcher.LaunchSession](err)
	}
	current, _ := s.launcher.Current()
	return ok(current)
}

// GetSettings returns the stored settings
func (s *Service) GetSettings() Result[internal.Settings] {
	settings, err := internal.LoadSettings(s.settings)
	if err != nil {
		return fail[internal.Settings](err)
	}
	return ok(settings)
}

// SaveSettings stores the settings and announces a theme change
func (s *Service) SaveSettings(settings internal.Settings) Result[internal.Settings] {
	previous, err := internal.LoadSettings(s.settings)
	if err != nil {
		return fail[internal.Settings](err)
	}
	theme, err := internal.ParseTheme(string(settings.Theme))
	if err != nil {
		return fail[internal.Settings](err)
	}
	settings.Theme = theme
	settings.ValorantPath = strings.TrimSpace(settings.ValorantPath)

	if settings.ValorantPath != "" {
		if err := internal.ValidateInstallDir(settings.ValorantPath); err != nil {
			internal.LogWarn("Saving install path that is not usable yet: %v", err)
		}
	}
	if err := internal.SaveSettings(s.settings, settings); err != nil {
		return fail[internal.Settings](err)
	}
	if theme != previous.Theme {
		s.publish(Event{Name: EventThemeChanged, Theme: theme})
	}
	return ok(settings)
}

// PickInstallDir proposes a VALORANT install directory
func (s *Service) PickInstallDir() Result[string] {
	dir, err := s.pickDir()
	if err != nil {
		return fail[string](err)
	}
	return ok(dir)
}

// OpenExternalURL opens an http(s) link in the system browser
func (s *Service) OpenExternalURL(raw string) Result[bool] {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fail[bool](fmt.Errorf("invalid url %q: %w", raw, err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fail[bool](fmt.Errorf("refusing to open %q: only http and https links are allowed", raw))
	}
	if s.openURL == nil {
		return fail[bool](errors.New("no browser available"))
	}
	if err := s.openURL(u.String()); err != nil {
		return fail[bool](fmt.Errorf("failed to open %s: %w", u, err))
	}
	return ok(true)
}

// ExportAccounts writes the account metadata in format and returns the count
func (s *Service) ExportAccounts(format string, w io.Writer) Result[int] {
	exporter, err := export.NewExporter(format)
	if err != nil {
		return fail[int](err)
	}
	accounts := s.directory.List()
	if err := exporter.Export(accounts, w); err != nil {
		return fail[int](err)
	}
	return ok(len(accounts))
}

// DetectInstallDir returns the first usual install directory that exists
func DetectInstallDir() (string, error) {
	candidates := internal.InstallDirCandidates()
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", fmt.Errorf("%w: none of %s exist", internal.ErrTargetNotConfigured, strings.Join(candidates, ", "))
}
