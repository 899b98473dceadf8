package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// Settings store keys
const (
	KeyAccounts     = "accounts"
	KeyValorantPath = "valorantPath"
	KeyTheme        = "theme"
)

// SettingsFileName is the database file created inside the data directory
const SettingsFileName = "settings.db"

// KeyValueStore is the opaque get/set map the directory and settings live in
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Settings are the user preferences shown in the settings form
type Settings struct {
	ValorantPath string `json:"valorantPath"`
	Theme        Theme  `json:"theme"`
}

// SettingsStore persists settings and the account document in SQLite
type SettingsStore struct {
	db   *sql.DB
	path string
}

// OpenSettingsStore opens <dataDir>/settings.db, creating the directory if needed
func OpenSettingsStore(dataDir string) (*SettingsStore, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, &StorageError{Path: dataDir, Op: "open", Err: err}
	}

	path := filepath.Join(dataDir, SettingsFileName)
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	return &SettingsStore{db: db, path: path}, nil
}

// NewSettingsStore wraps an already opened database
func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db, path: ":memory:"}
}

// Path returns the database file path
func (s *SettingsStore) Path() string {
	return s.path
}

// Close closes the underlying database
func (s *SettingsStore) Close() error {
	return s.db.Close()
}

// Get returns the raw value for key
func (s *SettingsStore) Get(key string) (string, bool, error) {
	value, ok, err := QueryKV(s.db, key)
	if err != nil {
		return "", false, &StorageError{Path: s.path, Op: "read", Err: err}
	}
	return value, ok, nil
}

// Set replaces the raw value for key
func (s *SettingsStore) Set(key, value string) error {
	if err := UpsertKV(s.db, key, value); err != nil {
		return &StorageError{Path: s.path, Op: "write", Err: err}
	}
	return nil
}

// Keys lists the stored keys, used by the healthcheck
func (s *SettingsStore) Keys() ([]string, error) {
	pairs, err := QueryAllKV(s.db)
	if err != nil {
		return nil, &StorageError{Path: s.path, Op: "read", Err: err}
	}
	keys := make([]string, 0, len(pairs))
	for _, p := range pairs {
		keys = append(keys, p.Key)
	}
	return keys, nil
}

// LoadSettings reads the settings form values; missing keys get defaults
func LoadSettings(kv KeyValueStore) (Settings, error) {
	path, _, err := kv.Get(KeyValorantPath)
	if err != nil {
		return Settings{}, err
	}
	rawTheme, _, err := kv.Get(KeyTheme)
	if err != nil {
		return Settings{}, err
	}
	theme, err := ParseTheme(rawTheme)
	if err != nil {
		LogWarn("Ignoring stored theme: %v", err)
		theme = ThemeSystem
	}
	return Settings{ValorantPath: path, Theme: theme}, nil
}

// SaveSettings validates and writes the settings form values
func SaveSettings(kv KeyValueStore, s Settings) error {
	theme, err := ParseTheme(string(s.Theme))
	if err != nil {
		return err
	}
	if err := kv.Set(KeyValorantPath, s.ValorantPath); err != nil {
		return err
	}
	if err := kv.Set(KeyTheme, string(theme)); err != nil {
		return err
	}
	return nil
}

// ValidateInstallDir checks that dir exists and is a directory
func ValidateInstallDir(dir string) error {
	if dir == "" {
		return ErrTargetNotConfigured
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTargetNotConfigured, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrTargetNotConfigured, dir)
	}
	return nil
}
