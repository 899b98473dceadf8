package internal

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/iksnae/valswitch/testutil"
)

func TestOpenSettingsStore(t *testing.T) {
	dataDir := filepath.Join(testutil.CreateTempDir(t), "nested", "valswitch")

	store, err := OpenSettingsStore(dataDir)
	if err != nil {
		t.Fatalf("OpenSettingsStore() error = %v", err)
	}
	defer store.Close()

	if store.Path() != filepath.Join(dataDir, SettingsFileName) {
		t.Errorf("Path() = %q", store.Path())
	}

	if err := store.Set(KeyTheme, "light"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := store.Get(KeyTheme)
	if err != nil || !ok || got != "light" {
		t.Errorf("Get() = (%q, %v, %v), want (light, true, nil)", got, ok, err)
	}

	keys, err := store.Keys()
	if err != nil || len(keys) != 1 || keys[0] != KeyTheme {
		t.Errorf("Keys() = %v, %v", keys, err)
	}
}

func TestSettingsStore_Reopen(t *testing.T) {
	dataDir := testutil.CreateTempDir(t)

	store, err := OpenSettingsStore(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := SaveSettings(store, Settings{ValorantPath: "/games/valorant", Theme: ThemeDark}); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	store.Close()

	store, err = OpenSettingsStore(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	s, err := LoadSettings(store)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.ValorantPath != "/games/valorant" || s.Theme != ThemeDark {
		t.Errorf("LoadSettings() = %+v", s)
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings(memKV{KeyTheme: "neon"})
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.Theme != ThemeSystem {
		t.Errorf("invalid stored theme should fall back to system, got %q", s.Theme)
	}
	if s.ValorantPath != "" {
		t.Errorf("ValorantPath = %q, want empty", s.ValorantPath)
	}
}

func TestSaveSettings_RejectsTheme(t *testing.T) {
	kv := memKV{}
	if err := SaveSettings(kv, Settings{Theme: "neon"}); err == nil {
		t.Error("SaveSettings() should reject unknown theme")
	}
	if len(kv) != 0 {
		t.Errorf("nothing should be written on validation failure, got %v", kv)
	}
}

func TestValidateInstallDir(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	file := filepath.Join(dir, "file.txt")
	testutil.WriteFile(t, file, []byte("x"))

	tests := []struct {
		name    string
		dir     string
		wantErr bool
	}{
		{name: "existing dir", dir: dir},
		{name: "empty", dir: "", wantErr: true},
		{name: "missing", dir: filepath.Join(dir, "missing"), wantErr: true},
		{name: "file", dir: file, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInstallDir(tt.dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateInstallDir() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrTargetNotConfigured) {
				t.Errorf("error should wrap ErrTargetNotConfigured, got %v", err)
			}
		})
	}
}
