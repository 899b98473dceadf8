package session

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/iksnae/valswitch/internal"
	"github.com/iksnae/valswitch/testutil"
)

func TestImportCurrentSession(t *testing.T) {
	tree := testutil.CreateRiotTree(t, testutil.PrivateSettingsYAML)

	got, err := NewImporter(tree.Root).ImportCurrentSession()
	if err != nil {
		t.Fatalf("ImportCurrentSession() error = %v", err)
	}

	if got.Account.ID != "abc123" {
		t.Errorf("Account.ID = %q, want abc123", got.Account.ID)
	}
	if got.Account.DisplayName != "Account abc123" {
		t.Errorf("Account.DisplayName = %q", got.Account.DisplayName)
	}
	if got.Account.Region != internal.DefaultRegion {
		t.Errorf("Account.Region = %q, want %q", got.Account.Region, internal.DefaultRegion)
	}
	want := internal.SecretRecord{SSID: "S1", Sub: "abc123", ASID: "A1", CCID: "C1", CLID: "L1"}
	if got.Secret != want {
		t.Errorf("Secret = %+v, want %+v", got.Secret, want)
	}
	if got.Paths.Variant != internal.VariantDefault {
		t.Errorf("Paths.Variant = %q", got.Paths.Variant)
	}
}

func TestImportCurrentSession_PrefersBeta(t *testing.T) {
	tree := testutil.CreateRiotTree(t, "")
	betaData := filepath.Join(tree.Root, "Beta", "Data")
	testutil.MkdirAll(t, betaData, filepath.Join(tree.Root, "Beta", "Config"))
	testutil.WriteFile(t, filepath.Join(betaData, internal.PrivateSettingsFile), []byte(testutil.PrivateSettingsYAML))

	got, err := NewImporter(tree.Root).ImportCurrentSession()
	if err != nil {
		t.Fatalf("ImportCurrentSession() error = %v", err)
	}
	if got.Paths.Variant != internal.VariantBeta {
		t.Errorf("Paths.Variant = %q, want beta", got.Paths.Variant)
	}
}

func TestImportCurrentSession_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "no data dir",
			setup:   func(t *testing.T) string { return testutil.CreateTempDir(t) },
			wantErr: internal.ErrDataDirNotFound,
		},
		{
			name:    "no session file",
			setup:   func(t *testing.T) string { return testutil.CreateRiotTree(t, "").Root },
			wantErr: internal.ErrNoActiveSession,
		},
		{
			name: "logged out",
			setup: func(t *testing.T) string {
				return testutil.CreateRiotTree(t, "private:\n  riot-login:\n    persist: {}\n").Root
			},
			wantErr: internal.ErrNoActiveSession,
		},
		{
			name: "session file is a directory",
			setup: func(t *testing.T) string {
				tree := testutil.CreateRiotTree(t, "")
				testutil.MkdirAll(t, filepath.Join(tree.DataDir, internal.PrivateSettingsFile))
				return tree.Root
			},
			wantErr: internal.ErrNoActiveSession,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewImporter(tt.setup(t)).ImportCurrentSession()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ImportCurrentSession() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDisplayNameFor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "abc", want: "Account abc"},
		{in: "0123456789abcdef", want: "Account 01234567"},
	}
	for _, tt := range tests {
		if got := DisplayNameFor(tt.in); got != tt.want {
			t.Errorf("DisplayNameFor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
