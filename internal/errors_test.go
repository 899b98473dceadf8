package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestStorageError(t *testing.T) {
	originalErr := errors.New("permission denied")
	err := &StorageError{
		Path: "/test/settings.db",
		Op:   "open",
		Err:  originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "storage error") {
		t.Errorf("StorageError.Error() should contain 'storage error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "/test/settings.db") {
		t.Errorf("StorageError.Error() should contain path, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("StorageError.Unwrap() should return original error")
	}
}

func TestParseError(t *testing.T) {
	originalErr := errors.New("invalid JSON")
	err := &ParseError{
		Source: "manifest",
		Key:    "RiotClientInstalls.json",
		Err:    originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "parse error") {
		t.Errorf("ParseError.Error() should contain 'parse error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "manifest") {
		t.Errorf("ParseError.Error() should contain source, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("ParseError.Unwrap() should return original error")
	}
}

func TestVaultError(t *testing.T) {
	backendErr := errors.New("dbus: no secret service")
	err := &VaultError{Op: "store", AccountID: "abc123", Kind: ErrVaultUnavailable, Err: backendErr}

	if !errors.Is(err, ErrVaultUnavailable) {
		t.Error("VaultError should match its kind")
	}
	if !errors.Is(err, backendErr) {
		t.Error("VaultError should match its cause")
	}
	if !strings.Contains(err.Error(), "abc123") {
		t.Errorf("VaultError.Error() should name the account, got %q", err.Error())
	}
}

func TestLaunchError(t *testing.T) {
	tests := []struct {
		name string
		err  *LaunchError
		kind error
		want string
	}{
		{
			name: "kind only",
			err:  &LaunchError{AccountID: "abc123", Step: "validate", Kind: ErrIncompleteAccountData},
			kind: ErrIncompleteAccountData,
			want: "launch [abc123] validate",
		},
		{
			name: "kind with cause",
			err: &LaunchError{
				AccountID: "abc123",
				Step:      "spawn",
				Kind:      ErrSpawnFailed,
				Err:       errors.New("exec format error"),
			},
			kind: ErrSpawnFailed,
			want: "exec format error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.kind)
			}
			if !strings.Contains(tt.err.Error(), tt.want) {
				t.Errorf("Error() = %q, want substring %q", tt.err.Error(), tt.want)
			}
		})
	}
}
