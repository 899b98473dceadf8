package internal

import (
	"errors"
	"fmt"
)

// Error kinds. Callers compare with errors.Is.
var (
	ErrVaultUnavailable      = errors.New("secure storage unavailable")
	ErrVaultRead             = errors.New("secure storage read failed")
	ErrIncompleteAccountData = errors.New("incomplete account data")
	ErrTargetNotConfigured   = errors.New("valorant install path not configured")
	ErrExecutableNotFound    = errors.New("riot client executable not found")
	ErrPathResolutionFailed  = errors.New("riot client data directories not found")
	ErrConfigWriteFailed     = errors.New("failed to write riot client config")
	ErrSpawnFailed           = errors.New("failed to start riot client")
	ErrNoActiveSession       = errors.New("no active riot client session")
	ErrDataDirNotFound       = errors.New("riot client data directory not found")
	ErrAccountNotFound       = errors.New("account not found")
	ErrAuthUnsupported       = errors.New("direct login is not supported, import the current session instead")
	ErrMFARequired           = errors.New("multi-factor authentication required")
	ErrUnexpected            = errors.New("unexpected failure")
)

// StorageError represents errors accessing the settings store
type StorageError struct {
	Path string
	Op   string // "open", "read", "write"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError represents errors parsing data
type ParseError struct {
	Source string // "accounts", "manifest", "vault"
	Key    string // storage key or file path
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// VaultError represents a failed secure storage operation for one account.
type VaultError struct {
	Op        string // "store", "retrieve", "delete"
	AccountID string
	Kind      error
	Err       error
}

func (e *VaultError) Error() string {
	return fmt.Sprintf("vault %s [%s]: %v: %v", e.Op, e.AccountID, e.Kind, e.Err)
}

func (e *VaultError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// LaunchError represents a launch that stopped at a given step.
type LaunchError struct {
	AccountID string
	Step      string
	Kind      error
	Err       error
}

func (e *LaunchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("launch [%s] %s: %v", e.AccountID, e.Step, e.Kind)
	}
	return fmt.Sprintf("launch [%s] %s: %v: %v", e.AccountID, e.Step, e.Kind, e.Err)
}

func (e *LaunchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
