package internal

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"
)

// Directory is the in-memory account list backed by the "accounts" key.
// The whole document is read by Load and rewritten on every mutation.
type Directory struct {
	mu       sync.RWMutex
	kv       KeyValueStore
	accounts []Account
	now      func() time.Time
}

// NewDirectory creates a directory and loads the persisted accounts
func NewDirectory(kv KeyValueStore) (*Directory, error) {
	d := &Directory{kv: kv, now: time.Now}
	if err := d.Load(); err != nil {
		return nil, err
	}
	return d, nil
}

// Load replaces the cache with the persisted document
func (d *Directory) Load() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	raw, ok, err := d.kv.Get(KeyAccounts)
	if err != nil {
		return fmt.Errorf("failed to read accounts: %w", err)
	}
	if !ok || raw == "" {
		d.accounts = nil
		return nil
	}

	var accounts []Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return &ParseError{Source: "accounts", Key: KeyAccounts, Err: err}
	}
	d.accounts = accounts
	return nil
}

// commit writes next and only then makes it the cached list
func (d *Directory) commit(next []Account) error {
	doc := next
	if doc == nil {
		doc = []Account{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal accounts: %w", err)
	}
	if err := d.kv.Set(KeyAccounts, string(data)); err != nil {
		return fmt.Errorf("failed to write accounts: %w", err)
	}
	d.accounts = next
	return nil
}

// snapshot copies the cached list so a mutation can be staged on it
func (d *Directory) snapshot() []Account {
	next := make([]Account, len(d.accounts))
	for i, a := range d.accounts {
		next[i] = cloneAccount(a)
	}
	return next
}

func (d *Directory) index(id string) int {
	return slices.IndexFunc(d.accounts, func(a Account) bool { return a.ID == id })
}

// List returns the accounts in insertion order
func (d *Directory) List() []Account {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Account, len(d.accounts))
	for i, a := range d.accounts {
		out[i] = cloneAccount(a)
	}
	return out
}

// Get returns the account with the given id
func (d *Directory) Get(id string) (Account, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i := d.index(id)
	if i < 0 {
		return Account{}, false
	}
	return cloneAccount(d.accounts[i]), true
}

// Upsert inserts a new account or merges into an existing one.
// CreatedAt is never overwritten and LastUsedAt is only replaced by a non-nil value.
func (d *Directory) Upsert(a Account) error {
	if a.ID == "" {
		return fmt.Errorf("%w: account id is required", ErrIncompleteAccountData)
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	region, err := NormalizeRegion(a.Region)
	if err != nil {
		return err
	}

	i := d.index(a.ID)
	if i < 0 {
		a.Region = region
		if a.CreatedAt.IsZero() {
			a.CreatedAt = d.now().UTC()
		}
		return d.commit(append(d.snapshot(), cloneAccount(a)))
	}

	next := d.snapshot()
	existing := &next[i]
	if a.DisplayName != "" {
		existing.DisplayName = a.DisplayName
	}
	if a.Region != "" {
		existing.Region = region
	}
	if a.LastUsedAt != nil {
		t := *a.LastUsedAt
		existing.LastUsedAt = &t
	}
	return d.commit(next)
}

// Remove deletes the account; removing an unknown id is a no-op
func (d *Directory) Remove(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.index(id)
	if i < 0 {
		return nil
	}
	return d.commit(slices.Delete(d.snapshot(), i, i+1))
}

// TouchLastUsed stamps LastUsedAt with the current time
func (d *Directory) TouchLastUsed(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	now := d.now().UTC()
	next := d.snapshot()
	next[i].LastUsedAt = &now
	return d.commit(next)
}

func cloneAccount(a Account) Account {
	if a.LastUsedAt != nil {
		t := *a.LastUsedAt
		a.LastUsedAt = &t
	}
	return a
}
