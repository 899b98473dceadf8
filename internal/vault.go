package internal

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// DefaultKeyringService is the keyring service all account secrets share
const DefaultKeyringService = "valswitch"

// KeyringAPI is the minimal OS keyring surface the vault needs.
// service is the fixed namespace, account is the account id.
type KeyringAPI interface {
	Get(service, account string) (string, error)
	Set(service, account, value string) error
	Delete(service, account string) error
}

type osKeyring struct{}

func (osKeyring) Get(service, account string) (string, error) {
	return keyring.Get(service, account)
}

func (osKeyring) Set(service, account, value string) error {
	return keyring.Set(service, account, value)
}

func (osKeyring) Delete(service, account string) error {
	return keyring.Delete(service, account)
}

// DefaultKeyring returns the OS keyring (Credential Manager, Keychain or Secret Service)
func DefaultKeyring() KeyringAPI {
	return osKeyring{}
}

// Vault stores one SecretRecord per account id in the OS keyring
type Vault struct {
	service string
	kr      KeyringAPI
}

// NewVault creates a vault; a nil keyring means the OS keyring
func NewVault(service string, kr KeyringAPI) *Vault {
	if service == "" {
		service = DefaultKeyringService
	}
	if kr == nil {
		kr = DefaultKeyring()
	}
	return &Vault{service: service, kr: kr}
}

// Service returns the keyring service namespace
func (v *Vault) Service() string {
	return v.service
}

// Store writes the record as a flat JSON map under accountID
func (v *Vault) Store(accountID string, record SecretRecord) error {
	if accountID == "" {
		return &VaultError{Op: "store", Kind: ErrIncompleteAccountData, Err: errors.New("account id is required")}
	}
	if !record.HasSession() {
		return &VaultError{Op: "store", AccountID: accountID, Kind: ErrIncompleteAccountData, Err: errors.New("ssid is required")}
	}
	if record.Sub != "" && record.Sub != accountID {
		return &VaultError{
			Op:        "store",
			AccountID: accountID,
			Kind:      ErrIncompleteAccountData,
			Err:       fmt.Errorf("record belongs to %s", record.Sub),
		}
	}

	payload, err := json.Marshal(record.ToMap())
	if err != nil {
		return &VaultError{Op: "store", AccountID: accountID, Kind: ErrVaultUnavailable, Err: err}
	}
	if err := v.kr.Set(v.service, accountID, string(payload)); err != nil {
		return &VaultError{Op: "store", AccountID: accountID, Kind: ErrVaultUnavailable, Err: err}
	}

	LogDebug("Stored secrets for %s", accountID)
	return nil
}

// Retrieve returns the record for accountID. A missing entry is reported as
// (zero, false, nil), never as an error.
func (v *Vault) Retrieve(accountID string) (SecretRecord, bool, error) {
	payload, err := v.kr.Get(v.service, accountID)
	if errors.Is(err, keyring.ErrNotFound) {
		return SecretRecord{}, false, nil
	}
	if err != nil {
		return SecretRecord{}, false, &VaultError{Op: "retrieve", AccountID: accountID, Kind: ErrVaultRead, Err: err}
	}

	var fields map[string]string
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return SecretRecord{}, false, &VaultError{
			Op:        "retrieve",
			AccountID: accountID,
			Kind:      ErrVaultRead,
			Err:       &ParseError{Source: "vault", Key: accountID, Err: err},
		}
	}

	record := SecretRecordFromMap(fields)
	if record.Sub != "" && record.Sub != accountID {
		LogWarn("Vault entry %s carries owner id %s", accountID, record.Sub)
	}
	return record, true, nil
}

// Delete removes the entry; deleting a missing entry succeeds
func (v *Vault) Delete(accountID string) error {
	err := v.kr.Delete(v.service, accountID)
	if err == nil || errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return &VaultError{Op: "delete", AccountID: accountID, Kind: ErrVaultUnavailable, Err: err}
}
