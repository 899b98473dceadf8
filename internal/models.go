package internal

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// DefaultRegion is assigned to accounts that do not carry a region.
const DefaultRegion = "NA"

// Regions lists the shard regions the Riot Client accepts.
var Regions = []string{"NA", "EU", "AP", "KR", "LATAM", "BR"}

// NormalizeRegion upper-cases a region, defaulting to NA, and rejects unknown values
func NormalizeRegion(region string) (string, error) {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		return DefaultRegion, nil
	}
	if !slices.Contains(Regions, region) {
		return "", fmt.Errorf("unknown region %q (supported: %s)", region, strings.Join(Regions, ", "))
	}
	return region, nil
}

// Account is the non-secret metadata kept for one Riot account
type Account struct {
	ID          string     `json:"id" yaml:"id"`
	DisplayName string     `json:"displayName" yaml:"display_name"`
	Region      string     `json:"region" yaml:"region"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"created_at"`
	LastUsedAt  *time.Time `json:"lastUsedAt,omitempty" yaml:"last_used_at,omitempty"`
}

// Secret field names, shared by the vault payload and the session cookies.
const (
	FieldSSID = "ssid"
	FieldSub  = "sub"
	FieldASID = "asid"
	FieldCCID = "ccid"
	FieldCLID = "clid"
)

// SecretRecord holds the session identifiers for one account.
// SSID is the primary session id; Sub duplicates the account id.
type SecretRecord struct {
	SSID string
	Sub  string
	ASID string
	CCID string
	CLID string
}

// HasSession reports whether the primary session id is present
func (r SecretRecord) HasSession() bool {
	return r.SSID != ""
}

// Complete reports whether the record can be used for a launch
func (r SecretRecord) Complete() bool {
	return r.SSID != "" && r.Sub != ""
}

// ToMap flattens the record into the string map stored in the vault.
// Empty fields are omitted.
func (r SecretRecord) ToMap() map[string]string {
	m := make(map[string]string, 5)
	for k, v := range map[string]string{
		FieldSSID: r.SSID,
		FieldSub:  r.Sub,
		FieldASID: r.ASID,
		FieldCCID: r.CCID,
		FieldCLID: r.CLID,
	} {
		if v != "" {
			m[k] = v
		}
	}
	return m
}

// SecretRecordFromMap is the inverse of ToMap; unknown keys are ignored
func SecretRecordFromMap(m map[string]string) SecretRecord {
	return SecretRecord{
		SSID: m[FieldSSID],
		Sub:  m[FieldSub],
		ASID: m[FieldASID],
		CCID: m[FieldCCID],
		CLID: m[FieldCLID],
	}
}

// LaunchPhase is the state of a launch as seen by the UI
type LaunchPhase string

const (
	PhaseIdle      LaunchPhase = "idle"
	PhaseLaunching LaunchPhase = "launching"
	PhaseRunning   LaunchPhase = "running"
	PhaseError     LaunchPhase = "error"
	PhaseClosed    LaunchPhase = "closed"
)

// LaunchEvent is a launch status transition pushed to the UI
type LaunchEvent struct {
	AccountID string      `json:"accountId"`
	Phase     LaunchPhase `json:"phase"`
	Message   string      `json:"message,omitempty"`
	// Blocking marks failures the user has to fix in settings before retrying.
	Blocking bool `json:"blocking,omitempty"`
}

// Theme is the UI color scheme preference
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

// ParseTheme validates a theme name, defaulting to system when empty
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case "", ThemeSystem:
		return ThemeSystem, nil
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("unknown theme %q (supported: system, light, dark)", s)
	}
}
