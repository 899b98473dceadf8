package codec

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/iksnae/valswitch/internal"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is written when no locale is configured
const DefaultLocale = "en_US"

// LivePatchline is the only distribution channel valswitch launches
const LivePatchline = "live"

// Decode extracts the session cookies from a private settings document.
// It reports false when the document is empty or malformed, when the cookie
// path is missing (not logged in), or when ssid or sub is missing.
func Decode(raw []byte) (map[string]string, bool) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, false
	}

	var doc privateSettings
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		internal.LogDebug("Private settings are not valid YAML: %v", err)
		return nil, false
	}

	cookies := doc.Private.RiotLogin.Persist.Session.Cookies
	if len(cookies) == 0 {
		return nil, false
	}

	out := make(map[string]string, len(cookies))
	for _, c := range cookies {
		if c.Name == "" {
			continue
		}
		out[c.Name] = c.Value
	}

	if out[internal.FieldSSID] == "" || out[internal.FieldSub] == "" {
		return nil, false
	}
	return out, true
}

// Encode renders the private settings (session cookies) and client settings
// (region, locale, patchline) documents. All schema cookies are written;
// missing values become empty strings.
func Encode(cookies map[string]string, region, locale string) (private, client []byte, err error) {
	if cookies[internal.FieldSSID] == "" || cookies[internal.FieldSub] == "" {
		return nil, nil, fmt.Errorf("%w: ssid and sub are required", internal.ErrIncompleteAccountData)
	}

	var priv privateSettings
	entries := make([]Cookie, 0, len(CookieSchema))
	for _, field := range CookieSchema {
		entries = append(entries, Cookie{
			Domain:     CookieDomain,
			HostOnly:   true,
			HTTPOnly:   field.HTTPOnly,
			Name:       field.Name,
			Path:       CookiePath,
			Persistent: field.Persistent,
			SecureOnly: field.SecureOnly,
			Value:      cookies[field.Name],
		})
	}
	priv.Private.RiotLogin.Persist.Session.Cookies = entries

	if locale == "" {
		locale = DefaultLocale
	}
	var cs clientSettings
	cs.Install.Globals.Region = strings.ToUpper(strings.TrimSpace(region))
	cs.Install.Globals.Locale = locale
	cs.Patchlines.Valorant = LivePatchline

	if private, err = marshal(priv); err != nil {
		return nil, nil, fmt.Errorf("failed to encode private settings: %w", err)
	}
	if client, err = marshal(cs); err != nil {
		return nil, nil, fmt.Errorf("failed to encode client settings: %w", err)
	}
	return private, client, nil
}

// CookiesFromRecord maps a SecretRecord to cookie names
func CookiesFromRecord(r internal.SecretRecord) map[string]string {
	return map[string]string{
		internal.FieldASID: r.ASID,
		internal.FieldCCID: r.CCID,
		internal.FieldCLID: r.CLID,
		internal.FieldSub:  r.Sub,
		internal.FieldSSID: r.SSID,
	}
}

// RecordFromCookies maps decoded cookies to a SecretRecord
func RecordFromCookies(cookies map[string]string) internal.SecretRecord {
	return internal.SecretRecordFromMap(cookies)
}

func marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
