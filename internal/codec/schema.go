// Package codec reads and writes the Riot Client's YAML settings files.
package codec

import "github.com/iksnae/valswitch/internal"

// SchemaVersion identifies the cookie layout below. The Riot Client rejects
// a session file unless all five entries are present with these flags.
const SchemaVersion = 1

// Fixed cookie attributes
const (
	CookieDomain = "auth.riotgames.com"
	CookiePath   = "/"
)

// CookieSpec describes one fixed cookie entry
type CookieSpec struct {
	Name       string
	HTTPOnly   bool
	Persistent bool
	SecureOnly bool
}

// CookieSchema is the ordered cookie list written to the private settings file
var CookieSchema = []CookieSpec{
	{Name: internal.FieldASID, HTTPOnly: true, Persistent: false, SecureOnly: true},
	{Name: internal.FieldCCID, HTTPOnly: false, Persistent: true, SecureOnly: true},
	{Name: internal.FieldCLID, HTTPOnly: true, Persistent: true, SecureOnly: true},
	{Name: internal.FieldSub, HTTPOnly: false, Persistent: true, SecureOnly: true},
	{Name: internal.FieldSSID, HTTPOnly: true, Persistent: true, SecureOnly: true},
}

// Cookie is one entry of private.riot-login.persist.session.cookies
type Cookie struct {
	Domain     string `yaml:"domain"`
	HostOnly   bool   `yaml:"hostOnly"`
	HTTPOnly   bool   `yaml:"httpOnly"`
	Name       string `yaml:"name"`
	Path       string `yaml:"path"`
	Persistent bool   `yaml:"persistent"`
	SecureOnly bool   `yaml:"secureOnly"`
	Value      string `yaml:"value"`
}

type privateSettings struct {
	Private struct {
		RiotLogin struct {
			Persist struct {
				Session struct {
					Cookies []Cookie `yaml:"cookies"`
				} `yaml:"session"`
			} `yaml:"persist"`
		} `yaml:"riot-login"`
	} `yaml:"private"`
}

type clientSettings struct {
	Install struct {
		Globals struct {
			Region string `yaml:"region"`
			Locale string `yaml:"locale"`
		} `yaml:"globals"`
	} `yaml:"install"`
	Patchlines struct {
		Valorant string `yaml:"valorant"`
	} `yaml:"patchlines"`
}
