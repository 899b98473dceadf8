// Package session imports the account currently signed in to the Riot Client.
package session

import (
	"fmt"
	"os"

	"github.com/iksnae/valswitch/internal"
	"github.com/iksnae/valswitch/internal/codec"
)

// displayPrefixLen is how much of the owner id goes into a synthesized name
const displayPrefixLen = 8

// Imported is a session recovered from the Riot Client's files
type Imported struct {
	Account internal.Account
	Secret  internal.SecretRecord
	Paths   internal.RiotPaths
}

// Importer reads the live Riot Client session
type Importer struct {
	// Root overrides the Riot Games data root; empty means the OS default.
	Root string
}

// NewImporter creates an importer rooted at root
func NewImporter(root string) *Importer {
	return &Importer{Root: root}
}

// ImportCurrentSession locates the Riot Client data directory, decodes its
// private settings and returns the session with a synthesized account.
func (im *Importer) ImportCurrentSession() (Imported, error) {
	paths, err := internal.DetectRiotPaths(im.Root)
	if err != nil {
		return Imported{}, err
	}

	path := paths.PrivateSettingsPath()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Imported{}, fmt.Errorf("%w: %v", internal.ErrNoActiveSession, err)
	}

	cookies, ok := codec.Decode(raw)
	if !ok {
		return Imported{}, fmt.Errorf("%w: %s has no session cookies", internal.ErrNoActiveSession, path)
	}

	secret := codec.RecordFromCookies(cookies)
	internal.LogDebug("Imported session for %s from %s (%s)", secret.Sub, path, paths.Variant)

	return Imported{
		Account: internal.Account{
			ID:          secret.Sub,
			DisplayName: DisplayNameFor(secret.Sub),
			Region:      internal.DefaultRegion,
		},
		Secret: secret,
		Paths:  paths,
	}, nil
}

// DisplayNameFor builds a placeholder name from the owner id, since the
// session does not carry the player's name.
func DisplayNameFor(ownerID string) string {
	short := ownerID
	if len(short) > displayPrefixLen {
		short = short[:displayPrefixLen]
	}
	return "Account " + short
}
