// Package auth defines how an account could be signed in with credentials.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/iksnae/valswitch/internal"
)

// Authenticator exchanges a username and password for a session.
// Implementations return internal.ErrMFARequired when the account needs a
// second factor before a session is issued.
type Authenticator interface {
	AuthenticateWithCredentials(ctx context.Context, username, password string) (internal.SecretRecord, error)
}

// Placeholder rejects every attempt; sessions are imported from the Riot Client instead
type Placeholder struct{}

// AuthenticateWithCredentials always fails with internal.ErrAuthUnsupported
func (Placeholder) AuthenticateWithCredentials(ctx context.Context, username, password string) (internal.SecretRecord, error) {
	if err := ctx.Err(); err != nil {
		return internal.SecretRecord{}, err
	}
	if strings.TrimSpace(username) == "" || password == "" {
		return internal.SecretRecord{}, fmt.Errorf("%w: username and password are required", internal.ErrIncompleteAccountData)
	}
	internal.LogDebug("Credential login requested for %q", username)
	return internal.SecretRecord{}, internal.ErrAuthUnsupported
}
