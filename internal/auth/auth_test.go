package auth

import (
	"context"
	"testing"

	"github.com/iksnae/valswitch/internal"
	"github.com/stretchr/testify/assert"
)

func TestPlaceholder(t *testing.T) {
	var a Authenticator = Placeholder{}

	tests := []struct {
		name     string
		username string
		password string
		want     error
	}{
		{name: "credentials", username: "player", password: "hunter2", want: internal.ErrAuthUnsupported},
		{name: "missing username", username: "  ", password: "hunter2", want: internal.ErrIncompleteAccountData},
		{name: "missing password", username: "player", want: internal.ErrIncompleteAccountData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := a.AuthenticateWithCredentials(context.Background(), tt.username, tt.password)
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, record.HasSession())
		})
	}
}

func TestPlaceholder_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Placeholder{}.AuthenticateWithCredentials(ctx, "player", "hunter2")
	assert.ErrorIs(t, err, context.Canceled)
}
