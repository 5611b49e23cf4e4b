package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"marketplace-backend/models"
)

// The session tests run against a real TokenService rather than a mock so the
// gate is exercised end-to-end: sign a token, resolve it, classify the role.
func newSessionFixture() (*SessionService, *TokenService) {
	tokens := NewTokenService("test-secret", 15*time.Minute, 7*24*time.Hour)
	return NewSessionService(tokens), tokens
}

func TestResolve(t *testing.T) {
	t.Run("valid access token resolves to its identity", func(t *testing.T) {
		sessions, tokens := newSessionFixture()
		identity := buyerIdentity()
		pair, _, err := tokens.GenerateTokenPair(identity.UserID, identity.Email, identity.FullName, identity.Role)
		assert.NoError(t, err)

		resolved := sessions.Resolve(pair.AccessToken)

		assert.NotNil(t, resolved)
		assert.Equal(t, identity.UserID, resolved.UserID)
		assert.Equal(t, models.RoleCustomer, resolved.Role)
		assert.Equal(t, "customer-dashboard", resolved.DashboardTarget())
	})

	t.Run("developer role is preserved", func(t *testing.T) {
		sessions, tokens := newSessionFixture()
		pair, _, _ := tokens.GenerateTokenPair("dev-uuid", "dev@example.com", "Dev Example", models.RoleDeveloper)

		resolved := sessions.Resolve(pair.AccessToken)

		assert.True(t, resolved.IsDeveloper())
		assert.Equal(t, "developer-dashboard", resolved.DashboardTarget())
	})

	t.Run("unrecognized role degrades to customer", func(t *testing.T) {
		sessions, tokens := newSessionFixture()
		pair, _, _ := tokens.GenerateTokenPair("some-uuid", "x@example.com", "X", "superadmin")

		resolved := sessions.Resolve(pair.AccessToken)

		assert.NotNil(t, resolved)
		assert.Equal(t, models.RoleCustomer, resolved.Role)
	})

	t.Run("empty token is anonymous", func(t *testing.T) {
		sessions, _ := newSessionFixture()
		assert.Nil(t, sessions.Resolve(""))
	})

	t.Run("garbage token is anonymous, not an error", func(t *testing.T) {
		sessions, _ := newSessionFixture()
		assert.Nil(t, sessions.Resolve("not.a.jwt"))
	})

	t.Run("token signed with another secret is anonymous", func(t *testing.T) {
		sessions, _ := newSessionFixture()
		other := NewTokenService("other-secret", 15*time.Minute, time.Hour)
		pair, _, _ := other.GenerateTokenPair("some-uuid", "x@example.com", "X", models.RoleCustomer)

		assert.Nil(t, sessions.Resolve(pair.AccessToken))
	})

	t.Run("refresh token does not open a session", func(t *testing.T) {
		sessions, tokens := newSessionFixture()
		pair, _, _ := tokens.GenerateTokenPair("some-uuid", "x@example.com", "X", models.RoleCustomer)

		assert.Nil(t, sessions.Resolve(pair.RefreshToken))
	})
}
