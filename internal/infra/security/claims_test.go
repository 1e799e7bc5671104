package security

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rukorent/internal/domain/session"
)

var now = time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)

func signed(t *testing.T, claims Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("remote-secret"))
	require.NoError(t, err)
	return tok
}

func newResolver(fallback bool) *SessionResolver {
	r := NewSessionResolver(fallback)
	r.Now = func() time.Time { return now }
	return r
}

func TestResolveFromClaims(t *testing.T) {
	tok := signed(t, Claims{
		UserID:           "665f1c",
		Role:             "owner",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
	})
	sess, err := newResolver(false).Resolve(tok, nil)
	require.NoError(t, err)
	assert.Equal(t, session.Session{Token: tok, UserID: "665f1c", Role: session.RoleOwner}, sess)
}

func TestResolveFallsBackToSub(t *testing.T) {
	tok := signed(t, Claims{Sub: "user-7"})
	sess, err := newResolver(false).Resolve(tok, nil)
	require.NoError(t, err)
	assert.Equal(t, "user-7", sess.UserID)
	assert.Equal(t, session.RoleTenant, sess.Role)
}

func TestResolveExpired(t *testing.T) {
	tok := signed(t, Claims{
		UserID:           "665f1c",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))},
	})
	_, err := newResolver(false).Resolve(tok, nil)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestResolveOpaqueToken(t *testing.T) {
	headers := map[string]string{"X-User-ID": "665f1c", "X-User-Role": "admin"}
	lookup := func(k string) string { return headers[k] }

	sess, err := newResolver(true).Resolve("opaque-token", lookup)
	require.NoError(t, err)
	assert.Equal(t, "665f1c", sess.UserID)
	assert.Equal(t, session.RoleAdmin, sess.Role)

	sess, err = newResolver(false).Resolve("opaque-token", lookup)
	require.NoError(t, err)
	assert.ErrorIs(t, sess.Require(), session.ErrUnauthenticated)
}

func TestResolveEmptyToken(t *testing.T) {
	_, err := newResolver(true).Resolve("  ", nil)
	assert.ErrorIs(t, err, session.ErrUnauthenticated)
}
