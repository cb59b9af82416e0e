package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(at time.Time) (*TokenService, *time.Time) {
	clock := at
	s := NewTokenService("test-secret", time.Hour)
	s.now = func() time.Time { return clock }
	return s, &clock
}

func TestIssueAndVerify(t *testing.T) {
	s, _ := newTestTokenService(time.Now())

	tok, err := s.Issue(map[string]any{"email": "Student@Academy.io", "name": "Sam"})
	require.NoError(t, err)

	claims, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "student@academy.io", claims.Email)
	assert.Equal(t, "student@academy.io", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestIssueRequiresEmail(t *testing.T) {
	s, _ := newTestTokenService(time.Now())

	_, err := s.Issue(map[string]any{"name": "nobody"})
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "email", verr.Field)
}

func TestTokenExpiryWindow(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s, clock := newTestTokenService(issuedAt)

	tok, err := s.Issue(map[string]any{"email": "s@academy.io"})
	require.NoError(t, err)

	*clock = issuedAt.Add(59 * time.Minute)
	_, err = s.Verify(tok)
	assert.NoError(t, err)

	*clock = issuedAt.Add(61 * time.Minute)
	_, err = s.Verify(tok)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	s, _ := newTestTokenService(time.Now())
	other := NewTokenService("other-secret", time.Hour)

	forged, err := other.Issue(map[string]any{"email": "s@academy.io"})
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"email": "s@academy.io",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "s@academy.io",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"empty":     "",
		"garbage":   "not.a.token",
		"forged":    forged,
		"alg none":  unsigned,
		"no expiry": noExpiry,
	} {
		_, err := s.Verify(tok)
		assert.ErrorIs(t, err, ErrUnauthorized, name)
	}
}

func TestRoleClaimDoesNotEscalate(t *testing.T) {
	s, _ := newTestTokenService(time.Now())

	tok, err := s.Issue(map[string]any{"email": "s@academy.io", "role": "admin"})
	require.NoError(t, err)

	claims, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "s@academy.io", claims.Email)

	raw, err := json.Marshal(claims)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "role")

	users := &lookupStub{users: map[string]model.Role{"s@academy.io": model.RoleStudent}}
	role, err := NewRoleResolver(users, nil, quietLogger()).RoleOf(context.Background(), claims.Email)
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, role)
	assert.False(t, role.IsAny(model.RoleAdmin))
}
