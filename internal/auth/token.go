// Package auth issues and verifies bearer tokens and resolves caller roles.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrUnauthorized is returned when a token is missing, malformed, forged or expired.
var ErrUnauthorized = errors.New("unauthorized access")

// ErrForbidden is returned when an authenticated caller lacks the required role.
var ErrForbidden = errors.New("forbidden access")

// Claims is the verified content of a token. Only the email is trusted; any
// role the client put into the payload is ignored.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 tokens. It keeps no state.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService constructs a TokenService.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs the supplied claims. The payload must carry an email; iat, exp
// and sub are always overwritten.
func (s *TokenService) Issue(claims map[string]any) (string, error) {
	email, _ := claims["email"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	if err := model.ValidateVar("email", email, "required,email"); err != nil {
		return "", err
	}

	now := s.now()
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	delete(mc, "nbf")
	mc["email"] = email
	mc["sub"] = email
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(s.ttl).Unix()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry. It never touches a store.
func (s *TokenService) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if !parsed.Valid || claims.Email == "" {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
