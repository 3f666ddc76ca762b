// Package auth signs and verifies the HS256 bearer tokens of the API and
// hashes account passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"groupapi/internal/config"
)

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var (
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token has expired")
)

// Claims are the JWT claims of both token types. Subject holds the user's auth_uid.
type Claims struct {
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenManager issues and parses tokens.
type TokenManager struct {
	cfg config.JWTConfig
	now func() time.Time
}

func NewTokenManager(cfg config.JWTConfig) *TokenManager {
	return &TokenManager{cfg: cfg, now: time.Now}
}

// Issue signs a new access/refresh pair for subject.
func (m *TokenManager) Issue(subject string) (*TokenPair, error) {
	access, err := m.sign(subject, AccessToken)
	if err != nil {
		return nil, err
	}
	refresh, err := m.sign(subject, RefreshToken)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Parse verifies raw as a token of the expected type and returns its claims.
func (m *TokenManager) Parse(raw string, expected TokenType) (*Claims, error) {
	if raw == "" {
		return nil, ErrTokenInvalid
	}
	secret, _ := m.settings(expected)

	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if m.cfg.Issuer != "" && claims.Issuer != m.cfg.Issuer {
		return nil, ErrTokenInvalid
	}
	if claims.TokenType != string(expected) || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (m *TokenManager) sign(subject string, typ TokenType) (string, error) {
	secret, ttl := m.settings(typ)
	if len(secret) == 0 {
		return "", fmt.Errorf("%s token secret is not configured", typ)
	}

	now := m.now()
	claims := Claims{
		TokenType: string(typ),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    m.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return raw, nil
}

func (m *TokenManager) settings(typ TokenType) ([]byte, time.Duration) {
	if typ == RefreshToken {
		return []byte(m.cfg.RefreshTokenSecret), m.cfg.RefreshTokenExpiration
	}
	return []byte(m.cfg.AccessTokenSecret), m.cfg.AccessTokenExpiration
}
