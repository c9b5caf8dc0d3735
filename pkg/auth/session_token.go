// Package auth issues and validates the signed tokens that bind a browser
// to its in-memory session.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "ledger"

var ErrInvalidToken = errors.New("invalid session token")

type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

func NewTokenManager(secretKey string, tokenDuration time.Duration) *TokenManager {
	return &TokenManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
}

func (m *TokenManager) GenerateToken(sessionID uuid.UUID) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		SessionID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// TokenInfo is what a valid token says about its session.
type TokenInfo struct {
	SessionID uuid.UUID
	ExpiresAt time.Time
}

// ParseToken checks the signature, issuer and expiry.
func (m *TokenManager) ParseToken(tokenString string) (TokenInfo, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secretKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return TokenInfo{}, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return TokenInfo{}, ErrInvalidToken
	}
	return TokenInfo{SessionID: id, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// ValidateToken returns the session id of a valid token.
func (m *TokenManager) ValidateToken(tokenString string) (uuid.UUID, error) {
	info, err := m.ParseToken(tokenString)
	if err != nil {
		return uuid.Nil, err
	}
	return info.SessionID, nil
}

// NeedsRefresh reports whether less than half of the token's lifetime is
// left. Active sessions get a new token so it never expires mid-use.
func (m *TokenManager) NeedsRefresh(info TokenInfo) bool {
	return time.Until(info.ExpiresAt) < m.tokenDuration/2
}

func (m *TokenManager) TokenDuration() time.Duration {
	return m.tokenDuration
}
