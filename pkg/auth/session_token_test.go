package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	id := uuid.New()

	token, err := m.GenerateToken(id)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	got, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if got != id {
		t.Errorf("session id = %s, want %s", got, id)
	}
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)
	expired := NewTokenManager("secret", -time.Minute)

	foreign, _ := other.GenerateToken(uuid.New())
	stale, _ := expired.GenerateToken(uuid.New())

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"wrong key", foreign},
		{"expired", stale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.ValidateToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestTokenManager_NeedsRefresh(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	short := NewTokenManager("secret", 10*time.Minute)

	fresh, _ := m.GenerateToken(uuid.New())
	ageing, _ := short.GenerateToken(uuid.New())

	info, err := m.ParseToken(fresh)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if m.NeedsRefresh(info) {
		t.Error("new token should not need a refresh")
	}
	if left := time.Until(info.ExpiresAt); left <= 59*time.Minute || left > time.Hour {
		t.Errorf("ExpiresAt leaves %v", left)
	}

	info, err = m.ParseToken(ageing)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if !m.NeedsRefresh(info) {
		t.Error("token with 10 of 60 minutes left should be refreshed")
	}
}
