package service

import (
	"errors"
	"testing"
	"time"

	"ledger/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestSessionStore_CreateGet(t *testing.T) {
	store := NewSessionStore(time.Hour, zap.NewNop())
	session := store.Create()

	if session.Stage != models.StageIdle {
		t.Errorf("new session stage = %s, want idle", session.Stage)
	}
	got, err := store.Get(session.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != session.ID {
		t.Errorf("Get returned %s, want %s", got.ID, session.ID)
	}
	if _, err := store.Get(uuid.New()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}

	store.Delete(session.ID)
	if store.Len() != 0 {
		t.Errorf("Len = %d after delete", store.Len())
	}
}

func TestSessionStore_Sweep(t *testing.T) {
	store := NewSessionStore(time.Hour, zap.NewNop())
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	stale := store.Create()
	busy := store.Create()
	entry, _ := store.entry(busy.ID)
	entry.mu.Lock()
	entry.session.Stage = models.StageParsing
	entry.mu.Unlock()

	now = now.Add(2 * time.Hour)
	fresh := store.Create()

	if _, err := store.Get(stale.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Error("stale session should have been evicted")
	}
	if _, err := store.Get(busy.ID); err != nil {
		t.Error("session with a run in flight must not be evicted")
	}
	if _, err := store.Get(fresh.ID); err != nil {
		t.Error("fresh session missing")
	}
	if store.Sweep() != 0 {
		t.Error("second sweep should remove nothing")
	}
}

func TestSessionStore_TouchKeepsSessionAlive(t *testing.T) {
	store := NewSessionStore(time.Hour, zap.NewNop())
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	session := store.Create()

	now = now.Add(50 * time.Minute)
	if !store.Touch(session.ID) {
		t.Fatal("Touch reported a live session as missing")
	}

	now = now.Add(50 * time.Minute)
	if n := store.Sweep(); n != 0 {
		t.Fatalf("Sweep evicted %d sessions seen 50 minutes ago", n)
	}

	now = now.Add(2 * time.Hour)
	if n := store.Sweep(); n != 1 {
		t.Errorf("Sweep evicted %d, want 1", n)
	}
	if store.Touch(session.ID) {
		t.Error("Touch should report an evicted session as missing")
	}
}

func TestSessionStore_CreateSweepsAtMostOncePerInterval(t *testing.T) {
	store := NewSessionStore(time.Minute, zap.NewNop())
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	first := store.Create()

	// first has expired, but the last sweep ran a second ago
	now = now.Add(2 * time.Minute)
	store.lastSweep = now.Add(-time.Second)
	store.Create()
	if _, err := store.Get(first.ID); err != nil {
		t.Fatal("Create swept before the interval elapsed")
	}

	now = now.Add(sweepEvery)
	store.Create()
	if _, err := store.Get(first.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Error("expired session survived a due sweep")
	}
	if store.Len() != 2 {
		t.Errorf("Len = %d, want 2", store.Len())
	}
}
