// Package testutil provides shared helpers for store, engine, and API
// tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/abubakkersiddiqq/taskflow/internal/model"
	"github.com/abubakkersiddiqq/taskflow/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewTestUser inserts a user row and returns its id. Projects and tasks
// reference users by id, so most tests need at least one.
func NewTestUser(t *testing.T, s *store.SQLiteStore, email string) string {
	t.Helper()

	user := model.User{
		ID:           uuid.New().String(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return user.ID
}
