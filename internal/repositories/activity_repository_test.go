package repositories

import (
	"context"
	"fmt"
	"testing"
)

func TestActivityLogAndListRecent(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	activity := NewActivityRepository(store)
	ctx := context.Background()

	userID := createTestUser(t, users, "emp100", "Somchai", "employee")

	if err := activity.Log(ctx, &userID, "login", "Somchai logged in"); err != nil {
		t.Fatalf("Log: %v", err)
	}
	// Системные события пишутся без пользователя.
	if err := activity.Log(ctx, nil, "seed", "Initial data created"); err != nil {
		t.Fatalf("Log without user: %v", err)
	}

	entries, err := activity.ListRecent(ctx, 0)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestActivityListRecentLimit(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	activity := NewActivityRepository(store)
	ctx := context.Background()

	userID := createTestUser(t, users, "emp100", "Somchai", "employee")
	for i := 0; i < 5; i++ {
		if err := activity.Log(ctx, &userID, "login", fmt.Sprintf("entry %d", i)); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	entries, err := activity.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected limit of 3, got %d", len(entries))
	}
}
