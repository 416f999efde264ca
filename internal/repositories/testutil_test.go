package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sevnx/shift_backend/internal/db"
)

func newTestStore(t *testing.T) *db.Store {
	t.Helper()

	store, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := db.Migrate(context.Background(), store); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return store
}

func createTestUser(t *testing.T, users *UserRepository, employeeID, name, role string) int {
	t.Helper()

	id, err := users.Create(context.Background(), CreateEmployeeParams{
		EmployeeID:   employeeID,
		PasswordHash: "hash",
		Name:         name,
		Role:         role,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", employeeID, err)
	}
	return int(id)
}

func createTestTask(t *testing.T, tasks *TaskRepository, name, shift string) int {
	t.Helper()

	id, err := tasks.Create(context.Background(), name, nil, "", shift)
	if err != nil {
		t.Fatalf("create task %s: %v", name, err)
	}
	return int(id)
}
