package assign

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/sevnx/shift_backend/internal/db"
	"github.com/sevnx/shift_backend/internal/repositories"
)

func setupAssignTest(t *testing.T) (*repositories.ShiftRepository, *repositories.TaskRepository, int, int) {
	t.Helper()
	ctx := context.Background()

	store, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := db.Migrate(ctx, store); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	users := repositories.NewUserRepository(store)
	tasks := repositories.NewTaskRepository(store)
	shifts := repositories.NewShiftRepository(store)

	managerID, err := users.Create(ctx, repositories.CreateEmployeeParams{
		EmployeeID: "admin", PasswordHash: "hash", Name: "Store Manager", Role: "manager",
	})
	if err != nil {
		t.Fatalf("create manager: %v", err)
	}
	employeeID, err := users.Create(ctx, repositories.CreateEmployeeParams{
		EmployeeID: "emp001", PasswordHash: "hash", Name: "Somchai", Role: "employee",
	})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}

	morningTasks := []string{"Open store", "Prep coffee", "Receive delivery", "Check expiry"}
	for _, name := range morningTasks {
		if _, err := tasks.Create(ctx, name, nil, "", "morning"); err != nil {
			t.Fatalf("create task %s: %v", name, err)
		}
	}
	if _, err := tasks.Create(ctx, "Stock check", nil, "", "all"); err != nil {
		t.Fatalf("create shared task: %v", err)
	}
	if _, err := tasks.Create(ctx, "Close store", nil, "", "night"); err != nil {
		t.Fatalf("create night task: %v", err)
	}

	managerShift, err := shifts.Create(ctx, repositories.CreateShiftParams{
		UserID: int(managerID), ShiftDate: "2024-06-03", ShiftType: "morning",
	})
	if err != nil {
		t.Fatalf("create manager shift: %v", err)
	}
	employeeShift, err := shifts.Create(ctx, repositories.CreateShiftParams{
		UserID: int(employeeID), ShiftDate: "2024-06-03", ShiftType: "morning",
	})
	if err != nil {
		t.Fatalf("create employee shift: %v", err)
	}

	return shifts, tasks, int(managerShift), int(employeeShift)
}

func TestAssignDateCountsByRole(t *testing.T) {
	shifts, tasks, managerShift, employeeShift := setupAssignTest(t)
	ctx := context.Background()

	assigner := New(shifts, tasks, rand.New(rand.NewSource(1)))
	updated, err := assigner.AssignDate(ctx, "2024-06-03")
	if err != nil {
		t.Fatalf("AssignDate: %v", err)
	}
	if updated != 2 {
		t.Fatalf("expected 2 updated shifts, got %d", updated)
	}

	managerTasks, err := shifts.TasksForShift(ctx, managerShift)
	if err != nil {
		t.Fatalf("TasksForShift: %v", err)
	}
	if len(managerTasks) != 4 {
		t.Errorf("manager should get 4 tasks, got %d", len(managerTasks))
	}

	employeeTasks, err := shifts.TasksForShift(ctx, employeeShift)
	if err != nil {
		t.Fatalf("TasksForShift: %v", err)
	}
	if len(employeeTasks) != 3 {
		t.Errorf("employee should get 3 tasks, got %d", len(employeeTasks))
	}

	// Ночная задача не подходит утренним сменам.
	for _, task := range append(managerTasks, employeeTasks...) {
		if task.Name == "Close store" {
			t.Errorf("night task assigned to a morning shift")
		}
	}
}

func TestAssignDateReplacesExisting(t *testing.T) {
	shifts, tasks, managerShift, _ := setupAssignTest(t)
	ctx := context.Background()

	assigner := New(shifts, tasks, rand.New(rand.NewSource(1)))
	if _, err := assigner.AssignDate(ctx, "2024-06-03"); err != nil {
		t.Fatalf("first AssignDate: %v", err)
	}
	if err := shifts.ToggleTask(ctx, managerShift, 1, true); err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}

	if _, err := assigner.AssignDate(ctx, "2024-06-03"); err != nil {
		t.Fatalf("second AssignDate: %v", err)
	}

	list, err := shifts.TasksForShift(ctx, managerShift)
	if err != nil {
		t.Fatalf("TasksForShift: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("expected 4 tasks after reassignment, got %d", len(list))
	}
	for _, task := range list {
		if task.IsCompleted {
			t.Errorf("reassignment should reset completion, task %d still completed", task.ID)
		}
	}
}

func TestAssignDateNoShifts(t *testing.T) {
	shifts, tasks, _, _ := setupAssignTest(t)

	assigner := New(shifts, tasks, rand.New(rand.NewSource(1)))
	updated, err := assigner.AssignDate(context.Background(), "2024-12-25")
	if err != nil {
		t.Fatalf("AssignDate: %v", err)
	}
	if updated != 0 {
		t.Errorf("expected 0 updated shifts on empty date, got %d", updated)
	}
}
