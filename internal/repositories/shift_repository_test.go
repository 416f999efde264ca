package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/sevnx/shift_backend/internal/models"
)

func TestCreateShiftDuplicateConflict(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	shifts := NewShiftRepository(store)
	ctx := context.Background()

	userID := createTestUser(t, users, "emp100", "Somchai", "employee")

	if _, err := shifts.Create(ctx, CreateShiftParams{
		UserID: userID, ShiftDate: "2024-06-03", ShiftType: "morning",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := shifts.Create(ctx, CreateShiftParams{
		UserID: userID, ShiftDate: "2024-06-03", ShiftType: "morning",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// Конфликтная вставка не должна оставлять осиротевших связок задач.
	var count int
	if err := store.QueryRow(ctx, `SELECT count(*) FROM shifts`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 shift after conflict, got %d", count)
	}
}

func TestCreateShiftWithTasks(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	tasks := NewTaskRepository(store)
	shifts := NewShiftRepository(store)
	ctx := context.Background()

	userID := createTestUser(t, users, "emp100", "Somchai", "employee")
	taskA := createTestTask(t, tasks, "Open store", "morning")
	taskB := createTestTask(t, tasks, "Stock check", "all")

	shiftID, err := shifts.Create(ctx, CreateShiftParams{
		UserID: userID, ShiftDate: "2024-06-03", ShiftType: "morning",
		Tasks: []int{taskA, taskB},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := shifts.TasksForShift(ctx, int(shiftID))
	if err != nil {
		t.Fatalf("TasksForShift: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(list))
	}
	for _, task := range list {
		if task.IsCompleted {
			t.Errorf("new task %d should not be completed", task.ID)
		}
	}
}

func TestDeleteShiftCascadesTasks(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	tasks := NewTaskRepository(store)
	shifts := NewShiftRepository(store)
	ctx := context.Background()

	userID := createTestUser(t, users, "emp100", "Somchai", "employee")
	taskID := createTestTask(t, tasks, "Open store", "morning")

	shiftID, err := shifts.Create(ctx, CreateShiftParams{
		UserID: userID, ShiftDate: "2024-06-03", ShiftType: "morning",
		Tasks: []int{taskID},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := shifts.Delete(ctx, int(shiftID)); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var count int
	if err := store.QueryRow(ctx, `SELECT count(*) FROM shift_tasks`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected shift_tasks cascade to 0, got %d", count)
	}

	if err := shifts.Delete(ctx, int(shiftID)); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestToggleTaskTimestamps(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	tasks := NewTaskRepository(store)
	shifts := NewShiftRepository(store)
	ctx := context.Background()

	userID := createTestUser(t, users, "emp100", "Somchai", "employee")
	taskID := createTestTask(t, tasks, "Open store", "morning")

	shiftID, err := shifts.Create(ctx, CreateShiftParams{
		UserID: userID, ShiftDate: "2024-06-03", ShiftType: "morning",
		Tasks: []int{taskID},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := shifts.ToggleTask(ctx, int(shiftID), taskID, true); err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	list, err := shifts.TasksForShift(ctx, int(shiftID))
	if err != nil {
		t.Fatalf("TasksForShift: %v", err)
	}
	if !list[0].IsCompleted || list[0].CompletedAt == nil {
		t.Errorf("expected completed with timestamp, got %+v", list[0])
	}

	if err := shifts.ToggleTask(ctx, int(shiftID), taskID, false); err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	list, err = shifts.TasksForShift(ctx, int(shiftID))
	if err != nil {
		t.Fatalf("TasksForShift: %v", err)
	}
	if list[0].IsCompleted || list[0].CompletedAt != nil {
		t.Errorf("expected cleared completion, got %+v", list[0])
	}
}

func TestReplaceTasksResetsCompletion(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	tasks := NewTaskRepository(store)
	shifts := NewShiftRepository(store)
	ctx := context.Background()

	userID := createTestUser(t, users, "emp100", "Somchai", "employee")
	taskID := createTestTask(t, tasks, "Open store", "morning")

	shiftID, err := shifts.Create(ctx, CreateShiftParams{
		UserID: userID, ShiftDate: "2024-06-03", ShiftType: "morning",
		Tasks: []int{taskID},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := shifts.ToggleTask(ctx, int(shiftID), taskID, true); err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}

	// Та же задача в новом наборе — это перезапись, отметка сбрасывается.
	if err := shifts.ReplaceTasks(ctx, int(shiftID), []int{taskID}); err != nil {
		t.Fatalf("ReplaceTasks: %v", err)
	}

	list, err := shifts.TasksForShift(ctx, int(shiftID))
	if err != nil {
		t.Fatalf("TasksForShift: %v", err)
	}
	if len(list) != 1 || list[0].IsCompleted {
		t.Errorf("expected single incomplete task, got %+v", list)
	}
}

func TestListWeekHalfOpenRange(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	shifts := NewShiftRepository(store)
	ctx := context.Background()

	userID := createTestUser(t, users, "emp100", "Somchai", "employee")

	for _, date := range []string{"2024-06-02", "2024-06-03", "2024-06-09", "2024-06-10"} {
		if _, err := shifts.Create(ctx, CreateShiftParams{
			UserID: userID, ShiftDate: date, ShiftType: "morning",
		}); err != nil {
			t.Fatalf("create shift %s: %v", date, err)
		}
	}

	list, err := shifts.ListWeek(ctx, "2024-06-03")
	if err != nil {
		t.Fatalf("ListWeek: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 shifts in [2024-06-03, 2024-06-10), got %d", len(list))
	}
	if list[0].ShiftDate != "2024-06-03" || list[1].ShiftDate != "2024-06-09" {
		t.Errorf("unexpected dates: %s, %s", list[0].ShiftDate, list[1].ShiftDate)
	}

	if _, err := shifts.ListWeek(ctx, "03-06-2024"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for bad date, got %v", err)
	}
}

func TestListByEmployeeMonthFilter(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	shifts := NewShiftRepository(store)
	ctx := context.Background()

	userID := createTestUser(t, users, "emp100", "Somchai", "employee")
	otherID := createTestUser(t, users, "emp101", "Somying", "employee")

	for _, s := range []struct {
		userID int
		date   string
	}{
		{userID, "2024-05-31"},
		{userID, "2024-06-01"},
		{userID, "2024-06-30"},
		{userID, "2024-07-01"},
		{otherID, "2024-06-15"},
	} {
		if _, err := shifts.Create(ctx, CreateShiftParams{
			UserID: s.userID, ShiftDate: s.date, ShiftType: "morning",
		}); err != nil {
			t.Fatalf("create shift: %v", err)
		}
	}

	list, err := shifts.ListByEmployee(ctx, userID, "2024-06")
	if err != nil {
		t.Fatalf("ListByEmployee: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 June shifts, got %d", len(list))
	}
	// Новые первыми.
	if list[0].ShiftDate != "2024-06-30" || list[1].ShiftDate != "2024-06-01" {
		t.Errorf("unexpected order: %s, %s", list[0].ShiftDate, list[1].ShiftDate)
	}

	if _, err := shifts.ListByEmployee(ctx, userID, "June"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for bad month, got %v", err)
	}
}

func TestUpdateShiftPartialAndNotes(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	shifts := NewShiftRepository(store)
	ctx := context.Background()

	userID := createTestUser(t, users, "emp100", "Somchai", "employee")
	notes := "bring keys"
	shiftID, err := shifts.Create(ctx, CreateShiftParams{
		UserID: userID, ShiftDate: "2024-06-03", ShiftType: "morning", Notes: &notes,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Статус меняется, тип сохраняется, notes без значения затирается.
	status := "completed"
	if err := shifts.Update(ctx, int(shiftID), UpdateShiftParams{Status: &status}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	list, err := shifts.ListByDate(ctx, "2024-06-03")
	if err != nil {
		t.Fatalf("ListByDate: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 shift, got %d", len(list))
	}
	got := list[0]
	if got.Status != "completed" || got.ShiftType != "morning" {
		t.Errorf("unexpected shift after update: %+v", got)
	}
	if got.Notes != nil {
		t.Errorf("notes should be overwritten to NULL, got %v", *got.Notes)
	}

	if err := shifts.Update(ctx, 999, UpdateShiftParams{Status: &status}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListByDateOrderAndGrouping(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	shifts := NewShiftRepository(store)
	ctx := context.Background()

	nightID := createTestUser(t, users, "emp100", "Night Owl", "employee")
	morningID := createTestUser(t, users, "emp101", "Early Bird", "employee")
	customID := createTestUser(t, users, "emp102", "Stocktaker", "employee")

	customName := "Inventory"
	for _, s := range []CreateShiftParams{
		{UserID: nightID, ShiftDate: "2024-06-03", ShiftType: "night"},
		{UserID: customID, ShiftDate: "2024-06-03", ShiftType: "custom", CustomName: &customName},
		{UserID: morningID, ShiftDate: "2024-06-03", ShiftType: "morning"},
	} {
		if _, err := shifts.Create(ctx, s); err != nil {
			t.Fatalf("create shift: %v", err)
		}
	}

	list, err := shifts.ListByDate(ctx, "2024-06-03")
	if err != nil {
		t.Fatalf("ListByDate: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 shifts, got %d", len(list))
	}
	if list[0].ShiftType != "morning" || list[1].ShiftType != "night" || list[2].ShiftType != "custom" {
		t.Errorf("unexpected order: %s, %s, %s", list[0].ShiftType, list[1].ShiftType, list[2].ShiftType)
	}
	if list[0].EmployeeName != "Early Bird" {
		t.Errorf("expected employee join, got %q", list[0].EmployeeName)
	}

	grouped := GroupByDate(list)
	if len(grouped.Morning) != 1 || len(grouped.Night) != 1 || len(grouped.Afternoon) != 0 {
		t.Errorf("unexpected grouping: %+v", grouped)
	}
}

func TestShiftsSurviveEmployeeSoftDelete(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	shifts := NewShiftRepository(store)
	ctx := context.Background()

	userID := createTestUser(t, users, "emp100", "Somchai", "employee")
	if _, err := shifts.Create(ctx, CreateShiftParams{
		UserID: userID, ShiftDate: "2024-06-03", ShiftType: "morning",
	}); err != nil {
		t.Fatalf("create shift: %v", err)
	}

	if _, err := users.SoftDelete(ctx, userID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	// История смен уволенного сотрудника остается в выборках.
	list, err := shifts.ListByDate(ctx, "2024-06-03")
	if err != nil {
		t.Fatalf("ListByDate: %v", err)
	}
	if len(list) != 1 || list[0].EmployeeName != "Somchai" {
		t.Errorf("expected the shift to survive soft delete, got %+v", list)
	}

	byEmployee, err := shifts.ListByEmployee(ctx, userID, "")
	if err != nil {
		t.Fatalf("ListByEmployee: %v", err)
	}
	if len(byEmployee) != 1 {
		t.Errorf("expected 1 historical shift, got %d", len(byEmployee))
	}
}

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange("2024-06")
	if err != nil {
		t.Fatalf("MonthRange: %v", err)
	}
	if start != "2024-06-01" || end != "2024-07-01" {
		t.Errorf("expected [2024-06-01, 2024-07-01), got [%s, %s)", start, end)
	}

	start, end, err = MonthRange("2024-12")
	if err != nil {
		t.Fatalf("MonthRange: %v", err)
	}
	if start != "2024-12-01" || end != "2025-01-01" {
		t.Errorf("expected year rollover, got [%s, %s)", start, end)
	}

	if _, _, err := MonthRange("2024/06"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestShiftOrderCustomLast(t *testing.T) {
	if models.ShiftOrder("morning") >= models.ShiftOrder("afternoon") {
		t.Error("morning should sort before afternoon")
	}
	if models.ShiftOrder("night") >= models.ShiftOrder("inventory") {
		t.Error("custom types should sort last")
	}
}
