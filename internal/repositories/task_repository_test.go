package repositories

import (
	"context"
	"errors"
	"testing"
)

func TestTaskDefaultsAndGet(t *testing.T) {
	tasks := NewTaskRepository(newTestStore(t))
	ctx := context.Background()

	id, err := tasks.Create(ctx, "Stock check", nil, "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	task, err := tasks.Get(ctx, int(id))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if task.Icon != "check" {
		t.Errorf("expected default icon 'check', got %q", task.Icon)
	}
	if task.Shift != "all" {
		t.Errorf("expected default shift 'all', got %q", task.Shift)
	}
	if !task.IsActive {
		t.Error("new task should be active")
	}
}

func TestListTasksFiltersByShift(t *testing.T) {
	tasks := NewTaskRepository(newTestStore(t))
	ctx := context.Background()

	createTestTask(t, tasks, "Open store", "morning")
	createTestTask(t, tasks, "Close store", "night")
	createTestTask(t, tasks, "Stock check", "all")

	morning, err := tasks.List(ctx, "morning")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(morning) != 1 || morning[0].Name != "Open store" {
		t.Errorf("unexpected morning tasks: %+v", morning)
	}

	all, err := tasks.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 tasks without filter, got %d", len(all))
	}
}

func TestListApplicableIncludesShared(t *testing.T) {
	tasks := NewTaskRepository(newTestStore(t))
	ctx := context.Background()

	morningID := createTestTask(t, tasks, "Open store", "morning")
	sharedID := createTestTask(t, tasks, "Stock check", "all")
	createTestTask(t, tasks, "Close store", "night")

	ids, err := tasks.ListApplicable(ctx, "morning")
	if err != nil {
		t.Fatalf("ListApplicable: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 applicable tasks, got %v", ids)
	}
	found := map[int]bool{}
	for _, id := range ids {
		found[id] = true
	}
	if !found[morningID] || !found[sharedID] {
		t.Errorf("expected morning and shared task ids, got %v", ids)
	}
}

func TestSoftDeleteTask(t *testing.T) {
	tasks := NewTaskRepository(newTestStore(t))
	ctx := context.Background()

	id := createTestTask(t, tasks, "Open store", "morning")

	name, err := tasks.SoftDelete(ctx, id)
	if err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if name != "Open store" {
		t.Errorf("expected deleted name, got %q", name)
	}

	if _, err := tasks.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for deleted task, got %v", err)
	}
	ids, err := tasks.ListApplicable(ctx, "morning")
	if err != nil {
		t.Fatalf("ListApplicable: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("deleted task should not be applicable, got %v", ids)
	}
}

func TestTaskStatsSummary(t *testing.T) {
	tasks := NewTaskRepository(newTestStore(t))
	ctx := context.Background()

	createTestTask(t, tasks, "Open store", "morning")
	createTestTask(t, tasks, "Prep coffee", "morning")
	createTestTask(t, tasks, "Close store", "night")
	createTestTask(t, tasks, "Stock check", "all")

	summary, err := tasks.StatsSummary(ctx)
	if err != nil {
		t.Fatalf("StatsSummary: %v", err)
	}
	if summary.Morning != 2 || summary.Night != 1 || summary.All != 1 || summary.Afternoon != 0 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}
