package export

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sevnx/shift_backend/internal/db"
	"github.com/sevnx/shift_backend/internal/repositories"
)

func TestBuildMonth(t *testing.T) {
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
	shifts := repositories.NewShiftRepository(store)

	userID, err := users.Create(ctx, repositories.CreateEmployeeParams{
		EmployeeID: "emp001", PasswordHash: "hash", Name: "Somchai",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	notes := "bring keys"
	if _, err := shifts.Create(ctx, repositories.CreateShiftParams{
		UserID: int(userID), ShiftDate: "2024-06-03", ShiftType: "morning", Notes: &notes,
	}); err != nil {
		t.Fatalf("create shift: %v", err)
	}
	// Смена вне месяца в книгу не попадает.
	if _, err := shifts.Create(ctx, repositories.CreateShiftParams{
		UserID: int(userID), ShiftDate: "2024-07-01", ShiftType: "morning",
	}); err != nil {
		t.Fatalf("create shift: %v", err)
	}

	f, err := NewExporter(shifts).BuildMonth(ctx, "2024-06")
	if err != nil {
		t.Fatalf("BuildMonth: %v", err)
	}
	t.Cleanup(func() { f.Close() })

	header, err := f.GetCellValue(sheetName, "A1")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if header != "Date" {
		t.Errorf("expected header Date, got %q", header)
	}

	for cell, want := range map[string]string{
		"A2": "2024-06-03",
		"B2": "morning",
		"C2": "Somchai",
		"D2": "scheduled",
		"E2": "bring keys",
	} {
		got, err := f.GetCellValue(sheetName, cell)
		if err != nil {
			t.Fatalf("GetCellValue %s: %v", cell, err)
		}
		if got != want {
			t.Errorf("cell %s: expected %q, got %q", cell, want, got)
		}
	}

	// Июльская смена — третьей строки нет.
	if v, _ := f.GetCellValue(sheetName, "A3"); v != "" {
		t.Errorf("expected empty A3, got %q", v)
	}
}

func TestBuildMonthInvalidMonth(t *testing.T) {
	store, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	exporter := NewExporter(repositories.NewShiftRepository(store))
	if _, err := exporter.BuildMonth(context.Background(), "June 2024"); !errors.Is(err, repositories.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
