package db

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// SeedIfEmpty добавляет стартовых пользователей и задачи, если таблица
// users пуста. Проверка и вставка не атомарны: два одновременных первых
// старта могут засеять данные дважды (известное ограничение).
func SeedIfEmpty(ctx context.Context, store *Store) error {
	var count int
	if err := store.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		log.Println("📝 Data already exists, skipping seed.")
		return nil
	}

	log.Println("📝 Seeding initial data...")

	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	passwordHash := string(hash)

	users := []struct {
		employeeID, name, role, phone string
	}{
		{"admin", "Store Manager", "manager", "081-234-5678"},
		{"emp001", "Somchai Jaidee", "employee", "082-345-6789"},
		{"emp002", "Somying Rakngan", "employee", "083-456-7890"},
	}
	for _, u := range users {
		avatar := string([]rune(u.name)[0])
		if _, err := store.Insert(ctx, `
			INSERT INTO users (employee_id, password_hash, name, role, phone, avatar)
			VALUES (?, ?, ?, ?, ?, ?)`,
			u.employeeID, passwordHash, u.name, u.role, u.phone, avatar); err != nil {
			return fmt.Errorf("seed user %s: %w", u.employeeID, err)
		}
	}
	log.Println("  - Users created")

	tasks := []struct {
		name, description, icon, shift string
	}{
		{"Open store", "Prepare the store before opening", "door-open", "morning"},
		{"Stock check", "Count goods on the shelves", "clipboard-check", "all"},
		{"Close store", "Close the store and reconcile totals", "door-closed", "night"},
	}
	for _, t := range tasks {
		if _, err := store.Insert(ctx, `
			INSERT INTO tasks (name, description, icon, shift_type)
			VALUES (?, ?, ?, ?)`,
			t.name, t.description, t.icon, t.shift); err != nil {
			return fmt.Errorf("seed task %s: %w", t.name, err)
		}
	}
	log.Println("  - Tasks created")

	log.Println("✅ Seed data created successfully")
	return nil
}
