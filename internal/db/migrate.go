package db

import (
	"context"
	"fmt"
	"log"
)

// idColumn возвращает объявление автоинкрементного первичного ключа
// в синтаксисе активного бэкенда.
func (s *Store) idColumn() string {
	if s.dialect == DialectPostgres {
		return "INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

// Migrate идемпотентно создает все таблицы. Безопасно вызывать
// на каждом старте процесса.
func Migrate(ctx context.Context, store *Store) error {
	log.Println("🗄️  Initializing database schema...")

	idType := store.idColumn()

	tables := []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS users (
			id %s,
			employee_id TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT CHECK(role IN ('manager', 'employee')) DEFAULT 'employee',
			employment_type TEXT CHECK(employment_type IN ('fulltime', 'parttime')) DEFAULT 'fulltime',
			phone TEXT,
			email TEXT,
			avatar TEXT,
			start_date DATE,
			is_active INTEGER DEFAULT 1,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, idType),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS tasks (
			id %s,
			name TEXT NOT NULL,
			description TEXT,
			icon TEXT DEFAULT 'check',
			shift_type TEXT CHECK(shift_type IN ('morning', 'afternoon', 'night', 'all')) DEFAULT 'all',
			is_active INTEGER DEFAULT 1,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, idType),
		// shift_type без CHECK: помимо morning/afternoon/night допускаются
		// произвольные кастомные смены со своим названием и временем.
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS shifts (
			id %s,
			user_id INTEGER NOT NULL,
			shift_date DATE NOT NULL,
			shift_type TEXT NOT NULL,
			custom_name TEXT,
			start_time TEXT,
			end_time TEXT,
			status TEXT CHECK(status IN ('scheduled', 'completed', 'cancelled')) DEFAULT 'scheduled',
			notes TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`, idType),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS shift_tasks (
			id %s,
			shift_id INTEGER NOT NULL,
			task_id INTEGER NOT NULL,
			is_completed INTEGER DEFAULT 0,
			completed_at TIMESTAMP,
			FOREIGN KEY (shift_id) REFERENCES shifts(id) ON DELETE CASCADE,
			FOREIGN KEY (task_id) REFERENCES tasks(id)
		)`, idType),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS activity_log (
			id %s,
			user_id INTEGER,
			action_type TEXT NOT NULL,
			description TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`, idType),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS leave_requests (
			id %s,
			user_id INTEGER NOT NULL,
			leave_type TEXT CHECK(leave_type IN ('sick', 'vacation', 'business', 'other')) NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			reason TEXT,
			status TEXT CHECK(status IN ('pending', 'approved', 'rejected')) DEFAULT 'pending',
			approver_id INTEGER,
			comment TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (approver_id) REFERENCES users(id)
		)`, idType),
	}

	for _, ddl := range tables {
		if _, err := store.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	// Один сотрудник — одна смена данного типа в день.
	if _, err := store.Exec(ctx, `
		CREATE UNIQUE INDEX IF NOT EXISTS idx_shifts_user_date_type
		ON shifts (user_id, shift_date, shift_type)
	`); err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	// Миграция для старых баз: добавляем employment_type, ошибку
	// "колонка уже существует" глотаем.
	if _, err := store.Exec(ctx,
		`ALTER TABLE users ADD COLUMN employment_type TEXT DEFAULT 'fulltime'`); err != nil {
		if !IsDuplicateColumn(err) {
			log.Printf("⚠️  employment_type migration skipped: %v", err)
		}
	} else {
		log.Println("  - Added column: employment_type")
	}

	log.Println("✅ Tables created successfully")
	return nil
}
