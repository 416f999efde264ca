package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sevnx/shift_backend/internal/db"
	"github.com/sevnx/shift_backend/internal/models"
)

type UserRepository struct {
	store *db.Store
}

func NewUserRepository(store *db.Store) *UserRepository {
	return &UserRepository{store: store}
}

// List возвращает активных сотрудников, отсортированных по имени.
func (r *UserRepository) List(ctx context.Context) ([]models.Employee, error) {
	rows, err := r.store.Query(ctx, `
		SELECT id, employee_id, name, role, phone, email, avatar, start_date, created_at
		FROM users
		WHERE is_active = 1
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// GetByID возвращает активного сотрудника со статистикой смен.
// Подсчет по типам делаем на стороне приложения, чтобы запрос
// оставался одинаковым для обоих бэкендов.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.EmployeeDetail, error) {
	row := r.store.QueryRow(ctx, `
		SELECT id, employee_id, name, role, phone, email, avatar, start_date, created_at
		FROM users
		WHERE id = ? AND is_active = 1`, id)

	emp, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := r.store.Query(ctx, `SELECT shift_type FROM shifts WHERE user_id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats models.ShiftStats
	for rows.Next() {
		var shiftType string
		if err := rows.Scan(&shiftType); err != nil {
			return nil, err
		}
		stats.TotalShifts++
		switch shiftType {
		case models.ShiftMorning:
			stats.MorningShifts++
		case models.ShiftAfternoon:
			stats.AfternoonShifts++
		case models.ShiftNight:
			stats.NightShifts++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.EmployeeDetail{Employee: emp, Statistics: stats}, nil
}

// GetByEmployeeID ищет активного пользователя по табельному номеру.
// Возвращает строку целиком — нужна для проверки пароля.
func (r *UserRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*models.User, error) {
	return r.scanUser(r.store.QueryRow(ctx, `
		SELECT id, employee_id, password_hash, name, role, phone, email, avatar, is_active
		FROM users
		WHERE employee_id = ? AND is_active = 1`, employeeID))
}

// GetUserByID ищет активного пользователя по id.
func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	return r.scanUser(r.store.QueryRow(ctx, `
		SELECT id, employee_id, password_hash, name, role, phone, email, avatar, is_active
		FROM users
		WHERE id = ? AND is_active = 1`, id))
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var isActive int
	err := row.Scan(&u.ID, &u.EmployeeID, &u.PasswordHash, &u.Name, &u.Role,
		&u.Phone, &u.Email, &u.Avatar, &isActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.IsActive = isActive == 1
	return &u, nil
}

// CreateEmployeeParams — поля нового сотрудника. PasswordHash уже посчитан.
type CreateEmployeeParams struct {
	EmployeeID   string
	PasswordHash string
	Name         string
	Role         string
	Phone        *string
	Email        *string
	StartDate    *string
}

// Create добавляет сотрудника. Занятый табельный номер — ErrConflict.
func (r *UserRepository) Create(ctx context.Context, p CreateEmployeeParams) (int64, error) {
	var existing int
	err := r.store.QueryRow(ctx, `SELECT id FROM users WHERE employee_id = ?`, p.EmployeeID).Scan(&existing)
	if err == nil {
		return 0, ErrConflict
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	if p.Role == "" {
		p.Role = "employee"
	}
	avatar := firstRune(p.Name)

	id, err := r.store.Insert(ctx, `
		INSERT INTO users (employee_id, password_hash, name, role, phone, email, avatar, start_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.EmployeeID, p.PasswordHash, p.Name, p.Role, p.Phone, p.Email, avatar, p.StartDate)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	return id, nil
}

// UpdateEmployeeParams — частичное обновление: nil-поля с COALESCE
// сохраняют прежние значения, phone/email/start_date перезаписываются.
type UpdateEmployeeParams struct {
	EmployeeID *string
	Name       *string
	Role       *string
	Phone      *string
	Email      *string
	StartDate  *string
}

func (r *UserRepository) Update(ctx context.Context, id int, p UpdateEmployeeParams) error {
	var existing int
	err := r.store.QueryRow(ctx, `SELECT id FROM users WHERE id = ?`, id).Scan(&existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if p.EmployeeID != nil {
		var conflict int
		err := r.store.QueryRow(ctx,
			`SELECT id FROM users WHERE employee_id = ? AND id != ?`, *p.EmployeeID, id).Scan(&conflict)
		if err == nil {
			return ErrConflict
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
	}

	var avatar *string
	if p.Name != nil {
		a := firstRune(*p.Name)
		avatar = &a
	}

	_, err = r.store.Exec(ctx, `
		UPDATE users SET
			employee_id = COALESCE(?, employee_id),
			name = COALESCE(?, name),
			role = COALESCE(?, role),
			phone = ?,
			email = ?,
			start_date = ?,
			avatar = COALESCE(?, avatar),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		p.EmployeeID, p.Name, p.Role, p.Phone, p.Email, p.StartDate, avatar, id)
	return err
}

// UpdatePassword перезаписывает хеш пароля.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	affected, err := r.store.Exec(ctx, `
		UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, passwordHash, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete помечает сотрудника неактивным, история смен сохраняется.
// Возвращает имя удаленного — оно нужно для сообщения в ответе.
func (r *UserRepository) SoftDelete(ctx context.Context, id int) (string, error) {
	var name string
	err := r.store.QueryRow(ctx,
		`SELECT name FROM users WHERE id = ? AND is_active = 1`, id).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	_, err = r.store.Exec(ctx,
		`UPDATE users SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return name, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEmployee(row rowScanner) (models.Employee, error) {
	var emp models.Employee
	var startDate sql.NullTime
	err := row.Scan(&emp.ID, &emp.EmployeeID, &emp.Name, &emp.Role,
		&emp.Phone, &emp.Email, &emp.Avatar, &startDate, &emp.CreatedAt)
	if err != nil {
		return emp, err
	}
	if startDate.Valid {
		s := startDate.Time.Format("2006-01-02")
		emp.StartDate = &s
	}
	return emp, nil
}

func firstRune(s string) string {
	for _, r := range s {
		return fmt.Sprintf("%c", r)
	}
	return ""
}
