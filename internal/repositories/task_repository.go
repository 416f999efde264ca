package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sevnx/shift_backend/internal/db"
	"github.com/sevnx/shift_backend/internal/models"
)

type TaskRepository struct {
	store *db.Store
}

func NewTaskRepository(store *db.Store) *TaskRepository {
	return &TaskRepository{store: store}
}

// List возвращает активные задачи, опционально отфильтрованные по типу смены.
func (r *TaskRepository) List(ctx context.Context, shift string) ([]models.Task, error) {
	query := `
		SELECT id, name, description, icon, shift_type, is_active, created_at
		FROM tasks
		WHERE is_active = 1`
	args := []interface{}{}

	if shift != "" {
		query += ` AND shift_type = ?`
		args = append(args, shift)
	}
	query += ` ORDER BY shift_type, name`

	rows, err := r.store.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Get(ctx context.Context, id int) (*models.Task, error) {
	row := r.store.QueryRow(ctx, `
		SELECT id, name, description, icon, shift_type, is_active, created_at
		FROM tasks
		WHERE id = ? AND is_active = 1`, id)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create добавляет задачу. Пустые icon/shift получают значения по умолчанию.
func (r *TaskRepository) Create(ctx context.Context, name string, description *string, icon, shift string) (int64, error) {
	if icon == "" {
		icon = "check"
	}
	if shift == "" {
		shift = "all"
	}
	return r.store.Insert(ctx, `
		INSERT INTO tasks (name, description, icon, shift_type)
		VALUES (?, ?, ?, ?)`,
		name, description, icon, shift)
}

// UpdateTaskParams — частичное обновление; description перезаписывается.
type UpdateTaskParams struct {
	Name        *string
	Description *string
	Icon        *string
	Shift       *string
}

func (r *TaskRepository) Update(ctx context.Context, id int, p UpdateTaskParams) error {
	var existing int
	err := r.store.QueryRow(ctx, `SELECT id FROM tasks WHERE id = ?`, id).Scan(&existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	_, err = r.store.Exec(ctx, `
		UPDATE tasks SET
			name = COALESCE(?, name),
			description = ?,
			icon = COALESCE(?, icon),
			shift_type = COALESCE(?, shift_type)
		WHERE id = ?`,
		p.Name, p.Description, p.Icon, p.Shift, id)
	return err
}

// SoftDelete помечает задачу неактивной. Возвращает имя для сообщения.
func (r *TaskRepository) SoftDelete(ctx context.Context, id int) (string, error) {
	var name string
	err := r.store.QueryRow(ctx,
		`SELECT name FROM tasks WHERE id = ? AND is_active = 1`, id).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	_, err = r.store.Exec(ctx, `UPDATE tasks SET is_active = 0 WHERE id = ?`, id)
	return name, err
}

// StatsSummary считает активные задачи по типам смен.
func (r *TaskRepository) StatsSummary(ctx context.Context) (*models.TaskStatsSummary, error) {
	rows, err := r.store.Query(ctx, `
		SELECT shift_type, COUNT(*) AS count
		FROM tasks
		WHERE is_active = 1
		GROUP BY shift_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summary models.TaskStatsSummary
	for rows.Next() {
		var shiftType string
		var count int
		if err := rows.Scan(&shiftType, &count); err != nil {
			return nil, err
		}
		switch shiftType {
		case models.ShiftMorning:
			summary.Morning = count
		case models.ShiftAfternoon:
			summary.Afternoon = count
		case models.ShiftNight:
			summary.Night = count
		case "all":
			summary.All = count
		}
	}
	return &summary, rows.Err()
}

// ListApplicable возвращает id активных задач, подходящих для типа смены
// (включая универсальные 'all'). Используется раздатчиком задач.
func (r *TaskRepository) ListApplicable(ctx context.Context, shiftType string) ([]int, error) {
	rows, err := r.store.Query(ctx, `
		SELECT id FROM tasks
		WHERE is_active = 1 AND (shift_type = ? OR shift_type = 'all')`, shiftType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var isActive int
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Icon, &t.Shift, &isActive, &t.CreatedAt)
	if err != nil {
		return t, err
	}
	t.IsActive = isActive == 1
	return t, nil
}
