package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sevnx/shift_backend/internal/db"
	"github.com/sevnx/shift_backend/internal/models"
)

type ShiftRepository struct {
	store *db.Store
}

func NewShiftRepository(store *db.Store) *ShiftRepository {
	return &ShiftRepository{store: store}
}

const shiftColumns = `
	s.id, s.user_id, s.shift_date, s.shift_type, s.custom_name, s.start_time, s.end_time,
	s.status, s.notes, u.name AS employee_name, u.avatar AS employee_avatar`

// ListByDate возвращает смены на дату вместе с данными сотрудника,
// отсортированные в прикладном порядке типов смен, каждая смена
// обогащена списком задач (по одному дополнительному запросу на смену —
// при десятках смен в день это приемлемо).
func (r *ShiftRepository) ListByDate(ctx context.Context, date string) ([]models.Shift, error) {
	shifts, err := r.queryShifts(ctx, `
		SELECT `+shiftColumns+`
		FROM shifts s
		JOIN users u ON s.user_id = u.id
		WHERE s.shift_date = ?`, date)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(shifts, func(i, j int) bool {
		return models.ShiftOrder(shifts[i].ShiftType) < models.ShiftOrder(shifts[j].ShiftType)
	})

	for i := range shifts {
		tasks, err := r.TasksForShift(ctx, shifts[i].ID)
		if err != nil {
			return nil, err
		}
		shifts[i].Tasks = tasks
	}
	return shifts, nil
}

// GroupByDate раскладывает смены дня по трем известным типам.
// Кастомные смены в группировку не попадают, но сохраняют место
// в плоских выборках.
func GroupByDate(shifts []models.Shift) models.GroupedShifts {
	grouped := models.GroupedShifts{
		Morning:   []models.Shift{},
		Afternoon: []models.Shift{},
		Night:     []models.Shift{},
	}
	for _, s := range shifts {
		switch s.ShiftType {
		case models.ShiftMorning:
			grouped.Morning = append(grouped.Morning, s)
		case models.ShiftAfternoon:
			grouped.Afternoon = append(grouped.Afternoon, s)
		case models.ShiftNight:
			grouped.Night = append(grouped.Night, s)
		}
	}
	return grouped
}

// ListWeek возвращает смены за полуоткрытый диапазон [start, start+7d)
// без обогащения задачами.
func (r *ShiftRepository) ListWeek(ctx context.Context, startDate string) ([]models.Shift, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start date %q", ErrInvalidInput, startDate)
	}
	endDate := start.AddDate(0, 0, 7).Format("2006-01-02")

	return r.queryShifts(ctx, `
		SELECT `+shiftColumns+`
		FROM shifts s
		JOIN users u ON s.user_id = u.id
		WHERE s.shift_date >= ? AND s.shift_date < ?
		ORDER BY s.shift_date, s.shift_type`, startDate, endDate)
}

// ListByEmployee возвращает смены сотрудника, новые первыми, каждая с
// задачами. month в формате YYYY-MM сужает выборку до полуоткрытого
// диапазона [первое число, первое число следующего месяца).
func (r *ShiftRepository) ListByEmployee(ctx context.Context, userID int, month string) ([]models.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts s
		JOIN users u ON s.user_id = u.id
		WHERE s.user_id = ?`
	args := []interface{}{userID}

	if month != "" {
		startOfMonth, endOfMonth, err := MonthRange(month)
		if err != nil {
			return nil, err
		}
		query += ` AND s.shift_date >= ? AND s.shift_date < ?`
		args = append(args, startOfMonth, endOfMonth)
	}
	query += ` ORDER BY s.shift_date DESC`

	shifts, err := r.queryShifts(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	for i := range shifts {
		tasks, err := r.TasksForShift(ctx, shifts[i].ID)
		if err != nil {
			return nil, err
		}
		shifts[i].Tasks = tasks
	}
	return shifts, nil
}

// ListRange возвращает смены за произвольный полуоткрытый диапазон дат.
func (r *ShiftRepository) ListRange(ctx context.Context, startDate, endDate string) ([]models.Shift, error) {
	return r.queryShifts(ctx, `
		SELECT `+shiftColumns+`
		FROM shifts s
		JOIN users u ON s.user_id = u.id
		WHERE s.shift_date >= ? AND s.shift_date < ?
		ORDER BY s.shift_date, s.shift_type`, startDate, endDate)
}

// TasksForShift возвращает задачи смены с отметками выполнения.
func (r *ShiftRepository) TasksForShift(ctx context.Context, shiftID int) ([]models.ShiftTask, error) {
	rows, err := r.store.Query(ctx, `
		SELECT t.id, t.name, t.icon, st.is_completed, st.completed_at
		FROM shift_tasks st
		JOIN tasks t ON st.task_id = t.id
		WHERE st.shift_id = ?`, shiftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.ShiftTask{}
	for rows.Next() {
		var t models.ShiftTask
		var completed int
		var completedAt sql.NullTime
		if err := rows.Scan(&t.ID, &t.Name, &t.Icon, &completed, &completedAt); err != nil {
			return nil, err
		}
		t.IsCompleted = completed == 1
		if completedAt.Valid {
			ts := completedAt.Time
			t.CompletedAt = &ts
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CreateShiftParams — поля новой смены.
type CreateShiftParams struct {
	UserID     int
	ShiftDate  string
	ShiftType  string
	CustomName *string
	StartTime  *string
	EndTime    *string
	Notes      *string
	Tasks      []int
}

// Create вставляет смену и её задачи одной транзакцией. Дубликат по
// (user_id, shift_date, shift_type) отсекается уникальным индексом и
// возвращается как ErrConflict.
func (r *ShiftRepository) Create(ctx context.Context, p CreateShiftParams) (int64, error) {
	var shiftID int64
	err := r.store.WithTx(ctx, func(tx *db.Tx) error {
		id, err := tx.Insert(ctx, `
			INSERT INTO shifts (user_id, shift_date, shift_type, custom_name, start_time, end_time, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.UserID, p.ShiftDate, p.ShiftType, p.CustomName, p.StartTime, p.EndTime, p.Notes)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return ErrConflict
			}
			return err
		}
		shiftID = id

		for _, taskID := range p.Tasks {
			if _, err := tx.Insert(ctx, `
				INSERT INTO shift_tasks (shift_id, task_id) VALUES (?, ?)`,
				shiftID, taskID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return shiftID, nil
}

// UpdateShiftParams — частичное обновление смены. shift_type и status
// с COALESCE сохраняют прежние значения, notes перезаписывается как
// пришло. Tasks != nil полностью заменяет набор задач.
type UpdateShiftParams struct {
	ShiftType  *string
	Status     *string
	Notes      *string
	CustomName *string
	StartTime  *string
	EndTime    *string
	Tasks      []int
}

func (r *ShiftRepository) Update(ctx context.Context, id int, p UpdateShiftParams) error {
	var existing int
	err := r.store.QueryRow(ctx, `SELECT id FROM shifts WHERE id = ?`, id).Scan(&existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	_, err = r.store.Exec(ctx, `
		UPDATE shifts SET
			shift_type = COALESCE(?, shift_type),
			status = COALESCE(?, status),
			notes = ?,
			custom_name = COALESCE(?, custom_name),
			start_time = COALESCE(?, start_time),
			end_time = COALESCE(?, end_time)
		WHERE id = ?`,
		p.ShiftType, p.Status, p.Notes, p.CustomName, p.StartTime, p.EndTime, id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}

	if p.Tasks != nil {
		return r.ReplaceTasks(ctx, id, p.Tasks)
	}
	return nil
}

// ReplaceTasks полностью заменяет набор задач смены одной транзакцией.
// Отметки выполнения у заново добавленных задач сбрасываются — это
// перезапись, а не слияние.
func (r *ShiftRepository) ReplaceTasks(ctx context.Context, shiftID int, taskIDs []int) error {
	return r.store.WithTx(ctx, func(tx *db.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM shift_tasks WHERE shift_id = ?`, shiftID); err != nil {
			return err
		}
		for _, taskID := range taskIDs {
			if _, err := tx.Insert(ctx, `
				INSERT INTO shift_tasks (shift_id, task_id) VALUES (?, ?)`,
				shiftID, taskID); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete жестко удаляет смену, связки с задачами каскадируются.
func (r *ShiftRepository) Delete(ctx context.Context, id int) error {
	var existing int
	err := r.store.QueryRow(ctx, `SELECT id FROM shifts WHERE id = ?`, id).Scan(&existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	_, err = r.store.Exec(ctx, `DELETE FROM shifts WHERE id = ?`, id)
	return err
}

// ToggleTask выставляет отметку выполнения. Переход в выполнено ставит
// отметку времени, обратно — очищает её. Нулевое число затронутых строк
// ошибкой не считается.
func (r *ShiftRepository) ToggleTask(ctx context.Context, shiftID, taskID int, completed bool) error {
	flag := 0
	if completed {
		flag = 1
	}
	_, err := r.store.Exec(ctx, `
		UPDATE shift_tasks SET
			is_completed = ?,
			completed_at = CASE WHEN ? = 1 THEN CURRENT_TIMESTAMP ELSE NULL END
		WHERE shift_id = ? AND task_id = ?`,
		flag, flag, shiftID, taskID)
	return err
}

// AssignmentRow — смена на дату с ролью сотрудника, для раздатчика задач.
type AssignmentRow struct {
	ShiftID      int
	ShiftType    string
	EmployeeName string
	Role         string
}

// ListForAssignment возвращает смены на дату с ролями владельцев.
func (r *ShiftRepository) ListForAssignment(ctx context.Context, date string) ([]AssignmentRow, error) {
	rows, err := r.store.Query(ctx, `
		SELECT s.id, s.shift_type, u.name, u.role
		FROM shifts s
		JOIN users u ON s.user_id = u.id
		WHERE s.shift_date = ?`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []AssignmentRow
	for rows.Next() {
		var a AssignmentRow
		if err := rows.Scan(&a.ShiftID, &a.ShiftType, &a.EmployeeName, &a.Role); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// MonthRange вычисляет полуоткрытый диапазон месяца YYYY-MM.
func MonthRange(month string) (string, string, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return "", "", fmt.Errorf("%w: bad month %q", ErrInvalidInput, month)
	}
	return start.Format("2006-01-02"), start.AddDate(0, 1, 0).Format("2006-01-02"), nil
}

func (r *ShiftRepository) queryShifts(ctx context.Context, query string, args ...interface{}) ([]models.Shift, error) {
	rows, err := r.store.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := []models.Shift{}
	for rows.Next() {
		var s models.Shift
		var shiftDate time.Time
		err := rows.Scan(&s.ID, &s.UserID, &shiftDate, &s.ShiftType,
			&s.CustomName, &s.StartTime, &s.EndTime,
			&s.Status, &s.Notes, &s.EmployeeName, &s.EmployeeAvatar)
		if err != nil {
			return nil, err
		}
		s.ShiftDate = shiftDate.Format("2006-01-02")
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}
