package repositories

import (
	"context"
	"time"

	"github.com/sevnx/shift_backend/internal/db"
	"github.com/sevnx/shift_backend/internal/models"
)

type LeaveRepository struct {
	store *db.Store
}

func NewLeaveRepository(store *db.Store) *LeaveRepository {
	return &LeaveRepository{store: store}
}

// LeaveFilter — необязательные фильтры списка заявок.
type LeaveFilter struct {
	UserID *int
	Status string
}

// List возвращает заявки, новые первыми, с именами заявителя и
// согласующего.
func (r *LeaveRepository) List(ctx context.Context, f LeaveFilter) ([]models.LeaveRequest, error) {
	query := `
		SELECT
			l.id, l.user_id, l.leave_type, l.start_date, l.end_date, l.reason,
			l.status, l.approver_id, l.comment, l.created_at, l.updated_at,
			u.name AS employee_name,
			u.avatar AS employee_avatar,
			u.employee_id AS emp_code,
			au.name AS approver_name
		FROM leave_requests l
		JOIN users u ON l.user_id = u.id
		LEFT JOIN users au ON l.approver_id = au.id
		WHERE 1=1`
	args := []interface{}{}

	if f.UserID != nil {
		query += ` AND l.user_id = ?`
		args = append(args, *f.UserID)
	}
	if f.Status != "" {
		query += ` AND l.status = ?`
		args = append(args, f.Status)
	}
	query += ` ORDER BY l.created_at DESC`

	rows, err := r.store.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaves := []models.LeaveRequest{}
	for rows.Next() {
		var l models.LeaveRequest
		var startDate, endDate time.Time
		err := rows.Scan(&l.ID, &l.UserID, &l.LeaveType, &startDate, &endDate, &l.Reason,
			&l.Status, &l.ApproverID, &l.Comment, &l.CreatedAt, &l.UpdatedAt,
			&l.EmployeeName, &l.EmployeeAvatar, &l.EmpCode, &l.ApproverName)
		if err != nil {
			return nil, err
		}
		l.StartDate = startDate.Format("2006-01-02")
		l.EndDate = endDate.Format("2006-01-02")
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

// Create добавляет заявку со статусом pending.
func (r *LeaveRepository) Create(ctx context.Context, userID int, leaveType, startDate, endDate string, reason *string) (int64, error) {
	return r.store.Insert(ctx, `
		INSERT INTO leave_requests (user_id, leave_type, start_date, end_date, reason)
		VALUES (?, ?, ?, ?, ?)`,
		userID, leaveType, startDate, endDate, reason)
}

// UpdateStatus переводит заявку в approved/rejected и фиксирует
// согласующего с комментарием. Валидность статуса проверяет HTTP-слой.
func (r *LeaveRepository) UpdateStatus(ctx context.Context, id int, status string, approverID int, comment *string) error {
	affected, err := r.store.Exec(ctx, `
		UPDATE leave_requests
		SET status = ?, approver_id = ?, comment = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		status, approverID, comment, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// PendingCount — число заявок в ожидании (для бейджа уведомлений).
func (r *LeaveRepository) PendingCount(ctx context.Context) (int, error) {
	var count int
	err := r.store.QueryRow(ctx,
		`SELECT count(*) FROM leave_requests WHERE status = 'pending'`).Scan(&count)
	return count, err
}
