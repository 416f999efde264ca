package repositories

import (
	"context"

	"github.com/sevnx/shift_backend/internal/db"
	"github.com/sevnx/shift_backend/internal/models"
)

// ActivityRepository пишет журнал действий. Записи только добавляются.
type ActivityRepository struct {
	store *db.Store
}

func NewActivityRepository(store *db.Store) *ActivityRepository {
	return &ActivityRepository{store: store}
}

// Log добавляет запись. userID может быть nil для системных событий.
func (r *ActivityRepository) Log(ctx context.Context, userID *int, actionType, description string) error {
	_, err := r.store.Exec(ctx, `
		INSERT INTO activity_log (user_id, action_type, description)
		VALUES (?, ?, ?)`,
		userID, actionType, description)
	return err
}

// ListRecent возвращает последние записи журнала.
func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]models.ActivityEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.store.Query(ctx, `
		SELECT id, user_id, action_type, description, created_at
		FROM activity_log
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.ActivityEntry{}
	for rows.Next() {
		var e models.ActivityEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.ActionType, &e.Description, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
