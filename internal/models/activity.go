package models

import "time"

// ActivityEntry — запись журнала действий. Только добавляется,
// никогда не изменяется и не удаляется.
type ActivityEntry struct {
	ID          int       `json:"id"`
	UserID      *int      `json:"user_id"`
	ActionType  string    `json:"action_type"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
