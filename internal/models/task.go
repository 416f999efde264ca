package models

import "time"

// Task — шаблон пункта чек-листа смены.
type Task struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Icon        string    `json:"icon"`
	Shift       string    `json:"shift"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskStatsSummary — количество активных задач по типам смен.
type TaskStatsSummary struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Night     int `json:"night"`
	All       int `json:"all"`
}
