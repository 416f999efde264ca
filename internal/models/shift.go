package models

import "time"

// Известные типы смен. shift_type в базе открытый: помимо этих
// значений допускается произвольный кастомный тип.
const (
	ShiftMorning   = "morning"
	ShiftAfternoon = "afternoon"
	ShiftNight     = "night"
)

// Shift — одна рабочая смена сотрудника на дату.
type Shift struct {
	ID             int         `json:"id"`
	UserID         int         `json:"user_id"`
	ShiftDate      string      `json:"shift_date"`
	ShiftType      string      `json:"shift_type"`
	CustomName     *string     `json:"custom_name,omitempty"`
	StartTime      *string     `json:"start_time,omitempty"`
	EndTime        *string     `json:"end_time,omitempty"`
	Status         string      `json:"status"`
	Notes          *string     `json:"notes"`
	EmployeeName   string      `json:"employee_name,omitempty"`
	EmployeeAvatar *string     `json:"employee_avatar,omitempty"`
	Tasks          []ShiftTask `json:"tasks,omitempty"`
}

// ShiftTask — задача, привязанная к смене, с отметкой выполнения.
type ShiftTask struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Icon        string     `json:"icon,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// GroupedShifts — смены одного дня, сгруппированные по типу.
type GroupedShifts struct {
	Morning   []Shift `json:"morning"`
	Afternoon []Shift `json:"afternoon"`
	Night     []Shift `json:"night"`
}

// ShiftOrder задает прикладной порядок сортировки типов смен.
// Кастомные типы идут последними.
func ShiftOrder(shiftType string) int {
	switch shiftType {
	case ShiftMorning:
		return 1
	case ShiftAfternoon:
		return 2
	case ShiftNight:
		return 3
	default:
		return 4
	}
}
