package models

import "time"

// User — строка таблицы users целиком, включая хеш пароля.
// Наружу в таком виде не отдается.
type User struct {
	ID             int
	EmployeeID     string
	PasswordHash   string
	Name           string
	Role           string
	EmploymentType string
	Phone          *string
	Email          *string
	Avatar         *string
	StartDate      *string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Employee — представление сотрудника для фронтенда (camelCase).
type Employee struct {
	ID         int       `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Phone      *string   `json:"phone"`
	Email      *string   `json:"email"`
	Avatar     *string   `json:"avatar"`
	StartDate  *string   `json:"startDate"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ShiftStats — агрегаты по типам смен сотрудника.
type ShiftStats struct {
	TotalShifts     int `json:"totalShifts"`
	MorningShifts   int `json:"morningShifts"`
	AfternoonShifts int `json:"afternoonShifts"`
	NightShifts     int `json:"nightShifts"`
}

// EmployeeDetail — карточка сотрудника со статистикой.
type EmployeeDetail struct {
	Employee
	Statistics ShiftStats `json:"statistics"`
}

// Profile — полезная нагрузка ответа логина/verify.
type Profile struct {
	ID         int     `json:"id"`
	EmployeeID string  `json:"employeeId"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Avatar     *string `json:"avatar"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
}
