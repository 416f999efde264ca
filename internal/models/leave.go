package models

import "time"

// LeaveRequest — заявка сотрудника на отпуск/отгул.
type LeaveRequest struct {
	ID             int       `json:"id"`
	UserID         int       `json:"user_id"`
	LeaveType      string    `json:"leave_type"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	Reason         *string   `json:"reason"`
	Status         string    `json:"status"`
	ApproverID     *int      `json:"approver_id"`
	Comment        *string   `json:"comment"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	EmployeeName   string    `json:"employee_name"`
	EmployeeAvatar *string   `json:"employee_avatar"`
	EmpCode        string    `json:"emp_code"`
	ApproverName   *string   `json:"approver_name"`
}
