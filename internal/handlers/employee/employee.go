package employee

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sevnx/shift_backend/internal/pkg/response"
	"github.com/sevnx/shift_backend/internal/repositories"
	authService "github.com/sevnx/shift_backend/internal/services/auth"
)

// ListEmployeesHandler возвращает активных сотрудников.
func ListEmployeesHandler(users *repositories.UserRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employees, err := users.List(r.Context())
		if err != nil {
			log.Printf("Get employees error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		response.RespondWithJSON(w, http.StatusOK, employees)
	}
}

// GetEmployeeHandler возвращает карточку сотрудника со статистикой смен.
func GetEmployeeHandler(users *repositories.UserRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid employee id")
			return
		}

		detail, err := users.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				response.RespondWithError(w, http.StatusNotFound, "Employee not found")
				return
			}
			log.Printf("Get employee error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		response.RespondWithJSON(w, http.StatusOK, detail)
	}
}

func CreateEmployeeHandler(users *repositories.UserRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			EmployeeID string  `json:"employeeId"`
			Password   string  `json:"password"`
			Name       string  `json:"name"`
			Role       string  `json:"role"`
			Phone      *string `json:"phone"`
			Email      *string `json:"email"`
			StartDate  *string `json:"startDate"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
			return
		}
		if body.EmployeeID == "" || body.Password == "" || body.Name == "" {
			response.RespondWithError(w, http.StatusBadRequest, "Employee ID, password and name are required")
			return
		}

		passwordHash, err := authService.HashPassword(body.Password)
		if err != nil {
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		id, err := users.Create(r.Context(), repositories.CreateEmployeeParams{
			EmployeeID:   body.EmployeeID,
			PasswordHash: passwordHash,
			Name:         body.Name,
			Role:         body.Role,
			Phone:        body.Phone,
			Email:        body.Email,
			StartDate:    body.StartDate,
		})
		if err != nil {
			if errors.Is(err, repositories.ErrConflict) {
				response.RespondWithError(w, http.StatusBadRequest, "Employee ID already exists")
				return
			}
			log.Printf("Create employee error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		response.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"id":      id,
			"message": "Employee created",
		})
	}
}

func UpdateEmployeeHandler(users *repositories.UserRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid employee id")
			return
		}

		var body struct {
			EmployeeID *string `json:"employeeId"`
			Name       *string `json:"name"`
			Role       *string `json:"role"`
			Phone      *string `json:"phone"`
			Email      *string `json:"email"`
			StartDate  *string `json:"startDate"`
			Password   *string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
			return
		}

		err = users.Update(r.Context(), id, repositories.UpdateEmployeeParams{
			EmployeeID: body.EmployeeID,
			Name:       body.Name,
			Role:       body.Role,
			Phone:      body.Phone,
			Email:      body.Email,
			StartDate:  body.StartDate,
		})
		if err != nil {
			switch {
			case errors.Is(err, repositories.ErrNotFound):
				response.RespondWithError(w, http.StatusNotFound, "Employee not found")
			case errors.Is(err, repositories.ErrConflict):
				response.RespondWithError(w, http.StatusBadRequest, "Employee ID already taken")
			default:
				log.Printf("Update employee error: %v", err)
				response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			}
			return
		}

		if body.Password != nil && *body.Password != "" {
			passwordHash, err := authService.HashPassword(*body.Password)
			if err != nil {
				response.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
				return
			}
			if err := users.UpdatePassword(r.Context(), id, passwordHash); err != nil {
				log.Printf("Update password error: %v", err)
				response.RespondWithError(w, http.StatusInternalServerError, "Database error")
				return
			}
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Employee updated",
		})
	}
}

// DeleteEmployeeHandler — мягкое удаление: is_active = 0.
func DeleteEmployeeHandler(users *repositories.UserRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid employee id")
			return
		}

		name, err := users.SoftDelete(r.Context(), id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				response.RespondWithError(w, http.StatusNotFound, "Employee not found")
				return
			}
			log.Printf("Delete employee error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": fmt.Sprintf("Employee %s removed", name),
		})
	}
}
