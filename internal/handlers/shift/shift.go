package shift

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sevnx/shift_backend/internal/pkg/response"
	"github.com/sevnx/shift_backend/internal/repositories"
)

// GetShiftsByDateHandler возвращает смены дня, сгруппированные по типам,
// каждая с чек-листом задач.
func GetShiftsByDateHandler(shifts *repositories.ShiftRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := chi.URLParam(r, "date")
		if _, err := time.Parse("2006-01-02", date); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}

		list, err := shifts.ListByDate(r.Context(), date)
		if err != nil {
			log.Printf("Get shifts error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		response.RespondWithJSON(w, http.StatusOK, repositories.GroupByDate(list))
	}
}

// GetShiftsByWeekHandler возвращает плоский список смен за [start, start+7d).
func GetShiftsByWeekHandler(shifts *repositories.ShiftRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := shifts.ListWeek(r.Context(), chi.URLParam(r, "startDate"))
		if err != nil {
			if errors.Is(err, repositories.ErrInvalidInput) {
				response.RespondWithError(w, http.StatusBadRequest, "Invalid start date, expected YYYY-MM-DD")
				return
			}
			log.Printf("Get week shifts error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		response.RespondWithJSON(w, http.StatusOK, list)
	}
}

// GetShiftsByEmployeeHandler возвращает смены сотрудника, новые первыми.
// ?month=YYYY-MM сужает выборку до месяца.
func GetShiftsByEmployeeHandler(shifts *repositories.ShiftRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "userId"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
			return
		}

		list, err := shifts.ListByEmployee(r.Context(), userID, r.URL.Query().Get("month"))
		if err != nil {
			if errors.Is(err, repositories.ErrInvalidInput) {
				response.RespondWithError(w, http.StatusBadRequest, "Invalid month, expected YYYY-MM")
				return
			}
			log.Printf("Get employee shifts error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		response.RespondWithJSON(w, http.StatusOK, list)
	}
}

func CreateShiftHandler(shifts *repositories.ShiftRepository, users *repositories.UserRepository, activity *repositories.ActivityRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID     int     `json:"userId"`
			ShiftDate  string  `json:"shiftDate"`
			ShiftType  string  `json:"shiftType"`
			CustomName *string `json:"customName"`
			StartTime  *string `json:"startTime"`
			EndTime    *string `json:"endTime"`
			Tasks      []int   `json:"tasks"`
			Notes      *string `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
			return
		}
		if body.UserID == 0 || body.ShiftDate == "" || body.ShiftType == "" {
			response.RespondWithError(w, http.StatusBadRequest, "User, date and shift type are required")
			return
		}
		if _, err := time.Parse("2006-01-02", body.ShiftDate); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}

		id, err := shifts.Create(r.Context(), repositories.CreateShiftParams{
			UserID:     body.UserID,
			ShiftDate:  body.ShiftDate,
			ShiftType:  body.ShiftType,
			CustomName: body.CustomName,
			StartTime:  body.StartTime,
			EndTime:    body.EndTime,
			Notes:      body.Notes,
			Tasks:      body.Tasks,
		})
		if err != nil {
			if errors.Is(err, repositories.ErrConflict) {
				response.RespondWithError(w, http.StatusBadRequest, "Employee already has this shift on the selected date")
				return
			}
			log.Printf("Create shift error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		employeeName := fmt.Sprintf("user #%d", body.UserID)
		if user, err := users.GetUserByID(r.Context(), body.UserID); err == nil {
			employeeName = user.Name
		}
		description := fmt.Sprintf("Added %s shift for %s on %s", body.ShiftType, employeeName, body.ShiftDate)
		if err := activity.Log(r.Context(), &body.UserID, "shift_created", description); err != nil {
			log.Printf("Activity log error: %v", err)
		}

		response.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"id":      id,
			"message": "Shift created",
		})
	}
}

func UpdateShiftHandler(shifts *repositories.ShiftRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid shift id")
			return
		}

		var body struct {
			ShiftType  *string `json:"shiftType"`
			Status     *string `json:"status"`
			Notes      *string `json:"notes"`
			CustomName *string `json:"customName"`
			StartTime  *string `json:"startTime"`
			EndTime    *string `json:"endTime"`
			Tasks      []int   `json:"tasks"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
			return
		}

		err = shifts.Update(r.Context(), id, repositories.UpdateShiftParams{
			ShiftType:  body.ShiftType,
			Status:     body.Status,
			Notes:      body.Notes,
			CustomName: body.CustomName,
			StartTime:  body.StartTime,
			EndTime:    body.EndTime,
			Tasks:      body.Tasks,
		})
		if err != nil {
			switch {
			case errors.Is(err, repositories.ErrNotFound):
				response.RespondWithError(w, http.StatusNotFound, "Shift not found")
			case errors.Is(err, repositories.ErrConflict):
				response.RespondWithError(w, http.StatusBadRequest, "Employee already has this shift on the selected date")
			default:
				log.Printf("Update shift error: %v", err)
				response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			}
			return
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Shift updated",
		})
	}
}

// DeleteShiftHandler жестко удаляет смену вместе со связками задач.
func DeleteShiftHandler(shifts *repositories.ShiftRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid shift id")
			return
		}

		if err := shifts.Delete(r.Context(), id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				response.RespondWithError(w, http.StatusNotFound, "Shift not found")
				return
			}
			log.Printf("Delete shift error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Shift deleted",
		})
	}
}

// CompleteTaskHandler переключает отметку выполнения задачи в смене.
func CompleteTaskHandler(shifts *repositories.ShiftRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shiftID, err := strconv.Atoi(chi.URLParam(r, "shiftId"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid shift id")
			return
		}
		taskID, err := strconv.Atoi(chi.URLParam(r, "taskId"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid task id")
			return
		}

		var body struct {
			Completed bool `json:"completed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
			return
		}

		if err := shifts.ToggleTask(r.Context(), shiftID, taskID, body.Completed); err != nil {
			log.Printf("Complete task error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		message := "Task marked incomplete"
		if body.Completed {
			message = "Task completed"
		}
		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": message,
		})
	}
}
