package leave

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
)

// ListLeavesHandler возвращает заявки, новые первыми.
// ?userId= и ?status= — необязательные фильтры.
func ListLeavesHandler(leaves *repositories.LeaveRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter repositories.LeaveFilter
		if raw := r.URL.Query().Get("userId"); raw != "" {
			userID, err := strconv.Atoi(raw)
			if err != nil {
				response.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
				return
			}
			filter.UserID = &userID
		}
		filter.Status = r.URL.Query().Get("status")

		list, err := leaves.List(r.Context(), filter)
		if err != nil {
			log.Printf("Get leaves error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		response.RespondWithJSON(w, http.StatusOK, list)
	}
}

func CreateLeaveHandler(leaves *repositories.LeaveRepository, users *repositories.UserRepository, activity *repositories.ActivityRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID    int     `json:"userId"`
			Type      string  `json:"type"`
			StartDate string  `json:"startDate"`
			EndDate   string  `json:"endDate"`
			Reason    *string `json:"reason"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
			return
		}
		if body.UserID == 0 || body.Type == "" || body.StartDate == "" || body.EndDate == "" {
			response.RespondWithError(w, http.StatusBadRequest, "User, type and both dates are required")
			return
		}

		id, err := leaves.Create(r.Context(), body.UserID, body.Type, body.StartDate, body.EndDate, body.Reason)
		if err != nil {
			log.Printf("Create leave error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		employeeName := fmt.Sprintf("user #%d", body.UserID)
		if user, err := users.GetUserByID(r.Context(), body.UserID); err == nil {
			employeeName = user.Name
		}
		description := fmt.Sprintf("%s requested %s leave (%s)", employeeName, body.Type, body.StartDate)
		if err := activity.Log(r.Context(), &body.UserID, "leave_request", description); err != nil {
			log.Printf("Activity log error: %v", err)
		}

		response.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"id":      id,
			"message": "Leave request submitted",
		})
	}
}

// UpdateLeaveStatusHandler переводит заявку в approved/rejected.
// Любой другой статус — ошибка валидации, заявка не меняется.
func UpdateLeaveStatusHandler(leaves *repositories.LeaveRepository, activity *repositories.ActivityRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid leave id")
			return
		}

		var body struct {
			Status     string  `json:"status"`
			ApproverID int     `json:"approverId"`
			Comment    *string `json:"comment"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
			return
		}
		if body.Status != "approved" && body.Status != "rejected" {
			response.RespondWithError(w, http.StatusBadRequest, "Status must be approved or rejected")
			return
		}

		if err := leaves.UpdateStatus(r.Context(), id, body.Status, body.ApproverID, body.Comment); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				response.RespondWithError(w, http.StatusNotFound, "Leave request not found")
				return
			}
			log.Printf("Update leave error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		description := fmt.Sprintf("Leave request #%d %s", id, body.Status)
		if err := activity.Log(r.Context(), &body.ApproverID, "leave_update", description); err != nil {
			log.Printf("Activity log error: %v", err)
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": fmt.Sprintf("Leave request %s", body.Status),
		})
	}
}

// PendingCountHandler — число ожидающих заявок для бейджа уведомлений.
func PendingCountHandler(leaves *repositories.LeaveRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := leaves.PendingCount(r.Context())
		if err != nil {
			log.Printf("Pending count error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		response.RespondWithJSON(w, http.StatusOK, map[string]int{"count": count})
	}
}
