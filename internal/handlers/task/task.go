package task

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

// ListTasksHandler возвращает активные задачи, ?shift= фильтрует по типу смены.
func ListTasksHandler(tasks *repositories.TaskRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := tasks.List(r.Context(), r.URL.Query().Get("shift"))
		if err != nil {
			log.Printf("Get tasks error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		response.RespondWithJSON(w, http.StatusOK, list)
	}
}

func GetTaskHandler(tasks *repositories.TaskRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid task id")
			return
		}

		t, err := tasks.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				response.RespondWithError(w, http.StatusNotFound, "Task not found")
				return
			}
			log.Printf("Get task error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		response.RespondWithJSON(w, http.StatusOK, t)
	}
}

func CreateTaskHandler(tasks *repositories.TaskRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name        string  `json:"name"`
			Description *string `json:"description"`
			Icon        string  `json:"icon"`
			Shift       string  `json:"shift"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
			return
		}
		if body.Name == "" {
			response.RespondWithError(w, http.StatusBadRequest, "Task name is required")
			return
		}

		id, err := tasks.Create(r.Context(), body.Name, body.Description, body.Icon, body.Shift)
		if err != nil {
			log.Printf("Create task error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		response.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"id":      id,
			"message": "Task created",
		})
	}
}

func UpdateTaskHandler(tasks *repositories.TaskRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid task id")
			return
		}

		var body struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
			Icon        *string `json:"icon"`
			Shift       *string `json:"shift"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
			return
		}

		err = tasks.Update(r.Context(), id, repositories.UpdateTaskParams{
			Name:        body.Name,
			Description: body.Description,
			Icon:        body.Icon,
			Shift:       body.Shift,
		})
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				response.RespondWithError(w, http.StatusNotFound, "Task not found")
				return
			}
			log.Printf("Update task error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Task updated",
		})
	}
}

// DeleteTaskHandler — мягкое удаление задачи.
func DeleteTaskHandler(tasks *repositories.TaskRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid task id")
			return
		}

		name, err := tasks.SoftDelete(r.Context(), id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				response.RespondWithError(w, http.StatusNotFound, "Task not found")
				return
			}
			log.Printf("Delete task error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": fmt.Sprintf("Task %s removed", name),
		})
	}
}

// TaskStatsHandler — количество активных задач по типам смен.
func TaskStatsHandler(tasks *repositories.TaskRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := tasks.StatsSummary(r.Context())
		if err != nil {
			log.Printf("Get task stats error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		response.RespondWithJSON(w, http.StatusOK, summary)
	}
}
