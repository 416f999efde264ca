package shift

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sevnx/shift_backend/internal/pkg/response"
	"github.com/sevnx/shift_backend/internal/services/assign"
)

// AssignTasksHandler запускает случайную раздачу задач всем сменам
// на дату. Результат невоспроизводим — только для заполнения данных.
func AssignTasksHandler(assigner *assign.Assigner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := chi.URLParam(r, "date")
		if _, err := time.Parse("2006-01-02", date); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}

		updated, err := assigner.AssignDate(r.Context(), date)
		if err != nil {
			log.Printf("Assign tasks error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"updated": updated,
		})
	}
}
