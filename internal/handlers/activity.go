package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/sevnx/shift_backend/internal/pkg/response"
	"github.com/sevnx/shift_backend/internal/repositories"
)

// ListActivityHandler возвращает последние записи журнала действий.
func ListActivityHandler(activity *repositories.ActivityRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		entries, err := activity.ListRecent(r.Context(), limit)
		if err != nil {
			log.Printf("Get activity error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		response.RespondWithJSON(w, http.StatusOK, entries)
	}
}
