package shift

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sevnx/shift_backend/internal/pkg/response"
	"github.com/sevnx/shift_backend/internal/repositories"
	"github.com/sevnx/shift_backend/internal/services/export"
)

// ExportMonthHandler отдает график месяца xlsx-файлом.
func ExportMonthHandler(exporter *export.Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month := chi.URLParam(r, "month")

		f, err := exporter.BuildMonth(r.Context(), month)
		if err != nil {
			if errors.Is(err, repositories.ErrInvalidInput) {
				response.RespondWithError(w, http.StatusBadRequest, "Invalid month, expected YYYY-MM")
				return
			}
			log.Printf("Export schedule error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to build export")
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="schedule-%s.xlsx"`, month))
		if err := f.Write(w); err != nil {
			log.Printf("Export write error: %v", err)
		}
	}
}
