package routes

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // ← алиас!
	"github.com/go-chi/jwtauth/v5"
	"github.com/redis/go-redis/v9"

	"github.com/sevnx/shift_backend/config"
	"github.com/sevnx/shift_backend/internal/db"
	"github.com/sevnx/shift_backend/internal/handlers"
	authHandlers "github.com/sevnx/shift_backend/internal/handlers/auth"
	employeeHandlers "github.com/sevnx/shift_backend/internal/handlers/employee"
	leaveHandlers "github.com/sevnx/shift_backend/internal/handlers/leave"
	shiftHandlers "github.com/sevnx/shift_backend/internal/handlers/shift"
	taskHandlers "github.com/sevnx/shift_backend/internal/handlers/task"
	"github.com/sevnx/shift_backend/internal/middleware" // ваш middleware
	"github.com/sevnx/shift_backend/internal/pkg/response"
	"github.com/sevnx/shift_backend/internal/repositories"
	authService "github.com/sevnx/shift_backend/internal/services/auth"
	"github.com/sevnx/shift_backend/internal/services/assign"
	"github.com/sevnx/shift_backend/internal/services/export"
)

// Setup инициализирует и возвращает настроенный маршрутизатор.
func Setup(cfg *config.Config, store *db.Store, redisClient *redis.Client) *chi.Mux {
	jwtAuth := jwtauth.New("HS256", []byte(cfg.JwtSecret), nil)
	jwtService := authService.NewJWTService(cfg.JwtSecret, redisClient)

	userRepo := repositories.NewUserRepository(store)
	taskRepo := repositories.NewTaskRepository(store)
	shiftRepo := repositories.NewShiftRepository(store)
	leaveRepo := repositories.NewLeaveRepository(store)
	activityRepo := repositories.NewActivityRepository(store)

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	assigner := assign.New(shiftRepo, taskRepo, rnd)
	exporter := export.NewExporter(shiftRepo)

	authHandler := authHandlers.NewAuthHandler(userRepo, activityRepo, jwtService)

	router := chi.NewRouter()

	// Используем chiMiddleware для Logger и Recoverer
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(jwtauth.Verifier(jwtAuth))
	router.Use(middleware.AddUserIDToContext()) // ваш middleware

	// Публичные маршруты
	router.Post("/api/auth/login", authHandler.LoginHandler)
	router.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		response.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Group(func(r chi.Router) {
		r.Use(jwtauth.Authenticator(jwtAuth))
		r.Use(middleware.RejectBlacklisted(jwtService))

		r.Get("/api/auth/verify", authHandler.VerifyHandler)
		r.Post("/api/auth/logout", authHandler.LogoutHandler)
		r.Post("/api/auth/change-password", authHandler.ChangePasswordHandler)

		r.Get("/api/employees", employeeHandlers.ListEmployeesHandler(userRepo))
		r.Get("/api/employees/{id}", employeeHandlers.GetEmployeeHandler(userRepo))

		r.Get("/api/tasks", taskHandlers.ListTasksHandler(taskRepo))
		r.Get("/api/tasks/stats/summary", taskHandlers.TaskStatsHandler(taskRepo))
		r.Get("/api/tasks/{id}", taskHandlers.GetTaskHandler(taskRepo))

		r.Get("/api/shifts/date/{date}", shiftHandlers.GetShiftsByDateHandler(shiftRepo))
		r.Get("/api/shifts/week/{startDate}", shiftHandlers.GetShiftsByWeekHandler(shiftRepo))
		r.Get("/api/shifts/employee/{userId}", shiftHandlers.GetShiftsByEmployeeHandler(shiftRepo))
		r.Post("/api/shifts/{shiftId}/tasks/{taskId}/complete", shiftHandlers.CompleteTaskHandler(shiftRepo))

		r.Get("/api/leaves", leaveHandlers.ListLeavesHandler(leaveRepo))
		r.Post("/api/leaves", leaveHandlers.CreateLeaveHandler(leaveRepo, userRepo, activityRepo))
		r.Get("/api/leaves/pending-count", leaveHandlers.PendingCountHandler(leaveRepo))

		// Только для менеджеров
		r.Group(func(mr chi.Router) {
			mr.Use(middleware.ManagerOnly())

			mr.Post("/api/employees", employeeHandlers.CreateEmployeeHandler(userRepo))
			mr.Put("/api/employees/{id}", employeeHandlers.UpdateEmployeeHandler(userRepo))
			mr.Delete("/api/employees/{id}", employeeHandlers.DeleteEmployeeHandler(userRepo))

			mr.Post("/api/tasks", taskHandlers.CreateTaskHandler(taskRepo))
			mr.Put("/api/tasks/{id}", taskHandlers.UpdateTaskHandler(taskRepo))
			mr.Delete("/api/tasks/{id}", taskHandlers.DeleteTaskHandler(taskRepo))

			mr.Post("/api/shifts", shiftHandlers.CreateShiftHandler(shiftRepo, userRepo, activityRepo))
			mr.Put("/api/shifts/{id}", shiftHandlers.UpdateShiftHandler(shiftRepo))
			mr.Delete("/api/shifts/{id}", shiftHandlers.DeleteShiftHandler(shiftRepo))
			mr.Get("/api/shifts/export/{month}", shiftHandlers.ExportMonthHandler(exporter))

			mr.Put("/api/leaves/{id}/status", leaveHandlers.UpdateLeaveStatusHandler(leaveRepo, activityRepo))

			mr.Post("/api/admin/assign-tasks/{date}", shiftHandlers.AssignTasksHandler(assigner))
			mr.Get("/api/activity", handlers.ListActivityHandler(activityRepo))
		})
	})

	return router
}
