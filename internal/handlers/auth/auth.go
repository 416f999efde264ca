// handlers/auth.go
package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/sevnx/shift_backend/internal/middleware"
	"github.com/sevnx/shift_backend/internal/models"
	"github.com/sevnx/shift_backend/internal/pkg/response"
	"github.com/sevnx/shift_backend/internal/repositories"
	authService "github.com/sevnx/shift_backend/internal/services/auth"
)

type AuthHandler struct {
	users      *repositories.UserRepository
	activity   *repositories.ActivityRepository
	jwtService *authService.JWTService
}

func NewAuthHandler(users *repositories.UserRepository, activity *repositories.ActivityRepository, jwtService *authService.JWTService) *AuthHandler {
	return &AuthHandler{
		users:      users,
		activity:   activity,
		jwtService: jwtService,
	}
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var loginData struct {
		EmployeeID string `json:"employeeId"`
		Password   string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&loginData); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	if loginData.EmployeeID == "" || loginData.Password == "" {
		response.RespondWithError(w, http.StatusBadRequest, "Employee ID and password are required")
		return
	}

	user, err := h.users.GetByEmployeeID(r.Context(), loginData.EmployeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.RespondWithError(w, http.StatusUnauthorized, "Invalid employee ID or password")
			return
		}
		log.Printf("Login lookup error: %v", err)
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !authService.CheckPassword(user.PasswordHash, loginData.Password) {
		response.RespondWithError(w, http.StatusUnauthorized, "Invalid employee ID or password")
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.EmployeeID, user.Role)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Could not generate token")
		return
	}

	if err := h.activity.Log(r.Context(), &user.ID, "login", user.Name+" logged in"); err != nil {
		log.Printf("Activity log error: %v", err)
	}

	response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"user":    profileOf(user),
	})
}

// VerifyHandler проверяет токен и возвращает актуальный профиль.
func (h *AuthHandler) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	token := jwtauth.TokenFromHeader(r)
	if token == "" {
		response.RespondWithError(w, http.StatusUnauthorized, "Token required")
		return
	}

	claims, err := h.jwtService.ParseToken(token)
	if err != nil {
		response.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	if h.jwtService.IsBlacklisted(r.Context(), token) {
		response.RespondWithError(w, http.StatusUnauthorized, "Token has been revoked")
		return
	}

	user, err := h.users.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		response.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"user":  profileOf(user),
	})
}

func (h *AuthHandler) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	if body.NewPassword == "" {
		response.RespondWithError(w, http.StatusBadRequest, "New password is required")
		return
	}

	user, err := h.users.GetUserByID(r.Context(), userID)
	if err != nil {
		response.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	if !authService.CheckPassword(user.PasswordHash, body.CurrentPassword) {
		response.RespondWithError(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	newHash, err := authService.HashPassword(body.NewPassword)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	if err := h.users.UpdatePassword(r.Context(), user.ID, newHash); err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password changed",
	})
}

// LogoutHandler отзывает текущий токен через черный список.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	token := jwtauth.TokenFromHeader(r)
	if token == "" {
		response.RespondWithError(w, http.StatusUnauthorized, "Token required")
		return
	}
	if err := h.jwtService.Blacklist(r.Context(), token); err != nil {
		log.Printf("Logout blacklist error: %v", err)
	}
	response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out",
	})
}

func profileOf(u *models.User) models.Profile {
	return models.Profile{
		ID:         u.ID,
		EmployeeID: u.EmployeeID,
		Name:       u.Name,
		Role:       u.Role,
		Avatar:     u.Avatar,
		Phone:      u.Phone,
		Email:      u.Email,
	}
}
