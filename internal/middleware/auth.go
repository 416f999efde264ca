package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/sevnx/shift_backend/internal/pkg/response"
	authService "github.com/sevnx/shift_backend/internal/services/auth"
)

// ManagerOnly проверяет, что роль пользователя — "manager".
func ManagerOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.RespondWithError(w, http.StatusUnauthorized, "Invalid claims")
				return
			}

			if claims["role"] != "manager" {
				response.RespondWithError(w, http.StatusForbidden, "Manager role required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RejectBlacklisted отклоняет токены, отозванные логаутом.
func RejectBlacklisted(jwtService *authService.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := jwtauth.TokenFromHeader(r)
			if token != "" && jwtService.IsBlacklisted(r.Context(), token) {
				response.RespondWithError(w, http.StatusUnauthorized, "Token has been revoked")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
