package middleware

import (
	"net/http"

	"github.com/s/courseEnrollment/internal/handlers"
	"github.com/s/courseEnrollment/internal/models"
)

// RequiredRole создает Middleware, требующее определенную роль.
// Unauthenticated requests get 401, a different role gets 403. The service
// checks the role again, so this only saves a round trip.
func RequiredRole(h *handlers.Handler, required models.Role) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			// 1. Проверка аутентификации
			actor, ok := h.CurrentActor(r)
			if !ok {
				handlers.JSONError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// 2. Проверка роли
			if actor.Role != required {
				handlers.JSONError(w, "Access Denied: "+string(required)+" privileges required", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		}
	}
}

// Authenticated admits any logged-in user.
func Authenticated(h *handlers.Handler) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if _, ok := h.CurrentActor(r); !ok {
				handlers.JSONError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		}
	}
}
