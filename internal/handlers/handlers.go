package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/s/courseEnrollment/internal/models"
	"github.com/s/courseEnrollment/internal/service"
)

const sessionName = "session"

type Handler struct {
	Service *service.Service
	Store   *sessions.CookieStore
}

// NewSessionStore builds the cookie store used for logins. Secure must be false
// when serving plain http, or browsers never send the cookie back.
func NewSessionStore(key string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(key))
	store.MaxAge(86400 * 7)
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	return store
}

func NewHandler(svc *service.Service, store *sessions.CookieStore) *Handler {
	return &Handler{
		Service: svc,
		Store:   store,
	}
}

// CurrentActor reads the logged-in user from the session cookie.
func (h *Handler) CurrentActor(r *http.Request) (service.Actor, bool) {
	session, _ := h.Store.Get(r, sessionName)

	username, _ := session.Values["username"].(string)
	role, _ := session.Values["role"].(string)
	if username == "" {
		return service.Actor{}, false
	}
	return service.Actor{Username: username, Role: models.Role(role)}, true
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func WriteJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func JSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, map[string]string{"error": message})
}

// DecodeJSON reads the request body into v and answers 400 on failure.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return false
	}
	return true
}

// WriteServiceError maps a service failure to a status code. Unknown errors are
// logged and reported as 500 without details.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrPasswordMismatch):
		JSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		JSONError(w, "Invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, service.ErrAuthorizationDenied):
		JSONError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrCourseNotFound):
		JSONError(w, "Course not found", http.StatusNotFound)
	case errors.Is(err, service.ErrDuplicateID),
		errors.Is(err, service.ErrAlreadyEnrolled),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrCourseFull):
		JSONError(w, err.Error(), http.StatusConflict)
	default:
		log.Printf("Internal error: %v", err)
		JSONError(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
