package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/s/courseEnrollment/internal/service"
)

// POST /api/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.Registration
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Service.Register(r.Context(), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Registration successful! Please login.",
		"user":    user,
	})
}

// POST /api/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	actor, err := h.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	session, _ := h.Store.Get(r, sessionName)
	session.Values["username"] = actor.Username
	session.Values["role"] = string(actor.Role)
	if err := session.Save(r, w); err != nil {
		log.Printf("Failed to save session: %v", err)
		JSONError(w, "Session error", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"message":  fmt.Sprintf("Welcome, %s", actor.Username),
		"username": actor.Username,
		"role":     string(actor.Role),
	})
}

// POST /api/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, sessionName)
	session.Values = map[interface{}]interface{}{}
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		log.Printf("Failed to save session: %v", err)
		JSONError(w, "Session error", http.StatusInternalServerError)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
