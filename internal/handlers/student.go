package handlers

import (
	"fmt"
	"net/http"
)

type courseRequest struct {
	CourseID string `json:"course_id"`
}

// POST /api/enroll
func (h *Handler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	actor, _ := h.CurrentActor(r)

	var req courseRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.Service.Enroll(r.Context(), actor, req.CourseID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":         fmt.Sprintf("Successfully enrolled in '%s'! (%d seats remaining)", res.Course.Name, res.SeatsRemaining),
		"course":          res.Course,
		"seats_remaining": res.SeatsRemaining,
	})
}

// POST /api/unenroll
func (h *Handler) HandleUnenroll(w http.ResponseWriter, r *http.Request) {
	actor, _ := h.CurrentActor(r)

	var req courseRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	name, err := h.Service.Unenroll(r.Context(), actor, req.CourseID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Successfully unenrolled from '%s'", name),
	})
}
