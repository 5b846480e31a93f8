package handlers

import (
	"net/http"
)

// GET /api/courses?search=
// Courses with enrollment counts, dashboard stats and the caller's enrollments.
func (h *Handler) HandleCourses(w http.ResponseWriter, r *http.Request) {
	actor, _ := h.CurrentActor(r)

	catalog, err := h.Service.Catalog(r.Context(), actor, r.URL.Query().Get("search"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"username":       actor.Username,
		"role":           actor.Role,
		"courses":        catalog.Courses,
		"stats":          catalog.Stats,
		"my_enrollments": catalog.MyEnrollments,
		"search_query":   catalog.SearchQuery,
	})
}
