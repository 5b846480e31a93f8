package personal

import (
	"net/http"

	"github.com/s/courseEnrollment/internal/handlers"
)

type Service struct {
	*handlers.Handler
}

// GET /api/my-courses
// Только курсы, на которые записан студент.
func (s *Service) HandleMyCourses(w http.ResponseWriter, r *http.Request) {
	actor, _ := s.CurrentActor(r)

	courses, stats, err := s.Service.MyCourses(r.Context(), actor)
	if err != nil {
		handlers.WriteServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"username": actor.Username,
		"courses":  courses,
		"stats":    stats,
	})
}
