package admin

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/s/courseEnrollment/internal/handlers"
	"github.com/s/courseEnrollment/internal/service"
)

type Service struct {
	*handlers.Handler
}

// pathVar returns the unescaped route variable; the router matches on the escaped path.
func pathVar(r *http.Request, name string) (string, bool) {
	v, err := url.PathUnescape(mux.Vars(r)[name])
	return v, err == nil
}

// ==========================================
// POST /api/courses (Создание)
// ==========================================
func (s *Service) CreateCourseAPI(w http.ResponseWriter, r *http.Request) {
	actor, _ := s.CurrentActor(r)

	var input service.CourseInput
	if !handlers.DecodeJSON(w, r, &input) {
		return
	}

	course, err := s.Service.AddCourse(r.Context(), actor, input)
	if err != nil {
		handlers.WriteServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": fmt.Sprintf("Course '%s' added successfully!", course.Name),
		"course":  course,
	})
}

// ==========================================
// DELETE /api/courses/{id} (Удаление вместе с записями)
// ==========================================
func (s *Service) DeleteCourseAPI(w http.ResponseWriter, r *http.Request) {
	actor, _ := s.CurrentActor(r)
	courseID, ok := pathVar(r, "id")
	if !ok {
		handlers.JSONError(w, "Invalid course id", http.StatusBadRequest)
		return
	}

	removed, err := s.Service.DeleteCourse(r.Context(), actor, courseID)
	if err != nil {
		handlers.WriteServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":             fmt.Sprintf("Course %s and all its enrollments deleted successfully", courseID),
		"removed_enrollments": removed,
	})
}

// ==========================================
// DELETE /api/courses/{id}/enrollments/{student}
// ==========================================
func (s *Service) DeleteEnrollmentAPI(w http.ResponseWriter, r *http.Request) {
	actor, _ := s.CurrentActor(r)
	courseID, okID := pathVar(r, "id")
	student, okStudent := pathVar(r, "student")
	if !okID || !okStudent {
		handlers.JSONError(w, "Invalid path", http.StatusBadRequest)
		return
	}

	if _, err := s.Service.DeleteEnrollment(r.Context(), actor, student, courseID); err != nil {
		handlers.WriteServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Removed %s from course %s", student, courseID),
	})
}
