package routes

import (
	"github.com/gorilla/mux"

	"github.com/s/courseEnrollment/internal/handlers"
	"github.com/s/courseEnrollment/internal/handlers/admin"
	"github.com/s/courseEnrollment/internal/handlers/personal"
	"github.com/s/courseEnrollment/internal/middleware"
	"github.com/s/courseEnrollment/internal/models"
)

func SetupRouter(h *handlers.Handler) *mux.Router {
	adminService := admin.Service{Handler: h}
	personalService := personal.Service{Handler: h}

	adminOnly := middleware.RequiredRole(h, models.RoleAdmin)
	studentOnly := middleware.RequiredRole(h, models.RoleStudent)
	loggedIn := middleware.Authenticated(h)

	// Path variables stay escaped so ids holding '/' still resolve to one segment.
	r := mux.NewRouter().UseEncodedPath()
	r.Use(middleware.RequestLogger)

	// --- Публичные маршруты ---
	r.HandleFunc("/health", h.HandleHealth).Methods("GET")
	r.HandleFunc("/api/register", h.HandleRegister).Methods("POST")
	r.HandleFunc("/api/login", h.HandleLogin).Methods("POST")
	r.HandleFunc("/api/logout", h.HandleLogout).Methods("POST")

	// --- Любой вошедший пользователь ---
	r.HandleFunc("/api/courses", loggedIn(h.HandleCourses)).Methods("GET")

	// --- Администратор ---
	r.HandleFunc("/api/courses", adminOnly(adminService.CreateCourseAPI)).Methods("POST")
	r.HandleFunc("/api/courses/{id}", adminOnly(adminService.DeleteCourseAPI)).Methods("DELETE")
	r.HandleFunc("/api/courses/{id}/enrollments/{student}", adminOnly(adminService.DeleteEnrollmentAPI)).Methods("DELETE")

	// --- Студент ---
	r.HandleFunc("/api/enroll", studentOnly(h.HandleEnroll)).Methods("POST")
	r.HandleFunc("/api/unenroll", studentOnly(h.HandleUnenroll)).Methods("POST")
	r.HandleFunc("/api/my-courses", studentOnly(personalService.HandleMyCourses)).Methods("GET")

	return r
}
