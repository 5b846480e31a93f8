package service

import (
	"context"
	"strings"

	"github.com/s/courseEnrollment/internal/models"
	"github.com/s/courseEnrollment/internal/storage"
)

// Stats are the dashboard counters shown with the course list.
type Stats struct {
	TotalCourses     int `json:"total_courses"`
	TotalEnrollments int `json:"total_enrollments"`
	MyCourses        int `json:"my_courses"`
	AvailableCourses int `json:"available_courses"`
}

// CourseInput is the raw form of a new course. Capacity is text so that an empty
// value can fall back to the default.
type CourseInput struct {
	ID         string `json:"cid"`
	Name       string `json:"name"`
	Instructor string `json:"instructor"`
	Fee        string `json:"fee"`
	Notes      string `json:"notes"`
	Capacity   string `json:"capacity"`
}

// CourseView is a course together with its enrollment state.
type CourseView struct {
	models.Course
	Enrolled       int      `json:"enrolled"`
	SeatsRemaining int      `json:"seats_remaining"`
	IsEnrolled     bool     `json:"is_enrolled"`
	Students       []string `json:"students,omitempty"`
}

// Catalog is everything the course listing page needs in one read.
type Catalog struct {
	Courses       []CourseView `json:"courses"`
	Stats         Stats        `json:"stats"`
	MyEnrollments []string     `json:"my_enrollments"`
	SearchQuery   string       `json:"search_query"`
}

func (s *Service) ListCourses(ctx context.Context, actor Actor) ([]models.Course, error) {
	return s.SearchCourses(ctx, actor, "")
}

// SearchCourses matches query case-insensitively against id, name and instructor.
// An empty query returns every course in table order.
func (s *Service) SearchCourses(ctx context.Context, actor Actor, query string) ([]models.Course, error) {
	if err := requireRole(actor, anyAuthenticated); err != nil {
		return nil, err
	}

	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}
	return filterCourses(courses, query), nil
}

func filterCourses(courses []models.Course, query string) []models.Course {
	query = strings.ToLower(query)
	if query == "" {
		return courses
	}

	matched := make([]models.Course, 0, len(courses))
	for _, c := range courses {
		if strings.Contains(strings.ToLower(c.ID), query) ||
			strings.Contains(strings.ToLower(c.Name), query) ||
			strings.Contains(strings.ToLower(c.Instructor), query) {
			matched = append(matched, c)
		}
	}
	return matched
}

func (s *Service) ComputeStats(ctx context.Context, actor Actor) (Stats, error) {
	if err := requireRole(actor, anyAuthenticated); err != nil {
		return Stats{}, err
	}

	courses, err := s.courses.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	enrollments, err := s.enrollments.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	return computeStats(actor, len(courses), enrollments), nil
}

// computeStats counts my_courses over enrollment groups, so an enrollment whose
// course no longer exists still counts, as it does in total_enrollments.
func computeStats(actor Actor, totalCourses int, enrollments models.Enrollments) Stats {
	mine := len(enrollments.CoursesOf(actor.Username))
	stats := Stats{
		TotalCourses:     totalCourses,
		TotalEnrollments: enrollments.Total(),
		MyCourses:        mine,
		AvailableCourses: totalCourses,
	}
	if actor.Role == models.RoleStudent {
		stats.AvailableCourses = totalCourses - mine
	}
	return stats
}

// Catalog searches the courses and attaches enrollment counts and stats. Admins
// also see the enrolled students of every course.
func (s *Service) Catalog(ctx context.Context, actor Actor, query string) (Catalog, error) {
	if err := requireRole(actor, anyAuthenticated); err != nil {
		return Catalog{}, err
	}

	courses, err := s.courses.List(ctx)
	if err != nil {
		return Catalog{}, err
	}
	enrollments, err := s.enrollments.List(ctx)
	if err != nil {
		return Catalog{}, err
	}

	matched := filterCourses(courses, query)
	views := make([]CourseView, 0, len(matched))
	for _, c := range matched {
		views = append(views, newCourseView(actor, c, enrollments))
	}

	mine := enrollments.CoursesOf(actor.Username)
	return Catalog{
		Courses:       views,
		Stats:         computeStats(actor, len(courses), enrollments),
		MyEnrollments: mine,
		SearchQuery:   strings.ToLower(query),
	}, nil
}

func newCourseView(actor Actor, c models.Course, enrollments models.Enrollments) CourseView {
	enrolled := enrollments.Count(c.ID)
	view := CourseView{
		Course:         c,
		Enrolled:       enrolled,
		SeatsRemaining: max(c.Capacity-enrolled, 0),
		IsEnrolled:     enrollments.Has(c.ID, actor.Username),
	}
	if actor.Role == models.RoleAdmin {
		view.Students = enrollments.Students(c.ID)
	}
	return view
}

// AddCourse validates input and appends the course, recording the actor as its creator.
func (s *Service) AddCourse(ctx context.Context, actor Actor, in CourseInput) (models.Course, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return models.Course{}, err
	}

	course, err := newCourseFromInput(actor, in)
	if err != nil {
		return models.Course{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists, err := s.courses.Get(ctx, course.ID)
	if err != nil {
		return models.Course{}, err
	}
	if exists {
		return models.Course{}, ErrDuplicateID
	}

	if err := s.courses.Add(ctx, course); err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func newCourseFromInput(actor Actor, in CourseInput) (models.Course, error) {
	id := strings.TrimSpace(in.ID)
	name := strings.TrimSpace(in.Name)
	instructor := strings.TrimSpace(in.Instructor)
	if id == "" || name == "" || instructor == "" {
		return models.Course{}, invalidInput("course ID, name, and instructor are required")
	}

	fields := []string{id, name, instructor, actor.Username, in.Fee, in.Notes, in.Capacity}
	for _, f := range fields {
		if !storage.ValidField(f) {
			return models.Course{}, invalidInput("fields must not contain commas or line breaks")
		}
	}

	if !validKey(id) {
		return models.Course{}, invalidInput("course ID must not contain '/'")
	}

	capacity, ok := models.ParseCapacity(strings.TrimSpace(in.Capacity))
	if !ok {
		return models.Course{}, invalidInput("capacity must be a positive whole number")
	}

	return models.NewCourse(id, name, instructor, actor.Username, models.CourseOptions{
		Fee:      strings.TrimSpace(in.Fee),
		Notes:    strings.TrimSpace(in.Notes),
		Capacity: capacity,
	}), nil
}

// DeleteCourse removes the course and then every enrollment in it. Both steps run
// under the service lock so no enrollment can slip in between.
func (s *Service) DeleteCourse(ctx context.Context, actor Actor, courseID string) (int, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return 0, err
	}
	courseID = strings.TrimSpace(courseID)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.courses.Delete(ctx, courseID)
	if err != nil {
		return 0, err
	}
	if !removed {
		return 0, ErrCourseNotFound
	}
	return s.enrollments.RemoveAllForCourse(ctx, courseID)
}
