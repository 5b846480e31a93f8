package models

// Enrollment (Запись студента на курс)
type Enrollment struct {
	Student  string `json:"student"`
	CourseID string `json:"course_id"`
}

// Enrollments groups enrolled students by course id. Courses keep the order of
// their first line in the table and each group keeps table order.
type Enrollments struct {
	courseIDs []string
	students  map[string][]string
}

func NewEnrollments() Enrollments {
	return Enrollments{students: make(map[string][]string)}
}

// Add records one enrollment line.
func (e *Enrollments) Add(courseID, student string) {
	if e.students == nil {
		e.students = make(map[string][]string)
	}
	if _, ok := e.students[courseID]; !ok {
		e.courseIDs = append(e.courseIDs, courseID)
	}
	e.students[courseID] = append(e.students[courseID], student)
}

// Students returns a copy of the group for courseID.
func (e Enrollments) Students(courseID string) []string {
	return append([]string(nil), e.students[courseID]...)
}

// HasCourse reports whether any student is enrolled in courseID.
func (e Enrollments) HasCourse(courseID string) bool {
	_, ok := e.students[courseID]
	return ok
}

// Count returns the number of students enrolled in courseID.
func (e Enrollments) Count(courseID string) int {
	return len(e.students[courseID])
}

// Has reports whether student is enrolled in courseID.
func (e Enrollments) Has(courseID, student string) bool {
	for _, s := range e.students[courseID] {
		if s == student {
			return true
		}
	}
	return false
}

// Total is the number of enrollment records across all courses.
func (e Enrollments) Total() int {
	total := 0
	for _, students := range e.students {
		total += len(students)
	}
	return total
}

// CoursesOf returns the ids of the courses student is enrolled in, in table order.
func (e Enrollments) CoursesOf(student string) []string {
	ids := []string{}
	for _, courseID := range e.courseIDs {
		if e.Has(courseID, student) {
			ids = append(ids, courseID)
		}
	}
	return ids
}
