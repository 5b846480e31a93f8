package models

import "strconv"

// Defaults for the optional trailing fields of a course line.
const (
	DefaultFee      = "Free"
	DefaultNotes    = "No additional notes"
	DefaultCapacity = 30
)

// Course (Курс)
type Course struct {
	ID         string `json:"course_id"`
	Name       string `json:"name"`
	Instructor string `json:"instructor"`
	AddedBy    string `json:"added_by"`
	Fee        string `json:"fee"`
	Notes      string `json:"notes"`
	Capacity   int    `json:"capacity"`
}

// CourseOptions holds the optional course attributes. Zero values mean "use the default".
type CourseOptions struct {
	Fee      string
	Notes    string
	Capacity int
}

// WithDefaults fills every zero field with its named default.
func (o CourseOptions) WithDefaults() CourseOptions {
	if o.Fee == "" {
		o.Fee = DefaultFee
	}
	if o.Notes == "" {
		o.Notes = DefaultNotes
	}
	if o.Capacity <= 0 {
		o.Capacity = DefaultCapacity
	}
	return o
}

// NewCourse builds a Course, applying defaults to the optional attributes.
func NewCourse(id, name, instructor, addedBy string, opts CourseOptions) Course {
	opts = opts.WithDefaults()
	return Course{
		ID:         id,
		Name:       name,
		Instructor: instructor,
		AddedBy:    addedBy,
		Fee:        opts.Fee,
		Notes:      opts.Notes,
		Capacity:   opts.Capacity,
	}
}

// ParseCapacity converts a textual capacity. Empty text yields DefaultCapacity;
// anything that is not a positive integer is rejected.
func ParseCapacity(s string) (int, bool) {
	if s == "" {
		return DefaultCapacity, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
