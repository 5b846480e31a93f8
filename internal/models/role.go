package models

// Role is stored verbatim in the user table.
type Role string

// Константы ролей, используемые по всему приложению.
// RoleGuest is the zero value for requests without a session.
const (
	RoleGuest   Role = ""
	RoleAdmin   Role = "Admin"
	RoleStudent Role = "Student"
)

// Valid reports whether r is one of the roles a user can register with.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStudent
}
