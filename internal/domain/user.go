package domain

import "time"

// Department identifies one of the three support teams. The same set is
// used for ticket categories and message sender tags.
type Department string

const (
	DepartmentBAU Department = "BAU"
	DepartmentBAA Department = "BAA"
	DepartmentMIS Department = "MIS"
)

// Valid reports whether the department is one of the known teams.
func (d Department) Valid() bool {
	switch d {
	case DepartmentBAU, DepartmentBAA, DepartmentMIS:
		return true
	}
	return false
}

// UserStatus represents lifecycle states for a staff account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "Active"
	UserStatusInactive UserStatus = "Inactive"
)

// User is a department staff account. Accounts are never hard-deleted;
// deactivation flips Status to Inactive, which removes them from lookups.
type User struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username"`
	FullName   string     `json:"full_name"`
	Email      string     `json:"email"`
	Department Department `json:"department"`
	Role       string     `json:"role"`
	Status     UserStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}
