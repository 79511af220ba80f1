package dto

// LoginRequest payload. Login is a username lookup only.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
}

// CreateUserRequest payload for admin-created staff accounts.
type CreateUserRequest struct {
	Username   string `json:"username" validate:"required"`
	FullName   string `json:"full_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department" validate:"required,oneof=BAU BAA MIS"`
	Role       string `json:"role" validate:"required"`
}
