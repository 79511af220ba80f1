package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lpkia/helpdesk-service/internal/domain"
	"github.com/lpkia/helpdesk-service/internal/repository"
	apperrors "github.com/lpkia/helpdesk-service/pkg/util/errorutil"
)

// AuthService resolves staff accounts. Login is a username lookup against
// active accounts only; there are no credentials or sessions.
type AuthService struct {
	users repository.UserRepository
}

// NewAuthService constructs the service.
func NewAuthService(users repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// UserCreateInput describes an admin-created staff account.
type UserCreateInput struct {
	Username   string
	FullName   string
	Email      string
	Department domain.Department
	Role       string
}

// Login resolves an active staff account by username.
func (s *AuthService) Login(ctx context.Context, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.NewValidationError("username required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("user")
	}
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return user, nil
}

// ListUsers returns active staff, optionally restricted to one department.
func (s *AuthService) ListUsers(ctx context.Context, department string) ([]domain.User, error) {
	var (
		users []domain.User
		err   error
	)
	if department != "" {
		users, err = s.users.ListByDepartment(ctx, domain.Department(department))
	} else {
		users, err = s.users.List(ctx)
	}
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// CreateUser provisions a staff account. Usernames are unique; a duplicate
// surfaces as a conflict.
func (s *AuthService) CreateUser(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.TrimSpace(input.Email)
	input.Role = strings.TrimSpace(input.Role)

	if input.Username == "" || input.FullName == "" || input.Email == "" || input.Role == "" {
		return nil, apperrors.NewValidationError("all fields are required")
	}
	if !input.Department.Valid() {
		return nil, apperrors.NewValidationError("invalid department")
	}

	user := &domain.User{
		Username:   input.Username,
		FullName:   input.FullName,
		Email:      input.Email,
		Department: input.Department,
		Role:       input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("username already exists")
		}
		return nil, apperrors.ToDomainError(err)
	}
	return user, nil
}
