package repository

import (
	"context"
	"database/sql"

	"github.com/lpkia/helpdesk-service/internal/domain"
)

// UserRepository defines persistence access for staff accounts. Lookups
// only ever return Active accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ListByDepartment(ctx context.Context, department domain.Department) ([]domain.User, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository returns a SQLite-backed implementation.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, full_name, email, department, role, status, created_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, full_name, email, department, role)
        VALUES (?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		user.Username,
		user.FullName,
		user.Email,
		user.Department,
		user.Role,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	user.Status = domain.UserStatusActive
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = ? AND status = 'Active'`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username = ? AND status = 'Active'`
	return r.fetchSingle(ctx, query, username)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.FullName,
		&user.Email,
		&user.Department,
		&user.Role,
		&user.Status,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE status = 'Active' ORDER BY department, full_name`
	return r.fetchMany(ctx, query)
}

func (r *userRepository) ListByDepartment(ctx context.Context, department domain.Department) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE department = ? AND status = 'Active' ORDER BY full_name`
	return r.fetchMany(ctx, query, department)
}

func (r *userRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.FullName,
			&user.Email,
			&user.Department,
			&user.Role,
			&user.Status,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}
