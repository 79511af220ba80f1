package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lpkia/helpdesk-service/internal/domain"
)

// TicketFilter captures the mutually exclusive list selectors. TicketNumber
// wins over Category, which wins over Status; with none set every ticket is
// returned, newest first.
type TicketFilter struct {
	TicketNumber *string
	Category     *domain.Department
	Status       *domain.TicketStatus
}

// TicketUpdate carries the optional fields of a partial update. Nil fields
// are left untouched.
type TicketUpdate struct {
	Status     *domain.TicketStatus
	Priority   *domain.TicketPriority
	AssignedTo *int64
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByTicketNumber(ctx context.Context, ticketNumber string) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	Update(ctx context.Context, ticketNumber string, update TicketUpdate) error
	Delete(ctx context.Context, ticketNumber string) error
}

type ticketRepository struct {
	db *sql.DB
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(db *sql.DB) TicketRepository {
	return &ticketRepository{db: db}
}

// Ticket reads join the assignee so listings can show who owns the ticket.
const ticketSelect = `
    SELECT t.id, t.ticket_number, t.student_name, t.student_email, t.student_phone,
           t.category, t.subject, t.description, t.status, t.priority,
           t.assigned_to, u.username, u.full_name, t.resolved_at, t.created_at, t.updated_at
    FROM tickets t
    LEFT JOIN users u ON t.assigned_to = u.id`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (ticket_number, student_name, student_email, student_phone, category, subject, description, status, priority)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		ticket.TicketNumber,
		ticket.StudentName,
		ticket.StudentEmail,
		ticket.StudentPhone,
		ticket.Category,
		ticket.Subject,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ticket.ID = id
	return nil
}

func (r *ticketRepository) GetByTicketNumber(ctx context.Context, ticketNumber string) (*domain.Ticket, error) {
	query := ticketSelect + ` WHERE t.ticket_number = ?`
	row := r.db.QueryRowContext(ctx, query, ticketNumber)
	ticket, err := scanTicket(row)
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	query := ticketSelect
	args := []any{}

	switch {
	case filter.TicketNumber != nil:
		query += ` WHERE t.ticket_number = ?`
		args = append(args, *filter.TicketNumber)
	case filter.Category != nil:
		query += ` WHERE t.category = ?`
		args = append(args, *filter.Category)
	case filter.Status != nil:
		query += ` WHERE t.status = ?`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY t.created_at DESC, t.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

func (r *ticketRepository) Update(ctx context.Context, ticketNumber string, update TicketUpdate) error {
	sets := []string{}
	args := []any{}

	if update.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *update.Status)
		if *update.Status == domain.TicketStatusResolved {
			sets = append(sets, "resolved_at = CURRENT_TIMESTAMP")
		} else {
			sets = append(sets, "resolved_at = NULL")
		}
	}
	if update.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *update.Priority)
	}
	if update.AssignedTo != nil {
		sets = append(sets, "assigned_to = ?")
		args = append(args, *update.AssignedTo)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")

	query := fmt.Sprintf(`UPDATE tickets SET %s WHERE ticket_number = ?`, strings.Join(sets, ", "))
	args = append(args, ticketNumber)

	cmd, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := cmd.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a ticket; the schema cascades to its messages.
func (r *ticketRepository) Delete(ctx context.Context, ticketNumber string) error {
	cmd, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE ticket_number = ?`, ticketNumber)
	if err != nil {
		return err
	}
	affected, err := cmd.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	var (
		ticket           domain.Ticket
		phone            sql.NullString
		assignedTo       sql.NullInt64
		assignedUsername sql.NullString
		assignedName     sql.NullString
		resolvedAt       sql.NullTime
	)
	if err := row.Scan(
		&ticket.ID,
		&ticket.TicketNumber,
		&ticket.StudentName,
		&ticket.StudentEmail,
		&phone,
		&ticket.Category,
		&ticket.Subject,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&assignedTo,
		&assignedUsername,
		&assignedName,
		&resolvedAt,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if phone.Valid {
		ticket.StudentPhone = phone.String
	}
	if assignedTo.Valid {
		ticket.AssignedTo = &assignedTo.Int64
	}
	if assignedUsername.Valid {
		ticket.AssignedUsername = &assignedUsername.String
	}
	if assignedName.Valid {
		ticket.AssignedName = &assignedName.String
	}
	if resolvedAt.Valid {
		ticket.ResolvedAt = &resolvedAt.Time
	}
	return &ticket, nil
}
