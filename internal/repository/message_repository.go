package repository

import (
	"context"
	"database/sql"

	"github.com/lpkia/helpdesk-service/internal/domain"
)

// MessageRepository manages ticket thread messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListByTicketID(ctx context.Context, ticketID int64) ([]domain.Message, error)
	ListByTicketNumber(ctx context.Context, ticketNumber string) ([]domain.Message, error)
}

type messageRepository struct {
	db *sql.DB
}

// NewMessageRepository builds repository.
func NewMessageRepository(db *sql.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	const query = `
        INSERT INTO messages (ticket_id, sender_name, sender_type, message)
        VALUES (?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		msg.TicketID,
		msg.SenderName,
		msg.SenderType,
		msg.Message,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	msg.ID = id
	return nil
}

// Thread order is creation order; the surrogate key breaks timestamp ties.
func (r *messageRepository) ListByTicketID(ctx context.Context, ticketID int64) ([]domain.Message, error) {
	const query = `
        SELECT id, ticket_id, sender_name, sender_type, message, created_at
        FROM messages WHERE ticket_id = ?
        ORDER BY created_at ASC, id ASC`
	return r.fetchMany(ctx, query, ticketID)
}

func (r *messageRepository) ListByTicketNumber(ctx context.Context, ticketNumber string) ([]domain.Message, error) {
	const query = `
        SELECT m.id, m.ticket_id, m.sender_name, m.sender_type, m.message, m.created_at
        FROM messages m
        JOIN tickets t ON m.ticket_id = t.id
        WHERE t.ticket_number = ?
        ORDER BY m.created_at ASC, m.id ASC`
	return r.fetchMany(ctx, query, ticketNumber)
}

func (r *messageRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.TicketID,
			&msg.SenderName,
			&msg.SenderType,
			&msg.Message,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
