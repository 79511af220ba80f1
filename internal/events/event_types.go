package events

import (
	"time"

	"github.com/lpkia/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "ticket_created"
	EventTicketUpdated EventType = "ticket_updated"
	EventMessageAdded  EventType = "message_added"
)

// Event represents a domain event emitted by services. TicketNumber is the
// externally visible code; subscribers treat the payload as a refresh
// trigger, not as the source of truth.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	TicketNumber string      `json:"ticket_number"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID     string            `json:"ticket_id"`
	TicketNumber string            `json:"ticket_number"`
	Category     domain.Department `json:"category"`
	StudentName  string            `json:"student_name"`
	StudentPhone string            `json:"-"`
	Subject      string            `json:"subject"`
	Timestamp    string            `json:"timestamp"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	TicketNumber string                `json:"ticket_number"`
	Status       domain.TicketStatus   `json:"status"`
	Priority     domain.TicketPriority `json:"priority"`
	Timestamp    string                `json:"timestamp"`
}

// MessageAddedPayload payload. The recipient routing fields are resolved by
// the notification subscriber and are not part of the published payload.
type MessageAddedPayload struct {
	MessageID    int64             `json:"message_id"`
	SenderName   string            `json:"sender_name"`
	SenderType   domain.SenderType `json:"sender_type"`
	Message      string            `json:"message"`
	Timestamp    string            `json:"timestamp"`
	Category     domain.Department `json:"-"`
	StudentPhone string            `json:"-"`
}
