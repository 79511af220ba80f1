package domain

import "time"

// SenderType tags a chat message as coming from the student or one of the
// department teams.
type SenderType string

const (
	SenderStudent SenderType = "Student"
	SenderBAU     SenderType = "BAU"
	SenderBAA     SenderType = "BAA"
	SenderMIS     SenderType = "MIS"
)

// Valid reports whether the sender type is in the enumeration.
func (s SenderType) Valid() bool {
	switch s {
	case SenderStudent, SenderBAU, SenderBAA, SenderMIS:
		return true
	}
	return false
}

// IsStudent reports whether the message originated from the student side.
func (s SenderType) IsStudent() bool {
	return s == SenderStudent
}

// Message is one chat entry in a ticket's thread. Messages are immutable
// once created and are removed only by the owning ticket's cascade delete.
type Message struct {
	ID         int64      `json:"id"`
	TicketID   int64      `json:"ticket_id"`
	SenderName string     `json:"sender_name"`
	SenderType SenderType `json:"sender_type"`
	Message    string     `json:"message"`
	CreatedAt  time.Time  `json:"created_at"`
}
