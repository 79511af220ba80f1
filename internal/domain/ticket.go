package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

// Valid reports whether the status is in the enumeration.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
	TicketPriorityUrgent TicketPriority = "Urgent"
)

// Valid reports whether the priority is in the enumeration.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// Ticket is a single support request and its resolution state. TicketNumber
// is the externally visible code and is immutable once assigned; Category
// fixes the department queue at creation time.
type Ticket struct {
	ID               int64          `json:"id"`
	TicketNumber     string         `json:"ticket_number"`
	StudentName      string         `json:"student_name"`
	StudentEmail     string         `json:"student_email"`
	StudentPhone     string         `json:"student_phone"`
	Category         Department     `json:"category"`
	Subject          string         `json:"subject"`
	Description      string         `json:"description"`
	Status           TicketStatus   `json:"status"`
	Priority         TicketPriority `json:"priority"`
	AssignedTo       *int64         `json:"assigned_to"`
	AssignedUsername *string        `json:"assigned_username,omitempty"`
	AssignedName     *string        `json:"assigned_name,omitempty"`
	ResolvedAt       *time.Time     `json:"resolved_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
