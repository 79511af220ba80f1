package dto

// CreateTicketRequest payload for the student submission form.
type CreateTicketRequest struct {
	StudentName  string `json:"student_name" validate:"required"`
	StudentEmail string `json:"student_email" validate:"required,email"`
	StudentPhone string `json:"student_phone"`
	Category     string `json:"category" validate:"required,oneof=BAU BAA MIS"`
	Subject      string `json:"subject" validate:"required"`
	Description  string `json:"description" validate:"required"`
}

// UpdateTicketRequest payload for staff triage. Omitted fields are left
// untouched.
type UpdateTicketRequest struct {
	TicketNumber string  `json:"ticket_number" validate:"required"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=Open 'In Progress' Resolved Closed"`
	Priority     *string `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Urgent"`
	AssignedTo   *int64  `json:"assigned_to,omitempty"`
}
