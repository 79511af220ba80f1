package dto

// SendMessageRequest payload for appending to a ticket's chat thread.
type SendMessageRequest struct {
	TicketNumber string `json:"ticket_number" validate:"required"`
	SenderName   string `json:"sender_name" validate:"required"`
	SenderType   string `json:"sender_type" validate:"required,oneof=Student BAU BAA MIS"`
	Message      string `json:"message" validate:"required"`
}
