package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lpkia/helpdesk-service/internal/api/dto"
	"github.com/lpkia/helpdesk-service/internal/domain"
	"github.com/lpkia/helpdesk-service/internal/service"
	apperrors "github.com/lpkia/helpdesk-service/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// ListTickets handles GET /tickets. The query selectors are mutually
// exclusive: ticket_number wins, then category, then status.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.service.ListTickets(c.UserContext(), service.TicketListFilter{
		TicketNumber: c.Query("ticket_number"),
		Category:     c.Query("category"),
		Status:       c.Query("status"),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"tickets": tickets,
	})
}

// CreateTicket handles POST /tickets/create.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return apperrors.NewValidationError("request body is required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid JSON in request body")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), service.TicketCreateInput{
		StudentName:  req.StudentName,
		StudentEmail: req.StudentEmail,
		StudentPhone: req.StudentPhone,
		Category:     domain.Department(req.Category),
		Subject:      req.Subject,
		Description:  req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"ticket_id": ticket.TicketNumber,
		"ticket":    ticket,
	})
}

// UpdateTicket handles PATCH /tickets/update.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return apperrors.NewValidationError("request body is required")
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid JSON in request body")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.TicketUpdateInput{AssignedTo: req.AssignedTo}
	if req.Status != nil {
		status := domain.TicketStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TicketPriority(*req.Priority)
		input.Priority = &priority
	}

	ticket, err := h.service.UpdateTicket(c.UserContext(), req.TicketNumber, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"ticket":  ticket,
	})
}
