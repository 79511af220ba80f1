package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lpkia/helpdesk-service/internal/api/dto"
	"github.com/lpkia/helpdesk-service/internal/domain"
	"github.com/lpkia/helpdesk-service/internal/service"
	apperrors "github.com/lpkia/helpdesk-service/pkg/util/errorutil"
)

// MessagesHandler manages ticket chat endpoints.
type MessagesHandler struct {
	service *service.TicketService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(ticketService *service.TicketService) *MessagesHandler {
	return &MessagesHandler{service: ticketService}
}

// ListMessages handles GET /messages?ticket_number=…
func (h *MessagesHandler) ListMessages(c *fiber.Ctx) error {
	ticketNumber := c.Query("ticket_number")
	if ticketNumber == "" {
		return apperrors.NewValidationError("ticket number required")
	}

	messages, err := h.service.ListMessages(c.UserContext(), ticketNumber)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"messages": messages,
	})
}

// SendMessage handles POST /messages/send.
func (h *MessagesHandler) SendMessage(c *fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return apperrors.NewValidationError("request body is required")
	}
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid JSON in request body")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	msg, err := h.service.AppendMessage(
		c.UserContext(),
		req.TicketNumber,
		req.SenderName,
		domain.SenderType(req.SenderType),
		req.Message,
	)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"message_id": msg.ID,
	})
}
