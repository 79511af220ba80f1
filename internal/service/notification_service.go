package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/lpkia/helpdesk-service/internal/events"
	"github.com/lpkia/helpdesk-service/internal/notify"
)

// NotificationService turns domain events into best-effort WhatsApp pushes.
// Pushes run outside the request path under their own timeout; a failed or
// slow push never affects the mutation that triggered it.
type NotificationService struct {
	whatsapp *notify.WhatsAppClient
	logger   *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(whatsapp *notify.WhatsAppClient, logger *zap.Logger) *NotificationService {
	return &NotificationService{whatsapp: whatsapp, logger: logger}
}

// RegisterHandlers subscribes to mutation events.
func (n *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	dispatcher.Subscribe(events.EventMessageAdded, n.handleMessageAdded)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	if payload.StudentPhone == "" || !n.whatsapp.Enabled() {
		n.logger.Debug("skipping ticket-created push", zap.String("ticket_number", event.TicketNumber))
		return nil
	}

	body := n.whatsapp.TicketCreatedMessage(notify.TicketCreatedInfo{
		TicketNumber: payload.TicketNumber,
		StudentName:  payload.StudentName,
		Category:     payload.Category,
		Subject:      payload.Subject,
	})
	n.send(event.TicketNumber, payload.StudentPhone, body)
	return nil
}

func (n *NotificationService) handleMessageAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MessageAddedPayload)
	if !ok {
		return nil
	}
	if !n.whatsapp.Enabled() {
		return nil
	}

	phone, body := n.routeMessagePush(payload, event.TicketNumber)
	if phone == "" {
		n.logger.Debug("no recipient for message push", zap.String("ticket_number", event.TicketNumber))
		return nil
	}
	n.send(event.TicketNumber, phone, body)
	return nil
}

// routeMessagePush picks the recipient: a student message alerts the
// department's contact number, a staff reply alerts the student.
func (n *NotificationService) routeMessagePush(payload events.MessageAddedPayload, ticketNumber string) (string, string) {
	info := notify.MessageInfo{
		TicketNumber: ticketNumber,
		SenderName:   payload.SenderName,
		SenderType:   payload.SenderType,
		Message:      payload.Message,
	}
	if payload.SenderType.IsStudent() {
		return n.whatsapp.DepartmentPhone(payload.Category), n.whatsapp.SupportAlertMessage(info)
	}
	return payload.StudentPhone, n.whatsapp.StudentReplyMessage(info)
}

// send runs the push in its own goroutine with a fresh bounded context so a
// slow provider cannot hold the request open.
func (n *NotificationService) send(ticketNumber, phone, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.whatsapp.SendTimeout())
		defer cancel()

		if err := n.whatsapp.Send(ctx, phone, body); err != nil {
			n.logger.Error("whatsapp push failed",
				zap.String("ticket_number", ticketNumber),
				zap.Error(err))
			return
		}
		n.logger.Info("whatsapp push sent", zap.String("ticket_number", ticketNumber))
	}()
}
