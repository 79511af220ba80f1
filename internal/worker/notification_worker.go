package worker

import (
	"github.com/lpkia/helpdesk-service/internal/events"
	"github.com/lpkia/helpdesk-service/internal/service"
)

// StartNotificationWorker wires the outbound side effects onto the event
// dispatcher: real-time fan-out first, WhatsApp pushes second.
func StartNotificationWorker(dispatcher events.Dispatcher, fanout *events.Fanout, notifications *service.NotificationService) {
	if fanout != nil {
		fanout.RegisterHandlers(dispatcher)
	}
	if notifications != nil {
		notifications.RegisterHandlers(dispatcher)
	}
}
