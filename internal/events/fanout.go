package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Channel and event names subscribers listen on. The global channel carries
// list-level changes; each ticket's chat thread has its own channel.
const (
	ChannelTickets   = "tickets"
	channelTicketFmt = "ticket-"

	eventNewTicket     = "new-ticket"
	eventTicketUpdated = "ticket-updated"
	eventNewMessage    = "new-message"
)

// TicketChannel returns the per-ticket chat channel name.
func TicketChannel(ticketNumber string) string {
	return channelTicketFmt + ticketNumber
}

// Fanout publishes domain events to Redis channels so subscribed clients
// refresh their views. Delivery is at-most-once and best-effort; publish
// failures are logged and swallowed.
type Fanout struct {
	client *redis.Client
	logger *zap.Logger
}

// NewFanout creates the fan-out publisher. A nil client disables publishing.
func NewFanout(client *redis.Client, logger *zap.Logger) *Fanout {
	return &Fanout{client: client, logger: logger}
}

// RegisterHandlers subscribes the fan-out to mutation events.
func (f *Fanout) RegisterHandlers(dispatcher Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(EventTicketCreated, f.handleTicketCreated)
	dispatcher.Subscribe(EventTicketUpdated, f.handleTicketUpdated)
	dispatcher.Subscribe(EventMessageAdded, f.handleMessageAdded)
}

func (f *Fanout) handleTicketCreated(ctx context.Context, event Event) error {
	f.publish(ctx, ChannelTickets, eventNewTicket, event.Payload)
	return nil
}

func (f *Fanout) handleTicketUpdated(ctx context.Context, event Event) error {
	f.publish(ctx, ChannelTickets, eventTicketUpdated, event.Payload)
	return nil
}

func (f *Fanout) handleMessageAdded(ctx context.Context, event Event) error {
	f.publish(ctx, TicketChannel(event.TicketNumber), eventNewMessage, event.Payload)
	return nil
}

type fanoutMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

func (f *Fanout) publish(ctx context.Context, channel, eventName string, payload interface{}) {
	if f == nil || f.client == nil {
		return
	}
	body, err := json.Marshal(fanoutMessage{Event: eventName, Data: payload})
	if err != nil {
		f.logger.Error("marshal fanout payload", zap.String("channel", channel), zap.Error(err))
		return
	}
	if err := f.client.Publish(ctx, channel, body).Err(); err != nil {
		f.logger.Error("fanout publish failed",
			zap.String("channel", channel),
			zap.String("event", eventName),
			zap.Error(err))
	}
}
