package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lpkia/helpdesk-service/internal/domain"
	"github.com/lpkia/helpdesk-service/internal/events"
	"github.com/lpkia/helpdesk-service/internal/repository"
	apperrors "github.com/lpkia/helpdesk-service/pkg/util/errorutil"
)

// ticket numbers can collide on the random suffix; the UNIQUE constraint
// catches it and the insert is retried with a fresh code.
const maxTicketNumberAttempts = 3

// TicketService coordinates ticket workflows: creation, thread messages,
// staff triage updates, and listings.
type TicketService struct {
	tickets    repository.TicketRepository
	messages   repository.MessageRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	MessageRepo repository.MessageRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// TicketCreateInput describes a student-facing ticket submission.
type TicketCreateInput struct {
	StudentName  string
	StudentEmail string
	StudentPhone string
	Category     domain.Department
	Subject      string
	Description  string
}

// TicketUpdateInput describes a staff partial update. Nil fields are
// untouched.
type TicketUpdateInput struct {
	Status     *domain.TicketStatus
	Priority   *domain.TicketPriority
	AssignedTo *int64
}

// TicketListFilter mirrors the mutually exclusive list selectors.
type TicketListFilter struct {
	TicketNumber string
	Category     string
	Status       string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		messages:   deps.MessageRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// CreateTicket validates the submission, persists it with Open status and
// Medium priority, and announces it on the global channel.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	input.StudentName = strings.TrimSpace(input.StudentName)
	input.StudentEmail = strings.TrimSpace(input.StudentEmail)
	input.StudentPhone = strings.TrimSpace(input.StudentPhone)
	input.Subject = strings.TrimSpace(input.Subject)
	input.Description = strings.TrimSpace(input.Description)

	if input.StudentName == "" || input.StudentEmail == "" || input.Subject == "" || input.Description == "" {
		return nil, apperrors.NewValidationError("missing required fields")
	}
	if !input.Category.Valid() {
		return nil, apperrors.NewValidationError("invalid category")
	}

	ticket := &domain.Ticket{
		StudentName:  input.StudentName,
		StudentEmail: input.StudentEmail,
		StudentPhone: input.StudentPhone,
		Category:     input.Category,
		Subject:      input.Subject,
		Description:  input.Description,
		Status:       domain.TicketStatusOpen,
		Priority:     domain.TicketPriorityMedium,
	}

	var lastErr error
	for attempt := 0; attempt < maxTicketNumberAttempts; attempt++ {
		ticket.TicketNumber = generateTicketNumber()
		lastErr = s.tickets.Create(ctx, ticket)
		if lastErr == nil {
			break
		}
		if !apperrors.IsUniqueViolation(lastErr) {
			return nil, apperrors.ToDomainError(lastErr)
		}
		s.logger.Warn("ticket number collision, regenerating",
			zap.String("ticket_number", ticket.TicketNumber))
	}
	if lastErr != nil {
		return nil, apperrors.NewConflict("could not allocate a unique ticket number")
	}

	created, err := s.tickets.GetByTicketNumber(ctx, ticket.TicketNumber)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketCreated,
		TicketNumber: created.TicketNumber,
		Payload: events.TicketCreatedPayload{
			TicketID:     created.TicketNumber,
			TicketNumber: created.TicketNumber,
			Category:     created.Category,
			StudentName:  created.StudentName,
			StudentPhone: created.StudentPhone,
			Subject:      created.Subject,
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
		},
	})
	return created, nil
}

// GetTicket resolves a ticket by its externally visible code.
func (s *TicketService) GetTicket(ctx context.Context, ticketNumber string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByTicketNumber(ctx, ticketNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("ticket")
	}
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return ticket, nil
}

// ListTickets applies the selectors in priority order: exact ticket number,
// else category, else status, else everything. Newest first.
func (s *TicketService) ListTickets(ctx context.Context, filter TicketListFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{}
	switch {
	case filter.TicketNumber != "":
		repoFilter.TicketNumber = &filter.TicketNumber
	case filter.Category != "":
		category := domain.Department(filter.Category)
		repoFilter.Category = &category
	case filter.Status != "":
		status := domain.TicketStatus(filter.Status)
		repoFilter.Status = &status
	}

	tickets, err := s.tickets.List(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return tickets, nil
}

// UpdateTicket applies a staff partial update. The ticket must resolve both
// before and after the update; each provided field is validated against its
// enumeration, and an assignee must be an existing active user.
func (s *TicketService) UpdateTicket(ctx context.Context, ticketNumber string, input TicketUpdateInput) (*domain.Ticket, error) {
	if strings.TrimSpace(ticketNumber) == "" {
		return nil, apperrors.NewValidationError("ticket number required")
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid status")
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority")
	}
	if input.AssignedTo != nil {
		if _, err := s.users.GetByID(ctx, *input.AssignedTo); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperrors.NewValidationError("assignee is not an active user")
			}
			return nil, apperrors.ToDomainError(err)
		}
	}

	err := s.tickets.Update(ctx, ticketNumber, repository.TicketUpdate{
		Status:     input.Status,
		Priority:   input.Priority,
		AssignedTo: input.AssignedTo,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("ticket")
	}
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	ticket, err := s.tickets.GetByTicketNumber(ctx, ticketNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("ticket")
	}
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketUpdated,
		TicketNumber: ticket.TicketNumber,
		Payload: events.TicketUpdatedPayload{
			TicketNumber: ticket.TicketNumber,
			Status:       ticket.Status,
			Priority:     ticket.Priority,
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
		},
	})
	return ticket, nil
}

// AppendMessage adds a chat entry to a ticket's thread and announces it on
// the ticket's channel.
func (s *TicketService) AppendMessage(ctx context.Context, ticketNumber, senderName string, senderType domain.SenderType, body string) (*domain.Message, error) {
	senderName = strings.TrimSpace(senderName)
	body = strings.TrimSpace(body)

	if senderName == "" || body == "" {
		return nil, apperrors.NewValidationError("sender name and message required")
	}
	if !senderType.Valid() {
		return nil, apperrors.NewValidationError("invalid sender type")
	}

	ticket, err := s.tickets.GetByTicketNumber(ctx, ticketNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("ticket")
	}
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	msg := &domain.Message{
		TicketID:   ticket.ID,
		SenderName: senderName,
		SenderType: senderType,
		Message:    body,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:         events.EventMessageAdded,
		TicketNumber: ticket.TicketNumber,
		Payload: events.MessageAddedPayload{
			MessageID:    msg.ID,
			SenderName:   msg.SenderName,
			SenderType:   msg.SenderType,
			Message:      msg.Message,
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
			Category:     ticket.Category,
			StudentPhone: ticket.StudentPhone,
		},
	})
	return msg, nil
}

// ListMessages returns the ticket's thread in creation order.
func (s *TicketService) ListMessages(ctx context.Context, ticketNumber string) ([]domain.Message, error) {
	msgs, err := s.messages.ListByTicketNumber(ctx, ticketNumber)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	return msgs, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
