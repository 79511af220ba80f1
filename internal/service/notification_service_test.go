package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lpkia/helpdesk-service/internal/config"
	"github.com/lpkia/helpdesk-service/internal/domain"
	"github.com/lpkia/helpdesk-service/internal/events"
	"github.com/lpkia/helpdesk-service/internal/notify"
)

type fonnteCall struct {
	Target  string `json:"target"`
	Message string `json:"message"`
}

// newFonnteStub returns a notifier pointed at a stub provider and a channel
// that receives each accepted push.
func newFonnteStub(t *testing.T, cfg config.WhatsAppConfig) (*NotificationService, <-chan fonnteCall) {
	t.Helper()

	calls := make(chan fonnteCall, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var call fonnteCall
		require.NoError(t, json.NewDecoder(r.Body).Decode(&call))
		calls <- call
		_, _ = w.Write([]byte(`{"status": true}`))
	}))
	t.Cleanup(srv.Close)

	cfg.APIToken = "test-token"
	cfg.APIURL = srv.URL
	cfg.CountryCode = "62"
	cfg.TimeoutSeconds = 2

	client := notify.NewWhatsAppClient(cfg, zap.NewNop())
	return NewNotificationService(client, zap.NewNop()), calls
}

func waitForCall(t *testing.T, calls <-chan fonnteCall) fonnteCall {
	t.Helper()
	select {
	case call := <-calls:
		return call
	case <-time.After(3 * time.Second):
		t.Fatal("no push reached the provider")
		return fonnteCall{}
	}
}

func TestHandleTicketCreated_PushesToStudent(t *testing.T) {
	svc, calls := newFonnteStub(t, config.WhatsAppConfig{})

	err := svc.handleTicketCreated(context.Background(), events.Event{
		Type:         events.EventTicketCreated,
		TicketNumber: "TKT-1",
		Payload: events.TicketCreatedPayload{
			TicketNumber: "TKT-1",
			StudentName:  "Budi",
			StudentPhone: "081234567890",
			Category:     domain.DepartmentBAU,
			Subject:      "KRS error",
		},
	})
	require.NoError(t, err)

	call := waitForCall(t, calls)
	assert.Equal(t, "6281234567890", call.Target)
	assert.Contains(t, call.Message, "TKT-1")
	assert.Contains(t, call.Message, "Budi")
}

func TestHandleTicketCreated_SkipsWithoutPhone(t *testing.T) {
	svc, calls := newFonnteStub(t, config.WhatsAppConfig{})

	err := svc.handleTicketCreated(context.Background(), events.Event{
		Type:         events.EventTicketCreated,
		TicketNumber: "TKT-1",
		Payload: events.TicketCreatedPayload{
			TicketNumber: "TKT-1",
			StudentName:  "Budi",
			Category:     domain.DepartmentBAU,
		},
	})
	require.NoError(t, err)

	select {
	case <-calls:
		t.Fatal("push sent despite missing phone number")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestHandleMessageAdded_StudentMessageAlertsDepartment(t *testing.T) {
	svc, calls := newFonnteStub(t, config.WhatsAppConfig{MISPhone: "628999"})

	err := svc.handleMessageAdded(context.Background(), events.Event{
		Type:         events.EventMessageAdded,
		TicketNumber: "TKT-2",
		Payload: events.MessageAddedPayload{
			SenderName:   "Budi",
			SenderType:   domain.SenderStudent,
			Message:      "Masih error",
			Category:     domain.DepartmentMIS,
			StudentPhone: "081234567890",
		},
	})
	require.NoError(t, err)

	call := waitForCall(t, calls)
	assert.Equal(t, "628999", call.Target)
	assert.Contains(t, call.Message, "Pesan Baru dari Mahasiswa")
}

func TestHandleMessageAdded_StaffReplyAlertsStudent(t *testing.T) {
	svc, calls := newFonnteStub(t, config.WhatsAppConfig{MISPhone: "628999"})

	err := svc.handleMessageAdded(context.Background(), events.Event{
		Type:         events.EventMessageAdded,
		TicketNumber: "TKT-2",
		Payload: events.MessageAddedPayload{
			SenderName:   "Admin MIS",
			SenderType:   domain.SenderMIS,
			Message:      "Sudah diperbaiki",
			Category:     domain.DepartmentMIS,
			StudentPhone: "081234567890",
		},
	})
	require.NoError(t, err)

	call := waitForCall(t, calls)
	assert.Equal(t, "6281234567890", call.Target)
	assert.Contains(t, call.Message, "Balasan Baru dari Tim MIS")
}

func TestHandleMessageAdded_NoRecipientIsANoOp(t *testing.T) {
	// student writes but the department has no configured contact number
	svc, calls := newFonnteStub(t, config.WhatsAppConfig{})

	err := svc.handleMessageAdded(context.Background(), events.Event{
		Type:         events.EventMessageAdded,
		TicketNumber: "TKT-3",
		Payload: events.MessageAddedPayload{
			SenderName: "Budi",
			SenderType: domain.SenderStudent,
			Category:   domain.DepartmentBAA,
		},
	})
	require.NoError(t, err)

	select {
	case <-calls:
		t.Fatal("push sent despite missing department number")
	case <-time.After(200 * time.Millisecond):
	}
}
