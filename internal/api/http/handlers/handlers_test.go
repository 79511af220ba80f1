package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apihttp "github.com/lpkia/helpdesk-service/internal/api/http"
	"github.com/lpkia/helpdesk-service/internal/api/http/handlers"
	"github.com/lpkia/helpdesk-service/internal/config"
	"github.com/lpkia/helpdesk-service/internal/events"
	"github.com/lpkia/helpdesk-service/internal/observability"
	"github.com/lpkia/helpdesk-service/internal/persistence"
	"github.com/lpkia/helpdesk-service/internal/repository"
	"github.com/lpkia/helpdesk-service/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.SQLiteConfig{
		Path:          filepath.Join(t.TempDir(), "helpdesk.db"),
		BusyTimeoutMS: 5000,
	}
	logger := zap.NewNop()
	store, err := persistence.NewSQLite(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	require.NoError(t, persistence.EnsureSchema(context.Background(), store.Handle(), logger))

	db := store.Handle()
	userRepo := repository.NewUserRepository(db)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  repository.NewTicketRepository(db),
		MessageRepo: repository.NewMessageRepository(db),
		UserRepo:    userRepo,
		Dispatcher:  events.NewInMemoryDispatcher(),
		Logger:      logger,
	})
	authService := service.NewAuthService(userRepo)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	apihttp.RegisterMiddlewares(app, logger, observability.NewMetrics(), 5*time.Second)
	apihttp.RegisterRoutes(app, apihttp.RouteConfig{
		Health:   handlers.NewHealthHandler("helpdesk-service", "test", store, nil),
		Auth:     handlers.NewAuthHandler(authService),
		Tickets:  handlers.NewTicketsHandler(ticketService),
		Messages: handlers.NewMessagesHandler(ticketService),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) (int, map[string]any) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reqBody)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, 10_000)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), "non-JSON response: %s", raw)
	return resp.StatusCode, body
}

func submitTicket(t *testing.T, app *fiber.App, category string) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/tickets/create", map[string]any{
		"student_name":  "Budi Santoso",
		"student_email": "budi@student.lpkia.ac.id",
		"student_phone": "081234567890",
		"category":      category,
		"subject":       "KRS error",
		"description":   "Cannot submit my course plan",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])
	return body["ticket_id"].(string)
}

func TestCreateTicket_HTTP(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/tickets/create", map[string]any{
		"student_name":  "Budi Santoso",
		"student_email": "budi@student.lpkia.ac.id",
		"category":      "BAU",
		"subject":       "KRS error",
		"description":   "Cannot submit my course plan",
	})

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["ticket_id"])

	ticket := body["ticket"].(map[string]any)
	assert.Equal(t, "Open", ticket["status"])
	assert.Equal(t, "Medium", ticket["priority"])
	assert.Equal(t, "BAU", ticket["category"])
}

func TestCreateTicket_EmptyBody(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/tickets/create", nil)
	resp, err := app.Test(req, 10_000)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateTicket_ValidationErrors(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		name    string
		mutate  func(map[string]any)
		wantMsg string
	}{
		{"missing subject", func(m map[string]any) { delete(m, "subject") }, "subject"},
		{"bad email", func(m map[string]any) { m["student_email"] = "not-an-email" }, "student_email"},
		{"unknown category", func(m map[string]any) { m["category"] = "HR" }, "category"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := map[string]any{
				"student_name":  "Budi Santoso",
				"student_email": "budi@student.lpkia.ac.id",
				"category":      "BAU",
				"subject":       "KRS error",
				"description":   "Cannot submit my course plan",
			}
			tc.mutate(payload)

			status, body := doJSON(t, app, http.MethodPost, "/tickets/create", payload)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, false, body["success"])
			assert.Contains(t, body["error"].(string), tc.wantMsg)
		})
	}
}

func TestListTickets_Selectors(t *testing.T) {
	app := newTestApp(t)

	bau := submitTicket(t, app, "BAU")
	submitTicket(t, app, "MIS")

	status, body := doJSON(t, app, http.MethodGet, "/tickets/", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["tickets"], 2)

	status, body = doJSON(t, app, http.MethodGet, "/tickets/?category=MIS", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["tickets"], 1)

	status, body = doJSON(t, app, http.MethodGet, "/tickets/?ticket_number="+bau, nil)
	require.Equal(t, http.StatusOK, status)
	tickets := body["tickets"].([]any)
	require.Len(t, tickets, 1)
	assert.Equal(t, bau, tickets[0].(map[string]any)["ticket_number"])

	status, body = doJSON(t, app, http.MethodGet, "/tickets/?status=Closed", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["tickets"], 0)
}

func TestUpdateTicket_HTTP(t *testing.T) {
	app := newTestApp(t)
	number := submitTicket(t, app, "BAU")

	status, body := doJSON(t, app, http.MethodPatch, "/tickets/update", map[string]any{
		"ticket_number": number,
		"status":        "In Progress",
		"priority":      "High",
	})

	require.Equal(t, http.StatusOK, status)
	ticket := body["ticket"].(map[string]any)
	assert.Equal(t, "In Progress", ticket["status"])
	assert.Equal(t, "High", ticket["priority"])
}

func TestUpdateTicket_UnknownTicketIs404(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPatch, "/tickets/update", map[string]any{
		"ticket_number": "TKT-NOPE",
		"status":        "Closed",
	})

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestUpdateTicket_RejectsUnknownStatus(t *testing.T) {
	app := newTestApp(t)
	number := submitTicket(t, app, "BAU")

	status, body := doJSON(t, app, http.MethodPatch, "/tickets/update", map[string]any{
		"ticket_number": number,
		"status":        "Pending",
	})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestMessages_SendAndListInOrder(t *testing.T) {
	app := newTestApp(t)
	number := submitTicket(t, app, "BAU")

	for i, msg := range []map[string]any{
		{"ticket_number": number, "sender_name": "Budi Santoso", "sender_type": "Student", "message": "Any update?"},
		{"ticket_number": number, "sender_name": "Admin BAU", "sender_type": "BAU", "message": "Checking now"},
	} {
		status, body := doJSON(t, app, http.MethodPost, "/messages/send", msg)
		require.Equal(t, http.StatusOK, status, "message %d", i)
		assert.Equal(t, true, body["success"])
		assert.NotZero(t, body["message_id"])
	}

	status, body := doJSON(t, app, http.MethodGet, fmt.Sprintf("/messages/?ticket_number=%s", number), nil)
	require.Equal(t, http.StatusOK, status)

	messages := body["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "Student", messages[0].(map[string]any)["sender_type"])
	assert.Equal(t, "BAU", messages[1].(map[string]any)["sender_type"])
}

func TestMessages_MissingTicketNumberParam(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/messages/", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestMessages_UnknownTicketIs404(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/messages/send", map[string]any{
		"ticket_number": "TKT-NOPE",
		"sender_name":   "Budi",
		"sender_type":   "Student",
		"message":       "hello?",
	})

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
}

func TestLogin_HTTP(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/auth/login", map[string]any{"username": "bau.admin"})
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]any)
	assert.Equal(t, "Admin BAU", user["full_name"])

	status, body = doJSON(t, app, http.MethodPost, "/auth/login", map[string]any{"username": ""})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])

	status, body = doJSON(t, app, http.MethodPost, "/auth/login", map[string]any{"username": "nobody"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
}

func TestUsers_ListAndCreate(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/auth/users?department=MIS", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["users"], 3)

	payload := map[string]any{
		"username":   "mis.staff3",
		"full_name":  "Staff MIS 3",
		"email":      "staff3.mis@lpkia.ac.id",
		"department": "MIS",
		"role":       "Staff",
	}
	status, body = doJSON(t, app, http.MethodPost, "/auth/users", payload)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, body = doJSON(t, app, http.MethodPost, "/auth/users", payload)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"].(string), "already exists")
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alive", body["status"])

	// readiness holds without redis; only the real-time refresh is lost
	status, body = doJSON(t, app, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body["status"])
}
