package persistence

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lpkia/helpdesk-service/internal/config"
)

func newTestStore(t *testing.T) *sql.DB {
	t.Helper()

	cfg := config.SQLiteConfig{
		Path:          filepath.Join(t.TempDir(), "helpdesk.db"),
		BusyTimeoutMS: 5000,
	}
	store, err := NewSQLite(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(store.Close)

	require.NoError(t, EnsureSchema(context.Background(), store.Handle(), zap.NewNop()))
	return store.Handle()
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&count))
	return count
}

func TestEnsureSchema_SeedsDefaultStaffOnce(t *testing.T) {
	db := newTestStore(t)

	assert.Equal(t, 9, countRows(t, db, "users"))

	// Seeding is keyed on the table being empty, so a second bootstrap
	// must not duplicate accounts.
	require.NoError(t, EnsureSchema(context.Background(), db, zap.NewNop()))
	assert.Equal(t, 9, countRows(t, db, "users"))

	var admins int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM users WHERE role = 'Administrator'`).Scan(&admins))
	assert.Equal(t, 3, admins)
}

func TestEnsureSchema_SkipsSeedingWhenUsersExist(t *testing.T) {
	db := newTestStore(t)

	_, err := db.Exec(`DELETE FROM users WHERE username != 'bau.admin'`)
	require.NoError(t, err)

	require.NoError(t, EnsureSchema(context.Background(), db, zap.NewNop()))
	assert.Equal(t, 1, countRows(t, db, "users"))
}

func TestSchema_RejectsDuplicateUsername(t *testing.T) {
	db := newTestStore(t)

	_, err := db.Exec(`INSERT INTO users (username, full_name, email, department, role)
        VALUES ('bau.admin', 'Duplicate', 'dup@lpkia.ac.id', 'BAU', 'Staff')`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}

func TestSchema_RejectsInvalidEnumValues(t *testing.T) {
	db := newTestStore(t)

	_, err := db.Exec(`INSERT INTO tickets (ticket_number, student_name, student_email, category, subject, description, status, priority)
        VALUES ('TKT-1', 'Ana', 'ana@x.com', 'HR', 'Printer', 'Jammed', 'Open', 'Medium')`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHECK constraint failed")

	_, err = db.Exec(`INSERT INTO tickets (ticket_number, student_name, student_email, category, subject, description, status, priority)
        VALUES ('TKT-1', 'Ana', 'ana@x.com', 'BAU', 'Printer', 'Jammed', 'Pending', 'Medium')`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHECK constraint failed")
}

func TestSchema_DeletingTicketCascadesToItsMessagesOnly(t *testing.T) {
	db := newTestStore(t)

	for _, number := range []string{"TKT-A", "TKT-B"} {
		_, err := db.Exec(`INSERT INTO tickets (ticket_number, student_name, student_email, category, subject, description)
            VALUES (?, 'Ana', 'ana@x.com', 'BAU', 'Printer', 'Jammed')`, number)
		require.NoError(t, err)
	}

	insertMessage := func(ticketNumber string) {
		_, err := db.Exec(`INSERT INTO messages (ticket_id, sender_name, sender_type, message)
            SELECT id, 'Ana', 'Student', 'hello' FROM tickets WHERE ticket_number = ?`, ticketNumber)
		require.NoError(t, err)
	}
	insertMessage("TKT-A")
	insertMessage("TKT-A")
	insertMessage("TKT-B")

	_, err := db.Exec(`DELETE FROM tickets WHERE ticket_number = 'TKT-A'`)
	require.NoError(t, err)

	assert.Equal(t, 1, countRows(t, db, "messages"))

	var remaining string
	require.NoError(t, db.QueryRow(
		`SELECT t.ticket_number FROM messages m JOIN tickets t ON m.ticket_id = t.id`).Scan(&remaining))
	assert.Equal(t, "TKT-B", remaining)
}

func TestSchema_MessageRequiresExistingTicket(t *testing.T) {
	db := newTestStore(t)

	_, err := db.Exec(`INSERT INTO messages (ticket_id, sender_name, sender_type, message)
        VALUES (9999, 'Ana', 'Student', 'hello')`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOREIGN KEY constraint failed")
}
