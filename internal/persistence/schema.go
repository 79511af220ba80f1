package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        username TEXT UNIQUE NOT NULL,
        full_name TEXT NOT NULL,
        email TEXT NOT NULL,
        department TEXT NOT NULL CHECK(department IN ('BAU', 'BAA', 'MIS')),
        role TEXT NOT NULL,
        status TEXT DEFAULT 'Active' CHECK(status IN ('Active', 'Inactive')),
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    )`,
	`CREATE TABLE IF NOT EXISTS tickets (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        ticket_number TEXT UNIQUE NOT NULL,
        student_name TEXT NOT NULL,
        student_email TEXT NOT NULL,
        student_phone TEXT,
        category TEXT NOT NULL CHECK(category IN ('BAU', 'BAA', 'MIS')),
        subject TEXT NOT NULL,
        description TEXT NOT NULL,
        status TEXT DEFAULT 'Open' CHECK(status IN ('Open', 'In Progress', 'Resolved', 'Closed')),
        priority TEXT DEFAULT 'Medium' CHECK(priority IN ('Low', 'Medium', 'High', 'Urgent')),
        assigned_to INTEGER,
        resolved_at DATETIME,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
        updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
        FOREIGN KEY (assigned_to) REFERENCES users(id)
    )`,
	`CREATE TABLE IF NOT EXISTS messages (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        ticket_id INTEGER NOT NULL,
        sender_name TEXT NOT NULL,
        sender_type TEXT NOT NULL CHECK(sender_type IN ('Student', 'BAU', 'BAA', 'MIS')),
        message TEXT NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
        FOREIGN KEY (ticket_id) REFERENCES tickets(id) ON DELETE CASCADE
    )`,
}

// seedUsers is inserted once, keyed on the users table being empty.
var seedUsers = [][5]string{
	{"bau.admin", "Admin BAU", "admin.bau@lpkia.ac.id", "BAU", "Administrator"},
	{"bau.staff1", "Staff BAU 1", "staff1.bau@lpkia.ac.id", "BAU", "Staff"},
	{"bau.staff2", "Staff BAU 2", "staff2.bau@lpkia.ac.id", "BAU", "Staff"},
	{"baa.admin", "Admin BAA", "admin.baa@lpkia.ac.id", "BAA", "Administrator"},
	{"baa.staff1", "Staff BAA 1", "staff1.baa@lpkia.ac.id", "BAA", "Staff"},
	{"baa.staff2", "Staff BAA 2", "staff2.baa@lpkia.ac.id", "BAA", "Staff"},
	{"mis.admin", "Admin MIS", "admin.mis@lpkia.ac.id", "MIS", "Administrator"},
	{"mis.staff1", "Staff MIS 1", "staff1.mis@lpkia.ac.id", "MIS", "Staff"},
	{"mis.staff2", "Staff MIS 2", "staff2.mis@lpkia.ac.id", "MIS", "Staff"},
}

// EnsureSchema creates the three helpdesk tables and seeds the default
// staff accounts when the users table is empty. Idempotent; called once at
// process start.
func EnsureSchema(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	const insert = `INSERT INTO users (username, full_name, email, department, role) VALUES (?, ?, ?, ?, ?)`
	for _, u := range seedUsers {
		if _, err := db.ExecContext(ctx, insert, u[0], u[1], u[2], u[3], u[4]); err != nil {
			return fmt.Errorf("seed user %s: %w", u[0], err)
		}
	}

	logger.Info("seeded default staff accounts", zap.Int("count", len(seedUsers)))
	return nil
}
