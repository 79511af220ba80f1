package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/lpkia/helpdesk-service/internal/config"
)

// SQLite wraps the embedded relational store.
type SQLite struct {
	DB *sql.DB
}

// NewSQLite opens the helpdesk database file, creating its directory when
// needed. Pragmas are carried in the DSN so every pooled connection gets
// foreign key enforcement.
func NewSQLite(cfg config.SQLiteConfig, logger *zap.Logger) (*SQLite, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)",
		cfg.Path, cfg.BusyTimeoutMS)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifeSec) * time.Second)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	logger.Info("opened sqlite store", zap.String("path", cfg.Path))
	return &SQLite{DB: db}, nil
}

// Close releases the underlying pool.
func (s *SQLite) Close() {
	if s != nil && s.DB != nil {
		_ = s.DB.Close()
	}
}

// Ping verifies store connectivity.
func (s *SQLite) Ping(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return fmt.Errorf("sqlite store not configured")
	}
	return s.DB.PingContext(ctx)
}

// Handle returns the underlying database handle.
func (s *SQLite) Handle() *sql.DB {
	if s == nil {
		return nil
	}
	return s.DB
}
