package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// MySQLClient wraps direct SQL access for run history and webhook settings.
type MySQLClient struct {
	db *sql.DB
}

// NewMySQLClient wires a sql.DB; pass a configured instance from main.
func NewMySQLClient(db *sql.DB) *MySQLClient {
	return &MySQLClient{db: db}
}

// NormalizeDSN forces parseTime and UTC on a go-sql-driver DSN so DATETIME
// columns scan into time.Time whatever the operator supplied.
func NormalizeDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

// OpenMySQL normalizes the DSN, then opens and pings a pooled connection.
func OpenMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	normalized, err := NormalizeDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", normalized)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxIdleConns(5)
	db.SetMaxOpenConns(20)
	db.SetConnMaxLifetime(60 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS alert_runs (
		id             CHAR(36)     NOT NULL PRIMARY KEY,
		kind           VARCHAR(32)  NOT NULL,
		status_class   VARCHAR(32)  NOT NULL,
		http_status    INT          NULL,
		endpoint       VARCHAR(2048) NOT NULL,
		keywords       VARCHAR(255) NOT NULL DEFAULT '',
		location       VARCHAR(255) NOT NULL DEFAULT '',
		min_relevance  INT          NOT NULL DEFAULT 0,
		email          VARCHAR(320) NOT NULL DEFAULT '',
		source         VARCHAR(64)  NOT NULL,
		log_lines      JSON         NOT NULL,
		started_at     DATETIME(6)  NOT NULL,
		duration_ms    BIGINT       NOT NULL,
		created_at     DATETIME(6)  NOT NULL,
		INDEX idx_alert_runs_started_at (started_at),
		INDEX idx_alert_runs_kind_status (kind, status_class)
	)`,
	`CREATE TABLE IF NOT EXISTS webhook_settings (
		id         TINYINT       NOT NULL PRIMARY KEY,
		url        VARCHAR(2048) NOT NULL,
		updated_at DATETIME(6)   NOT NULL
	)`,
}

// EnsureSchema creates the tables this service owns if they are missing.
func (c *MySQLClient) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
