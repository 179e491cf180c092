package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// webhookSettingsRow is the fixed primary key of the single settings row.
const webhookSettingsRow = 1

// GetWebhookURL returns the saved endpoint, or "" when nothing was saved yet.
func (c *MySQLClient) GetWebhookURL(ctx context.Context) (string, *time.Time, error) {
	var (
		url       string
		updatedAt time.Time
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT url, updated_at FROM webhook_settings WHERE id = ?`,
		webhookSettingsRow,
	).Scan(&url, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf("get webhook settings: %w", err)
	}
	return url, &updatedAt, nil
}

// SaveWebhookURL upserts the endpoint.
func (c *MySQLClient) SaveWebhookURL(ctx context.Context, url string, updatedAt time.Time) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO webhook_settings (id, url, updated_at) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE url = VALUES(url), updated_at = VALUES(updated_at)`,
		webhookSettingsRow, url, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("save webhook settings: %w", err)
	}
	return nil
}
