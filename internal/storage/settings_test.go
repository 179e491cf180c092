package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWebhookURL_WhenSaved_ThenReturnsURLAndTime(t *testing.T) {
	// Arrange
	client, mock := newMockClient(t)
	updated := time.Date(2025, 11, 5, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT url, updated_at FROM webhook_settings").
		WithArgs(webhookSettingsRow).
		WillReturnRows(sqlmock.NewRows([]string{"url", "updated_at"}).AddRow("https://n8n.example.com/webhook/a", updated))

	// Act
	url, updatedAt, err := client.GetWebhookURL(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://n8n.example.com/webhook/a", url)
	require.NotNil(t, updatedAt)
	assert.Equal(t, updated, *updatedAt)
}

func TestGetWebhookURL_WhenNothingSaved_ThenReturnsEmpty(t *testing.T) {
	// Arrange
	client, mock := newMockClient(t)
	mock.ExpectQuery("FROM webhook_settings").WillReturnError(sql.ErrNoRows)

	// Act
	url, updatedAt, err := client.GetWebhookURL(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Empty(t, url)
	assert.Nil(t, updatedAt)
}

func TestSaveWebhookURL_WhenCalled_ThenUpserts(t *testing.T) {
	// Arrange
	client, mock := newMockClient(t)
	now := time.Date(2025, 11, 5, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec("ON DUPLICATE KEY UPDATE").
		WithArgs(webhookSettingsRow, "https://n8n.example.com/webhook/b", now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	// Act
	err := client.SaveWebhookURL(context.Background(), "https://n8n.example.com/webhook/b", now)

	// Assert
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveWebhookURL_WhenExecFails_ThenWrapsError(t *testing.T) {
	// Arrange
	client, mock := newMockClient(t)
	mock.ExpectExec("INSERT INTO webhook_settings").WillReturnError(errors.New("read only"))

	// Act
	err := client.SaveWebhookURL(context.Background(), "https://n8n.example.com/webhook/b", time.Now())

	// Assert
	assert.ErrorContains(t, err, "save webhook settings")
}
