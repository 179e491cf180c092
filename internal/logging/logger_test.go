package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_WhenEnvironmentsAndEncodingsVary_ThenBuildsLogger(t *testing.T) {
	cases := []struct {
		name        string
		environment string
		level       string
		encoding    string
	}{
		{"development console", "development", "debug", "console"},
		{"development json", "development", "debug", "json"},
		{"production default encoding", "production", "info", ""},
		{"production console", "production", "warn", "console"},
		{"invalid level defaults to info", "production", "invalid-level", "json"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			logger, err := NewLogger(tc.environment, tc.level, tc.encoding)

			// Assert
			require.NoError(t, err)
			require.NotNil(t, logger)
			logger.Info("built", zap.String("case", tc.name))
			_ = logger.Sync()
		})
	}
}

func TestNewFromEnv_WhenNoEnvironmentVariables_ThenUsesDefaults(t *testing.T) {
	// Arrange
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_ENCODING", "")

	// Act
	logger, err := NewFromEnv()

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, logger)
	_ = logger.Sync()
}

func TestZapLogger_With_WhenCalledWithFields_ThenChildCarriesFields(t *testing.T) {
	// Arrange
	logger, logs := NewObserved(zapcore.DebugLevel)

	// Act
	child := logger.With(zap.String("component", "webhook_client"))
	child.Warn("webhook call finished", zap.String("status_class", "timeout"))

	// Assert
	assert.NotSame(t, logger, child)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "webhook_client", entry.ContextMap()["component"])
	assert.Equal(t, "timeout", entry.ContextMap()["status_class"])
}

func TestNewObserved_WhenBelowLevel_ThenEntryDropped(t *testing.T) {
	// Arrange
	logger, logs := NewObserved(zapcore.InfoLevel)

	// Act
	logger.Debug("noise")
	logger.Error("failed to store run")

	// Assert
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "failed to store run", logs.All()[0].Message)
}

func TestZap_WhenZapBacked_ThenWritesToSameCore(t *testing.T) {
	// Arrange
	logger, logs := NewObserved(zapcore.InfoLevel)

	// Act
	Zap(logger).Info("from unwrapped logger")

	// Assert
	assert.Equal(t, 1, logs.FilterMessage("from unwrapped logger").Len())
}

func TestZap_WhenNoOp_ThenReturnsNopLogger(t *testing.T) {
	// Act
	zl := Zap(NewNoOpLogger())

	// Assert
	require.NotNil(t, zl)
	assert.False(t, zl.Core().Enabled(zap.ErrorLevel))
}

func TestEmail_WhenAddressesVary_ThenMasksLocalPart(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ranjan@example.com", "r***@example.com"},
		{"a@b.com", "a***@b.com"},
		{"not-an-email", "***"},
		{"@example.com", "***"},
		{"", ""},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			// Act
			field := Email("email", tc.in)

			// Assert
			assert.Equal(t, "email", field.Key)
			assert.Equal(t, tc.want, field.String)
		})
	}
}

func TestNoOpLogger_With_WhenCalled_ThenReturnsSelf(t *testing.T) {
	// Arrange
	logger := &NoOpLogger{}

	// Act
	child := logger.With(zap.String("key", "value"))

	// Assert
	assert.Same(t, logger, child)
	assert.NoError(t, logger.Sync())
}
