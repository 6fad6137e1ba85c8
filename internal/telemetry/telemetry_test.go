package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/game-tracker-service/internal/config"
	"github.com/maxviazov/game-tracker-service/internal/telemetry"
)

func TestSetup_NoopWhenDisabled(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), config.TelemetryConfig{Endpoint: "http://localhost:4318"}, "test", "0.0.0")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_RequiresEndpoint(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), config.TelemetryConfig{Enabled: true}, "test", "0.0.0")
	assert.Error(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_CreatesProvider(t *testing.T) {
	// Non-routable address: nothing is exported because no span is recorded.
	cfg := config.TelemetryConfig{Enabled: true, Endpoint: "http://192.0.2.1:4318", Insecure: true, SampleRatio: 1}
	shutdown, err := telemetry.Setup(context.Background(), cfg, "test", "0.0.0")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
