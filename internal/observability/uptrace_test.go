package observability

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/config"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestUptraceDisabledReason(t *testing.T) {
	assert.Equal(t, "UPTRACE_ENABLED=false", uptraceDisabledReason(config.Config{UptraceDSN: "https://token@api.uptrace.dev"}))
	assert.Equal(t, "UPTRACE_DSN empty", uptraceDisabledReason(config.Config{UptraceEnabled: true, UptraceDSN: "  "}))
	assert.Empty(t, uptraceDisabledReason(config.Config{UptraceEnabled: true, UptraceDSN: "https://token@api.uptrace.dev"}))
}

func TestInitUptrace_DisabledShutdownIsNoop(t *testing.T) {
	shutdown, err := InitUptrace(config.Config{AppEnv: config.EnvDev}, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestResourceAttributes(t *testing.T) {
	attrs := resourceAttributes(config.Config{StorageDriver: config.StoragePostgres, FeedSeasonYear: 2024, FeedSeasonType: 2})
	assert.Contains(t, attrs, attribute.String("pickem.storage_driver", "postgres"))
	assert.Contains(t, attrs, attribute.Int("pickem.season_year", 2024))
	assert.Contains(t, attrs, attribute.Int("pickem.season_type", 2))
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, stop())
}

func TestProfileTags(t *testing.T) {
	tags := profileTags(config.Config{AppEnv: config.EnvProd, StorageDriver: config.StorageMemory, FeedSeasonYear: 2025})
	assert.Equal(t, "prod", tags["env"])
	assert.Equal(t, "memory", tags["storage"])
	assert.Equal(t, "2025", tags["season"])
}

func TestStartPprofServer_Disabled(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop())
	require.NoError(t, err)
	assert.Nil(t, srv)
	require.NoError(t, StopPprofServer(srv, logging.NewNop(), 0))
}

func TestStartPprofServer_ServesIndex(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	require.NoError(t, err)
	require.NotNil(t, srv)
	defer func() {
		require.NoError(t, StopPprofServer(srv, logging.NewNop(), time.Second))
	}()

	resp, err := http.Get("http://" + srv.Addr + "/debug/pprof/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStartPprofServer_BadAddress(t *testing.T) {
	_, err := StartPprofServer(config.Config{PprofEnabled: true, PprofAddr: "not-an-address"}, logging.NewNop())
	assert.Error(t, err)
}
