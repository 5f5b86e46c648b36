package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
	"github.com/riskibarqy/pickem-league/internal/domain/standings"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("expected memory storage by default, got %q", cfg.StorageDriver)
	}
	if cfg.FeedCacheTTL != 5*time.Minute {
		t.Fatalf("expected 5m feed cache ttl, got %s", cfg.FeedCacheTTL)
	}
	if cfg.FeedSeasonType != 2 {
		t.Fatalf("expected regular season by default, got %d", cfg.FeedSeasonType)
	}
	if cfg.ScoringTiePolicy != pickem.TiePolicyAwayWins {
		t.Fatalf("unexpected tie policy %q", cfg.ScoringTiePolicy)
	}
	if cfg.LeaderboardTieOrder != standings.TieOrderInput {
		t.Fatalf("unexpected tie order %q", cfg.LeaderboardTieOrder)
	}
	if cfg.LogFormat != logging.FormatConsole {
		t.Fatalf("expected console logs in dev, got %q", cfg.LogFormat)
	}
	if cfg.AuthJWTSecret == "" {
		t.Fatalf("expected dev jwt secret fallback")
	}
}

func TestLoad_ProdRequiresJWTSecret(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("AUTH_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without AUTH_JWT_SECRET in prod")
	}

	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogFormat != logging.FormatJSON {
		t.Fatalf("expected json logs in prod, got %q", cfg.LogFormat)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "storage driver", key: "STORAGE_DRIVER", value: "mongo"},
		{name: "tie policy", key: "SCORING_TIE_POLICY", value: "home"},
		{name: "tie order", key: "LEADERBOARD_TIE_ORDER", value: "random"},
		{name: "workers", key: "RECONCILE_WORKERS", value: "0"},
		{name: "feed timeout", key: "FEED_TIMEOUT", value: "0s"},
		{name: "feed retries", key: "FEED_MAX_RETRIES", value: "-1"},
		{name: "season type", key: "FEED_SEASON_TYPE", value: "7"},
		{name: "metrics flag", key: "METRICS_ENABLED", value: "maybe"},
		{name: "cors", key: "CORS_ALLOWED_ORIGINS", value: " , "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_ParsesScoringOptions(t *testing.T) {
	t.Setenv("APP_ENV", EnvStage)
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("SCORING_TIE_POLICY", "PUSH")
	t.Setenv("LEADERBOARD_TIE_ORDER", "win_percentage")
	t.Setenv("RECONCILE_WORKERS", "3")
	t.Setenv("FEED_SEASON_YEAR", "2025")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ScoringTiePolicy != pickem.TiePolicyPush || cfg.LeaderboardTieOrder != standings.TieOrderWinPercentage {
		t.Fatalf("unexpected scoring options: %+v", cfg)
	}
	if cfg.ReconcileWorkers != 3 || cfg.FeedSeasonYear != 2025 {
		t.Fatalf("unexpected workers or season: %d %d", cfg.ReconcileWorkers, cfg.FeedSeasonYear)
	}
}
