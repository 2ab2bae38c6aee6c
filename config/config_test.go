package config

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestParseDurationWithDays(t *testing.T) {
	cases := map[string]time.Duration{
		"7d":  7 * 24 * time.Hour,
		"1d":  24 * time.Hour,
		"15m": 15 * time.Minute,
		"bad": 0,
	}
	for in, want := range cases {
		if got := parseDurationWithDays(in); got != want {
			t.Fatalf("parseDurationWithDays(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(" a:9092, ,b:9092 ")
	if len(got) != 2 || got[0] != "a:9092" || got[1] != "b:9092" {
		t.Fatalf("unexpected brokers: %#v", got)
	}
	if splitAndTrim("") != nil {
		t.Fatalf("empty input must give nil")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", ":8080")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_NAME", "fuego")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ACCESS_EXP", "")
	t.Setenv("REDIS_ENABLED", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("CACHE_TTL_SECONDS", "")

	cfg := Load(zap.NewNop())
	if cfg.JWT.AccessExp != 7*24*time.Hour {
		t.Fatalf("default access exp = %v", cfg.JWT.AccessExp)
	}
	if cfg.Redis.Enabled {
		t.Fatalf("redis must be disabled by default")
	}
	if cfg.Redis.TTLSeconds != 60 {
		t.Fatalf("default cache ttl = %d", cfg.Redis.TTLSeconds)
	}
	if cfg.Kafka.Brokers != nil {
		t.Fatalf("kafka must be disabled without brokers")
	}
	if cfg.DB.SSLMode != "disable" {
		t.Fatalf("default sslmode = %q", cfg.DB.SSLMode)
	}
}

func TestGetEnvPanicsOnMissing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for missing variable")
		}
	}()
	getEnv("FUEGOAMIGO_SURELY_MISSING_VAR", zap.NewNop())
}
