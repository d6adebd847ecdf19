package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DB_DRIVER", "JWT_SECRET", "AUTH_PUBLIC_KEY_FILE",
		"CATEGORY_CACHE_TTL", "TOKEN_TTL", "CORS_ORIGINS", "REDIS_HOST",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_RequiresSigningKey(t *testing.T) {
	clearEnv(t)
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when neither JWT_SECRET nor AUTH_PUBLIC_KEY_FILE is set")
	}

	t.Setenv("JWT_SECRET", "x")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with secret set: %v", err)
	}
	if cfg.UsesExternalAuthority() {
		t.Fatalf("shared secret config must not report an external authority")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "x")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "5000" || cfg.DBDriver != "postgres" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CategoryCacheTTL != 10*time.Minute || cfg.TokenTTL != 8*time.Hour {
		t.Fatalf("unexpected ttl defaults: cache=%s token=%s", cfg.CategoryCacheTTL, cfg.TokenTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("DB_DRIVER", "mysql")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("CATEGORY_CACHE_TTL", "90s")
	if d, err := getEnvDuration("CATEGORY_CACHE_TTL", time.Minute); err != nil || d != 90*time.Second {
		t.Fatalf("duration string = (%s, %v), want (1m30s, nil)", d, err)
	}

	t.Setenv("CATEGORY_CACHE_TTL", "120")
	if d, err := getEnvDuration("CATEGORY_CACHE_TTL", time.Minute); err != nil || d != 2*time.Minute {
		t.Fatalf("bare seconds = (%s, %v), want (2m0s, nil)", d, err)
	}

	t.Setenv("CATEGORY_CACHE_TTL", "soon")
	if _, err := getEnvDuration("CATEGORY_CACHE_TTL", time.Minute); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" http://a.test, ,http://b.test ")
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Fatalf("splitList = %v", got)
	}
}

func TestStringMasksSecrets(t *testing.T) {
	cfg := &Config{
		BindAddress: "localhost",
		Port:        "5000",
		DBDriver:    "postgres",
		DBUser:      "postgres",
		DBPassword:  "hunter2",
		JWTSecret:   "top-secret",
	}
	s := cfg.String()
	if strings.Contains(s, "hunter2") || strings.Contains(s, "top-secret") {
		t.Fatalf("secrets leaked in %q", s)
	}
	if !strings.Contains(s, "Redis: disabled") {
		t.Fatalf("expected disabled redis in %q", s)
	}
}
