package config

import (
	"os"
	"testing"
	"time"
)

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	original, existed := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset %s: %v", key, err)
	}
	t.Cleanup(func() {
		if !existed {
			_ = os.Unsetenv(key)
			return
		}
		_ = os.Setenv(key, original)
	})
}

func TestDraftModeSigningKeyFallsBackToSecret(t *testing.T) {
	unsetEnv(t, "DRAFT_MODE_SIGNING_KEY")
	t.Setenv("DRAFT_MODE_SECRET", "preview-secret")

	cfg := New()
	if !cfg.DraftModeEnabled() {
		t.Fatalf("expected draft mode to be enabled when a secret is configured")
	}
	if cfg.DraftModeSigningKey != "preview-secret" {
		t.Fatalf("expected signing key to fall back to the secret, got %q", cfg.DraftModeSigningKey)
	}
}

func TestDraftModeDisabledWithoutSecret(t *testing.T) {
	unsetEnv(t, "DRAFT_MODE_SECRET")
	unsetEnv(t, "DRAFT_MODE_SIGNING_KEY")

	cfg := New()
	if cfg.DraftModeEnabled() {
		t.Fatalf("expected draft mode to stay disabled without a secret")
	}
}

func TestDurationsFallBackOnInvalidValues(t *testing.T) {
	t.Setenv("DRAFT_MODE_TTL", "soon")
	t.Setenv("CACHE_TTL", "15m")

	cfg := New()
	if cfg.DraftModeTTL != 8*time.Hour {
		t.Fatalf("expected default draft ttl, got %s", cfg.DraftModeTTL)
	}
	if cfg.CacheTTL != 15*time.Minute {
		t.Fatalf("expected cache ttl of 15m, got %s", cfg.CacheTTL)
	}
}

func TestLogLevelDependsOnEnvironment(t *testing.T) {
	unsetEnv(t, "LOG_LEVEL")
	t.Setenv("ENVIRONMENT", "production")

	cfg := New()
	if cfg.LogLevel != "info" {
		t.Fatalf("expected info level in production, got %q", cfg.LogLevel)
	}
}

func TestCORSOriginsAreTrimmed(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://studio.example.com , ,https://example.com")

	cfg := New()
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSOrigins)
	}
	if cfg.CORSOrigins[0] != "https://studio.example.com" {
		t.Fatalf("unexpected first origin %q", cfg.CORSOrigins[0])
	}
}

func TestSiteLanguageIsNormalized(t *testing.T) {
	t.Setenv("SITE_LANGUAGE", "nb-no")
	if cfg := New(); cfg.SiteLanguage != "nb-NO" {
		t.Fatalf("expected nb-NO, got %q", cfg.SiteLanguage)
	}

	t.Setenv("SITE_LANGUAGE", "not a language")
	if cfg := New(); cfg.SiteLanguage != "nb" {
		t.Fatalf("expected fallback to nb, got %q", cfg.SiteLanguage)
	}
}
