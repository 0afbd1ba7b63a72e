package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if !cfg.App.IsProd() {
		t.Fatalf("expected IsProd to be true")
	}

	if cfg.Catalog.BaseURL != "https://dummyjson.com" {
		t.Fatalf("unexpected catalog base URL: %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.PageSize != 10 {
		t.Fatalf("expected default page size 10, got %d", cfg.Catalog.PageSize)
	}
	if got := cfg.Catalog.RequestTimeout; got != 10*time.Second {
		t.Fatalf("expected default request timeout 10s, got %v", got)
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvCatalogBaseURL); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvCatalogBaseURL, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsMalformedBaseURL(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCatalogBaseURL, "not a url")

	if _, err := Load(); err == nil {
		t.Fatal("expected malformed base URL to fail validation")
	}
}

func TestLoad_RejectsPageSizeOutOfBounds(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvPageSize, "500")

	if _, err := Load(); err == nil {
		t.Fatal("expected page size above the cap to fail validation")
	}
}

func TestLoad_RejectsNonUUIDOwner(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCartOwnerID, "owner-1")

	if _, err := Load(); err == nil {
		t.Fatal("expected non-uuid owner id to fail validation")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvCatalogBaseURL, "https://dummyjson.com")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
}
