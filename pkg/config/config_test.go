package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Fatalf("unexpected API base URL: %q", cfg.API.BaseURL)
	}
	if got := cfg.API.Timeout; got != 10*time.Second {
		t.Fatalf("expected API timeout 10s, got %v", got)
	}
	if cfg.State.Path != "fuscao.db" {
		t.Fatalf("unexpected state path: %q", cfg.State.Path)
	}
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	t.Setenv("FUSCAO_API_BASE_URL", "https://api.fuscao.example/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "https://api.fuscao.example" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.API.BaseURL)
	}
}

func TestLoad_RejectsRelativeBaseURL(t *testing.T) {
	t.Setenv("FUSCAO_API_BASE_URL", "localhost:8080")

	if _, err := Load(); err == nil {
		t.Fatal("expected relative base URL to return an error")
	}
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}
