package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Environment != "development" {
		t.Fatalf("expected development, got %q", cfg.Environment)
	}
	if cfg.HTTP.Port != 8090 {
		t.Fatalf("expected port 8090, got %d", cfg.HTTP.Port)
	}
	if cfg.Journey.SearchDelay != 1500*time.Millisecond {
		t.Fatalf("unexpected search delay %s", cfg.Journey.SearchDelay)
	}
	if len(cfg.HTTP.AllowedOrigins) != 1 || cfg.HTTP.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected origins %v", cfg.HTTP.AllowedOrigins)
	}
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	v.Set("HTTP_PORT", 9000)
	v.Set("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	v.Set("SEARCH_DELAY", "250ms")

	cfg, err := fromViper(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.IsProduction() {
		t.Fatal("expected production")
	}
	if cfg.HTTP.Port != 9000 {
		t.Fatalf("expected 9000, got %d", cfg.HTTP.Port)
	}
	if len(cfg.HTTP.AllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.Journey.SearchDelay != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %s", cfg.Journey.SearchDelay)
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", 70000)
	if _, err := fromViper(v); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}
