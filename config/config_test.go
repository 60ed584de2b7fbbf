package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PROXY_USERNAME", "PROXY_PASSWORD", "USERNAME", "PASSWORD", "BRANDS", "REQUEST_TIMEOUT", "DATA_DIR"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.BaseURL != "https://www.cars.com/research/" {
		t.Errorf("BaseURL: got %q", cfg.BaseURL)
	}
	if cfg.DataDir != "data" {
		t.Errorf("DataDir: got %q, want data", cfg.DataDir)
	}
	if cfg.RequestTimeout != 60*time.Second {
		t.Errorf("RequestTimeout: got %v, want 60s", cfg.RequestTimeout)
	}
	if cfg.Brands != nil {
		t.Errorf("Brands: got %v, want nil", cfg.Brands)
	}
}

func TestLoadCredentialPrecedence(t *testing.T) {
	t.Setenv("USERNAME", "legacy-user")
	t.Setenv("PASSWORD", "legacy-pass")
	t.Setenv("PROXY_USERNAME", "proxy-user")
	t.Setenv("PROXY_PASSWORD", "")

	cfg := Load()
	if cfg.ProxyUsername != "proxy-user" {
		t.Errorf("ProxyUsername: got %q, want proxy-user", cfg.ProxyUsername)
	}
	if cfg.ProxyPassword != "legacy-pass" {
		t.Errorf("ProxyPassword: got %q, want legacy-pass", cfg.ProxyPassword)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BRANDS", "Tesla, Land Rover ,,Kia")
	t.Setenv("REQUEST_TIMEOUT", "15")
	t.Setenv("MAX_CONCURRENCY", "nope")

	cfg := Load()
	want := []string{"Tesla", "Land Rover", "Kia"}
	if len(cfg.Brands) != len(want) {
		t.Fatalf("Brands: got %v, want %v", cfg.Brands, want)
	}
	for i := range want {
		if cfg.Brands[i] != want[i] {
			t.Errorf("Brands[%d]: got %q, want %q", i, cfg.Brands[i], want[i])
		}
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("RequestTimeout: got %v, want 15s", cfg.RequestTimeout)
	}
	if cfg.MaxConcurrency != 3 {
		t.Errorf("MaxConcurrency: got %d, want fallback 3", cfg.MaxConcurrency)
	}
}

func TestValidateFetch(t *testing.T) {
	cfg := &Config{ProxyEndpoint: "http://proxy", BaseURL: "http://site/"}
	err := cfg.ValidateFetch()
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("ValidateFetch: got %v, want ErrMissingCredentials", err)
	}

	cfg.ProxyUsername, cfg.ProxyPassword = "u", "p"
	if err := cfg.ValidateFetch(); err != nil {
		t.Errorf("ValidateFetch with credentials: %v", err)
	}
}
