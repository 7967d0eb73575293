package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadRequiresTicketsAPI(t *testing.T) {
	t.Setenv("TICKETS_API_URL", "")
	if _, err := load(filepath.Join(t.TempDir(), "missing.env")); !errors.Is(err, ErrMissingTicketsAPI) {
		t.Fatalf("expected ErrMissingTicketsAPI, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TICKETS_API_URL", "https://tickets.example.com/api/")
	cfg, err := load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TicketsAPIURL != "https://tickets.example.com/api" {
		t.Fatalf("unexpected tickets url %q", cfg.TicketsAPIURL)
	}
	if cfg.PaymentsAPIURL != cfg.TicketsAPIURL || cfg.ActionsAPIURL != cfg.TicketsAPIURL {
		t.Fatalf("payments and actions should default to the tickets api: %+v", cfg)
	}
	if cfg.ActionsTarget != "process" || cfg.Port != "8080" || cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.SupportDomain != "zendesk.com" || cfg.SupportName != "Support" {
		t.Fatalf("unexpected support party %+v", cfg)
	}
	if cfg.ActionClaimTTL != 5*time.Minute {
		t.Fatalf("unexpected claim ttl %s", cfg.ActionClaimTTL)
	}
}

func TestLoadRejectsClaimTTLBelowTimeout(t *testing.T) {
	t.Setenv("TICKETS_API_URL", "https://tickets.example.com")
	t.Setenv("REQUEST_TIMEOUT", "1m")
	t.Setenv("ACTION_CLAIM_TTL", "30s")
	if _, err := load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error when the claim ttl does not exceed the request timeout")
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "TICKETS_API_URL=https://tickets.example.com\nACTIONS_TARGET=Webhook\nACTIONS_API_URL=https://hooks.example.com/action\nMAX_UPLOAD_MB=5\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	cfg, err := load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ActionsTarget != "webhook" || cfg.ActionsAPIURL != "https://hooks.example.com/action" || cfg.MaxUploadSizeMB != 5 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadRejectsUnknownActionsTarget(t *testing.T) {
	t.Setenv("TICKETS_API_URL", "https://tickets.example.com")
	t.Setenv("ACTIONS_TARGET", "carrier-pigeon")
	if _, err := load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error for unknown actions target")
	}
}
