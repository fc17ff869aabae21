package config

import "testing"

func TestLoad(t *testing.T) {
	t.Setenv("TOKEN", "test-token")
	t.Setenv("ADMIN_ID", "42")
	t.Setenv("PAYMENT_PAYLOAD", "Custom-Payload")
	t.Setenv("PROVIDER_TOKEN", "prov")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "food_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.Token != "test-token" {
		t.Errorf("Token = %q", cfg.Telegram.Token)
	}
	if cfg.Telegram.AdminID != 42 {
		t.Errorf("AdminID = %d, want 42", cfg.Telegram.AdminID)
	}
	if cfg.Payment.Payload != "Custom-Payload" {
		t.Errorf("Payload = %q", cfg.Payment.Payload)
	}
	if cfg.Payment.ProviderToken != "prov" {
		t.Errorf("ProviderToken = %q", cfg.Payment.ProviderToken)
	}
	if cfg.Payment.Currency != "RUB" {
		t.Errorf("Currency = %q, want RUB", cfg.Payment.Currency)
	}
	if cfg.DB.Port != 5433 {
		t.Errorf("DB.Port = %d, want 5433", cfg.DB.Port)
	}
	if cfg.DB.Database != "food_test" {
		t.Errorf("DB.Database = %q, want food_test", cfg.DB.Database)
	}
}

func TestLoadGeneratesPayload(t *testing.T) {
	t.Setenv("PAYMENT_PAYLOAD", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Payment.Payload == "" {
		t.Error("expected a generated payload token when PAYMENT_PAYLOAD is unset")
	}
}
