package config

import (
	"testing"

	"github.com/spf13/viper"
)

func resetEnv(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Setenv("PORT", "")
	t.Setenv("GIN_MODE", "")
	t.Setenv("FIREBASE_PROJECT_ID", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	t.Setenv("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64", "")
	t.Setenv("CLIENT_URL", "")
}

func TestLoadConfigDefaults(t *testing.T) {
	resetEnv(t)
	t.Setenv("FIREBASE_PROJECT_ID", "demo-project")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/creds.json")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.GinMode != "debug" {
		t.Errorf("expected default gin mode debug, got %q", cfg.GinMode)
	}
}

func TestLoadConfigRequiresProjectID(t *testing.T) {
	resetEnv(t)
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/creds.json")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when FIREBASE_PROJECT_ID is unset")
	}
}

func TestLoadConfigRequiresCredentials(t *testing.T) {
	resetEnv(t)
	t.Setenv("FIREBASE_PROJECT_ID", "demo-project")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when no credential source is configured")
	}
}

func TestLoadConfigBase64CredentialsAccepted(t *testing.T) {
	resetEnv(t)
	t.Setenv("FIREBASE_PROJECT_ID", "demo-project")
	t.Setenv("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64", "eyJmYWtlIjoidHJ1ZSJ9")
	t.Setenv("PORT", "9999")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Port != "9999" {
		t.Errorf("expected port override 9999, got %q", cfg.Port)
	}
	if cfg.FirebaseServiceAccountJSONBase64 == "" {
		t.Error("expected base64 credential to be read")
	}
}
