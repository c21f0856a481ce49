package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// validConfig is a minimal config file that passes validation.
const validConfig = `
database:
  path: "/tmp/voxgate-test.db"
  wal_mode: true
  busy_timeout: 5
smartthings:
  app_id: "723ac07e-f252-4040-8cde-80edcef05518"
secrets:
  token_path: "/tmp/encrypted_token"
  key: "dGVzdC1rZXktbWF0ZXJpYWwtMzItYnl0ZXMhIS0tLS0="
server:
  host: "0.0.0.0"
  port: 8080
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/voxgate-test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/voxgate-test.db")
	}

	if cfg.SmartThings.AppID != "723ac07e-f252-4040-8cde-80edcef05518" {
		t.Errorf("SmartThings.AppID = %q, want app id from file", cfg.SmartThings.AppID)
	}

	// Defaults survive partial files
	if cfg.SmartThings.BaseURL == "" {
		t.Error("SmartThings.BaseURL default was not applied")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "invalid: [yaml: content"))
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	// No app id and no token key
	content := `
database:
  path: "/tmp/voxgate-test.db"
secrets:
  token_path: "/tmp/encrypted_token"
`
	_, err := Load(writeConfig(t, content))
	if err == nil {
		t.Fatal("Load() expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "smartthings.app_id") {
		t.Errorf("error %q does not mention smartthings.app_id", err)
	}
	if !strings.Contains(err.Error(), "secrets.key") {
		t.Errorf("error %q does not mention secrets.key", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VOXGATE_DATABASE_PATH", "/env/override.db")
	t.Setenv("VOXGATE_TOKEN_KEY", "ZW52LWtleS1tYXRlcmlhbC0zMi1ieXRlcyEhLS0tLS0t")
	t.Setenv("VOXGATE_SMARTTHINGS_APP_ID", "env-app-id")

	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/env/override.db" {
		t.Errorf("Database.Path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Secrets.Key != "ZW52LWtleS1tYXRlcmlhbC0zMi1ieXRlcyEhLS0tLS0t" {
		t.Errorf("Secrets.Key = %q, want env override", cfg.Secrets.Key)
	}
	if cfg.SmartThings.AppID != "env-app-id" {
		t.Errorf("SmartThings.AppID = %q, want env override", cfg.SmartThings.AppID)
	}
}

func TestValidate_PortRange(t *testing.T) {
	tests := []struct {
		name    string
		port    int
		wantErr bool
	}{
		{"valid port", 8080, false},
		{"port zero", 0, true},
		{"port too high", 70000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.SmartThings.AppID = "app"
			cfg.Secrets.Key = "a2V5"
			cfg.Server.Port = tt.port

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_QoSRange(t *testing.T) {
	cfg := defaultConfig()
	cfg.SmartThings.AppID = "app"
	cfg.Secrets.Key = "a2V5"
	cfg.MQTT.QoS = 3

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for QoS 3, got nil")
	}
}
