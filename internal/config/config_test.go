package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv() {
	envVars := []string{
		"COMMS_URL", "SERVICE_NAME",
		"EXTENSION_SUBJECT", "SETTINGS_CHANGE_EVENT_SUBJECT",
		"EXTENSION_REQUEST_TIMEOUT",
		"HTTP_PORT", "HEALTH_CHECK_TIMEOUT", "LOG_LEVEL",
	}
	for _, env := range envVars {
		os.Unsetenv(env)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("config:config_test - unexpected error: %v", err)
	}

	if cfg.COMMSURL != "nats://127.0.0.1:4222" {
		t.Errorf("config:config_test - COMMSURL = %q, want %q", cfg.COMMSURL, "nats://127.0.0.1:4222")
	}
	if cfg.COMMSName != "settings-extension" {
		t.Errorf("config:config_test - COMMSName = %q, want %q", cfg.COMMSName, "settings-extension")
	}
	if cfg.ExtensionSubject != "" {
		t.Errorf("config:config_test - ExtensionSubject = %q, want empty", cfg.ExtensionSubject)
	}
	if cfg.ChangeEventSubject != "" {
		t.Errorf("config:config_test - ChangeEventSubject = %q, want empty", cfg.ChangeEventSubject)
	}
	if cfg.RequestTimeout != 25*time.Second {
		t.Errorf("config:config_test - RequestTimeout = %v, want 25s", cfg.RequestTimeout)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("config:config_test - HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.HealthCheckTimeout != 5*time.Second {
		t.Errorf("config:config_test - HealthCheckTimeout = %v, want 5s", cfg.HealthCheckTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("config:config_test - LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	overrides := map[string]string{
		"COMMS_URL":                     "nats://custom:4222",
		"SERVICE_NAME":                  "test-extension",
		"EXTENSION_SUBJECT":             "custom.ext",
		"SETTINGS_CHANGE_EVENT_SUBJECT": "custom.changed",
		"EXTENSION_REQUEST_TIMEOUT":     "10s",
		"HTTP_PORT":                     "9090",
		"HEALTH_CHECK_TIMEOUT":          "10s",
		"LOG_LEVEL":                     "debug",
	}

	for key, val := range overrides {
		os.Setenv(key, val)
	}
	defer func() {
		for key := range overrides {
			os.Unsetenv(key)
		}
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("config:config_test - unexpected error: %v", err)
	}

	if cfg.COMMSURL != "nats://custom:4222" {
		t.Errorf("config:config_test - COMMSURL = %q, want %q", cfg.COMMSURL, "nats://custom:4222")
	}
	if cfg.COMMSName != "test-extension" {
		t.Errorf("config:config_test - COMMSName = %q, want %q", cfg.COMMSName, "test-extension")
	}
	if cfg.ExtensionSubject != "custom.ext" {
		t.Errorf("config:config_test - ExtensionSubject = %q, want %q", cfg.ExtensionSubject, "custom.ext")
	}
	if cfg.ChangeEventSubject != "custom.changed" {
		t.Errorf("config:config_test - ChangeEventSubject = %q, want %q", cfg.ChangeEventSubject, "custom.changed")
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("config:config_test - RequestTimeout = %v, want 10s", cfg.RequestTimeout)
	}
	if cfg.HTTPPort != 9090 {
		t.Errorf("config:config_test - HTTPPort = %d, want 9090", cfg.HTTPPort)
	}
	if cfg.HealthCheckTimeout != 10*time.Second {
		t.Errorf("config:config_test - HealthCheckTimeout = %v, want 10s", cfg.HealthCheckTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("config:config_test - LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestValidateForServe(t *testing.T) {
	clearEnv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("config:config_test - unexpected error: %v", err)
	}
	if err := cfg.ValidateForServe(); err != nil {
		t.Errorf("config:config_test - defaults should validate, got %v", err)
	}

	cfg.COMMSURL = ""
	if err := cfg.ValidateForServe(); err == nil {
		t.Error("config:config_test - expected empty COMMS_URL to be rejected")
	}

	cfg.COMMSURL = "nats://127.0.0.1:4222"
	cfg.RequestTimeout = 0
	if err := cfg.ValidateForServe(); err == nil {
		t.Error("config:config_test - expected zero request timeout to be rejected")
	}
}
