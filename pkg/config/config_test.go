package config

import (
	"os"
	"path/filepath"
	"testing"
)

const minimalYAML = `
environment: test
server:
  port: 9090
model_server:
  base_url: http://localhost:8000
  timeout: 5s
  retry_attempts: 2
rate_limit:
  enabled: true
  capacity: 10
  refill_per_sec: 2
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", c.Server.Port)
	}
	if c.ModelServer.RetryAttempts != 2 {
		t.Errorf("retry_attempts = %d, want 2", c.ModelServer.RetryAttempts)
	}
	if !c.RateLimit.Enabled {
		t.Error("rate limit should be enabled")
	}
}

func TestLoadMissingBaseURL(t *testing.T) {
	_, err := Load(writeConfig(t, "environment: test\n"))
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("MODEL_SERVER_URL", "http://model:9999")
	t.Setenv("SERVER_PORT", "8181")

	c, err := LoadWithEnv(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.ModelServer.BaseURL != "http://model:9999" {
		t.Errorf("base_url = %s", c.ModelServer.BaseURL)
	}
	if c.Server.Port != 8181 {
		t.Errorf("port = %d, want 8181", c.Server.Port)
	}
}

func TestEventsRequireBrokers(t *testing.T) {
	body := minimalYAML + `
events:
  enabled: true
  topic: predictions
`
	_, err := Load(writeConfig(t, body))
	if err == nil {
		t.Fatal("expected validation error for missing brokers")
	}
}
