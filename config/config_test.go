package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadLayersYAMLAndEnv(t *testing.T) {
	path := writeFile(t, "config.yaml", `
port: "9090"
db_driver: sqlite
db_url: /tmp/sales.db
log_level: debug
cors_origins:
  - https://panel.example.com
`)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "9090" || cfg.DBDriver != DriverSQLite || cfg.DBURL != "/tmp/sales.db" {
		t.Errorf("YAML values not applied: %+v", cfg)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, env must win over YAML", cfg.LogLevel)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.RolloverSchedule != "0 0 * * *" || !strings.Contains(cfg.ReminderTemplate, "[StoreName]") {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/sales")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DBDriver != DriverPostgres || cfg.Port != "8080" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.RemindersEnabled() {
		t.Errorf("reminders must be disabled without Twilio credentials")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"postgres ok", func(c *Config) { c.DBURL = "postgres://x" }, ""},
		{"mongo ok", func(c *Config) { c.DBDriver = DriverMongo; c.MongoURI = "mongodb://x" }, ""},
		{"missing url", func(c *Config) {}, "DB_URL"},
		{"missing mongo uri", func(c *Config) { c.DBDriver = DriverMongo }, "MONGODB_URI"},
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }, "unknown DB_DRIVER"},
		{"bad rollover cron", func(c *Config) { c.DBURL = "x"; c.RolloverSchedule = "every night" }, "ROLLOVER_SCHEDULE"},
		{"bad reminder cron", func(c *Config) { c.DBURL = "x"; c.ReminderSchedule = "* *" }, "REMINDER_SCHEDULE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestRemindersEnabled(t *testing.T) {
	cfg := Default()
	cfg.TwilioAccountSID, cfg.TwilioAuthToken = "AC1", "secret"
	if cfg.RemindersEnabled() {
		t.Errorf("a sender number is required")
	}
	cfg.TwilioWhatsAppNumber = "+14155238886"
	if !cfg.RemindersEnabled() {
		t.Errorf("reminders must be enabled with credentials and a number")
	}
}
