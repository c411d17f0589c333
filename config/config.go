package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

const defaultReminderTemplate = "Merhaba [StoreName], [VisitDate] tarihinde ziyaretiniz planlanmıştır."

type Config struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`

	DBDriver      string `yaml:"db_driver"`
	DBURL         string `yaml:"db_url"`
	MongoURI      string `yaml:"mongodb_uri"`
	MongoDatabase string `yaml:"mongodb_database"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogFile   string `yaml:"log_file"`

	CORSOrigins []string `yaml:"cors_origins"`

	RolloverSchedule string `yaml:"rollover_schedule"`
	ReminderSchedule string `yaml:"reminder_schedule"`
	ReminderTemplate string `yaml:"reminder_template"`

	TwilioAccountSID     string `yaml:"twilio_account_sid"`
	TwilioAuthToken      string `yaml:"twilio_auth_token"`
	TwilioPhoneNumber    string `yaml:"twilio_phone_number"`
	TwilioWhatsAppNumber string `yaml:"twilio_whatsapp_number"`
}

func Default() *Config {
	return &Config{
		Port:             "8080",
		Environment:      "development",
		DBDriver:         DriverPostgres,
		MongoDatabase:    "sales",
		LogLevel:         "info",
		LogFormat:        "text",
		CORSOrigins:      []string{"*"},
		RolloverSchedule: "0 0 * * *",
		ReminderSchedule: "0 9 * * *",
		ReminderTemplate: defaultReminderTemplate,
	}
}

// Load builds the configuration from defaults, the optional YAML file at path,
// an optional .env file and finally the process environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	// .env file is optional, continue without it
	_ = godotenv.Load()

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.DBDriver = strings.ToLower(getEnv("DB_DRIVER", c.DBDriver))
	c.DBURL = getEnv("DB_URL", c.DBURL)
	c.MongoURI = getEnv("MONGODB_URI", c.MongoURI)
	c.MongoDatabase = getEnv("MONGODB_DATABASE", c.MongoDatabase)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.LogFile = getEnv("LOG_FILE", c.LogFile)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.CORSOrigins = splitList(origins)
	}
	c.RolloverSchedule = getEnv("ROLLOVER_SCHEDULE", c.RolloverSchedule)
	c.ReminderSchedule = getEnv("REMINDER_SCHEDULE", c.ReminderSchedule)
	c.ReminderTemplate = getEnv("REMINDER_TEMPLATE", c.ReminderTemplate)
	c.TwilioAccountSID = getEnv("TWILIO_ACCOUNT_SID", c.TwilioAccountSID)
	c.TwilioAuthToken = getEnv("TWILIO_AUTH_TOKEN", c.TwilioAuthToken)
	c.TwilioPhoneNumber = getEnv("TWILIO_PHONE_NUMBER", c.TwilioPhoneNumber)
	c.TwilioWhatsAppNumber = getEnv("TWILIO_WHATSAPP_NUMBER", c.TwilioWhatsAppNumber)
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
		if c.DBURL == "" {
			return fmt.Errorf("DB_URL is required for driver %q", c.DBDriver)
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI is required for driver \"mongo\"")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}

	if _, err := cron.ParseStandard(c.RolloverSchedule); err != nil {
		return fmt.Errorf("invalid ROLLOVER_SCHEDULE: %w", err)
	}
	if _, err := cron.ParseStandard(c.ReminderSchedule); err != nil {
		return fmt.Errorf("invalid REMINDER_SCHEDULE: %w", err)
	}
	return nil
}

// RemindersEnabled reports whether Twilio credentials and a sender number are set.
func (c *Config) RemindersEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" &&
		(c.TwilioPhoneNumber != "" || c.TwilioWhatsAppNumber != "")
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
