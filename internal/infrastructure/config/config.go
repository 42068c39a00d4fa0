package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Transport     TransportConfig     `yaml:"transport"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Slack         SlackConfig         `yaml:"slack"`
	PagerDuty     PagerDutyConfig     `yaml:"pagerduty"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// TransportConfig holds push-messaging transport settings.
type TransportConfig struct {
	// Mode is "manual" (no live backend, trigger endpoint only) or
	// "websocket".
	Mode             string          `yaml:"mode"`
	URL              string          `yaml:"url"`
	EventName        string          `yaml:"event_name"`
	HandshakeTimeout time.Duration   `yaml:"handshake_timeout"`
	Reconnect        ReconnectConfig `yaml:"reconnect"`
}

// ReconnectConfig holds transport reconnection settings.
type ReconnectConfig struct {
	InitialBackoff    time.Duration `yaml:"initial_backoff"`
	MaxBackoff        time.Duration `yaml:"max_backoff"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier"`
	MaxFailures       int           `yaml:"max_failures"`
	OpenTimeout       time.Duration `yaml:"open_timeout"`
}

// NotificationsConfig holds notification queue controller settings.
type NotificationsConfig struct {
	MaxVisible   int           `yaml:"max_visible"`
	DismissDelay time.Duration `yaml:"dismiss_delay"`
	AutoDismiss  *bool         `yaml:"auto_dismiss"`
	QueueCap     int           `yaml:"queue_cap"`
}

// AutoDismissEnabled returns the auto-dismiss switch, defaulting to on.
func (n NotificationsConfig) AutoDismissEnabled() bool {
	return n.AutoDismiss == nil || *n.AutoDismiss
}

// SlackConfig holds Slack escalation settings.
type SlackConfig struct {
	Enabled   bool   `yaml:"enabled"`
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

// PagerDutyConfig holds PagerDuty escalation settings.
type PagerDutyConfig struct {
	Enabled    bool   `yaml:"enabled"`
	RoutingKey string `yaml:"routing_key"`
	Severity   string `yaml:"severity"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// IsSlackEnabled returns true if Slack escalation is fully configured.
func (c *Config) IsSlackEnabled() bool {
	return c.Slack.Enabled && c.Slack.BotToken != "" && c.Slack.ChannelID != ""
}

// IsPagerDutyEnabled returns true if PagerDuty escalation is fully configured.
func (c *Config) IsPagerDutyEnabled() bool {
	return c.PagerDuty.Enabled && c.PagerDuty.RoutingKey != ""
}

// Load reads configuration from file and environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	// Load from file if exists
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err == nil {
			// Expand environment variables in YAML
			expandedData := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Apply defaults
	cfg.applyDefaults()

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// overrideFromEnv overrides config values from environment variables.
func (c *Config) overrideFromEnv() {
	// Server
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}

	// Transport
	if v := os.Getenv("TRANSPORT_MODE"); v != "" {
		c.Transport.Mode = v
	}
	if v := os.Getenv("TRANSPORT_URL"); v != "" {
		c.Transport.URL = v
	}
	if v := os.Getenv("TRANSPORT_EVENT_NAME"); v != "" {
		c.Transport.EventName = v
	}

	// Notifications
	if v := os.Getenv("NOTIFICATIONS_MAX_VISIBLE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Notifications.MaxVisible = n
		}
	}
	if v := os.Getenv("NOTIFICATIONS_DISMISS_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Notifications.DismissDelay = d
		}
	}
	if v := os.Getenv("NOTIFICATIONS_AUTO_DISMISS"); v != "" {
		b := strings.ToLower(v) == "true"
		c.Notifications.AutoDismiss = &b
	}
	if v := os.Getenv("NOTIFICATIONS_QUEUE_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Notifications.QueueCap = n
		}
	}

	// Slack
	if v := os.Getenv("SLACK_ENABLED"); v != "" {
		c.Slack.Enabled = strings.ToLower(v) == "true"
	}
	if v := os.Getenv("SLACK_BOT_TOKEN"); v != "" {
		c.Slack.BotToken = v
	}
	if v := os.Getenv("SLACK_CHANNEL_ID"); v != "" {
		c.Slack.ChannelID = v
	}

	// PagerDuty
	if v := os.Getenv("PAGERDUTY_ENABLED"); v != "" {
		c.PagerDuty.Enabled = strings.ToLower(v) == "true"
	}
	if v := os.Getenv("PAGERDUTY_ROUTING_KEY"); v != "" {
		c.PagerDuty.RoutingKey = v
	}

	// Logging
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
}

// applyDefaults fills in defaults for unset values.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}

	if c.Transport.Mode == "" {
		c.Transport.Mode = "manual"
	}
	if c.Transport.EventName == "" {
		c.Transport.EventName = "debt-alert"
	}
	if c.Transport.HandshakeTimeout == 0 {
		c.Transport.HandshakeTimeout = 10 * time.Second
	}
	if c.Transport.Reconnect.InitialBackoff == 0 {
		c.Transport.Reconnect.InitialBackoff = 500 * time.Millisecond
	}
	if c.Transport.Reconnect.MaxBackoff == 0 {
		c.Transport.Reconnect.MaxBackoff = 60 * time.Second
	}
	if c.Transport.Reconnect.BackoffMultiplier == 0 {
		c.Transport.Reconnect.BackoffMultiplier = 1.5
	}
	if c.Transport.Reconnect.MaxFailures == 0 {
		c.Transport.Reconnect.MaxFailures = 5
	}
	if c.Transport.Reconnect.OpenTimeout == 0 {
		c.Transport.Reconnect.OpenTimeout = 30 * time.Second
	}

	if c.Notifications.MaxVisible == 0 {
		c.Notifications.MaxVisible = 4
	}
	if c.Notifications.DismissDelay == 0 {
		c.Notifications.DismissDelay = 8 * time.Second
	}
	if c.Notifications.QueueCap == 0 {
		c.Notifications.QueueCap = 64
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}
