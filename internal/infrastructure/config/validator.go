package config

import (
	"fmt"
	"strings"
	"time"
)

// reloadableKeys defines the whitelist of configuration keys that can be
// hot-reloaded.
var reloadableKeys = map[string]bool{
	"logging.level":               true,
	"logging.format":              true,
	"notifications.dismiss_delay": true,
	"notifications.max_visible":   true,
}

// IsReloadable returns true if the given config key can be hot-reloaded.
func IsReloadable(key string) bool {
	return reloadableKeys[key]
}

// ValidateLogLevel checks if the log level is valid.
func ValidateLogLevel(level string) error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", level)
	}
	return nil
}

// ValidateLogFormat checks if the log format is valid.
func ValidateLogFormat(format string) error {
	validFormats := map[string]bool{
		"json": true,
		"text": true,
	}
	if !validFormats[format] {
		return fmt.Errorf("invalid log format: %s (must be json or text)", format)
	}
	return nil
}

// ValidateTransportMode checks if the transport mode is valid.
func ValidateTransportMode(mode string) error {
	validModes := map[string]bool{
		"manual":    true,
		"websocket": true,
	}
	if !validModes[mode] {
		return fmt.Errorf("invalid transport mode: %s (must be manual or websocket)", mode)
	}
	return nil
}

// ValidateDuration checks if a duration is greater than zero.
func ValidateDuration(duration time.Duration, fieldName string) error {
	if duration <= 0 {
		return fmt.Errorf("%s must be greater than 0", fieldName)
	}
	return nil
}

// ValidatePort checks if a port number is valid.
func ValidatePort(port int, fieldName string) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", fieldName, port)
	}
	return nil
}

// ValidatePositive checks if an integer is greater than zero.
func ValidatePositive(value int, fieldName string) error {
	if value <= 0 {
		return fmt.Errorf("%s must be greater than 0, got %d", fieldName, value)
	}
	return nil
}

// Validate performs comprehensive validation on the configuration.
// Returns an error if any validation fails.
func (c *Config) Validate() error {
	var errors []string

	// Server validation
	if err := ValidatePort(c.Server.Port, "server.port"); err != nil {
		errors = append(errors, err.Error())
	}
	if err := ValidateDuration(c.Server.ReadTimeout, "server.read_timeout"); err != nil {
		errors = append(errors, err.Error())
	}
	if err := ValidateDuration(c.Server.WriteTimeout, "server.write_timeout"); err != nil {
		errors = append(errors, err.Error())
	}
	if err := ValidateDuration(c.Server.ShutdownTimeout, "server.shutdown_timeout"); err != nil {
		errors = append(errors, err.Error())
	}

	// Transport validation
	if err := ValidateTransportMode(c.Transport.Mode); err != nil {
		errors = append(errors, err.Error())
	}
	if c.Transport.Mode == "websocket" && c.Transport.URL == "" {
		errors = append(errors, "transport.url is required in websocket mode")
	}

	// Notification validation
	if err := ValidatePositive(c.Notifications.MaxVisible, "notifications.max_visible"); err != nil {
		errors = append(errors, err.Error())
	}
	if err := ValidateDuration(c.Notifications.DismissDelay, "notifications.dismiss_delay"); err != nil {
		errors = append(errors, err.Error())
	}
	if err := ValidatePositive(c.Notifications.QueueCap, "notifications.queue_cap"); err != nil {
		errors = append(errors, err.Error())
	}

	// Escalation validation
	if c.Slack.Enabled {
		if c.Slack.BotToken == "" {
			errors = append(errors, "slack.bot_token is required when slack is enabled")
		}
		if c.Slack.ChannelID == "" {
			errors = append(errors, "slack.channel_id is required when slack is enabled")
		}
	}
	if c.PagerDuty.Enabled && c.PagerDuty.RoutingKey == "" {
		errors = append(errors, "pagerduty.routing_key is required when pagerduty is enabled")
	}

	// Logging validation
	if err := ValidateLogLevel(c.Logging.Level); err != nil {
		errors = append(errors, err.Error())
	}
	if err := ValidateLogFormat(c.Logging.Format); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}
