package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ReloadCallback is invoked with the updated values of the reloadable keys
// after the config file changes on disk.
type ReloadCallback func(changes map[string]any)

// ConfigManager watches the config file and hot-reloads the whitelisted
// key set (see reloadableKeys). Static keys such as the server port or
// transport mode require a restart and are ignored on change.
type ConfigManager struct {
	v         *viper.Viper
	path      string
	logger    Logger
	mu        sync.Mutex
	callbacks []ReloadCallback
	last      map[string]any
}

// Logger is the minimal logging contract for the config manager.
type Logger interface {
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// NewConfigManager creates a manager watching the given config file.
func NewConfigManager(path string, logger Logger) (*ConfigManager, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config for watch: %w", err)
	}

	m := &ConfigManager{
		v:      v,
		path:   path,
		logger: logger,
		last:   map[string]any{},
	}
	m.snapshot()

	return m, nil
}

// OnReload registers a callback invoked when any reloadable key changes.
func (m *ConfigManager) OnReload(cb ReloadCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, cb)
}

// Watch starts watching the config file for changes.
func (m *ConfigManager) Watch() {
	m.v.OnConfigChange(func(e fsnotify.Event) {
		m.handleChange(e)
	})
	m.v.WatchConfig()
	m.logger.Info("watching config file for changes", "path", m.path)
}

func (m *ConfigManager) handleChange(e fsnotify.Event) {
	if err := m.v.ReadInConfig(); err != nil {
		m.logger.Error("failed to re-read changed config, keeping previous values",
			"path", e.Name,
			"error", err,
		)
		return
	}

	m.mu.Lock()
	changes := map[string]any{}
	for key := range reloadableKeys {
		val := m.currentValue(key)
		if val != m.last[key] {
			changes[key] = val
			m.last[key] = val
		}
	}
	callbacks := make([]ReloadCallback, len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	if len(changes) == 0 {
		return
	}

	m.logger.Info("configuration reloaded", "changed_keys", keysOf(changes))
	for _, cb := range callbacks {
		cb(changes)
	}
}

// snapshot records the current reloadable values so the first change event
// reports deltas rather than the whole set.
func (m *ConfigManager) snapshot() {
	for key := range reloadableKeys {
		m.last[key] = m.currentValue(key)
	}
}

// currentValue normalizes viper values so comparisons are stable across
// re-reads.
func (m *ConfigManager) currentValue(key string) any {
	switch key {
	case "notifications.dismiss_delay":
		return m.v.GetDuration(key)
	case "notifications.max_visible":
		return m.v.GetInt(key)
	default:
		return m.v.GetString(key)
	}
}

// GetDuration returns the current value of a duration key.
func (m *ConfigManager) GetDuration(key string) time.Duration {
	return m.v.GetDuration(key)
}

func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
