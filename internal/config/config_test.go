package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"LEXHOOK_CONFIG", "LEXHOOK_HTTP_ADDR", "LOG_LEVEL", "TIMEZONE",
	"MQTT_BROKER_URL", "MQTT_CLIENT_ID", "MQTT_USERNAME", "MQTT_PASSWORD",
	"MQTT_TOPIC_PREFIX", "MQTT_COMMAND_TOPIC", "MQTT_COMMAND_QOS", "MQTT_CONNECT_TIMEOUT_SECONDS",
	"LOOKUP_URL", "LOOKUP_TIMEOUT_SECONDS", "DB_DSN", "RATE_LIMIT_PER_MINUTE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9020", cfg.HTTPAddr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "Asia/Taipei", cfg.Location.String())
	assert.Equal(t, "PiInput", cfg.MQTTCommandTopic)
	assert.Equal(t, byte(1), cfg.MQTTCommandQoS)
	assert.Equal(t, 10*time.Second, cfg.MQTTConnectTimeout)
	assert.True(t, strings.HasPrefix(cfg.MQTTClientID, "lexhook-"))
	assert.Equal(t, 5*time.Second, cfg.LookupTimeout)
	assert.Equal(t, 600, cfg.RateLimitPerMinute)
	assert.Empty(t, cfg.MQTTBrokerURL)
	assert.Empty(t, cfg.DBDSN)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEXHOOK_HTTP_ADDR", ":8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("MQTT_BROKER_URL", "tcp://broker:1883")
	t.Setenv("MQTT_CLIENT_ID", "tv-hook")
	t.Setenv("MQTT_COMMAND_QOS", "0")
	t.Setenv("LOOKUP_TIMEOUT_SECONDS", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, "tcp://broker:1883", cfg.MQTTBrokerURL)
	assert.Equal(t, "tv-hook", cfg.MQTTClientID)
	assert.Equal(t, byte(0), cfg.MQTTCommandQoS)
	assert.Equal(t, 2*time.Second, cfg.LookupTimeout)
}

func TestLoadFileWithEnvPrecedence(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "lexhook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_addr: ":7000"
timezone: UTC
mqtt:
  broker_url: tcp://file-broker:1883
  command_topic: home/tv
  command_qos: 2
lookup:
  url: http://lookup.local/search
  timeout_seconds: 3
rate_limit_per_minute: 60
`), 0o600))
	t.Setenv("LEXHOOK_CONFIG", path)
	t.Setenv("MQTT_BROKER_URL", "tcp://env-broker:1883")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTPAddr)
	assert.Equal(t, "tcp://env-broker:1883", cfg.MQTTBrokerURL)
	assert.Equal(t, "home/tv", cfg.MQTTCommandTopic)
	assert.Equal(t, byte(2), cfg.MQTTCommandQoS)
	assert.Equal(t, "http://lookup.local/search", cfg.LookupURL)
	assert.Equal(t, 3*time.Second, cfg.LookupTimeout)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "qos out of range", key: "MQTT_COMMAND_QOS", val: "3"},
		{name: "unknown timezone", key: "TIMEZONE", val: "Mars/Olympus"},
		{name: "bad log level", key: "LOG_LEVEL", val: "chatty"},
		{name: "negative rate limit", key: "RATE_LIMIT_PER_MINUTE", val: "-1"},
		{name: "zero connect timeout", key: "MQTT_CONNECT_TIMEOUT_SECONDS", val: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEXHOOK_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.Error(t, err)
}
