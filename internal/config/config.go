package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr           string
	LogLevel           slog.Level
	Timezone           string
	Location           *time.Location
	MQTTBrokerURL      string
	MQTTClientID       string
	MQTTUsername       string
	MQTTPassword       string
	MQTTTopicPrefix    string
	MQTTCommandTopic   string
	MQTTCommandQoS     byte
	MQTTConnectTimeout time.Duration
	LookupURL          string
	LookupTimeout      time.Duration
	DBDSN              string
	RateLimitPerMinute int
}

// fileConfig is the optional YAML file named by LEXHOOK_CONFIG. Its values
// act as defaults; environment variables win.
type fileConfig struct {
	HTTPAddr string `yaml:"http_addr"`
	LogLevel string `yaml:"log_level"`
	Timezone string `yaml:"timezone"`
	MQTT     struct {
		BrokerURL             string `yaml:"broker_url"`
		ClientID              string `yaml:"client_id"`
		Username              string `yaml:"username"`
		Password              string `yaml:"password"`
		TopicPrefix           string `yaml:"topic_prefix"`
		CommandTopic          string `yaml:"command_topic"`
		CommandQoS            *int   `yaml:"command_qos"`
		ConnectTimeoutSeconds int    `yaml:"connect_timeout_seconds"`
	} `yaml:"mqtt"`
	Lookup struct {
		URL            string `yaml:"url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"lookup"`
	DBDSN              string `yaml:"db_dsn"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
}

func Load() (Config, error) {
	var file fileConfig
	if path := os.Getenv("LEXHOOK_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	qos := 1
	if file.MQTT.CommandQoS != nil {
		qos = *file.MQTT.CommandQoS
	}

	cfg := Config{
		HTTPAddr:           getenvDefault("LEXHOOK_HTTP_ADDR", orDefault(file.HTTPAddr, ":9020")),
		Timezone:           getenvDefault("TIMEZONE", orDefault(file.Timezone, "Asia/Taipei")),
		MQTTBrokerURL:      getenvDefault("MQTT_BROKER_URL", file.MQTT.BrokerURL),
		MQTTClientID:       getenvDefault("MQTT_CLIENT_ID", orDefault(file.MQTT.ClientID, "lexhook-"+uuid.NewString())),
		MQTTUsername:       getenvDefault("MQTT_USERNAME", file.MQTT.Username),
		MQTTPassword:       getenvDefault("MQTT_PASSWORD", file.MQTT.Password),
		MQTTTopicPrefix:    getenvDefault("MQTT_TOPIC_PREFIX", file.MQTT.TopicPrefix),
		MQTTCommandTopic:   getenvDefault("MQTT_COMMAND_TOPIC", orDefault(file.MQTT.CommandTopic, "PiInput")),
		MQTTConnectTimeout: time.Duration(getenvIntDefault("MQTT_CONNECT_TIMEOUT_SECONDS", positiveOr(file.MQTT.ConnectTimeoutSeconds, 10))) * time.Second,
		LookupURL:          strings.TrimSpace(getenvDefault("LOOKUP_URL", file.Lookup.URL)),
		LookupTimeout:      time.Duration(getenvIntDefault("LOOKUP_TIMEOUT_SECONDS", positiveOr(file.Lookup.TimeoutSeconds, 5))) * time.Second,
		DBDSN:              getenvDefault("DB_DSN", file.DBDSN),
		RateLimitPerMinute: getenvIntDefault("RATE_LIMIT_PER_MINUTE", positiveOr(file.RateLimitPerMinute, 600)),
	}

	level, err := parseLevel(getenvDefault("LOG_LEVEL", orDefault(file.LogLevel, "info")))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	qos = getenvIntDefault("MQTT_COMMAND_QOS", qos)
	if qos < 0 || qos > 2 {
		return Config{}, fmt.Errorf("MQTT_COMMAND_QOS must be 0, 1 or 2, got %d", qos)
	}
	cfg.MQTTCommandQoS = byte(qos)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if cfg.MQTTConnectTimeout <= 0 {
		return Config{}, fmt.Errorf("MQTT_CONNECT_TIMEOUT_SECONDS must be positive")
	}
	if cfg.LookupTimeout <= 0 {
		return Config{}, fmt.Errorf("LOOKUP_TIMEOUT_SECONDS must be positive")
	}
	if cfg.RateLimitPerMinute <= 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}

	return cfg, nil
}

func parseLevel(v string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL %q: %w", v, err)
	}
	return level, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func positiveOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func getenvDefault(key, val string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return val
}

func getenvIntDefault(key string, val int) int {
	v := os.Getenv(key)
	if v == "" {
		return val
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return val
	}
	return n
}
