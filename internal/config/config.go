package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Console ConsoleConfig `yaml:"console"`
	Logging LoggingConfig `yaml:"logging"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// BackendConfig points at the reservations REST API.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type ConsoleConfig struct {
	RestaurantName string `yaml:"restaurant_name"`
	// TimeZone is used to read reservation date-times, which the backend sends without an offset.
	TimeZone string `yaml:"timezone"`
}

type LoggingConfig struct {
	Directory string `yaml:"directory"`
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	GroupID string   `yaml:"group_id"`
	// Topics maps an entity (tables, customers, reservations) to the topics
	// carrying its change events.
	Topics map[string][]string `yaml:"topics"`
	// AllowedActions filters relayed events; empty relays every action.
	AllowedActions []string `yaml:"allowed_actions"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Location resolves Console.TimeZone, falling back to the process local zone.
func (c *Config) Location() *time.Location {
	name := strings.TrimSpace(c.Console.TimeZone)
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

func defaults() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8080"},
		Backend: BackendConfig{BaseURL: "http://localhost:3000", Timeout: 10 * time.Second},
		Console: ConsoleConfig{RestaurantName: "El Buen Sazón"},
		Logging: LoggingConfig{Directory: "./logs", Level: "info", Format: "text"},
		Kafka: KafkaConfig{
			GroupID: "mesaya-console",
			Topics: map[string][]string{
				"tables":       {"mesaya.tables.events"},
				"customers":    {"mesaya.customers.events"},
				"reservations": {"mesaya.reservations.events"},
			},
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load builds the configuration: defaults, then the optional YAML file named
// by CONSOLE_CONFIG_FILE, then environment variables (which always win).
func Load() (*Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CONSOLE_CONFIG_FILE")); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	// ${ENV_VAR} placeholders are expanded before decoding.
	data = []byte(os.ExpandEnv(string(data)))
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	setString(&cfg.Server.Port, getenv("PORT"))
	setString(&cfg.Backend.BaseURL, getenv("BACKEND_BASE_URL"))
	if raw := strings.TrimSpace(getenv("BACKEND_TIMEOUT")); raw != "" {
		timeout, err := parseDuration(raw)
		if err != nil {
			return fmt.Errorf("BACKEND_TIMEOUT: %w", err)
		}
		cfg.Backend.Timeout = timeout
	}
	setString(&cfg.Console.TimeZone, getenv("CONSOLE_TIMEZONE"))
	setString(&cfg.Console.RestaurantName, getenv("RESTAURANT_NAME"))
	setString(&cfg.Logging.Directory, getenv("LOG_DIR"))
	setString(&cfg.Logging.Level, getenv("LOG_LEVEL"))
	setString(&cfg.Logging.Format, getenv("LOG_FORMAT"))

	brokers := splitList(getenv("KAFKA_BROKERS"))
	if len(brokers) == 0 {
		brokers = splitList(getenv("KAFKA_BROKER"))
	}
	if len(brokers) > 0 {
		cfg.Kafka.Brokers = brokers
	}
	setString(&cfg.Kafka.GroupID, getenv("KAFKA_GROUP_ID"))
	if actions := splitList(getenv("KAFKA_ALLOWED_ACTIONS")); len(actions) > 0 {
		cfg.Kafka.AllowedActions = actions
	}
	for _, entity := range []string{"tables", "customers", "reservations"} {
		if topics := splitList(getenv("KAFKA_TOPICS_" + strings.ToUpper(entity))); len(topics) > 0 {
			if cfg.Kafka.Topics == nil {
				cfg.Kafka.Topics = make(map[string][]string)
			}
			cfg.Kafka.Topics[entity] = topics
		}
	}

	if raw := strings.TrimSpace(getenv("METRICS_ENABLED")); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("METRICS_ENABLED: %w", err)
		}
		cfg.Metrics.Enabled = enabled
	}
	return nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Backend.BaseURL) == "" {
		return errors.New("backend base url is required")
	}
	if c.Backend.Timeout <= 0 {
		return errors.New("backend timeout must be positive")
	}
	if tz := strings.TrimSpace(c.Console.TimeZone); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return fmt.Errorf("CONSOLE_TIMEZONE: %w", err)
		}
	}
	return nil
}

// parseDuration accepts Go durations ("15s") and bare seconds ("15").
func parseDuration(raw string) (time.Duration, error) {
	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	return time.ParseDuration(raw)
}

func setString(target *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*target = trimmed
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
