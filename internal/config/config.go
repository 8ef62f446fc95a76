package config // package config loads application configuration from the environment and an optional YAML file

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration values. Most fields correspond to
// an environment variable; the database block can also come from the YAML
// file named by CONFIG_FILE. Environment variables win over the file, the
// file wins over defaults.
type Config struct {
	Env            string         // application environment (e.g. "dev", "prod")
	Port           string         // HTTP port to listen on
	Database       DatabaseConfig // relational store connection
	JWTSecret      string         // secret used to sign JWTs
	AccessTTLMin   int            // access token time-to-live in minutes
	RabbitURL      string         // AMQP broker URL; empty disables booking events
	BookingConsume bool           // run the booking log consumer in-process
	BookingLogPath string         // file the booking consumer appends to
	LogLevel       string         // zerolog level name
	LogFormat      string         // "console" or "json"
}

// DatabaseConfig mirrors the connection properties of the store.
type DatabaseConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"` // empty allowed
	Address  string `yaml:"address"`
	Port     string `yaml:"port"`
	Name     string `yaml:"name"`
}

// fileConfig is the shape of the optional YAML file.
type fileConfig struct {
	Env      string         `yaml:"env"`
	Port     string         `yaml:"port"`
	Database DatabaseConfig `yaml:"database"`
	JWT      struct {
		Secret    string `yaml:"secret"`
		AccessTTL int    `yaml:"access_ttl_min"`
	} `yaml:"jwt"`
	RabbitURL string `yaml:"rabbitmq_url"`
	Log       struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load builds a Config. Missing required values are reported together in a
// single error instead of exiting the process.
func Load() (Config, error) {
	cfg := Config{
		Env:            "dev",
		Port:           "8080",
		Database:       DatabaseConfig{Address: "127.0.0.1", Port: "3306"},
		AccessTTLMin:   60,
		BookingLogPath: "logs/booking.log",
		LogLevel:       "info",
		LogFormat:      "console",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	cfg.Env = envStr("APP_ENV", cfg.Env)
	cfg.Port = envStr("APP_PORT", cfg.Port)
	cfg.Database.Username = envStr("DB_USER", cfg.Database.Username)
	cfg.Database.Password = envStr("DB_PASS", cfg.Database.Password)
	cfg.Database.Address = envStr("DB_HOST", cfg.Database.Address)
	cfg.Database.Port = envStr("DB_PORT", cfg.Database.Port)
	cfg.Database.Name = envStr("DB_NAME", cfg.Database.Name)
	cfg.JWTSecret = envStr("JWT_SECRET", cfg.JWTSecret)
	cfg.AccessTTLMin = envInt("ACCESS_TOKEN_TTL_MIN", cfg.AccessTTLMin)
	cfg.RabbitURL = envStr("RABBITMQ_URL", cfg.RabbitURL)
	cfg.BookingConsume = envBool("BOOKING_CONSUMER_ENABLED", cfg.BookingConsume)
	cfg.BookingLogPath = envStr("BOOKING_LOG_PATH", cfg.BookingLogPath)
	cfg.LogLevel = envStr("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envStr("LOG_FORMAT", cfg.LogFormat)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %q: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config: parse %q: %w", path, err)
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Env, fc.Env)
	set(&cfg.Port, fc.Port)
	set(&cfg.Database.Username, fc.Database.Username)
	set(&cfg.Database.Password, fc.Database.Password)
	set(&cfg.Database.Address, fc.Database.Address)
	set(&cfg.Database.Port, fc.Database.Port)
	set(&cfg.Database.Name, fc.Database.Name)
	set(&cfg.JWTSecret, fc.JWT.Secret)
	set(&cfg.RabbitURL, fc.RabbitURL)
	set(&cfg.LogLevel, fc.Log.Level)
	set(&cfg.LogFormat, fc.Log.Format)
	if fc.JWT.AccessTTL > 0 {
		cfg.AccessTTLMin = fc.JWT.AccessTTL
	}
	return nil
}

func (c Config) validate() error {
	var missing []string
	if c.Database.Username == "" {
		missing = append(missing, "DB_USER")
	}
	if c.Database.Address == "" {
		missing = append(missing, "DB_HOST")
	}
	if c.Database.Name == "" {
		missing = append(missing, "DB_NAME")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required settings: %s", strings.Join(missing, ", "))
	}
	if c.AccessTTLMin <= 0 {
		return errors.New("config: ACCESS_TOKEN_TTL_MIN must be positive")
	}
	return nil
}
