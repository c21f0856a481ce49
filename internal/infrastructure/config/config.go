package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Voxgate.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	SmartThings SmartThingsConfig `yaml:"smartthings"`
	Secrets     SecretsConfig     `yaml:"secrets"`
	Skill       SkillConfig       `yaml:"skill"`
	MQTT        MQTTConfig        `yaml:"mqtt"`
	InfluxDB    InfluxDBConfig    `yaml:"influxdb"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ServerConfig contains HTTP server settings for the inbound skill endpoint.
type ServerConfig struct {
	Host     string              `yaml:"host"`
	Port     int                 `yaml:"port"`
	Timeouts ServerTimeoutConfig `yaml:"timeouts"`
}

// ServerTimeoutConfig contains HTTP timeout settings in seconds.
type ServerTimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// DatabaseConfig contains SQLite database settings for the group store.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// SmartThingsConfig contains settings for the remote device control API.
type SmartThingsConfig struct {
	// BaseURL is the SmartApp installations endpoint base.
	BaseURL string `yaml:"base_url"`

	// AppID identifies the SmartApp installation to address.
	AppID string `yaml:"app_id"`

	// Timeout is the per-request HTTP timeout in seconds.
	Timeout int `yaml:"timeout"`
}

// SecretsConfig contains settings for API token decryption.
type SecretsConfig struct {
	// TokenPath is the filesystem path to the encrypted SmartThings token.
	TokenPath string `yaml:"token_path"`

	// Key is the base64-encoded AES key used to decrypt the token.
	// Always set via the VOXGATE_TOKEN_KEY environment variable in production.
	Key string `yaml:"key"`
}

// SkillConfig contains voice-platform skill settings.
type SkillConfig struct {
	// ApplicationID, when set, is the only skill application permitted to
	// invoke this gateway. Requests carrying a different ID are rejected.
	ApplicationID string `yaml:"application_id"`
}

// MQTTConfig contains MQTT broker connection settings for event announcements.
type MQTTConfig struct {
	Enabled bool             `yaml:"enabled"`
	Broker  MQTTBrokerConfig `yaml:"broker"`
	Auth    MQTTAuthConfig   `yaml:"auth"`
	QoS     int              `yaml:"qos"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// InfluxDBConfig contains InfluxDB connection settings for invocation history.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: VOXGATE_SECTION_KEY
// For example: VOXGATE_DATABASE_PATH, VOXGATE_TOKEN_KEY
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Read and parse YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: ServerTimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Database: DatabaseConfig{
			Path:        "./data/voxgate.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		SmartThings: SmartThingsConfig{
			BaseURL: "https://graph.api.smartthings.com/api/smartapps/installations",
			Timeout: 10,
		},
		Secrets: SecretsConfig{
			TokenPath: "./data/smartthings_encrypted_token",
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "voxgate",
			},
			QoS: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: VOXGATE_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Server
	if v := os.Getenv("VOXGATE_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}

	// Database
	if v := os.Getenv("VOXGATE_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// SmartThings
	if v := os.Getenv("VOXGATE_SMARTTHINGS_BASE_URL"); v != "" {
		cfg.SmartThings.BaseURL = v
	}
	if v := os.Getenv("VOXGATE_SMARTTHINGS_APP_ID"); v != "" {
		cfg.SmartThings.AppID = v
	}

	// Secrets - token decryption key (IMPORTANT: always set in production)
	if v := os.Getenv("VOXGATE_TOKEN_KEY"); v != "" {
		cfg.Secrets.Key = v
	}

	// Skill
	if v := os.Getenv("VOXGATE_SKILL_APPLICATION_ID"); v != "" {
		cfg.Skill.ApplicationID = v
	}

	// MQTT
	if v := os.Getenv("VOXGATE_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("VOXGATE_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("VOXGATE_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("VOXGATE_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors and security issues.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Server validation
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	// SmartThings validation
	if c.SmartThings.BaseURL == "" {
		errs = append(errs, "smartthings.base_url is required")
	}
	if c.SmartThings.AppID == "" {
		errs = append(errs, "smartthings.app_id is required (set VOXGATE_SMARTTHINGS_APP_ID environment variable)")
	}

	// Secrets validation - the decryption key is REQUIRED
	// Without it the gateway cannot obtain the SmartThings API token and
	// every device operation would fail at the credential step.
	if c.Secrets.TokenPath == "" {
		errs = append(errs, "secrets.token_path is required")
	}
	if c.Secrets.Key == "" {
		errs = append(errs, "secrets.key is required (set VOXGATE_TOKEN_KEY environment variable)")
	}

	// MQTT validation
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetReadTimeout returns the server read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.Server.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the server write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.Server.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the server idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.Server.Timeouts.Idle) * time.Second
}

// GetTimeout returns the outbound HTTP timeout as a Duration.
func (c SmartThingsConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
