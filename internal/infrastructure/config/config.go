package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Model    ModelConfig    `mapstructure:"model"`
	Registry RegistryConfig `mapstructure:"registry"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// MalformedRequestStatus is the status returned for request bodies that are not a JSON object
	MalformedRequestStatus int `mapstructure:"malformed_request_status"`
}

// ModelConfig selects the model served by the process
type ModelConfig struct {
	Name           string        `mapstructure:"name"`
	Version        string        `mapstructure:"version"`
	VectorizerPath string        `mapstructure:"vectorizer_path"`
	ClassifierPath string        `mapstructure:"classifier_path"`
	LoadTimeout    time.Duration `mapstructure:"load_timeout"`
}

// RegistryConfig holds artifact registry configuration
type RegistryConfig struct {
	Backend   string        `mapstructure:"backend"`
	Root      string        `mapstructure:"root"`
	Endpoint  string        `mapstructure:"endpoint"`
	Timeout   time.Duration `mapstructure:"timeout"`
	KeyPrefix string        `mapstructure:"key_prefix"`
}

// DatabaseConfig holds prediction audit database configuration
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	Path     string `mapstructure:"path"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Addr returns the host:port the HTTP server listens on
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Addr returns the host:port of the Redis server
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Load reads configuration from config.yaml (optional) and SENTIMENT_* environment variables
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("SENTIMENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	switch c.Registry.Backend {
	case "file", "http", "redis":
	default:
		return fmt.Errorf("unsupported registry backend %q", c.Registry.Backend)
	}
	if c.Registry.Backend == "http" && c.Registry.Endpoint == "" {
		return errors.New("registry endpoint is required for the http backend")
	}
	if c.Registry.Backend == "redis" && !c.Redis.Enabled {
		return errors.New("redis must be enabled for the redis registry backend")
	}
	if c.Model.Name == "" {
		return errors.New("model name is required")
	}
	if c.Server.MalformedRequestStatus < 400 || c.Server.MalformedRequestStatus > 599 {
		return fmt.Errorf("malformed_request_status %d is not an error status", c.Server.MalformedRequestStatus)
	}
	if c.Database.Enabled && c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.malformed_request_status", 500)

	// Model defaults
	v.SetDefault("model.name", "SentimentAnalysisModel")
	v.SetDefault("model.version", "latest")
	v.SetDefault("model.vectorizer_path", "")
	v.SetDefault("model.classifier_path", "")
	v.SetDefault("model.load_timeout", 60*time.Second)

	// Registry defaults
	v.SetDefault("registry.backend", "file")
	v.SetDefault("registry.root", "./artifacts")
	v.SetDefault("registry.endpoint", "")
	v.SetDefault("registry.timeout", 30*time.Second)
	v.SetDefault("registry.key_prefix", "sentiment:models")

	// Database defaults
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "sentiment")
	v.SetDefault("database.password", "sentiment")
	v.SetDefault("database.dbname", "sentiment")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "sentiment.db")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
