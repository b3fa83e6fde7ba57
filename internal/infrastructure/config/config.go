package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load
const EnvPrefix = "FRAUDLENS"

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Model     ModelConfig     `mapstructure:"model"`
	AI        AIConfig        `mapstructure:"ai"`
	KeepAlive KeepAliveConfig `mapstructure:"keepalive"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	Mode            string        `mapstructure:"mode" validate:"oneof=debug release test"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes" validate:"gt=0"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// ModelConfig selects where the classifier comes from
type ModelConfig struct {
	Backend       string        `mapstructure:"backend" validate:"oneof=local remote"`
	Path          string        `mapstructure:"path" validate:"required_if=Backend local"`
	RemoteURL     string        `mapstructure:"remote_url" validate:"required_if=Backend remote,omitempty,url"`
	RemoteTimeout time.Duration `mapstructure:"remote_timeout" validate:"gt=0"`
}

// AIConfig holds settings for the text-generation service
type AIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// KeepAliveConfig controls the self-ping loop
type KeepAliveConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	URL      string        `mapstructure:"url" validate:"omitempty,url"`
	Path     string        `mapstructure:"path" validate:"required,startswith=/"`
	Interval time.Duration `mapstructure:"interval" validate:"gt=0"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// TracingConfig holds OpenTelemetry exporter settings
type TracingConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name" validate:"required"`
}

// Configured reports whether an API key is available
func (c AIConfig) Configured() bool {
	return c.APIKey != ""
}

// Active reports whether the pinger should run
func (c KeepAliveConfig) Active() bool {
	return c.Enabled && c.URL != ""
}

// Target returns the full URL the pinger requests
func (c KeepAliveConfig) Target() string {
	return strings.TrimRight(c.URL, "/") + c.Path
}

// Load reads configuration from defaults, an optional config file, .env and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Well-known variable names used by the hosting platform and the Gemini SDK docs
	if err := v.BindEnv("ai.api_key", EnvPrefix+"_AI_API_KEY", "GOOGLE_GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}
	if err := v.BindEnv("keepalive.url", EnvPrefix+"_KEEPALIVE_URL", "RENDER_EXTERNAL_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 30*time.Second)
	// AI responses stream for a while; keep above ai.timeout
	v.SetDefault("server.write_timeout", 90*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.max_body_bytes", int64(16*1024*1024))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("model.backend", "local")
	v.SetDefault("model.path", "models/fraud_detection_model.json")
	v.SetDefault("model.remote_url", "")
	v.SetDefault("model.remote_timeout", 5*time.Second)

	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.timeout", 60*time.Second)

	v.SetDefault("keepalive.enabled", true)
	v.SetDefault("keepalive.url", "")
	v.SetDefault("keepalive.path", "/keep-alive")
	v.SetDefault("keepalive.interval", 180*time.Second)
	v.SetDefault("keepalive.timeout", 10*time.Second)

	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", "fraudlens-api")
}
