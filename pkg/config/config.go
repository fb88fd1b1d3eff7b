package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/North-Head-Digital/nhd-website/pkg/endpoints"
)

// Config holds all configuration
type Config struct {
	LogLevel string               `mapstructure:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
	Server   ServerConfig         `mapstructure:"server"`
	Client   ClientConfig         `mapstructure:"client"`
	Metrics  MetricsConfig        `mapstructure:"metrics"`
	Site     endpoints.SiteConfig `mapstructure:"site"`
}

// ServerConfig holds development server configuration
type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port" validate:"min=1,max=65535"`
	PublicDir   string `mapstructure:"public_dir" validate:"required"`
	Environment string `mapstructure:"environment" validate:"oneof=development production test"`
	AcceptForms bool   `mapstructure:"accept_forms"`
}

// ClientConfig holds settings for submissions made from the command line
type ClientConfig struct {
	// Origin is the page origin the submission pretends to come from. Its host
	// picks the default API base and it receives the form-encoded fallback.
	Origin string `mapstructure:"origin" validate:"required,url"`
	// SiteConfigFile, when set, is re-read on every submission.
	SiteConfigFile string        `mapstructure:"site_config_file"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// MetricsConfig toggles optional metric families
type MetricsConfig struct {
	Enabled              bool `mapstructure:"enabled"`
	EnableLatency        bool `mapstructure:"enable_latency"`
	EnableDetailedStatus bool `mapstructure:"enable_detailed_status"`
}

var validate = validator.New()

// Addr returns the listen address of the development server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load loads the configuration from config files and the environment.
// An explicit path must exist; otherwise config.yaml is searched for in . and
// ./config and is optional.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Set defaults
	setDefaults(v)

	v.SetEnvPrefix("NHD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The original dev server honoured bare PORT and LOG_LEVEL.
	_ = v.BindEnv("server.port", "NHD_SERVER_PORT", "PORT")
	_ = v.BindEnv("log_level", "NHD_LOG_LEVEL", "LOG_LEVEL")

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.public_dir", "public")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.accept_forms", true)

	v.SetDefault("client.origin", "http://localhost:3001")
	v.SetDefault("client.site_config_file", "")
	v.SetDefault("client.timeout", "0s")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.enable_latency", true)
	v.SetDefault("metrics.enable_detailed_status", false)

	v.SetDefault("site.api_base_url", "")
	v.SetDefault("site.contact_endpoint", "")
	v.SetDefault("site.newsletter_endpoint", "")
}
