package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultDisposableDomains is the disposable domain list used when none is configured
var DefaultDisposableDomains = []string{
	"tempmail.com",
	"mailinator.com",
	"yopmail.com",
	"10minutemail.com",
	"guerrillamail.com",
	"trashmail.com",
	"fakeinbox.com",
	"throwawaymail.com",
	"getairmail.com",
	"sharklasers.com",
	"guerrillamail.info",
	"dispostable.com",
}

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/email-classifier/")
	v.AddConfigPath("$HOME/.email-classifier")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	return load(v)
}

// NewFromFile creates a configuration instance from an explicit config file
func NewFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func bindEnv(v *viper.Viper) {
	v.AutomaticEnv()
	v.SetEnvPrefix("EMAIL_CLASSIFIER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// PORT is the conventional override on hosting platforms
	_ = v.BindEnv("server.http.port", "EMAIL_CLASSIFIER_SERVER_HTTP_PORT", "PORT")
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Front ends
	v.SetDefault("server.frontends", []string{"http"})

	// HTTP defaults
	v.SetDefault("server.http.framework", "chi")
	v.SetDefault("server.http.host", "0.0.0.0")
	v.SetDefault("server.http.port", 8000)
	v.SetDefault("server.http.read_timeout", "10s")
	v.SetDefault("server.http.write_timeout", "10s")
	v.SetDefault("server.http.shutdown_timeout", "10s")
	v.SetDefault("server.http.cors.allowed_origins", []string{"*"})

	// SMTP gate defaults
	v.SetDefault("server.smtp.listen_address", "0.0.0.0:10025")
	v.SetDefault("server.smtp.domain", "localhost")
	v.SetDefault("server.smtp.reject_disposable", true)
	v.SetDefault("server.smtp.check_recipients", false)
	v.SetDefault("server.smtp.read_timeout", "30s")
	v.SetDefault("server.smtp.write_timeout", "30s")

	// Classification defaults
	v.SetDefault("disposable.domains", DefaultDisposableDomains)
	v.SetDefault("batch.workers", 1)

	// API metadata
	v.SetDefault("api.name", "Email Verification API")
	v.SetDefault("api.service", "email-verification-api")
	v.SetDefault("api.version", "2.0.0")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
