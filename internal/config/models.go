package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// HTTPConfig represents the configuration for the HTTP API
type HTTPConfig struct {
	Framework       string
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// Address returns the host:port the HTTP API listens on
func (h HTTPConfig) Address() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// SMTPConfig represents the configuration for the SMTP sender gate
type SMTPConfig struct {
	ListenAddress    string
	Domain           string
	RejectDisposable bool
	CheckRecipients  bool
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
}

// BatchConfig represents the configuration for batch classification
type BatchConfig struct {
	Workers int
}

// APIConfig holds the static metadata reported by the API
type APIConfig struct {
	Name    string
	Service string
	Version string
}

// GetFrontends returns the names of the enabled front ends
func (c *Config) GetFrontends() []string {
	return c.GetStringSlice("server.frontends")
}

// GetHTTP returns the HTTP API configuration
func (c *Config) GetHTTP() (HTTPConfig, error) {
	readTimeout, err := c.GetDuration("server.http.read_timeout")
	if err != nil {
		return HTTPConfig{}, fmt.Errorf("invalid http read timeout: %w", err)
	}
	writeTimeout, err := c.GetDuration("server.http.write_timeout")
	if err != nil {
		return HTTPConfig{}, fmt.Errorf("invalid http write timeout: %w", err)
	}
	shutdownTimeout, err := c.GetDuration("server.http.shutdown_timeout")
	if err != nil {
		return HTTPConfig{}, fmt.Errorf("invalid http shutdown timeout: %w", err)
	}

	return HTTPConfig{
		Framework:       c.GetString("server.http.framework"),
		Host:            c.GetString("server.http.host"),
		Port:            c.GetInt("server.http.port"),
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
		ShutdownTimeout: shutdownTimeout,
		AllowedOrigins:  c.GetStringSlice("server.http.cors.allowed_origins"),
	}, nil
}

// GetSMTP returns the SMTP gate configuration
func (c *Config) GetSMTP() (SMTPConfig, error) {
	readTimeout, err := c.GetDuration("server.smtp.read_timeout")
	if err != nil {
		return SMTPConfig{}, fmt.Errorf("invalid smtp read timeout: %w", err)
	}
	writeTimeout, err := c.GetDuration("server.smtp.write_timeout")
	if err != nil {
		return SMTPConfig{}, fmt.Errorf("invalid smtp write timeout: %w", err)
	}

	return SMTPConfig{
		ListenAddress:    c.GetString("server.smtp.listen_address"),
		Domain:           c.GetString("server.smtp.domain"),
		RejectDisposable: c.GetBool("server.smtp.reject_disposable"),
		CheckRecipients:  c.GetBool("server.smtp.check_recipients"),
		ReadTimeout:      readTimeout,
		WriteTimeout:     writeTimeout,
	}, nil
}

// GetBatch returns the batch configuration
func (c *Config) GetBatch() BatchConfig {
	workers := c.GetInt("batch.workers")
	if workers < 1 {
		workers = 1
	}
	return BatchConfig{Workers: workers}
}

// GetDisposableDomains returns the configured disposable domain list
func (c *Config) GetDisposableDomains() []string {
	return c.GetStringSlice("disposable.domains")
}

// GetAPI returns the API metadata
func (c *Config) GetAPI() APIConfig {
	return APIConfig{
		Name:    c.GetString("api.name"),
		Service: c.GetString("api.service"),
		Version: c.GetString("api.version"),
	}
}
