package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type Config struct {
	//===============
	// Retry policy
	//===============
	// Max. number of retries after the first attempt when fetching metadata
	// fails with a transient error. Read once at startup; every accessor
	// receives the resulting value explicitly.
	retryCount int
	// Fixed interval between attempts in case of transient errors.
	retryInterval time.Duration

	//===============
	// HTTP backend
	//===============
	// Base URL of the metadata service. May contain the %default_gateway%
	// placeholder, substituted with the host's default route gateway.
	metadataBaseURL string
	// Maximum time of a single fetch request
	httpTimeout time.Duration
	// User agent that will be used in the request header. In raw string
	userAgent string

	//===============
	// Config-drive backend
	//===============
	// Root directory of the mounted config drive copy
	configDrivePath string

	//===============
	// Output
	//===============
	// Directory in which the CLI dumps fetched payloads; empty means stdout only
	outputDir string
}

type configDTO struct {
	RetryCount      int           `json:"retryCount,omitempty"`
	RetryInterval   time.Duration `json:"retryInterval,omitempty"`
	MetadataBaseURL string        `json:"metadataBaseUrl,omitempty"`
	HTTPTimeout     time.Duration `json:"httpTimeout,omitempty"`
	UserAgent       string        `json:"userAgent,omitempty"`
	ConfigDrivePath string        `json:"configDrivePath,omitempty"`
	OutputDir       string        `json:"outputDir,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {

	// Start with default config
	cfg, err := WithDefault().Build()
	if err != nil {
		return Config{}, err
	}

	// For numeric and string fields, only override if a non-zero value is
	// provided. RetryCount 0 is expressed by omitting retries entirely via
	// retryInterval, so the zero check is safe here.
	if dto.RetryCount != 0 {
		cfg.retryCount = dto.RetryCount
	}
	if dto.RetryInterval != 0 {
		cfg.retryInterval = dto.RetryInterval
	}
	if dto.MetadataBaseURL != "" {
		cfg.metadataBaseURL = dto.MetadataBaseURL
	}
	if dto.HTTPTimeout != 0 {
		cfg.httpTimeout = dto.HTTPTimeout
	}
	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}
	if dto.ConfigDrivePath != "" {
		cfg.configDrivePath = dto.ConfigDrivePath
	}
	if dto.OutputDir != "" {
		cfg.outputDir = dto.OutputDir
	}

	return cfg, nil
}

func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	err = json.Unmarshal(configContent, &cfgDTO)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	cfg, err := newConfigFromDTO(cfgDTO)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithDefault creates a new Config with default values for all fields.
func WithDefault() *Config {
	defaultConfig := Config{
		retryCount:      5,
		retryInterval:   4 * time.Second,
		metadataBaseURL: "http://169.254.169.254",
		httpTimeout:     10 * time.Second,
		userAgent:       "cloudmeta/1.0",
		configDrivePath: "",
		outputDir:       "",
	}
	return &defaultConfig
}

func (c *Config) WithRetryCount(count int) *Config {
	c.retryCount = count
	return c
}

func (c *Config) WithRetryInterval(interval time.Duration) *Config {
	c.retryInterval = interval
	return c
}

func (c *Config) WithMetadataBaseURL(baseURL string) *Config {
	c.metadataBaseURL = baseURL
	return c
}

func (c *Config) WithHTTPTimeout(timeout time.Duration) *Config {
	c.httpTimeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithConfigDrivePath(path string) *Config {
	c.configDrivePath = path
	return c
}

func (c *Config) WithOutputDir(outputDir string) *Config {
	c.outputDir = outputDir
	return c
}

func (c *Config) Build() (Config, error) {
	if c.retryCount < 0 {
		return Config{}, fmt.Errorf("%w: retryCount cannot be negative", ErrInvalidConfig)
	}
	if c.retryInterval < 0 {
		return Config{}, fmt.Errorf("%w: retryInterval cannot be negative", ErrInvalidConfig)
	}
	if c.httpTimeout <= 0 {
		return Config{}, fmt.Errorf("%w: httpTimeout must be positive", ErrInvalidConfig)
	}
	return *c, nil
}

func (c Config) RetryCount() int {
	return c.retryCount
}

func (c Config) RetryInterval() time.Duration {
	return c.retryInterval
}

func (c Config) MetadataBaseURL() string {
	return c.metadataBaseURL
}

func (c Config) HTTPTimeout() time.Duration {
	return c.httpTimeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) ConfigDrivePath() string {
	return c.configDrivePath
}

func (c Config) OutputDir() string {
	return c.outputDir
}
