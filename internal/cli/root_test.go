package cmd_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	cmd "github.com/rohmanhakim/cloudmeta/internal/cli"
	"github.com/rohmanhakim/cloudmeta/internal/config"
)

// TestInitConfigNoFlags tests that InitConfigWithError returns a Config with
// default values when no flags are set
func TestInitConfigNoFlags(t *testing.T) {
	cmd.ResetFlags()

	cfg, err := cmd.InitConfigWithError()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	defaultCfg, err := config.WithDefault().Build()
	if err != nil {
		t.Errorf("should not have any error, got %v", err)
	}
	if cfg.RetryCount() != defaultCfg.RetryCount() {
		t.Errorf("Expected RetryCount %d, got %d", defaultCfg.RetryCount(), cfg.RetryCount())
	}
	if cfg.RetryInterval() != defaultCfg.RetryInterval() {
		t.Errorf("Expected RetryInterval %v, got %v", defaultCfg.RetryInterval(), cfg.RetryInterval())
	}
	if cfg.MetadataBaseURL() != defaultCfg.MetadataBaseURL() {
		t.Errorf("Expected MetadataBaseURL %s, got %s", defaultCfg.MetadataBaseURL(), cfg.MetadataBaseURL())
	}
	if cfg.HTTPTimeout() != defaultCfg.HTTPTimeout() {
		t.Errorf("Expected HTTPTimeout %v, got %v", defaultCfg.HTTPTimeout(), cfg.HTTPTimeout())
	}
	if cfg.UserAgent() != defaultCfg.UserAgent() {
		t.Errorf("Expected UserAgent %s, got %s", defaultCfg.UserAgent(), cfg.UserAgent())
	}
}

// TestInitConfigWithRetryCount tests that the retry-count flag is properly applied
func TestInitConfigWithRetryCount(t *testing.T) {
	tests := []struct {
		name       string
		retryCount int
		expectErr  bool
	}{
		{"Zero retryCount keeps default", 0, false},
		{"Positive retryCount", 10, false},
		{"Negative retryCount is rejected", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd.ResetFlags()
			cmd.SetRetryCountForTest(tt.retryCount)

			cfg, err := cmd.InitConfigWithError()
			if tt.expectErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !errors.Is(err, config.ErrInvalidConfig) {
					t.Errorf("Expected ErrInvalidConfig, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}

			expectedCount := tt.retryCount
			if tt.retryCount == 0 {
				build, err := config.WithDefault().Build()
				if err != nil {
					t.Errorf("should not have any error, got %v", err)
				}
				expectedCount = build.RetryCount()
			}

			if cfg.RetryCount() != expectedCount {
				t.Errorf("Expected RetryCount %d, got %d", expectedCount, cfg.RetryCount())
			}
		})
	}
}

// TestInitConfigWithRetryInterval tests that the retry-interval flag is properly applied
func TestInitConfigWithRetryInterval(t *testing.T) {
	tests := []struct {
		name          string
		retryInterval time.Duration
		expectErr     bool
	}{
		{"Zero interval keeps default", 0, false},
		{"Positive interval", 2 * time.Second, false},
		{"Negative interval is rejected", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd.ResetFlags()
			cmd.SetRetryIntervalForTest(tt.retryInterval)

			cfg, err := cmd.InitConfigWithError()
			if tt.expectErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !errors.Is(err, config.ErrInvalidConfig) {
					t.Errorf("Expected ErrInvalidConfig, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}

			expectedInterval := tt.retryInterval
			if tt.retryInterval == 0 {
				build, err := config.WithDefault().Build()
				if err != nil {
					t.Errorf("should not have any error, got %v", err)
				}
				expectedInterval = build.RetryInterval()
			}

			if cfg.RetryInterval() != expectedInterval {
				t.Errorf("Expected RetryInterval %v, got %v", expectedInterval, cfg.RetryInterval())
			}
		})
	}
}

// TestInitConfigWithUserAgent tests that the user-agent flag is properly applied
func TestInitConfigWithUserAgent(t *testing.T) {
	tests := []struct {
		name         string
		userAgent    string
		shouldChange bool
	}{
		{"Empty userAgent", "", false},
		{"Custom userAgent", "my-agent/2.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd.ResetFlags()
			cmd.SetUserAgentForTest(tt.userAgent)

			cfg, err := cmd.InitConfigWithError()
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}

			build, err := config.WithDefault().Build()
			if err != nil {
				t.Errorf("should not have any error, got %v", err)
			}
			expectedUserAgent := build.UserAgent()
			if tt.shouldChange {
				expectedUserAgent = tt.userAgent
			}

			if cfg.UserAgent() != expectedUserAgent {
				t.Errorf("Expected UserAgent %s, got %s", expectedUserAgent, cfg.UserAgent())
			}
		})
	}
}

// TestInitConfigWithBaseURL tests that the base-url flag is properly applied
func TestInitConfigWithBaseURL(t *testing.T) {
	cmd.ResetFlags()
	cmd.SetBaseURLForTest("http://%default_gateway%:8080")

	cfg, err := cmd.InitConfigWithError()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if cfg.MetadataBaseURL() != "http://%default_gateway%:8080" {
		t.Errorf("Expected MetadataBaseURL to carry the flag value, got %s", cfg.MetadataBaseURL())
	}
}

// TestInitConfigWithPartialConfigFile tests loading config from a partial config file
func TestInitConfigWithPartialConfigFile(t *testing.T) {
	cmd.ResetFlags()

	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.json")

	// Durations are JSON-encoded as nanoseconds
	configContent := `{
		"retryCount": 3,
		"retryInterval": 2000000000,
		"metadataBaseUrl": "http://10.0.0.1",
		"userAgent": "test-agent"
	}`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cmd.SetConfigFileForTest(configFile)

	cfg, err := cmd.InitConfigWithError()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if cfg.RetryCount() != 3 {
		t.Errorf("Expected RetryCount 3, got %d", cfg.RetryCount())
	}
	if cfg.RetryInterval() != 2*time.Second {
		t.Errorf("Expected RetryInterval 2s, got %v", cfg.RetryInterval())
	}
	if cfg.MetadataBaseURL() != "http://10.0.0.1" {
		t.Errorf("Expected MetadataBaseURL 'http://10.0.0.1', got %s", cfg.MetadataBaseURL())
	}
	if cfg.UserAgent() != "test-agent" {
		t.Errorf("Expected UserAgent 'test-agent', got %s", cfg.UserAgent())
	}

	// Fields absent from the file keep their defaults
	defaultCfg, err := config.WithDefault().Build()
	if err != nil {
		t.Errorf("should not have any error, got %v", err)
	}
	if cfg.HTTPTimeout() != defaultCfg.HTTPTimeout() {
		t.Errorf("Expected HTTPTimeout to use default, got %v", cfg.HTTPTimeout())
	}
}

// TestInitConfigFileThenFlagOverride tests that flags win over config file values
func TestInitConfigFileThenFlagOverride(t *testing.T) {
	cmd.ResetFlags()

	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.json")

	configContent := `{"retryCount": 3, "userAgent": "file-agent"}`
	err := os.WriteFile(configFile, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cmd.SetConfigFileForTest(configFile)
	cmd.SetRetryCountForTest(8)

	cfg, err := cmd.InitConfigWithError()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if cfg.RetryCount() != 8 {
		t.Errorf("Expected flag to override file, got RetryCount %d", cfg.RetryCount())
	}
	if cfg.UserAgent() != "file-agent" {
		t.Errorf("Expected file value to survive, got UserAgent %s", cfg.UserAgent())
	}
}

// TestInitConfigWithNonExistentFile tests behavior when config file doesn't exist
func TestInitConfigWithNonExistentFile(t *testing.T) {
	cmd.ResetFlags()

	cmd.SetConfigFileForTest("/path/that/does/not/exist/config.json")

	_, err := cmd.InitConfigWithError()
	if err == nil {
		t.Errorf("Expected error for non-existent config file, got none")
	}
	if err != nil && !errors.Is(err, config.ErrFileDoesNotExist) {
		t.Errorf("Expected ErrFileDoesNotExist, got: %v", err)
	}
}

// TestInitConfigWithInvalidConfigFile tests behavior with invalid config file
func TestInitConfigWithInvalidConfigFile(t *testing.T) {
	cmd.ResetFlags()

	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "invalid.json")

	invalidJSON := `{invalid json content}`
	err := os.WriteFile(configFile, []byte(invalidJSON), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cmd.SetConfigFileForTest(configFile)

	_, err = cmd.InitConfigWithError()
	if err == nil {
		t.Errorf("Expected error for invalid config file, got none")
	}
	if err != nil && !errors.Is(err, config.ErrConfigParsingFail) {
		t.Errorf("Expected ErrConfigParsingFail, got: %v", err)
	}
}

// TestResetFlags tests that ResetFlags properly resets all flag values
func TestResetFlags(t *testing.T) {
	cmd.SetConfigFileForTest("test.json")
	cmd.SetRetryCountForTest(10)
	cmd.SetUserAgentForTest("custom")
	cmd.SetOutputDirForTest("out")

	cmd.ResetFlags()

	cfg, err := cmd.InitConfigWithError()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	defaultCfg, err := config.WithDefault().Build()
	if err != nil {
		t.Errorf("should not have any error, got %v", err)
	}
	if cfg.RetryCount() != defaultCfg.RetryCount() {
		t.Errorf("After ResetFlags, expected RetryCount %d, got %d", defaultCfg.RetryCount(), cfg.RetryCount())
	}
	if cfg.UserAgent() != defaultCfg.UserAgent() {
		t.Errorf("After ResetFlags, expected UserAgent %s, got %s", defaultCfg.UserAgent(), cfg.UserAgent())
	}
	if cfg.OutputDir() != defaultCfg.OutputDir() {
		t.Errorf("After ResetFlags, expected OutputDir %s, got %s", defaultCfg.OutputDir(), cfg.OutputDir())
	}
}
