package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rohmanhakim/cloudmeta/internal/config"
	"github.com/rohmanhakim/cloudmeta/internal/gateway"
	"github.com/rohmanhakim/cloudmeta/internal/pathcache"
	"github.com/rohmanhakim/cloudmeta/internal/service"
	"github.com/rohmanhakim/cloudmeta/internal/service/configdrive"
	"github.com/rohmanhakim/cloudmeta/internal/service/httpsvc"
	"github.com/rohmanhakim/cloudmeta/internal/telemetry"
	"github.com/spf13/cobra"
)

var (
	cfgFile       string
	serviceName   string
	baseURL       string
	drivePath     string
	category      string
	metaVersion   string
	retryCount    int
	retryInterval time.Duration
	httpTimeout   time.Duration
	userAgent     string
	outputDir     string
	withChecksum  bool
	verbose       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cloudmeta",
	Short: "A cloud instance metadata-retrieval client.",
	Long: `cloudmeta is a CLI application that fetches instance metadata,
user-data and password state from an instance-metadata provider, either over
HTTP or from a mounted config drive.

Fetches are memoized per run and transient failures against networked
backends are retried with a fixed interval.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /etc/cloudmeta/config.json)")
	rootCmd.PersistentFlags().StringVar(&serviceName, "service", "http", "metadata backend: http or configdrive")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "metadata base URL; may contain %default_gateway%")
	rootCmd.PersistentFlags().StringVar(&drivePath, "drive-path", "", "root directory of the mounted config drive copy")
	rootCmd.PersistentFlags().StringVar(&category, "category", "openstack", "metadata category (path prefix)")
	rootCmd.PersistentFlags().StringVar(&metaVersion, "meta-version", "", "provider version segment (defaults to latest)")
	rootCmd.PersistentFlags().IntVar(&retryCount, "retry-count", 0, "max. number of retries for transient errors")
	rootCmd.PersistentFlags().DurationVar(&retryInterval, "retry-interval", 0, "fixed interval between attempts")
	rootCmd.PersistentFlags().DurationVar(&httpTimeout, "timeout", 0, "timeout for a single HTTP request")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "write fetched payloads into this directory instead of stdout")
	rootCmd.PersistentFlags().BoolVar(&withChecksum, "checksum", false, "print a blake3 fingerprint of the fetched payload")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "print a fetch summary after the operation")
}

// InitConfig reads in the config file if set and applies flag overrides.
func InitConfig() config.Config {
	cfg, err := InitConfigWithError()
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError reads in the config file if set and applies flag
// overrides, returning any errors. This makes it easier to test error cases.
func InitConfigWithError() (config.Config, error) {
	var cfg config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.WithConfigFile(cfgFile)
	} else {
		cfg, err = config.WithDefault().Build()
	}
	if err != nil {
		return config.Config{}, err
	}

	// Override with CLI flag values where provided
	builder := &cfg
	if retryCount != 0 {
		builder = builder.WithRetryCount(retryCount)
	}
	if retryInterval != 0 {
		builder = builder.WithRetryInterval(retryInterval)
	}
	if baseURL != "" {
		builder = builder.WithMetadataBaseURL(baseURL)
	}
	if httpTimeout != 0 {
		builder = builder.WithHTTPTimeout(httpTimeout)
	}
	if userAgent != "" {
		builder = builder.WithUserAgent(userAgent)
	}
	if drivePath != "" {
		builder = builder.WithConfigDrivePath(drivePath)
	}
	if outputDir != "" {
		builder = builder.WithOutputDir(outputDir)
	}

	return builder.Build()
}

// newAccessor wires the selected backend with cache, retry policy and the
// telemetry recorder backing the --verbose summary.
func newAccessor(cfg config.Config) (*service.Accessor, *telemetry.Recorder, error) {
	recorder := telemetry.NewRecorder()

	var svc service.Service
	switch serviceName {
	case "http":
		resolved := service.MetadataBaseURL(cfg.MetadataBaseURL(), gateway.NewOSResolver(), recorder)
		svc = httpsvc.NewHttpService(recorder, resolved, cfg.UserAgent(), cfg.HTTPTimeout())
	case "configdrive":
		if cfg.ConfigDrivePath() == "" {
			return nil, nil, fmt.Errorf("--drive-path (or configDrivePath) is required for the configdrive backend")
		}
		svc = configdrive.NewDriveService(recorder, cfg.ConfigDrivePath(), false)
	default:
		return nil, nil, fmt.Errorf("unknown service %q (expected http or configdrive)", serviceName)
	}

	acc := service.NewAccessor(
		svc,
		pathcache.NewMemory[service.Payload](),
		recorder,
		cfg.RetryCount(),
		cfg.RetryInterval(),
	)
	acc.Load()
	return acc, recorder, nil
}

func ResetFlags() {
	cfgFile = ""
	serviceName = "http"
	baseURL = ""
	drivePath = ""
	category = "openstack"
	metaVersion = ""
	retryCount = 0
	retryInterval = 0
	httpTimeout = 0
	userAgent = ""
	outputDir = ""
	withChecksum = false
	verbose = false
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetServiceForTest(name string) {
	serviceName = name
}

func SetBaseURLForTest(u string) {
	baseURL = u
}

func SetDrivePathForTest(path string) {
	drivePath = path
}

func SetRetryCountForTest(count int) {
	retryCount = count
}

func SetRetryIntervalForTest(interval time.Duration) {
	retryInterval = interval
}

func SetTimeoutForTest(t time.Duration) {
	httpTimeout = t
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}

func SetOutputDirForTest(dir string) {
	outputDir = dir
}

func printSummary(recorder *telemetry.Recorder) {
	if !verbose {
		return
	}
	snap := recorder.Snapshot()
	fmt.Fprintf(os.Stderr, "fetches: %d (errors: %d)\n", len(snap.Fetches), len(snap.Errors))
	for _, f := range snap.Fetches {
		fmt.Fprintf(os.Stderr, "  %s cache_hit=%t size=%dB duration=%v\n",
			f.Path(), f.CacheHit(), f.SizeByte(), f.Duration())
	}
}
