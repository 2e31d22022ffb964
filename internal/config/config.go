package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Cache drivers.
const (
	CacheNone    = "none"
	CacheMemory  = "memory"
	CacheRedis   = "redis"
	CacheGoRedis = "goredis"
)

// Config holds the cohesion API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Cache    CacheConfig    `yaml:"cache"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings. No keys disables auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int   `yaml:"port"`
	ReadTimeoutSec  int   `yaml:"read_timeout_sec"`
	WriteTimeoutSec int   `yaml:"write_timeout_sec"`
	ShutdownSec     int   `yaml:"shutdown_timeout_sec"`
	MaxBodyBytes    int64 `yaml:"max_body_bytes"`
}

// CacheConfig holds report cache settings.
type CacheConfig struct {
	Driver           string   `yaml:"driver"` // none, memory, redis, goredis (default: memory)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	MasterName       string   `yaml:"master_name"` // goredis only: sentinel master
	TTLSec           int      `yaml:"ttl_sec"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// AnalysisConfig holds analysis limits and stop word setup.
type AnalysisConfig struct {
	DefaultMaxBins int    `yaml:"default_max_bins"`
	MaxTexts       int    `yaml:"max_texts"`
	MaxBatchSize   int    `yaml:"max_batch_size"`
	Workers        int    `yaml:"workers"`
	StopWordsFile  string `yaml:"stop_words_file"`
	Placeholder    string `yaml:"placeholder"` // single character
	Normalize      bool   `yaml:"normalize"`
}

// PlaceholderRune returns the configured placeholder as a rune.
// Call after Validate.
func (a AnalysisConfig) PlaceholderRune() rune {
	r, _ := utf8.DecodeRuneInString(a.Placeholder)
	return r
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env file in the working directory is loaded first when present.
func Load(env string) (Config, error) {
	_ = godotenv.Load()

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse expands environment variables in data and decodes it.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		c.HTTP.MaxBodyBytes = 1 << 20
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = CacheMemory
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 3600
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Analysis.DefaultMaxBins <= 0 {
		c.Analysis.DefaultMaxBins = 9
	}
	if c.Analysis.MaxTexts <= 0 {
		c.Analysis.MaxTexts = 1000
	}
	if c.Analysis.MaxBatchSize <= 0 {
		c.Analysis.MaxBatchSize = 50
	}
	if c.Analysis.Workers <= 0 {
		c.Analysis.Workers = 4
	}
	if c.Analysis.Placeholder == "" {
		c.Analysis.Placeholder = "_"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Cache.Driver {
	case CacheNone, CacheMemory:
	case CacheRedis, CacheGoRedis:
		if len(c.Cache.Addrs) == 0 {
			return fmt.Errorf("cache.addrs is required for driver %q", c.Cache.Driver)
		}
	default:
		return fmt.Errorf("cache.driver must be one of none, memory, redis, goredis, got %q", c.Cache.Driver)
	}
	if utf8.RuneCountInString(c.Analysis.Placeholder) != 1 {
		return fmt.Errorf("analysis.placeholder must be a single character, got %q", c.Analysis.Placeholder)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// Relative to the source file, for tests and `go run` from subdirectories.
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
