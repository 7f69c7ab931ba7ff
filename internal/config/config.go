package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/finrag/internal/domain"
)

// Config holds the finrag API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Data      DataConfig      `yaml:"data"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string        `yaml:"level"` // debug, info, warn, error (default: determined by env)
	File  FileLogConfig `yaml:"file"`
}

// FileLogConfig enables rotated file output next to the console. Empty Path disables it.
type FileLogConfig struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// AuthConfig holds API authentication settings. No keys means auth is off.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DataConfig points at the document sources.
type DataConfig struct {
	FAQsPath    string `yaml:"faqs_path"`
	FundsPath   string `yaml:"funds_path"`
	OnLoadError string `yaml:"on_load_error"` // fail (default) | warn
}

// EmbeddingConfig holds the embedding provider and its decorators.
type EmbeddingConfig struct {
	Provider            string      `yaml:"provider"` // openai (default) | hashing
	APIKey              string      `yaml:"api_key"`
	BaseURL             string      `yaml:"base_url"`
	Model               string      `yaml:"model"`
	Dimensions          int         `yaml:"dimensions"`
	User                string      `yaml:"user"`
	DocumentInstruction string      `yaml:"document_instruction"`
	QueryInstruction    string      `yaml:"query_instruction"`
	Normalize           bool        `yaml:"normalize"`
	BatchSize           int         `yaml:"batch_size"`
	Cache               CacheConfig `yaml:"cache"`
}

// CacheConfig selects the embedding cache store.
type CacheConfig struct {
	Driver           string   `yaml:"driver"` // none (default) | memory | valkey | redis
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	TTLSec           int      `yaml:"ttl_sec"` // 0 = no expiry
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// RetrievalConfig tunes the retrieval engine.
type RetrievalConfig struct {
	TopK                int     `yaml:"top_k"`
	MaxTopK             int     `yaml:"max_top_k"`
	SemanticWeight      float64 `yaml:"semantic_weight"`
	LexicalWeight       float64 `yaml:"lexical_weight"`
	CandidateMultiplier int     `yaml:"candidate_multiplier"`
	MaxFeatures         int     `yaml:"max_features"`
	QueryTimeoutSec     int     `yaml:"query_timeout_sec"` // 0 = no per-query deadline
}

// Provider names.
const (
	ProviderOpenAI  = "openai"
	ProviderHashing = "hashing"
)

// Cache drivers.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheValkey = "valkey"
	CacheRedis  = "redis"
)

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env file in the working directory, when present, is loaded into the environment first.
func Load(env string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse expands environment variables in data, decodes it, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
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
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Data.FAQsPath == "" {
		c.Data.FAQsPath = "data/faqs.csv"
	}
	if c.Data.FundsPath == "" {
		c.Data.FundsPath = "data/funds.csv"
	}
	if c.Data.OnLoadError == "" {
		c.Data.OnLoadError = "fail"
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = ProviderOpenAI
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = domain.DefaultVectorConfig().Model
	}
	if c.Embedding.BatchSize <= 0 {
		c.Embedding.BatchSize = 256
	}
	if c.Embedding.Cache.Driver == "" {
		c.Embedding.Cache.Driver = CacheNone
	}
	if c.Embedding.Cache.ReadinessTimeout <= 0 {
		c.Embedding.Cache.ReadinessTimeout = 10
	}
	if c.Retrieval.TopK <= 0 {
		c.Retrieval.TopK = 5
	}
	if c.Retrieval.MaxTopK <= 0 {
		c.Retrieval.MaxTopK = 50
	}
	if c.Retrieval.SemanticWeight == 0 && c.Retrieval.LexicalWeight == 0 {
		c.Retrieval.SemanticWeight = 0.7
		c.Retrieval.LexicalWeight = 0.3
	}
	if c.Retrieval.CandidateMultiplier <= 0 {
		c.Retrieval.CandidateMultiplier = 2
	}
	if c.Retrieval.MaxFeatures <= 0 {
		c.Retrieval.MaxFeatures = 10000
	}
	if c.Logging.File.Path != "" {
		if c.Logging.File.MaxSizeMB <= 0 {
			c.Logging.File.MaxSizeMB = 100
		}
		if c.Logging.File.MaxBackups <= 0 {
			c.Logging.File.MaxBackups = 3
		}
		if c.Logging.File.MaxAgeDays <= 0 {
			c.Logging.File.MaxAgeDays = 28
		}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Data.OnLoadError {
	case "fail", "warn":
	default:
		return fmt.Errorf("data.on_load_error must be \"fail\" or \"warn\", got %q", c.Data.OnLoadError)
	}
	switch c.Embedding.Provider {
	case ProviderOpenAI:
		if c.Embedding.BaseURL == "" {
			return errors.New("embedding.base_url is required for the openai provider")
		}
	case ProviderHashing:
	default:
		return fmt.Errorf("embedding.provider must be %q or %q, got %q",
			ProviderOpenAI, ProviderHashing, c.Embedding.Provider)
	}
	if c.Embedding.Dimensions < 0 {
		return fmt.Errorf("embedding.dimensions must not be negative, got %d", c.Embedding.Dimensions)
	}
	switch c.Embedding.Cache.Driver {
	case CacheNone, CacheMemory:
	case CacheValkey, CacheRedis:
		if len(c.Embedding.Cache.Addrs) == 0 {
			return fmt.Errorf("embedding.cache.addrs is required for driver %q", c.Embedding.Cache.Driver)
		}
	default:
		return fmt.Errorf("embedding.cache.driver must be one of none, memory, valkey, redis; got %q",
			c.Embedding.Cache.Driver)
	}
	if c.Retrieval.SemanticWeight < 0 || c.Retrieval.LexicalWeight < 0 {
		return fmt.Errorf("retrieval weights must not be negative, got %v/%v",
			c.Retrieval.SemanticWeight, c.Retrieval.LexicalWeight)
	}
	if c.Retrieval.TopK > c.Retrieval.MaxTopK {
		return fmt.Errorf("retrieval.top_k (%d) exceeds retrieval.max_top_k (%d)",
			c.Retrieval.TopK, c.Retrieval.MaxTopK)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
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
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
