package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stopword cache drivers.
const (
	CacheDriverFile  = "file"
	CacheDriverRedis = "redis"
	CacheDriverNone  = "none"
)

// DefaultSourceURL is the stopwords-iso plain-text list; {lang} is the language code.
const DefaultSourceURL = "https://raw.githubusercontent.com/stopwords-iso/stopwords-{lang}/master/stopwords-{lang}.txt"

// Config holds the articlekit API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
	Summary    SummaryConfig    `yaml:"summary"`
	Ranking    RankingConfig    `yaml:"ranking"`
	Stopwords  StopwordsConfig  `yaml:"stopwords"`
	Categories CategoriesConfig `yaml:"categories"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
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

// SummaryConfig holds summarizer settings.
type SummaryConfig struct {
	MaxSentences  int    `yaml:"max_sentences"`
	FallbackChars int    `yaml:"fallback_chars"`
	Marker        string `yaml:"marker"`
}

// RankingConfig holds similarity and popularity ranking settings.
type RankingConfig struct {
	SimilarityThreshold *float64 `yaml:"similarity_threshold"` // nil = 0.1
	DefaultTopN         int      `yaml:"default_top_n"`
	LikesWeight         *float64 `yaml:"likes_weight"` // nil = 0.3
	ViewsWeight         *float64 `yaml:"views_weight"` // nil = 0.7
	TopLimit            int      `yaml:"top_limit"`
}

// StopwordsConfig holds stopword resource settings.
type StopwordsConfig struct {
	Language string       `yaml:"language"`
	Cache    CacheConfig  `yaml:"cache"`
	Source   SourceConfig `yaml:"source"`
}

// CacheConfig selects where fetched stopword lists are persisted.
type CacheConfig struct {
	Driver           string   `yaml:"driver"` // file, redis, none (default: file)
	Dir              string   `yaml:"dir"`
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	TTLHours         int      `yaml:"ttl_hours"` // 0 = never expires
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SourceConfig holds remote stopword list settings.
type SourceConfig struct {
	URL           string `yaml:"url"` // {lang} is replaced by the language code
	TimeoutSec    int    `yaml:"timeout_sec"`
	MaxRetries    int    `yaml:"max_retries"`
	BaseBackoffMS int    `yaml:"base_backoff_ms"`
	DisableRemote bool   `yaml:"disable_remote"`
}

// CategoriesConfig holds the keyword table. An empty list keeps the built-in one.
type CategoriesConfig struct {
	Fallback string          `yaml:"fallback"`
	Entries  []CategoryEntry `yaml:"entries"`
}

// CategoryEntry is one label with its keywords. Order decides ties.
type CategoryEntry struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Load reads configuration from a YAML file by environment name (local, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse expands ${VAR} references, decodes data and applies defaults.
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
		c.HTTP.MaxBodyBytes = 8 << 20
	}

	if c.Summary.MaxSentences <= 0 {
		c.Summary.MaxSentences = 3
	}
	if c.Summary.FallbackChars <= 0 {
		c.Summary.FallbackChars = 200
	}
	if c.Summary.Marker == "" {
		c.Summary.Marker = "..."
	}

	if c.Ranking.SimilarityThreshold == nil {
		c.Ranking.SimilarityThreshold = ptr(0.1)
	}
	if c.Ranking.DefaultTopN <= 0 {
		c.Ranking.DefaultTopN = 5
	}
	if c.Ranking.LikesWeight == nil {
		c.Ranking.LikesWeight = ptr(0.3)
	}
	if c.Ranking.ViewsWeight == nil {
		c.Ranking.ViewsWeight = ptr(0.7)
	}
	if c.Ranking.TopLimit <= 0 {
		c.Ranking.TopLimit = 10
	}

	if c.Stopwords.Language == "" {
		c.Stopwords.Language = "tr"
	}
	c.Stopwords.Language = strings.ToLower(c.Stopwords.Language)
	if c.Stopwords.Cache.Driver == "" {
		c.Stopwords.Cache.Driver = CacheDriverFile
	}
	if c.Stopwords.Cache.Dir == "" {
		c.Stopwords.Cache.Dir = filepath.Join(os.TempDir(), "articlekit")
	}
	if c.Stopwords.Cache.ReadinessTimeout <= 0 {
		c.Stopwords.Cache.ReadinessTimeout = 10
	}
	if c.Stopwords.Source.URL == "" && !c.Stopwords.Source.DisableRemote {
		c.Stopwords.Source.URL = DefaultSourceURL
	}
	if c.Stopwords.Source.TimeoutSec <= 0 {
		c.Stopwords.Source.TimeoutSec = 10
	}
	if c.Stopwords.Source.MaxRetries <= 0 {
		c.Stopwords.Source.MaxRetries = 3
	}
	if c.Stopwords.Source.BaseBackoffMS <= 0 {
		c.Stopwords.Source.BaseBackoffMS = 200
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}

	if t := *c.Ranking.SimilarityThreshold; t < 0 || t >= 1 || math.IsNaN(t) {
		return fmt.Errorf("ranking.similarity_threshold must be in [0, 1), got %v", t)
	}
	for name, w := range map[string]float64{"likes_weight": *c.Ranking.LikesWeight, "views_weight": *c.Ranking.ViewsWeight} {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("ranking.%s must be a finite non-negative number, got %v", name, w)
		}
	}

	switch c.Stopwords.Cache.Driver {
	case CacheDriverFile, CacheDriverNone:
	case CacheDriverRedis:
		if len(c.Stopwords.Cache.Addrs) == 0 {
			return errors.New("stopwords.cache.addrs is required for the redis driver")
		}
	default:
		return fmt.Errorf("stopwords.cache.driver must be file, redis or none, got %q", c.Stopwords.Cache.Driver)
	}
	if c.Stopwords.Cache.TTLHours < 0 {
		return fmt.Errorf("stopwords.cache.ttl_hours must not be negative, got %d", c.Stopwords.Cache.TTLHours)
	}
	if u := c.Stopwords.Source.URL; u != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return fmt.Errorf("stopwords.source.url must be an http(s) URL, got %q", u)
	}

	for i, e := range c.Categories.Entries {
		if strings.TrimSpace(e.Label) == "" {
			return fmt.Errorf("categories.entries[%d].label is required", i)
		}
		if len(e.Keywords) == 0 {
			return fmt.Errorf("categories.entries[%d] (%s) needs at least one keyword", i, e.Label)
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

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
