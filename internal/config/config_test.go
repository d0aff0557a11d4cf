package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Summary.MaxSentences != 3 || cfg.Summary.FallbackChars != 200 || cfg.Summary.Marker != "..." {
		t.Errorf("unexpected summary defaults %+v", cfg.Summary)
	}
	if *cfg.Ranking.SimilarityThreshold != 0.1 {
		t.Errorf("expected SimilarityThreshold=0.1, got %v", *cfg.Ranking.SimilarityThreshold)
	}
	if cfg.Ranking.DefaultTopN != 5 {
		t.Errorf("expected DefaultTopN=5, got %d", cfg.Ranking.DefaultTopN)
	}
	if *cfg.Ranking.LikesWeight != 0.3 || *cfg.Ranking.ViewsWeight != 0.7 {
		t.Errorf("unexpected weights %v/%v", *cfg.Ranking.LikesWeight, *cfg.Ranking.ViewsWeight)
	}
	if cfg.Ranking.TopLimit != 10 {
		t.Errorf("expected TopLimit=10, got %d", cfg.Ranking.TopLimit)
	}
	if cfg.Stopwords.Language != "tr" {
		t.Errorf("expected Language=tr, got %q", cfg.Stopwords.Language)
	}
	if cfg.Stopwords.Cache.Driver != CacheDriverFile {
		t.Errorf("expected file cache driver, got %q", cfg.Stopwords.Cache.Driver)
	}
	if cfg.Stopwords.Source.URL != DefaultSourceURL {
		t.Errorf("expected default source URL, got %q", cfg.Stopwords.Source.URL)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	zero := 0.0
	cfg := Config{
		HTTP:    HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Summary: SummaryConfig{MaxSentences: 2, Marker: " […]"},
		Ranking: RankingConfig{SimilarityThreshold: &zero, LikesWeight: &zero},
		Stopwords: StopwordsConfig{
			Language: "EN",
			Cache:    CacheConfig{Driver: CacheDriverRedis, Dir: "/var/cache/articlekit"},
			Source:   SourceConfig{DisableRemote: true},
		},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Summary.MaxSentences != 2 || cfg.Summary.Marker != " […]" {
		t.Errorf("summary overridden: %+v", cfg.Summary)
	}
	if *cfg.Ranking.SimilarityThreshold != 0 || *cfg.Ranking.LikesWeight != 0 {
		t.Error("explicit zero thresholds and weights must be kept")
	}
	if cfg.Stopwords.Language != "en" {
		t.Errorf("expected language to be lowercased, got %q", cfg.Stopwords.Language)
	}
	if cfg.Stopwords.Cache.Dir != "/var/cache/articlekit" {
		t.Errorf("cache dir overridden: %q", cfg.Stopwords.Cache.Dir)
	}
	if cfg.Stopwords.Source.URL != "" {
		t.Errorf("expected no source URL when remote is disabled, got %q", cfg.Stopwords.Source.URL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"invalid port", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"threshold too high", func(c *Config) { v := 1.0; c.Ranking.SimilarityThreshold = &v }, "similarity_threshold"},
		{"negative threshold", func(c *Config) { v := -0.1; c.Ranking.SimilarityThreshold = &v }, "similarity_threshold"},
		{"negative weight", func(c *Config) { v := -1.0; c.Ranking.ViewsWeight = &v }, "views_weight"},
		{"unknown driver", func(c *Config) { c.Stopwords.Cache.Driver = "memcached" }, "stopwords.cache.driver"},
		{"redis without addrs", func(c *Config) { c.Stopwords.Cache.Driver = CacheDriverRedis }, "stopwords.cache.addrs"},
		{"redis with addrs", func(c *Config) {
			c.Stopwords.Cache.Driver = CacheDriverRedis
			c.Stopwords.Cache.Addrs = []string{"localhost:6379"}
		}, ""},
		{"negative ttl", func(c *Config) { c.Stopwords.Cache.TTLHours = -1 }, "ttl_hours"},
		{"bad source url", func(c *Config) { c.Stopwords.Source.URL = "ftp://example.com/{lang}" }, "stopwords.source.url"},
		{"empty category label", func(c *Config) {
			c.Categories.Entries = []CategoryEntry{{Label: " ", Keywords: []string{"x"}}}
		}, "categories.entries[0].label"},
		{"category without keywords", func(c *Config) {
			c.Categories.Entries = []CategoryEntry{{Label: "spor"}}
		}, "at least one keyword"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Setenv("ARTICLEKIT_TEST_PORT", "9090")

	data := []byte(`
http:
  port: ${ARTICLEKIT_TEST_PORT}
stopwords:
  language: ${ARTICLEKIT_TEST_LANG:-en}
categories:
  fallback: Other
  entries:
    - label: sports
      keywords: [football, match]
    - label: science
      keywords: [physics]
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port from env, got %d", cfg.HTTP.Port)
	}
	if cfg.Stopwords.Language != "en" {
		t.Errorf("expected default from expansion, got %q", cfg.Stopwords.Language)
	}
	if cfg.Categories.Fallback != "Other" || len(cfg.Categories.Entries) != 2 {
		t.Fatalf("unexpected categories %+v", cfg.Categories)
	}
	if cfg.Categories.Entries[0].Label != "sports" || cfg.Categories.Entries[1].Keywords[0] != "physics" {
		t.Errorf("category order not preserved: %+v", cfg.Categories.Entries)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Parse([]byte("http:\n  port: 0\n")); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if cfg.HTTP.Port <= 0 {
		t.Errorf("expected a port, got %d", cfg.HTTP.Port)
	}
}
