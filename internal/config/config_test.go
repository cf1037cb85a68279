package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP:       HTTPConfig{Port: 8080},
		Database:   DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Embedding:  EmbeddingConfig{APIKey: "test-key"},
		Completion: CompletionConfig{APIKey: "test-key"},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingAPIKeys(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding api key")
	}

	cfg = validConfig()
	cfg.Completion.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing completion api key")
	}
}

func TestValidate_MinScoreOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.Router.MinScore = 1.5

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for min_score above 1")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("expected default embedding model, got %q", cfg.Embedding.Model)
	}
	if cfg.Completion.Model != "gpt-4o-mini" {
		t.Errorf("expected default completion model, got %q", cfg.Completion.Model)
	}
	if cfg.Router.VectorWeight != 0.7 || cfg.Router.KeywordWeight != 0.3 {
		t.Errorf("expected router weights 0.7/0.3, got %v/%v", cfg.Router.VectorWeight, cfg.Router.KeywordWeight)
	}
	if cfg.Router.MaxResults != 10 {
		t.Errorf("expected MaxResults=10, got %d", cfg.Router.MaxResults)
	}
	if cfg.Router.MinScore != 0.3 {
		t.Errorf("expected MinScore=0.3, got %v", cfg.Router.MinScore)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{ReadinessTimeout: 15},
		Router:   RouterConfig{VectorWeight: 0.9, KeywordWeight: 0.1, MaxResults: 5, MinScore: 0.5},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Router.VectorWeight != 0.9 || cfg.Router.MaxResults != 5 {
		t.Errorf("router config overridden: %+v", cfg.Router)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("KBROUTER_TEST_VAR", "real-value")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"set variable", "key: ${KBROUTER_TEST_VAR}", "key: real-value"},
		{"unset variable", "key: ${KBROUTER_TEST_UNSET}", "key: "},
		{"unset with default", "key: ${KBROUTER_TEST_UNSET:-fallback}", "key: fallback"},
		{"set beats default", "key: ${KBROUTER_TEST_VAR:-fallback}", "key: real-value"},
		{"no expansion", "key: plain", "key: plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(expandEnvVars([]byte(tt.in))); got != tt.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
