package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/vokinneberg/earnings-qa/internal/rag"
)

// DefaultAssistantName labels answers when no name is configured.
const DefaultAssistantName = "Bajaj Finance AI Assistant"

// Config holds all configuration for the application
type Config struct {
	// Answer engine configuration
	EngineEnabled  bool
	LLMBaseURL     string
	LLMAPIKey      string
	LLMModel       string
	EmbedModel     string
	LLMTimeout     time.Duration
	LLMTemperature float64

	// Index configuration
	IndexDir       string
	TranscriptsDir string
	IndexBackend   string
	SearchLimit    int
	ChunkSize      int
	ChunkOverlap   int

	// Qdrant configuration
	QdrantHost       string
	QdrantPort       int
	QdrantAPIKey     string
	QdrantUseTLS     bool
	QdrantCollection string

	// Presentation and logging
	AssistantName string
	LogLevel      string
	LogFormat     string
}

// LoadConfig loads configuration from environment variables and an optional
// earnings-qa.{yaml,json,toml} file in the working directory.
// Environment variables take precedence over the file.
func LoadConfig() (*Config, error) {
	return load(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("earnings-qa")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("engine_enabled", true)
	v.SetDefault("llm_base_url", "http://localhost:11434/v1")
	v.SetDefault("llm_api_key", "ollama")
	v.SetDefault("llm_model", "mistral")
	v.SetDefault("embed_model", "all-minilm")
	v.SetDefault("llm_timeout", 60*time.Second)
	v.SetDefault("llm_temperature", 0.1)
	v.SetDefault("index_dir", "./storage")
	v.SetDefault("transcripts_dir", "./transcripts")
	v.SetDefault("index_backend", rag.BackendLocal)
	v.SetDefault("search_limit", 3)
	v.SetDefault("chunk_size", 2048)
	v.SetDefault("chunk_overlap", 50)
	v.SetDefault("qdrant_host", "localhost")
	v.SetDefault("qdrant_port", 6334)
	v.SetDefault("qdrant_api_key", "")
	v.SetDefault("qdrant_use_tls", false)
	v.SetDefault("qdrant_collection", "earnings")
	v.SetDefault("assistant_name", DefaultAssistantName)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	return v
}

func load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		EngineEnabled:    v.GetBool("engine_enabled"),
		LLMBaseURL:       v.GetString("llm_base_url"),
		LLMAPIKey:        v.GetString("llm_api_key"),
		LLMModel:         v.GetString("llm_model"),
		EmbedModel:       v.GetString("embed_model"),
		LLMTimeout:       v.GetDuration("llm_timeout"),
		LLMTemperature:   v.GetFloat64("llm_temperature"),
		IndexDir:         v.GetString("index_dir"),
		TranscriptsDir:   v.GetString("transcripts_dir"),
		IndexBackend:     strings.ToLower(v.GetString("index_backend")),
		SearchLimit:      v.GetInt("search_limit"),
		ChunkSize:        v.GetInt("chunk_size"),
		ChunkOverlap:     v.GetInt("chunk_overlap"),
		QdrantHost:       v.GetString("qdrant_host"),
		QdrantPort:       v.GetInt("qdrant_port"),
		QdrantAPIKey:     v.GetString("qdrant_api_key"),
		QdrantUseTLS:     v.GetBool("qdrant_use_tls"),
		QdrantCollection: v.GetString("qdrant_collection"),
		AssistantName:    v.GetString("assistant_name"),
		LogLevel:         v.GetString("log_level"),
		LogFormat:        v.GetString("log_format"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values a query reads. Build-only settings are left
// to ValidateBuild so a bad chunking setting never blocks answering.
func (c *Config) Validate() error {
	if c.IndexDir == "" {
		return fmt.Errorf("INDEX_DIR is required")
	}
	if c.SearchLimit <= 0 {
		return fmt.Errorf("SEARCH_LIMIT must be positive, got %d", c.SearchLimit)
	}
	if c.LLMTimeout < 0 {
		return fmt.Errorf("LLM_TIMEOUT must not be negative, got %s", c.LLMTimeout)
	}
	return nil
}

// ValidateBuild is Validate plus the settings only an index build reads.
func (c *Config) ValidateBuild() error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch c.IndexBackend {
	case rag.BackendLocal, rag.BackendQdrant:
	default:
		return fmt.Errorf("unknown INDEX_BACKEND %q (want %q or %q)", c.IndexBackend, rag.BackendLocal, rag.BackendQdrant)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("CHUNK_OVERLAP must not be negative, got %d", c.ChunkOverlap)
	}
	return nil
}
