package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/vokinneberg/earnings-qa/internal/config"
	"github.com/vokinneberg/earnings-qa/internal/llm"
	"github.com/vokinneberg/earnings-qa/internal/logging"
	"github.com/vokinneberg/earnings-qa/internal/rag"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "build-index",
		Usage: "Embed earnings call transcripts into the index used by query, replacing any previous index",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "transcripts", Usage: "directory of .txt and .md transcripts (default TRANSCRIPTS_DIR)"},
			&cli.StringFlag{Name: "storage", Usage: "index directory (default INDEX_DIR)"},
			&cli.StringFlag{Name: "backend", Usage: "vector store: local or qdrant (default INDEX_BACKEND)"},
			&cli.IntFlag{Name: "chunk-size", Usage: "maximum chunk size in characters (default CHUNK_SIZE)"},
			&cli.IntFlag{Name: "chunk-overlap", Usage: "words carried into the next chunk (default CHUNK_OVERLAP)"},
		},
		Action: build,
	}
}

// applyFlags overrides configuration with the flags that were set
func applyFlags(c *cli.Context, cfg *config.Config) error {
	if c.IsSet("transcripts") {
		cfg.TranscriptsDir = c.String("transcripts")
	}
	if c.IsSet("storage") {
		cfg.IndexDir = c.String("storage")
	}
	if c.IsSet("backend") {
		cfg.IndexBackend = c.String("backend")
	}
	if c.IsSet("chunk-size") {
		cfg.ChunkSize = c.Int("chunk-size")
	}
	if c.IsSet("chunk-overlap") {
		cfg.ChunkOverlap = c.Int("chunk-overlap")
	}
	return cfg.ValidateBuild()
}

func build(c *cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyFlags(c, cfg); err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	// Progress is the point of this command
	if logger.GetLevel() < logrus.InfoLevel {
		logger.SetLevel(logrus.InfoLevel)
	}

	client := llm.NewClient(llm.Options{
		BaseURL:     cfg.LLMBaseURL,
		APIKey:      cfg.LLMAPIKey,
		Model:       cfg.LLMModel,
		EmbedModel:  cfg.EmbedModel,
		Timeout:     cfg.LLMTimeout,
		Temperature: cfg.LLMTemperature,
	})
	if err := client.Ping(c.Context); err != nil {
		return fmt.Errorf("failed to configure models: %w", err)
	}
	logger.WithFields(logrus.Fields{"model": cfg.LLMModel, "embed_model": cfg.EmbedModel}).Info("Models configured")

	docs, err := rag.LoadDirectory(cfg.TranscriptsDir)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"dir": cfg.TranscriptsDir, "documents": len(docs)}).Info("Loaded transcripts")

	store, err := rag.OpenStore(rag.StoreOptions{
		Backend:  cfg.IndexBackend,
		IndexDir: cfg.IndexDir,
		Qdrant: rag.QdrantOptions{
			Host:       cfg.QdrantHost,
			Port:       cfg.QdrantPort,
			APIKey:     cfg.QdrantAPIKey,
			UseTLS:     cfg.QdrantUseTLS,
			Collection: cfg.QdrantCollection,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.IndexBackend, err)
	}
	defer store.Close()

	start := time.Now()
	builder := rag.NewBuilder(store, rag.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap), client, logger)
	m, err := builder.Build(c.Context, docs, rag.BuildOptions{
		IndexDir:   cfg.IndexDir,
		Backend:    cfg.IndexBackend,
		Collection: cfg.QdrantCollection,
		EmbedModel: cfg.EmbedModel,
		LLMModel:   cfg.LLMModel,
	})
	if err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"dir":       cfg.IndexDir,
		"backend":   m.Backend,
		"documents": m.Documents,
		"chunks":    m.Chunks,
		"dimension": m.Dimension,
		"duration":  time.Since(start).Round(time.Millisecond),
	}).Info("Index built")
	return nil
}
