package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vokinneberg/earnings-qa/internal/config"
	"github.com/vokinneberg/earnings-qa/internal/llm"
	"github.com/vokinneberg/earnings-qa/internal/rag"
)

// ErrEmbedModelMismatch is returned when the index was built with a different embedding model.
var ErrEmbedModelMismatch = errors.New("index built with a different embedding model")

// IndexLoader opens a rag index from disk
type IndexLoader struct {
	dir         string
	embedder    rag.Embedder
	embedModel  string
	searchLimit int
	qdrant      rag.QdrantOptions
}

// NewIndexLoader creates a loader for the index in dir. Query vectors come
// from embedder, which must use embedModel.
func NewIndexLoader(dir string, embedder rag.Embedder, embedModel string, searchLimit int, qdrant rag.QdrantOptions) *IndexLoader {
	return &IndexLoader{
		dir:         dir,
		embedder:    embedder,
		embedModel:  embedModel,
		searchLimit: searchLimit,
		qdrant:      qdrant,
	}
}

// Open loads the manifest and opens the store read-only
func (l *IndexLoader) Open(_ context.Context) (Retriever, error) {
	index, err := rag.OpenIndex(l.dir, l.embedder, l.searchLimit, l.qdrant)
	if err != nil {
		return nil, err
	}

	if m := index.Manifest(); m.EmbedModel != l.embedModel {
		_ = index.Close()
		return nil, fmt.Errorf("%w: index has %q, configured %q", ErrEmbedModelMismatch, m.EmbedModel, l.embedModel)
	}
	return index, nil
}

// NewFromConfig wires the adapter to the model server and the index named by cfg
func NewFromConfig(cfg *config.Config, logger logrus.FieldLogger) *Adapter {
	client := llm.NewClient(llm.Options{
		BaseURL:     cfg.LLMBaseURL,
		APIKey:      cfg.LLMAPIKey,
		Model:       cfg.LLMModel,
		EmbedModel:  cfg.EmbedModel,
		Timeout:     cfg.LLMTimeout,
		Temperature: cfg.LLMTemperature,
	})

	loader := NewIndexLoader(cfg.IndexDir, client, cfg.EmbedModel, cfg.SearchLimit, rag.QdrantOptions{
		Host:   cfg.QdrantHost,
		Port:   cfg.QdrantPort,
		APIKey: cfg.QdrantAPIKey,
		UseTLS: cfg.QdrantUseTLS,
	})

	return NewAdapter(cfg.EngineEnabled, client, loader, logger)
}
