package rag

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// BuildOptions describes the index being built
type BuildOptions struct {
	IndexDir   string
	Backend    string
	Collection string
	EmbedModel string
	LLMModel   string
}

// Builder ingests documents into a store and writes the manifest
type Builder struct {
	store    Store
	pipeline *Pipeline
	logger   logrus.FieldLogger
}

// NewBuilder creates a builder writing into store
func NewBuilder(store Store, chunker TextChunker, embedder Embedder, logger logrus.FieldLogger) *Builder {
	return &Builder{
		store:    store,
		pipeline: NewPipeline(chunker, embedder, store, 0),
		logger:   logger,
	}
}

// Build replaces the index with docs and, on success, writes the manifest.
// The previous manifest is removed and the store cleared first, so the store
// holds exactly the chunks the new manifest counts and an interrupted build
// leaves no loadable index.
func (b *Builder) Build(ctx context.Context, docs []Document, opts BuildOptions) (*Manifest, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	if err := RemoveManifest(opts.IndexDir); err != nil {
		return nil, err
	}

	b.logger.WithField("backend", opts.Backend).Info("Clearing previous index")
	if err := b.store.Clear(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear index: %w", err)
	}

	documents, chunks := 0, 0
	for _, doc := range docs {
		start := time.Now()
		n, err := b.pipeline.Ingest(ctx, doc.Text, doc.ID)
		if errors.Is(err, ErrNoChunks) {
			b.logger.WithField("doc", doc.ID).Warn("Skipping empty document")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to index %s: %w", doc.ID, err)
		}

		documents++
		chunks += n
		b.logger.WithFields(logrus.Fields{
			"doc":      doc.ID,
			"chunks":   n,
			"duration": time.Since(start).Round(time.Millisecond),
		}).Info("Indexed document")
	}

	if chunks == 0 {
		return nil, ErrNoDocuments
	}

	m := &Manifest{
		Backend:    opts.Backend,
		EmbedModel: opts.EmbedModel,
		LLMModel:   opts.LLMModel,
		Dimension:  b.pipeline.Dimension(),
		Documents:  documents,
		Chunks:     chunks,
		CreatedAt:  time.Now().UTC(),
	}
	if opts.Backend == BackendQdrant {
		m.Collection = opts.Collection
	}

	if err := WriteManifest(opts.IndexDir, m); err != nil {
		return nil, err
	}
	return m, nil
}
