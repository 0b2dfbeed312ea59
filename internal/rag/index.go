package rag

import (
	"context"
	"fmt"
	"path/filepath"
)

// StoreOptions selects and configures a vector store
type StoreOptions struct {
	Backend  string
	IndexDir string
	ReadOnly bool
	Qdrant   QdrantOptions
}

// OpenStore opens the vector store for the configured backend
func OpenStore(opts StoreOptions) (Store, error) {
	switch opts.Backend {
	case BackendLocal:
		return OpenLevelDBStore(filepath.Join(opts.IndexDir, VectorsDir), opts.ReadOnly)
	case BackendQdrant:
		return NewQdrantClient(opts.Qdrant)
	default:
		return nil, fmt.Errorf("unknown index backend %q", opts.Backend)
	}
}

// Index is a persisted index opened for querying
type Index struct {
	manifest *Manifest
	store    Store
	pipeline *Pipeline
}

// OpenIndex reads the manifest in dir and opens its store read-only.
// The Qdrant collection always comes from the manifest.
func OpenIndex(dir string, embedder Embedder, searchLimit int, qdrantOpts QdrantOptions) (*Index, error) {
	m, err := ReadManifest(dir)
	if err != nil {
		return nil, err
	}

	qdrantOpts.Collection = m.Collection
	store, err := OpenStore(StoreOptions{
		Backend:  m.Backend,
		IndexDir: dir,
		ReadOnly: true,
		Qdrant:   qdrantOpts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s index: %w", m.Backend, err)
	}

	return &Index{
		manifest: m,
		store:    store,
		pipeline: NewPipeline(nil, embedder, store, searchLimit),
	}, nil
}

// Manifest returns the manifest the index was opened with
func (i *Index) Manifest() Manifest {
	return *i.manifest
}

// Retrieve returns the formatted top-k context for query
func (i *Index) Retrieve(ctx context.Context, query string) (string, error) {
	return i.pipeline.Retrieve(ctx, query)
}

// Close releases the underlying store
func (i *Index) Close() error {
	return i.store.Close()
}
