package rag

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=pipeline.go -destination=mock_pipeline.go -package=rag

// Embedder turns text into a vector
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// TextChunker defines the interface for text chunking operations
type TextChunker interface {
	ChunkText(text string) []string
}

// VectorDatabase defines the interface for vector database operations
type VectorDatabase interface {
	EnsureCollection(ctx context.Context, vectorSize uint64) error
	UpsertPoints(ctx context.Context, points []Point) error
	Search(ctx context.Context, queryEmbedding []float32, limit uint64) ([]string, []float32, error)
}

// Store is a VectorDatabase that owns its connection or files.
type Store interface {
	VectorDatabase
	Clear(ctx context.Context) error
	Close() error
}

// Point is one embedded transcript chunk.
type Point struct {
	ID         string    `json:"id"`
	Vector     []float32 `json:"vector"`
	Text       string    `json:"text"`
	DocID      string    `json:"doc_id"`
	ChunkIndex int       `json:"chunk_index"`
}

var (
	// ErrNoChunks is returned when a document yields no chunks.
	ErrNoChunks = errors.New("no chunks created from text")
	// ErrNoRelevantDocuments is returned when a search finds nothing.
	ErrNoRelevantDocuments = errors.New("no relevant documents found")
)

// pointNamespace keeps chunk ids stable across rebuilds
var pointNamespace = uuid.MustParse("6f1c8f0e-3b7a-4c2e-9d55-0a4e8b2f7c11")

// PointID returns the deterministic id of a document chunk.
func PointID(docID string, chunkIndex int) string {
	return uuid.NewSHA1(pointNamespace, []byte(docID+":"+strconv.Itoa(chunkIndex))).String()
}

// Pipeline orchestrates the RAG pipeline
type Pipeline struct {
	chunker     TextChunker
	embedder    Embedder
	db          VectorDatabase
	searchLimit int
	dimension   uint64
}

// NewPipeline creates a new RAG pipeline. The collection is created on the
// first ingest, once the embedding dimension is known.
func NewPipeline(chunker TextChunker, embedder Embedder, db VectorDatabase, searchLimit int) *Pipeline {
	if searchLimit <= 0 {
		searchLimit = 3
	}
	return &Pipeline{
		chunker:     chunker,
		embedder:    embedder,
		db:          db,
		searchLimit: searchLimit,
	}
}

// Dimension returns the embedding size seen so far, or 0 before any ingest.
func (p *Pipeline) Dimension() uint64 {
	return p.dimension
}

// Ingest chunks, embeds and stores a document. It returns the number of chunks stored.
func (p *Pipeline) Ingest(ctx context.Context, text string, docID string) (int, error) {
	chunks := p.chunker.ChunkText(text)
	if len(chunks) == 0 {
		return 0, ErrNoChunks
	}

	points := make([]Point, 0, len(chunks))
	for i, chunk := range chunks {
		embedding, err := p.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return 0, fmt.Errorf("failed to generate embedding for chunk %d: %w", i, err)
		}

		if err := p.ensureDimension(ctx, len(embedding)); err != nil {
			return 0, err
		}

		points = append(points, Point{
			ID:         PointID(docID, i),
			Vector:     embedding,
			Text:       chunk,
			DocID:      docID,
			ChunkIndex: i,
		})
	}

	if err := p.db.UpsertPoints(ctx, points); err != nil {
		return 0, fmt.Errorf("failed to upsert points: %w", err)
	}

	return len(points), nil
}

func (p *Pipeline) ensureDimension(ctx context.Context, size int) error {
	if size == 0 {
		return fmt.Errorf("empty embedding")
	}
	if p.dimension == 0 {
		if err := p.db.EnsureCollection(ctx, uint64(size)); err != nil {
			return fmt.Errorf("failed to ensure collection: %w", err)
		}
		p.dimension = uint64(size)
		return nil
	}
	if uint64(size) != p.dimension {
		return fmt.Errorf("embedding dimension %d does not match collection dimension %d", size, p.dimension)
	}
	return nil
}

// Retrieve searches for relevant context based on a query
func (p *Pipeline) Retrieve(ctx context.Context, query string) (string, error) {
	queryEmbedding, err := p.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to generate query embedding: %w", err)
	}

	texts, scores, err := p.db.Search(ctx, queryEmbedding, uint64(p.searchLimit))
	if err != nil {
		return "", fmt.Errorf("failed to search: %w", err)
	}

	if len(texts) == 0 {
		return "", ErrNoRelevantDocuments
	}

	var contextBuilder strings.Builder
	for i, text := range texts {
		contextBuilder.WriteString(fmt.Sprintf("[Document %d, Score: %.4f]\n%s\n\n", i+1, scores[i], text))
	}

	return strings.TrimSpace(contextBuilder.String()), nil
}
