package rag

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"
)

// QdrantOptions configures the remote index backend.
type QdrantOptions struct {
	Host       string
	Port       int
	APIKey     string
	UseTLS     bool
	Collection string
}

// QdrantClient wraps Qdrant client and provides RAG-specific methods
type QdrantClient struct {
	client     *qdrant.Client
	collection string
}

// NewQdrantClient creates a new Qdrant client
func NewQdrantClient(opts QdrantOptions) (*QdrantClient, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   opts.Host,
		Port:   opts.Port,
		APIKey: opts.APIKey,
		UseTLS: opts.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	qc := &QdrantClient{
		client:     client,
		collection: opts.Collection,
	}

	return qc, nil
}

// EnsureCollection ensures the collection exists with the correct configuration
func (qc *QdrantClient) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	exists, err := qc.client.CollectionExists(ctx, qc.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil
	}

	err = qc.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: qc.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// UpsertPoints upserts points (documents) into the collection
func (qc *QdrantClient) UpsertPoints(ctx context.Context, points []Point) error {
	_, err := qc.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: qc.collection,
		Wait:           qdrant.PtrOf(true),
		Points:         toPointStructs(points),
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}
	return nil
}

func toPointStructs(points []Point) []*qdrant.PointStruct {
	structs := make([]*qdrant.PointStruct, 0, len(points))
	for _, p := range points {
		structs = append(structs, &qdrant.PointStruct{
			Id:      qdrant.NewID(p.ID),
			Vectors: qdrant.NewVectors(p.Vector...),
			Payload: qdrant.NewValueMap(map[string]any{
				"text":        p.Text,
				"doc_id":      p.DocID,
				"chunk_index": int64(p.ChunkIndex),
			}),
		})
	}
	return structs
}

// Search searches for similar vectors in the collection using Qdrant Query API
func (qc *QdrantClient) Search(ctx context.Context, vector []float32, limit uint64) ([]string, []float32, error) {
	searchResult, err := qc.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: qc.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to search: %w", err)
	}

	if len(searchResult) == 0 {
		return []string{}, []float32{}, nil
	}

	texts := make([]string, 0, len(searchResult))
	scores := make([]float32, 0, len(searchResult))

	for _, result := range searchResult {
		if result.Payload == nil {
			continue
		}
		if textValue, ok := result.Payload["text"]; ok && textValue.GetStringValue() != "" {
			texts = append(texts, textValue.GetStringValue())
			scores = append(scores, float32(result.Score))
		}
	}

	return texts, scores, nil
}

// Clear drops the collection. A missing collection is not an error.
func (qc *QdrantClient) Clear(ctx context.Context) error {
	exists, err := qc.client.CollectionExists(ctx, qc.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if !exists {
		return nil
	}
	if err := qc.client.DeleteCollection(ctx, qc.collection); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	return nil
}

// Close closes the gRPC connection
func (qc *QdrantClient) Close() error {
	return qc.client.Close()
}
