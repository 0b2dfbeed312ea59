package rag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Database keys
const (
	pointKeyPrefix = "point_"         // Prefix for embedded chunks
	dimensionKey   = "meta_dimension" // Vector size fixed by the first ingest
)

// LevelDBStore keeps the vector index in a local LevelDB database and
// answers searches by brute-force cosine similarity.
type LevelDBStore struct {
	db        *leveldb.DB
	batchLock sync.Mutex
	path      string
}

// OpenLevelDBStore opens the database at path. A read-only store must
// already exist.
func OpenLevelDBStore(path string, readOnly bool) (*LevelDBStore, error) {
	options := &opt.Options{
		ReadOnly:       readOnly,
		ErrorIfMissing: readOnly,
	}

	db, err := leveldb.OpenFile(path, options)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, path)
		}
		return nil, fmt.Errorf("failed to open vector database: %w", err)
	}

	return &LevelDBStore{
		db:   db,
		path: path,
	}, nil
}

// Close closes the database
func (s *LevelDBStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Dimension returns the stored vector size, or 0 when nothing was ingested.
func (s *LevelDBStore) Dimension() (uint64, error) {
	data, err := s.db.Get([]byte(dimensionKey), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read dimension: %w", err)
	}
	dim, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid stored dimension %q: %w", data, err)
	}
	return dim, nil
}

// EnsureCollection records the vector size, or checks it against the stored one.
func (s *LevelDBStore) EnsureCollection(_ context.Context, vectorSize uint64) error {
	current, err := s.Dimension()
	if err != nil {
		return err
	}
	if current != 0 {
		if current != vectorSize {
			return fmt.Errorf("vector size %d does not match stored size %d", vectorSize, current)
		}
		return nil
	}
	if err := s.db.Put([]byte(dimensionKey), []byte(strconv.FormatUint(vectorSize, 10)), nil); err != nil {
		return fmt.Errorf("failed to store dimension: %w", err)
	}
	return nil
}

// UpsertPoints writes points in a single batch
func (s *LevelDBStore) UpsertPoints(_ context.Context, points []Point) error {
	batch := new(leveldb.Batch)
	for _, p := range points {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal point %s: %w", p.ID, err)
		}
		batch.Put([]byte(pointKeyPrefix+p.ID), data)
	}

	s.batchLock.Lock()
	defer s.batchLock.Unlock()

	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}
	return nil
}

// Count returns the number of stored points
func (s *LevelDBStore) Count() (int, error) {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(pointKeyPrefix)), nil)
	defer iter.Release()

	n := 0
	for iter.Next() {
		n++
	}
	if err := iter.Error(); err != nil {
		return 0, fmt.Errorf("failed to count points: %w", err)
	}
	return n, nil
}

type scoredText struct {
	text  string
	score float32
}

// Search returns the texts of the most similar points, best first.
func (s *LevelDBStore) Search(ctx context.Context, vector []float32, limit uint64) ([]string, []float32, error) {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(pointKeyPrefix)), nil)
	defer iter.Release()

	var results []scoredText
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		var p Point
		if err := json.Unmarshal(iter.Value(), &p); err != nil {
			return nil, nil, fmt.Errorf("failed to unmarshal point %s: %w", iter.Key(), err)
		}
		if len(p.Vector) != len(vector) {
			return nil, nil, fmt.Errorf("query vector size %d does not match stored size %d", len(vector), len(p.Vector))
		}
		results = append(results, scoredText{text: p.Text, score: cosineSimilarity(vector, p.Vector)})
	}
	if err := iter.Error(); err != nil {
		return nil, nil, fmt.Errorf("failed to search: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
	if uint64(len(results)) > limit {
		results = results[:limit]
	}

	texts := make([]string, 0, len(results))
	scores := make([]float32, 0, len(results))
	for _, r := range results {
		texts = append(texts, r.text)
		scores = append(scores, r.score)
	}
	return texts, scores, nil
}

// Clear removes every point and the stored dimension.
func (s *LevelDBStore) Clear(_ context.Context) error {
	iter := s.db.NewIterator(nil, nil)
	batch := new(leveldb.Batch)
	for iter.Next() {
		batch.Delete(append([]byte{}, iter.Key()...))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return fmt.Errorf("failed to scan database: %w", err)
	}

	s.batchLock.Lock()
	defer s.batchLock.Unlock()

	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("failed to clear database: %w", err)
	}
	return nil
}

func cosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
