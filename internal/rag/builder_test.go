package rag

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keywordEmbedder counts a few finance terms so similarity follows topic.
type keywordEmbedder struct{}

func (keywordEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	lower := strings.ToLower(text)
	vector := []float32{0.01, 0, 0, 0}
	for i, kw := range []string{"revenue", "roe", "aum"} {
		vector[i+1] = float32(strings.Count(lower, kw))
	}
	return vector, nil
}

func testDocuments() []Document {
	return []Document{
		{ID: "q1.txt", Text: "Revenue grew 30% year on year. Revenue momentum stayed strong."},
		{ID: "q2.txt", Text: "ROE was 19.08% for the quarter."},
		{ID: "empty.txt", Text: "   \n"},
		{ID: "q3.txt", Text: "AUM crossed 4 lakh crores, AUM growth of 25%."},
	}
}

func buildLocalIndex(t *testing.T, dir string) *Manifest {
	t.Helper()
	store, err := OpenStore(StoreOptions{Backend: BackendLocal, IndexDir: dir})
	require.NoError(t, err)
	defer store.Close()

	logger, _ := test.NewNullLogger()
	builder := NewBuilder(store, NewChunker(2048, 50), keywordEmbedder{}, logger)

	m, err := builder.Build(context.Background(), testDocuments(), BuildOptions{
		IndexDir:   dir,
		Backend:    BackendLocal,
		EmbedModel: "all-minilm",
		LLMModel:   "mistral",
	})
	require.NoError(t, err)
	return m
}

func TestBuilder_Build(t *testing.T) {
	dir := t.TempDir()

	m := buildLocalIndex(t, dir)
	assert.Equal(t, BackendLocal, m.Backend)
	assert.Equal(t, "all-minilm", m.EmbedModel)
	assert.Equal(t, "mistral", m.LLMModel)
	assert.Equal(t, uint64(4), m.Dimension)
	assert.Equal(t, 3, m.Documents)
	assert.Equal(t, 3, m.Chunks)
	assert.Empty(t, m.Collection)
	assert.False(t, m.CreatedAt.IsZero())

	onDisk, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, m.Chunks, onDisk.Chunks)
}

func TestBuilder_Build_LogsSkippedDocuments(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenStore(StoreOptions{Backend: BackendLocal, IndexDir: dir})
	require.NoError(t, err)
	defer store.Close()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)
	builder := NewBuilder(store, NewChunker(2048, 50), keywordEmbedder{}, logger)

	_, err = builder.Build(context.Background(), testDocuments(), BuildOptions{IndexDir: dir, Backend: BackendLocal, EmbedModel: "all-minilm"})
	require.NoError(t, err)

	var skipped []string
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			skipped = append(skipped, entry.Data["doc"].(string))
		}
	}
	assert.Equal(t, []string{"empty.txt"}, skipped)
}

func TestBuilder_Build_ReplacesPreviousIndex(t *testing.T) {
	tests := []struct {
		name      string
		docs      []Document
		chunkSize int
		wantDocs  int
	}{
		{
			name:      "document removed",
			docs:      testDocuments()[1:2],
			chunkSize: 2048,
			wantDocs:  1,
		},
		{
			name: "document shrank",
			docs: []Document{
				{ID: "q1.txt", Text: "Revenue grew 30%."},
				{ID: "q2.txt", Text: "ROE was 19.08% for the quarter."},
			},
			chunkSize: 2048,
			wantDocs:  2,
		},
		{
			name:      "chunk size grew",
			docs:      testDocuments(),
			chunkSize: 4096,
			wantDocs:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()

			// Small chunks leave high chunk indices behind in the first build
			store, err := OpenStore(StoreOptions{Backend: BackendLocal, IndexDir: dir})
			require.NoError(t, err)
			logger, _ := test.NewNullLogger()
			first, err := NewBuilder(store, NewChunker(20, 0), keywordEmbedder{}, logger).
				Build(context.Background(), testDocuments(), BuildOptions{IndexDir: dir, Backend: BackendLocal, EmbedModel: "all-minilm"})
			require.NoError(t, err)
			require.NoError(t, store.Close())
			require.Greater(t, first.Chunks, 3)

			store, err = OpenStore(StoreOptions{Backend: BackendLocal, IndexDir: dir})
			require.NoError(t, err)
			m, err := NewBuilder(store, NewChunker(tt.chunkSize, 0), keywordEmbedder{}, logger).
				Build(context.Background(), tt.docs, BuildOptions{IndexDir: dir, Backend: BackendLocal, EmbedModel: "all-minilm"})
			require.NoError(t, err)
			require.NoError(t, store.Close())
			assert.Equal(t, tt.wantDocs, m.Documents)

			readOnly, err := OpenLevelDBStore(filepath.Join(dir, VectorsDir), true)
			require.NoError(t, err)
			defer readOnly.Close()

			n, err := readOnly.Count()
			require.NoError(t, err)
			assert.Equal(t, m.Chunks, n, "store must hold exactly the chunks the manifest counts")
		})
	}
}

func TestBuilder_Build_Errors(t *testing.T) {
	tests := []struct {
		name        string
		docs        []Document
		setupMocks  func(*MockStore)
		wantErr     error
		errContains string
	}{
		{
			name:    "no documents",
			docs:    nil,
			wantErr: ErrNoDocuments,
		},
		{
			name: "only empty documents",
			docs: []Document{{ID: "blank.txt", Text: " "}},
			setupMocks: func(store *MockStore) {
				store.EXPECT().Clear(gomock.Any()).Return(nil)
			},
			wantErr: ErrNoDocuments,
		},
		{
			name: "clear fails",
			docs: testDocuments(),
			setupMocks: func(store *MockStore) {
				store.EXPECT().Clear(gomock.Any()).Return(errors.New("permission denied"))
			},
			errContains: "failed to clear index",
		},
		{
			name: "upsert fails",
			docs: testDocuments()[:1],
			setupMocks: func(store *MockStore) {
				store.EXPECT().Clear(gomock.Any()).Return(nil)
				store.EXPECT().EnsureCollection(gomock.Any(), uint64(4)).Return(nil)
				store.EXPECT().UpsertPoints(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			errContains: "failed to index q1.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := NewMockStore(ctrl)
			if tt.setupMocks != nil {
				tt.setupMocks(store)
			}

			dir := t.TempDir()
			logger, _ := test.NewNullLogger()
			builder := NewBuilder(store, NewChunker(2048, 50), keywordEmbedder{}, logger)

			_, err := builder.Build(context.Background(), tt.docs, BuildOptions{IndexDir: dir, Backend: BackendLocal, EmbedModel: "all-minilm"})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
			}
			if tt.errContains != "" {
				assert.Contains(t, err.Error(), tt.errContains)
			}

			_, err = ReadManifest(dir)
			assert.True(t, errors.Is(err, ErrIndexNotFound), "failed build must not leave a manifest")
		})
	}
}
