package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKB(t *testing.T, embedder Embedder) (*KnowledgeBase, *fakeChunkStore) {
	t.Helper()
	chunkStore := &fakeChunkStore{}
	kb, err := NewKnowledgeBase(context.Background(), chunkStore, embedder, 100, 20)
	require.NoError(t, err)
	return kb, chunkStore
}

func TestKnowledgeBase_IngestAndStats(t *testing.T) {
	kb, chunkStore := newTestKB(t, newStubEmbedder(8))

	docs := []Document{
		NewDocument("faq.txt", "How do I reset my password? Click Forgot Password."),
		NewDocument("billing.txt", "Invoices are issued on the first of each month."),
	}

	count, err := kb.Ingest(context.Background(), docs)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	stats := kb.Stats()
	assert.Equal(t, 2, stats.ChunkCount)
	assert.Equal(t, 2, stats.SourceCount)

	stored, err := chunkStore.LoadChunks(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestKnowledgeBase_IngestEmptyDocuments(t *testing.T) {
	kb, _ := newTestKB(t, newStubEmbedder(8))

	count, err := kb.Ingest(context.Background(), []Document{NewDocument("empty.txt", "")})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, kb.Stats().ChunkCount)
}

func TestKnowledgeBase_IngestAllOrNothing(t *testing.T) {
	embedder := newStubEmbedder(8)
	kb, chunkStore := newTestKB(t, embedder)

	// Seed a healthy index first.
	_, err := kb.Ingest(context.Background(), []Document{NewDocument("a.txt", "alpha content")})
	require.NoError(t, err)

	// Second ingest fails partway through embedding.
	embedder.failAfter = embedder.calls + 1
	docs := []Document{
		NewDocument("b.txt", "bravo content"),
		NewDocument("c.txt", "charlie content"),
	}
	_, err = kb.Ingest(context.Background(), docs)
	require.Error(t, err)
	var embErr *EmbeddingError
	assert.ErrorAs(t, err, &embErr)

	// The previous snapshot is intact, both in memory and on disk.
	assert.Equal(t, 1, kb.Stats().ChunkCount)
	stored, loadErr := chunkStore.LoadChunks(context.Background())
	require.NoError(t, loadErr)
	require.Len(t, stored, 1)
	assert.Equal(t, "a.txt", stored[0].Source)
}

func TestKnowledgeBase_QueryValidation(t *testing.T) {
	kb, _ := newTestKB(t, newStubEmbedder(8))

	_, err := kb.Query(context.Background(), "anything", 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = kb.Query(context.Background(), "anything", -3)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestKnowledgeBase_QueryEmptyIndex(t *testing.T) {
	kb, _ := newTestKB(t, newStubEmbedder(8))

	hits, err := kb.Query(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestKnowledgeBase_QueryOrderingAndBounds(t *testing.T) {
	kb, _ := newTestKB(t, newStubEmbedder(8))

	docs := []Document{
		NewDocument("a.txt", "alpha bravo charlie delta"),
		NewDocument("b.txt", "echo foxtrot golf hotel"),
		NewDocument("c.txt", "india juliet kilo lima"),
	}
	_, err := kb.Ingest(context.Background(), docs)
	require.NoError(t, err)

	for _, k := range []int{1, 2, 3, 10} {
		hits, err := kb.Query(context.Background(), "alpha bravo", k)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(hits), k)
		assert.LessOrEqual(t, len(hits), kb.Stats().ChunkCount)
		for i := 1; i < len(hits); i++ {
			assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
		}
		for _, hit := range hits {
			assert.GreaterOrEqual(t, hit.Score, float32(0))
			assert.LessOrEqual(t, hit.Score, float32(1))
		}
	}
}

func TestKnowledgeBase_SelfRetrieval(t *testing.T) {
	kb, _ := newTestKB(t, newStubEmbedder(8))

	text := "Password reset: click Forgot Password link."
	_, err := kb.Ingest(context.Background(), []Document{NewDocument("faq.pdf", text)})
	require.NoError(t, err)

	hits, err := kb.Query(context.Background(), text, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "faq.pdf", hits[0].Chunk.Source)
	assert.GreaterOrEqual(t, hits[0].Score, float32(0.99))
}

func TestKnowledgeBase_ClearThenQuery(t *testing.T) {
	kb, chunkStore := newTestKB(t, newStubEmbedder(8))

	_, err := kb.Ingest(context.Background(), []Document{NewDocument("a.txt", "alpha")})
	require.NoError(t, err)

	require.NoError(t, kb.Clear(context.Background()))

	hits, err := kb.Query(context.Background(), "alpha", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Zero(t, kb.Stats().ChunkCount)

	stored, err := chunkStore.LoadChunks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)

	// Ingest after clear behaves as a fresh build.
	count, err := kb.Ingest(context.Background(), []Document{NewDocument("b.txt", "bravo")})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, kb.Stats().ChunkCount)
}

func TestKnowledgeBase_ReloadsFromStore(t *testing.T) {
	embedder := newStubEmbedder(8)
	chunkStore := &fakeChunkStore{}

	kb, err := NewKnowledgeBase(context.Background(), chunkStore, embedder, 100, 20)
	require.NoError(t, err)
	_, err = kb.Ingest(context.Background(), []Document{NewDocument("a.txt", "alpha content")})
	require.NoError(t, err)

	// A new instance over the same store sees the persisted chunks.
	reloaded, err := NewKnowledgeBase(context.Background(), chunkStore, embedder, 100, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Stats().ChunkCount)

	hits, err := reloaded.Query(context.Background(), "alpha content", 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "a.txt", hits[0].Chunk.Source)
}
