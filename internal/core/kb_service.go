package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/charanhu/support-agent/internal/store"
	"github.com/charanhu/support-agent/internal/utils"
)

// ChunkStore is the persistence capability the knowledge base needs.
// *store.SQLiteStore implements it.
type ChunkStore interface {
	ReplaceChunks(ctx context.Context, chunks []store.ChunkRecord) error
	LoadChunks(ctx context.Context) ([]store.ChunkRecord, error)
	ClearChunks(ctx context.Context) error
}

// IndexStats is a derived summary of the semantic index.
type IndexStats struct {
	ChunkCount  int `json:"chunk_count"`
	SourceCount int `json:"source_document_count"`
}

// IndexHit is one raw nearest-neighbour match with its normalized score.
type IndexHit struct {
	Chunk store.ChunkRecord
	Score float32
}

// KnowledgeBase is the semantic index: chunks plus embeddings held in
// memory for similarity search, persisted through a ChunkStore.
//
// Ingestion is single-writer and all-or-nothing: either every chunk of
// the batch is embedded and stored, or the index is left untouched.
// Queries see either the pre-ingest or the post-ingest snapshot.
type KnowledgeBase struct {
	chunkStore ChunkStore
	embedder   Embedder
	chunker    *Chunker

	ingestMu sync.Mutex // serializes Ingest and Clear

	mu        sync.RWMutex
	chunks    []store.ChunkRecord
	dimension int
}

func NewKnowledgeBase(ctx context.Context, chunkStore ChunkStore, embedder Embedder, chunkSize, overlap int) (*KnowledgeBase, error) {
	kb := &KnowledgeBase{
		chunkStore: chunkStore,
		embedder:   embedder,
		chunker:    NewChunker(chunkSize, overlap),
	}

	chunks, err := chunkStore.LoadChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chunks for knowledge base: %w", err)
	}
	kb.chunks = chunks
	if len(chunks) > 0 {
		kb.dimension = len(chunks[0].Embedding)
		log.Printf("Knowledge base initialized with %d chunks", len(chunks))
	} else {
		log.Println("Knowledge base initialized empty. Ingest documents before querying.")
	}
	return kb, nil
}

// Ingest chunks the documents, embeds every chunk, and replaces the index
// content with the result. Any embedding failure aborts the whole call
// without touching the stored index.
func (kb *KnowledgeBase) Ingest(ctx context.Context, docs []Document) (int, error) {
	kb.ingestMu.Lock()
	defer kb.ingestMu.Unlock()

	var records []store.ChunkRecord
	for _, doc := range docs {
		for _, chunk := range kb.chunker.ChunkDocument(doc) {
			records = append(records, store.ChunkRecord{
				ID:         uuid.NewString(),
				Content:    chunk.Text,
				Source:     doc.Name,
				Page:       chunk.Page,
				ChunkIndex: chunk.Index,
			})
		}
	}
	if len(records) == 0 {
		log.Println("No chunks produced from documents, nothing to ingest")
		return 0, nil
	}

	// Embed everything before mutating any state.
	dimension := 0
	for i := range records {
		vector, err := kb.embedder.Embed(ctx, records[i].Content)
		if err != nil {
			var embErr *EmbeddingError
			if !errors.As(err, &embErr) {
				err = &EmbeddingError{Err: err}
			}
			return 0, fmt.Errorf("ingest aborted at chunk %d/%d: %w", i+1, len(records), err)
		}
		if len(vector) == 0 {
			return 0, fmt.Errorf("ingest aborted at chunk %d/%d: %w", i+1, len(records),
				&EmbeddingError{Err: fmt.Errorf("gateway returned an empty vector")})
		}
		if dimension == 0 {
			dimension = len(vector)
		} else if len(vector) != dimension {
			return 0, fmt.Errorf("embedding dimension changed from %d to %d mid-batch: %w",
				dimension, len(vector), ErrIndexCorrupt)
		}
		records[i].Embedding = vector
	}

	if err := kb.chunkStore.ReplaceChunks(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to persist ingested chunks: %w", err)
	}

	kb.mu.Lock()
	kb.chunks = records
	kb.dimension = dimension
	kb.mu.Unlock()

	log.Printf("Ingested %d chunks from %d documents", len(records), len(docs))
	return len(records), nil
}

// Query embeds the text and returns up to k chunks ordered by descending
// normalized similarity. Ties keep insertion order. Querying an empty
// index returns an empty result, not an error.
func (kb *KnowledgeBase) Query(ctx context.Context, text string, k int) ([]IndexHit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("result count k must be positive, got %d: %w", k, ErrInvalidArgument)
	}

	kb.mu.RLock()
	chunks := kb.chunks
	dimension := kb.dimension
	kb.mu.RUnlock()

	if len(chunks) == 0 {
		return nil, nil
	}

	queryVector, err := kb.embedder.Embed(ctx, text)
	if err != nil {
		var embErr *EmbeddingError
		if !errors.As(err, &embErr) {
			err = &EmbeddingError{Err: err}
		}
		return nil, err
	}
	if len(queryVector) != dimension {
		return nil, fmt.Errorf("query embedding dimension %d does not match index dimension %d: %w",
			len(queryVector), dimension, ErrIndexCorrupt)
	}

	hits := make([]IndexHit, 0, len(chunks))
	for _, chunk := range chunks {
		cosine, err := utils.CosineSimilarity(queryVector, chunk.Embedding)
		if err != nil {
			return nil, fmt.Errorf("similarity failed for chunk %s: %w", chunk.ID, ErrIndexCorrupt)
		}
		hits = append(hits, IndexHit{Chunk: chunk, Score: utils.NormalizedSimilarity(cosine)})
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Stats summarizes the current index content.
func (kb *KnowledgeBase) Stats() IndexStats {
	kb.mu.RLock()
	defer kb.mu.RUnlock()

	sources := make(map[string]struct{})
	for _, chunk := range kb.chunks {
		sources[chunk.Source] = struct{}{}
	}
	return IndexStats{ChunkCount: len(kb.chunks), SourceCount: len(sources)}
}

// Clear removes every chunk; queries return empty until the next ingest.
func (kb *KnowledgeBase) Clear(ctx context.Context) error {
	kb.ingestMu.Lock()
	defer kb.ingestMu.Unlock()

	if err := kb.chunkStore.ClearChunks(ctx); err != nil {
		return fmt.Errorf("failed to clear stored chunks: %w", err)
	}

	kb.mu.Lock()
	kb.chunks = nil
	kb.dimension = 0
	kb.mu.Unlock()
	return nil
}
