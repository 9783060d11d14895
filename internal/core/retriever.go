package core

import (
	"context"
	"fmt"
)

// excerptLength caps how much chunk text a citation carries.
const excerptLength = 200

// SearchResult is a citation-ready knowledge-base match.
type SearchResult struct {
	Source     string  `json:"source"`
	Page       int     `json:"page"`
	Similarity string  `json:"similarity"`
	Score      float32 `json:"score"`
	Excerpt    string  `json:"excerpt"`
}

// Retriever turns raw index hits into the citation shape used in prompts
// and responses, and owns the default result-count policy.
type Retriever struct {
	kb          *KnowledgeBase
	resultCount int
}

func NewRetriever(kb *KnowledgeBase, resultCount int) *Retriever {
	if resultCount <= 0 {
		resultCount = 5
	}
	return &Retriever{kb: kb, resultCount: resultCount}
}

// ResultCount returns the configured number of results per search.
func (r *Retriever) ResultCount() int {
	return r.resultCount
}

// Search queries the knowledge base with the default result count.
func (r *Retriever) Search(ctx context.Context, query string) ([]SearchResult, error) {
	return r.SearchK(ctx, query, r.resultCount)
}

// SearchK queries the knowledge base for the top k matches.
func (r *Retriever) SearchK(ctx context.Context, query string, k int) ([]SearchResult, error) {
	hits, err := r.kb.Query(ctx, query, k)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, SearchResult{
			Source:     hit.Chunk.Source,
			Page:       hit.Chunk.Page,
			Similarity: fmt.Sprintf("%.1f%%", hit.Score*100),
			Score:      hit.Score,
			Excerpt:    excerpt(hit.Chunk.Content),
		})
	}
	return results, nil
}

func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLength {
		return text
	}
	return string(runes[:excerptLength]) + "..."
}
