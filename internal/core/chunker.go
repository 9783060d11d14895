package core

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Chunk is one fixed-size text window cut from a source document, before
// embedding.
type Chunk struct {
	Text  string
	Page  int
	Index int
}

// Chunker splits document text into overlapping fixed-size windows.
// Windows advance by chunkSize-overlap characters; the final partial
// window is kept if non-empty.
type Chunker struct {
	chunkSize int
	overlap   int
}

func NewChunker(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}
}

// ChunkDocument cuts every page of the document into windows. Page numbers
// are 1-based and carried from the document's own page boundaries; the
// chunk index runs across the whole document. An empty document yields no
// chunks.
func (c *Chunker) ChunkDocument(doc Document) []Chunk {
	var chunks []Chunk
	index := 0
	for pageNo, page := range doc.Pages {
		for _, text := range c.split(page) {
			chunks = append(chunks, Chunk{
				Text:  text,
				Page:  pageNo + 1,
				Index: index,
			})
			index++
		}
	}
	return chunks
}

func (c *Chunker) split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := c.chunkSize - c.overlap
	var windows []string
	for start := 0; start < len(runes); start += step {
		end := start + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		windows = append(windows, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return windows
}
