package types

import "fmt"

// Chunk is one retrievable slice of a document. The ID is deterministic from
// the document stem and the chunk index, so re-ingesting an unchanged document
// overwrites instead of duplicating.
type Chunk struct {
	ID               string `json:"_id"`
	Text             string `json:"chunk_text"`
	Category         string `json:"category"`
	ParentDocumentID string `json:"parent_document_id"`
}

// ChunkID builds the canonical chunk identifier "<stem>-chunk-<index>".
func ChunkID(stem string, index int) string {
	return fmt.Sprintf("%s-chunk-%d", stem, index)
}

// DocumentServiceConfig contains configuration options for text chunking.
type DocumentServiceConfig struct {
	ChunkSize   int // Maximum size for text chunks
	OverlapSize int // Size of overlap between chunks
}
