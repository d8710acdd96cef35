package types

const (
	StatusSuccess   = "success"
	StatusError     = "error"
	StatusNoResults = "no_results"
)

// IngestError records one document that failed during a batch run.
type IngestError struct {
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

// IngestReport is the discriminated result of one ingestion run. A top-level
// failure (folder missing, ledger unreadable) sets Status to "error" with no
// partial counts; per-document failures land in Errors while the batch
// continues.
type IngestReport struct {
	Status        string        `json:"status"`
	IngestedFiles []string      `json:"ingested_files"`
	TotalChunks   int           `json:"total_chunks"`
	Errors        []IngestError `json:"errors,omitempty"`
	ErrorMessage  string        `json:"error_message,omitempty"`
}

// SearchHit is one ranked result from the vector index.
type SearchHit struct {
	Text     string            `json:"text"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// QueryResult is the caller-facing outcome of a retrieval-augmented answer.
// Provider failures never escape as errors; they surface here as Status
// "error" with a human-readable message.
type QueryResult struct {
	Status       string   `json:"status"`
	Answer       string   `json:"answer,omitempty"`
	SourceChunks []string `json:"source_chunks"`
	ErrorMessage string   `json:"error_message,omitempty"`
}

// MailReport summarizes one mail-processing run.
type MailReport struct {
	Status       string            `json:"status"`
	Results      []EmailTaskResult `json:"results"`
	ErrorMessage string            `json:"error_message,omitempty"`
}
