package types

type IngestRequest struct {
	Folder   string `json:"folder"`
	Category string `json:"category"`
}

type AskRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k,omitempty"`
}

type ProcessMailRequest struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date,omitempty"`
}
