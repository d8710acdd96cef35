package types

import "time"

// EmailMessage is one raw message record yielded by the mail collaborator.
type EmailMessage struct {
	UID         string    `json:"uid"`
	Subject     string    `json:"subject"`
	From        string    `json:"from"`
	Date        time.Time `json:"date"`
	Body        string    `json:"body"`
	Attachments []string  `json:"attachments"`
}

// EmailTaskResult pairs a processed message with its extracted to-do text.
// Extraction is empty when the model found no actionable task.
type EmailTaskResult struct {
	Subject     string    `json:"subject"`
	From        string    `json:"from"`
	Date        time.Time `json:"date"`
	Attachments []string  `json:"attachments"`
	Extraction  string    `json:"extraction"`
}

// MailFilter selects which inbox messages a run should fetch.
type MailFilter struct {
	FromDate time.Time
	ToDate   time.Time
}
