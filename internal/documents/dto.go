package documents

import "time"

// CreateDocumentTransactionRequest is the inbound payload for logging a
// hand-off. TransactionDate is optional and defaults to the current
// time when omitted.
type CreateDocumentTransactionRequest struct {
	DocumentType    string     `json:"documentType" validate:"required"`
	TransactionType string     `json:"transactionType" validate:"required,oneof=giao nhận"`
	HandledBy       string     `json:"handledBy" validate:"required"`
	TransactionDate *time.Time `json:"transactionDate,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}
