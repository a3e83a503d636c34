package documents

import "time"

// Transaction types recognized on the wire: documents are either
// handed over ("giao") or received ("nhận").
const (
	TypeHandedOver = "giao"
	TypeReceived   = "nhận"
)

// DocumentTransaction logs one hand-off event of a document artifact
// tied to a business. Rows cascade-delete with the owning business.
type DocumentTransaction struct {
	ID              int64     `json:"id"`
	BusinessID      int64     `json:"businessId"`
	DocumentType    string    `json:"documentType"`
	TransactionType string    `json:"transactionType"`
	HandledBy       string    `json:"handledBy"`
	TransactionDate time.Time `json:"transactionDate"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
}
