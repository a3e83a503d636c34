package documents

import (
	"context"
	"time"
)

// Service wraps document transaction rules around the repository.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create logs a hand-off event. A missing transaction date defaults to
// the current time.
func (s *Service) Create(ctx context.Context, businessID int64, req CreateDocumentTransactionRequest) (*DocumentTransaction, error) {
	date := s.now()
	if req.TransactionDate != nil {
		date = *req.TransactionDate
	}
	tx := DocumentTransaction{
		BusinessID:      businessID,
		DocumentType:    req.DocumentType,
		TransactionType: req.TransactionType,
		HandledBy:       req.HandledBy,
		TransactionDate: date,
		Notes:           req.Notes,
	}
	return s.repo.Create(ctx, tx)
}

// ListByBusiness returns the hand-off history of one business ordered
// by transaction date descending.
func (s *Service) ListByBusiness(ctx context.Context, businessID int64) ([]DocumentTransaction, error) {
	return s.repo.ListByBusiness(ctx, businessID)
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}
