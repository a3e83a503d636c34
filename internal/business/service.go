package business

import (
	"context"
	"fmt"

	"github.com/bizdir/bizdir/internal/shared"
)

// Service wraps directory business rules around the repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateBusinessRequest) (*Business, error) {
	b := Business{
		Name:          req.Name,
		TaxID:         req.TaxID,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		Website:       req.Website,
		Industry:      req.Industry,
		ContactPerson: req.ContactPerson,
		Account:       req.Account,
		Password:      req.Password,
		BankAccount:   req.BankAccount,
		BankName:      req.BankName,
		CustomFields:  req.CustomFields,
		Notes:         req.Notes,
	}
	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Business, error) {
	return s.repo.Get(ctx, id)
}

// List normalizes page/limit to the defaults and returns one page plus
// the total row count.
func (s *Service) List(ctx context.Context, page, limit int) ([]Business, int, error) {
	return s.repo.List(ctx, shared.NewPagination(page, limit))
}

// Update applies a partial field replacement: only fields present in
// the request touch their columns.
func (s *Service) Update(ctx context.Context, id int64, req UpdateBusinessRequest) (*Business, error) {
	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.TaxID != nil {
		updates["taxId"] = *req.TaxID
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}
	if req.Industry != nil {
		updates["industry"] = *req.Industry
	}
	if req.ContactPerson != nil {
		updates["contactPerson"] = *req.ContactPerson
	}
	if req.Account != nil {
		updates["account"] = *req.Account
	}
	if req.Password != nil {
		updates["password"] = *req.Password
	}
	if req.BankAccount != nil {
		updates["bankAccount"] = *req.BankAccount
	}
	if req.BankName != nil {
		updates["bankName"] = *req.BankName
	}
	if req.CustomFields != nil {
		updates["customFields"] = *req.CustomFields
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	return s.repo.Update(ctx, id, updates)
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Search(ctx context.Context, req SearchBusinessRequest) ([]Business, error) {
	return s.repo.Search(ctx, req.Field, req.Value)
}

// ExportXLSX renders the entire directory as an Excel workbook.
func (s *Service) ExportXLSX(ctx context.Context) ([]byte, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("business: export: %w", err)
	}
	return renderXLSX(all)
}
