package business

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/bizdir/bizdir/internal/shared"
)

var (
	// ErrNotFound indicates the business id does not exist.
	ErrNotFound = errors.New("business not found")
	// ErrDuplicateTaxID surfaces the tax_id unique constraint.
	ErrDuplicateTaxID = errors.New("tax id already exists")
)

// Repository defines persistence operations for the business directory.
type Repository interface {
	Create(ctx context.Context, b Business) (*Business, error)
	Get(ctx context.Context, id int64) (*Business, error)
	List(ctx context.Context, p shared.Pagination) ([]Business, int, error)
	All(ctx context.Context) ([]Business, error)
	Update(ctx context.Context, id int64, updates map[string]any) (*Business, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Search(ctx context.Context, field, value string) ([]Business, error)
}

const selectColumns = `id, name, tax_id, address, phone, email, website, industry,
       contact_person, account, password, bank_account, bank_name,
       custom_fields, notes, created_at`

// updatableColumns lists the columns a partial update may touch, keyed
// by their wire-level field names.
var updatableColumns = map[string]string{
	"name":          "name",
	"taxId":         "tax_id",
	"address":       "address",
	"phone":         "phone",
	"email":         "email",
	"website":       "website",
	"industry":      "industry",
	"contactPerson": "contact_person",
	"account":       "account",
	"password":      "password",
	"bankAccount":   "bank_account",
	"bankName":      "bank_name",
	"customFields":  "custom_fields",
	"notes":         "notes",
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) Create(ctx context.Context, b Business) (*Business, error) {
	if b.CustomFields == nil {
		b.CustomFields = map[string]string{}
	}
	query := `
		INSERT INTO businesses (name, tax_id, address, phone, email, website, industry,
		                        contact_person, account, password, bank_account, bank_name,
		                        custom_fields, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + selectColumns
	row := r.pool.QueryRow(ctx, query,
		b.Name, b.TaxID, b.Address, b.Phone, b.Email, b.Website, b.Industry,
		b.ContactPerson, b.Account, b.Password, b.BankAccount, b.BankName,
		b.CustomFields, b.Notes,
	)
	created, err := scanBusiness(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateTaxID
		}
		return nil, fmt.Errorf("business: create: %w", err)
	}
	return created, nil
}

func (r *pgRepository) Get(ctx context.Context, id int64) (*Business, error) {
	query := `SELECT ` + selectColumns + ` FROM businesses WHERE id = $1`
	b, err := scanBusiness(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("business: get: %w", err)
	}
	return b, nil
}

// List returns one page ordered by created_at descending plus the total
// row count. The two reads are issued concurrently and are not
// snapshot-consistent with each other; under concurrent writes the
// reported total may be stale by a small margin.
func (r *pgRepository) List(ctx context.Context, p shared.Pagination) ([]Business, int, error) {
	var (
		businesses []Business
		total      int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		query := `SELECT ` + selectColumns + `
			FROM businesses
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2`
		rows, err := r.pool.Query(gctx, query, p.Limit, p.Offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		businesses, err = collectBusinesses(rows)
		return err
	})
	g.Go(func() error {
		return r.pool.QueryRow(gctx, `SELECT COUNT(*) FROM businesses`).Scan(&total)
	})
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("business: list: %w", err)
	}
	return businesses, total, nil
}

func (r *pgRepository) All(ctx context.Context) ([]Business, error) {
	query := `SELECT ` + selectColumns + ` FROM businesses ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("business: all: %w", err)
	}
	defer rows.Close()
	return collectBusinesses(rows)
}

func (r *pgRepository) Update(ctx context.Context, id int64, updates map[string]any) (*Business, error) {
	if len(updates) == 0 {
		return r.Get(ctx, id)
	}

	query := "UPDATE businesses SET "
	var args []any
	argPos := 1
	for field, value := range updates {
		column, ok := updatableColumns[field]
		if !ok {
			continue
		}
		if argPos > 1 {
			query += ", "
		}
		query += fmt.Sprintf("%s = $%d", column, argPos)
		args = append(args, value)
		argPos++
	}
	if len(args) == 0 {
		return r.Get(ctx, id)
	}
	query += fmt.Sprintf(" WHERE id = $%d RETURNING ", argPos) + selectColumns
	args = append(args, id)

	b, err := scanBusiness(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicateTaxID
		}
		return nil, fmt.Errorf("business: update: %w", err)
	}
	return b, nil
}

func (r *pgRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM businesses WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("business: delete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Search dispatches on the field tag via the searchFields table. An
// unrecognized tag yields an empty result set, not an error.
func (r *pgRepository) Search(ctx context.Context, field, value string) ([]Business, error) {
	spec, ok := searchPredicate(field)
	if !ok {
		return []Business{}, nil
	}

	query := `SELECT ` + selectColumns + ` FROM businesses WHERE ` + spec.column
	arg := value
	if spec.mode == matchPartial {
		query += ` LIKE $1`
		arg = "%" + value + "%"
	} else {
		query += ` = $1`
	}

	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("business: search: %w", err)
	}
	defer rows.Close()
	return collectBusinesses(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBusiness(row scanner) (*Business, error) {
	var (
		b                                                 Business
		address, phone, email, website, industry          pgtype.Text
		contactPerson, account, password                  pgtype.Text
		bankAccount, bankName, notes                      pgtype.Text
	)
	err := row.Scan(
		&b.ID, &b.Name, &b.TaxID, &address, &phone, &email, &website, &industry,
		&contactPerson, &account, &password, &bankAccount, &bankName,
		&b.CustomFields, &notes, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Address = textPtr(address)
	b.Phone = textPtr(phone)
	b.Email = textPtr(email)
	b.Website = textPtr(website)
	b.Industry = textPtr(industry)
	b.ContactPerson = textPtr(contactPerson)
	b.Account = textPtr(account)
	b.Password = textPtr(password)
	b.BankAccount = textPtr(bankAccount)
	b.BankName = textPtr(bankName)
	b.Notes = textPtr(notes)
	if b.CustomFields == nil {
		b.CustomFields = map[string]string{}
	}
	return &b, nil
}

func collectBusinesses(rows pgx.Rows) ([]Business, error) {
	businesses := []Business{}
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, *b)
	}
	return businesses, rows.Err()
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	val := t.String
	return &val
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
