package documents

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrBusinessMissing surfaces the business_id foreign key: the owning
// business does not exist.
var ErrBusinessMissing = errors.New("business does not exist")

// Repository defines persistence operations for document transactions.
type Repository interface {
	Create(ctx context.Context, tx DocumentTransaction) (*DocumentTransaction, error)
	ListByBusiness(ctx context.Context, businessID int64) ([]DocumentTransaction, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

const selectColumns = `id, business_id, document_type, transaction_type, handled_by,
       transaction_date, notes, created_at`

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) Create(ctx context.Context, tx DocumentTransaction) (*DocumentTransaction, error) {
	query := `
		INSERT INTO document_transactions (business_id, document_type, transaction_type,
		                                   handled_by, transaction_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + selectColumns
	row := r.pool.QueryRow(ctx, query,
		tx.BusinessID, tx.DocumentType, tx.TransactionType,
		tx.HandledBy, tx.TransactionDate, tx.Notes,
	)
	created, err := scanTransaction(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrBusinessMissing
		}
		return nil, fmt.Errorf("documents: create: %w", err)
	}
	return created, nil
}

func (r *pgRepository) ListByBusiness(ctx context.Context, businessID int64) ([]DocumentTransaction, error) {
	query := `SELECT ` + selectColumns + `
		FROM document_transactions
		WHERE business_id = $1
		ORDER BY transaction_date DESC`
	rows, err := r.pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("documents: list: %w", err)
	}
	defer rows.Close()

	transactions := []DocumentTransaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("documents: list scan: %w", err)
		}
		transactions = append(transactions, *tx)
	}
	return transactions, rows.Err()
}

func (r *pgRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM document_transactions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("documents: delete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*DocumentTransaction, error) {
	var (
		tx    DocumentTransaction
		notes pgtype.Text
	)
	err := row.Scan(
		&tx.ID, &tx.BusinessID, &tx.DocumentType, &tx.TransactionType,
		&tx.HandledBy, &tx.TransactionDate, &notes, &tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		val := notes.String
		tx.Notes = &val
	}
	return &tx, nil
}
