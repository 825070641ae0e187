package transactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/banchee-erp/banchee-erp/internal/ledger"
	"github.com/banchee-erp/banchee-erp/internal/platform/db"
	"github.com/banchee-erp/banchee-erp/internal/shared"
)

const uniqueViolation = "23505"

// Repository persists cash-book transactions.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Filter narrows List results. Zero values mean unbounded.
type Filter struct {
	From     string
	To       string
	FundType string
}

const txColumns = `id, to_char(date, 'YYYY-MM-DD'), fund_type, doc_no, description, income::text, expense::text, payer, payee, income_ref_id, bank_id`

// List returns transactions matching the filter in date then id order.
func (r *Repository) List(ctx context.Context, f Filter) ([]ledger.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE 1=1`
	args := []any{}
	if f.From != "" {
		args = append(args, f.From)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if f.To != "" {
		args = append(args, f.To)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if f.FundType != "" {
		args = append(args, f.FundType)
		query += fmt.Sprintf(" AND fund_type = $%d", len(args))
	}
	query += " ORDER BY date, id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("transactions: list: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListAll returns every stored transaction in date then id order.
func (r *Repository) ListAll(ctx context.Context) ([]ledger.Transaction, error) {
	return r.List(ctx, Filter{})
}

// Get fetches one transaction by id.
func (r *Repository) Get(ctx context.Context, id int64) (ledger.Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+txColumns+` FROM transactions WHERE id = $1`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.Transaction{}, shared.ErrNotFound
	}
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("transactions: get %d: %w", id, err)
	}
	return tx, nil
}

// Create inserts a transaction and returns it with its assigned id.
func (r *Repository) Create(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO transactions (date, fund_type, doc_no, description, income, expense, payer, payee, income_ref_id, bank_id)
		 VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7, $8, $9, $10)
		 RETURNING id`,
		tx.Date, tx.FundType, tx.DocNo, tx.Description,
		tx.Income.String(), tx.Expense.String(),
		tx.Payer, tx.Payee, tx.IncomeRefID, tx.BankID,
	)
	if err := row.Scan(&tx.ID); err != nil {
		return ledger.Transaction{}, mapPgErr("create", err)
	}
	return tx, nil
}

// CreateBatch inserts a group of transactions atomically. Either every
// entry lands or none do.
func (r *Repository) CreateBatch(ctx context.Context, txs []ledger.Transaction) ([]ledger.Transaction, error) {
	created := make([]ledger.Transaction, 0, len(txs))
	err := db.WithTx(ctx, r.pool, func(dbtx pgx.Tx) error {
		for _, tx := range txs {
			row := dbtx.QueryRow(ctx,
				`INSERT INTO transactions (date, fund_type, doc_no, description, income, expense, payer, payee, income_ref_id, bank_id)
				 VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7, $8, $9, $10)
				 RETURNING id`,
				tx.Date, tx.FundType, tx.DocNo, tx.Description,
				tx.Income.String(), tx.Expense.String(),
				tx.Payer, tx.Payee, tx.IncomeRefID, tx.BankID,
			)
			if err := row.Scan(&tx.ID); err != nil {
				return mapPgErr("create batch", err)
			}
			created = append(created, tx)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update rewrites a transaction in place.
func (r *Repository) Update(ctx context.Context, tx ledger.Transaction) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE transactions
		 SET date = $2, fund_type = $3, doc_no = $4, description = $5,
		     income = $6::numeric, expense = $7::numeric, payer = $8, payee = $9,
		     income_ref_id = $10, bank_id = $11
		 WHERE id = $1`,
		tx.ID, tx.Date, tx.FundType, tx.DocNo, tx.Description,
		tx.Income.String(), tx.Expense.String(),
		tx.Payer, tx.Payee, tx.IncomeRefID, tx.BankID,
	)
	if err != nil {
		return mapPgErr("update", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a transaction. Expenses referencing it keep their dangling
// income_ref_id; resolution happens at read time.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("transactions: delete %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FundBalance sums income minus expense over the fund codes up to asOf.
func (r *Repository) FundBalance(ctx context.Context, codes []string, asOf string) (decimal.Decimal, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(income - expense), 0)::text
		 FROM transactions WHERE fund_type = ANY($1) AND date <= $2`,
		codes, asOf,
	)
	var s string
	if err := row.Scan(&s); err != nil {
		return decimal.Zero, fmt.Errorf("transactions: fund balance: %w", err)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("transactions: fund balance parse: %w", err)
	}
	return v, nil
}

func scanTransactions(rows pgx.Rows) ([]ledger.Transaction, error) {
	var out []ledger.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

func scanTransaction(row pgx.Row) (ledger.Transaction, error) {
	var tx ledger.Transaction
	var income, expense string
	err := row.Scan(&tx.ID, &tx.Date, &tx.FundType, &tx.DocNo, &tx.Description,
		&income, &expense, &tx.Payer, &tx.Payee, &tx.IncomeRefID, &tx.BankID)
	if err != nil {
		return ledger.Transaction{}, err
	}
	if tx.Income, err = decimal.NewFromString(income); err != nil {
		return ledger.Transaction{}, fmt.Errorf("transactions: parse income: %w", err)
	}
	if tx.Expense, err = decimal.NewFromString(expense); err != nil {
		return ledger.Transaction{}, fmt.Errorf("transactions: parse expense: %w", err)
	}
	return tx, nil
}

func mapPgErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateDocNo
	}
	return fmt.Errorf("transactions: %s: %w", op, err)
}

// touchedFiscalYears lists the fiscal years a date belongs to, used for
// report cache invalidation after writes.
func touchedFiscalYears(dates ...string) []int {
	seen := map[int]struct{}{}
	var out []int
	for _, d := range dates {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			continue
		}
		fy := ledger.FiscalYearOf(d)
		if _, ok := seen[fy]; !ok {
			seen[fy] = struct{}{}
			out = append(out, fy)
		}
	}
	return out
}
