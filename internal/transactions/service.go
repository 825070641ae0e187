package transactions

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banchee-erp/banchee-erp/internal/cashbook"
	"github.com/banchee-erp/banchee-erp/internal/ledger"
)

// RepositoryPort abstracts the transaction store for the service.
type RepositoryPort interface {
	List(ctx context.Context, f Filter) ([]ledger.Transaction, error)
	Get(ctx context.Context, id int64) (ledger.Transaction, error)
	Create(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error)
	CreateBatch(ctx context.Context, txs []ledger.Transaction) ([]ledger.Transaction, error)
	Update(ctx context.Context, tx ledger.Transaction) error
	Delete(ctx context.Context, id int64) error
	FundBalance(ctx context.Context, codes []string, asOf string) (decimal.Decimal, error)
}

// Service enforces transaction business rules and assembles the reports
// derived from the store.
type Service struct {
	repo  RepositoryPort
	rules []ledger.ClassifyRule
	now   func() time.Time
}

// NewService constructs the transaction service with the default keyword
// classification rules.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, rules: ledger.DefaultClassifyRules, now: time.Now}
}

// WithRules overrides the classification rule table.
func (s *Service) WithRules(rules []ledger.ClassifyRule) *Service {
	s.rules = rules
	return s
}

// List returns transactions matching the filter.
func (s *Service) List(ctx context.Context, f Filter) ([]ledger.Transaction, error) {
	return s.repo.List(ctx, f)
}

// Get returns one transaction.
func (s *Service) Get(ctx context.Context, id int64) (ledger.Transaction, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and stores a transaction. A missing fund type is filled
// in by the keyword classifier; an expense that would take its fund below
// zero is stored anyway with an overdraft warning attached.
func (s *Service) Create(ctx context.Context, in CreateInput) (ledger.Transaction, []Warning, error) {
	tx, err := s.fromInput(in)
	if err != nil {
		return ledger.Transaction{}, nil, err
	}
	warnings, err := s.advisories(ctx, tx)
	if err != nil {
		return ledger.Transaction{}, nil, err
	}
	created, err := s.repo.Create(ctx, tx)
	if err != nil {
		return ledger.Transaction{}, nil, err
	}
	return created, warnings, nil
}

// Update rewrites an existing transaction under the same rules as Create.
// Date edits are allowed; the store has no closed-period lock.
func (s *Service) Update(ctx context.Context, in UpdateInput) (ledger.Transaction, []Warning, error) {
	tx, err := s.fromInput(in.CreateInput)
	if err != nil {
		return ledger.Transaction{}, nil, err
	}
	tx.ID = in.ID
	warnings, err := s.advisories(ctx, tx)
	if err != nil {
		return ledger.Transaction{}, nil, err
	}
	if err := s.repo.Update(ctx, tx); err != nil {
		return ledger.Transaction{}, nil, err
	}
	return tx, warnings, nil
}

// Delete removes a transaction. Expenses drawing on it keep their reference;
// ResolveIncomeRef reports those as not found afterwards.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ResolveIncomeRef looks up the income entry an expense draws on.
func (s *Service) ResolveIncomeRef(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
	if tx.IncomeRefID == nil {
		return ledger.Transaction{}, fmt.Errorf("transactions: no income reference")
	}
	return s.repo.Get(ctx, *tx.IncomeRefID)
}

func (s *Service) fromInput(in CreateInput) (ledger.Transaction, error) {
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return ledger.Transaction{}, ErrInvalidDate
	}
	if in.Income.IsPositive() == in.Expense.IsPositive() {
		return ledger.Transaction{}, ErrExclusiveAmounts
	}
	if in.Income.IsNegative() || in.Expense.IsNegative() {
		return ledger.Transaction{}, ErrExclusiveAmounts
	}

	fundType := in.FundType
	bankID := in.BankID
	if fundType == "" {
		if rule, ok := ledger.Classify(s.rules, in.Description); ok {
			fundType = rule.FundType
			if bankID == "" {
				bankID = rule.BankHint
			}
		}
	}

	return ledger.Transaction{
		Date:        in.Date,
		FundType:    fundType,
		DocNo:       in.DocNo,
		Description: in.Description,
		Income:      in.Income.Round(2),
		Expense:     in.Expense.Round(2),
		Payer:       in.Payer,
		Payee:       in.Payee,
		IncomeRefID: in.IncomeRefID,
		BankID:      bankID,
	}, nil
}

// advisories computes the non-blocking warnings for a write.
func (s *Service) advisories(ctx context.Context, tx ledger.Transaction) ([]Warning, error) {
	if !tx.Expense.IsPositive() {
		return nil, nil
	}
	balance, err := s.repo.FundBalance(ctx, []string{tx.FundType}, tx.Date)
	if err != nil {
		return nil, err
	}
	if balance.Sub(tx.Expense).IsNegative() {
		return []Warning{{
			Code: WarnOverdraft,
			Message: fmt.Sprintf("ยอดคงเหลือ %s ไม่พอจ่าย (คงเหลือ %s)",
				ledger.FundLabel(tx.FundType), balance.StringFixed(2)),
		}}, nil
	}
	return nil, nil
}

// YearBook assembles the aggregated cash book for a fiscal year.
func (s *Service) YearBook(ctx context.Context, fyBE int) (ledger.YearBook, error) {
	txs, err := s.repo.List(ctx, Filter{})
	if err != nil {
		return ledger.YearBook{}, err
	}
	return ledger.BuildYear(txs, fyBE), nil
}

// CoverSheet assembles the opening-balance cover for a fiscal year.
func (s *Service) CoverSheet(ctx context.Context, fyBE int) (cashbook.CoverSheet, error) {
	txs, err := s.repo.List(ctx, Filter{})
	if err != nil {
		return cashbook.CoverSheet{}, err
	}
	return cashbook.BuildCoverSheet(txs, fyBE), nil
}

// DailySnapshot assembles the daily balance form for a date.
func (s *Service) DailySnapshot(ctx context.Context, asOf string) (cashbook.DailySnapshot, error) {
	if _, err := time.Parse("2006-01-02", asOf); err != nil {
		return cashbook.DailySnapshot{}, ErrInvalidDate
	}
	txs, err := s.repo.List(ctx, Filter{To: asOf})
	if err != nil {
		return cashbook.DailySnapshot{}, err
	}
	return cashbook.BuildDailySnapshot(txs, asOf), nil
}

// CarryForwardPreview computes the per-fund balances a year opening would
// restate, for the officer to confirm before posting.
func (s *Service) CarryForwardPreview(ctx context.Context, fyBE int) ([]ledger.CarryItem, error) {
	txs, err := s.repo.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	return ledger.CarryForwardBreakdown(txs, fyBE), nil
}

// PostCarryForward writes the confirmed carry-forward restatement entries.
func (s *Service) PostCarryForward(ctx context.Context, fyBE int) ([]ledger.Transaction, error) {
	txs, err := s.repo.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	items := ledger.CarryForwardBreakdown(txs, fyBE)
	return s.repo.CreateBatch(ctx, ledger.CarryForwardTransactions(items, fyBE))
}
