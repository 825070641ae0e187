package transactions

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/banchee-erp/banchee-erp/internal/ledger"
	"github.com/banchee-erp/banchee-erp/internal/shared"
)

// stubPort is an in-memory RepositoryPort for service tests.
type stubPort struct {
	txs     []ledger.Transaction
	nextID  int64
	balance decimal.Decimal
}

func (s *stubPort) List(_ context.Context, f Filter) ([]ledger.Transaction, error) {
	var out []ledger.Transaction
	for _, tx := range s.txs {
		if f.To != "" && tx.Date > f.To {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func (s *stubPort) Get(_ context.Context, id int64) (ledger.Transaction, error) {
	for _, tx := range s.txs {
		if tx.ID == id {
			return tx, nil
		}
	}
	return ledger.Transaction{}, shared.ErrNotFound
}

func (s *stubPort) Create(_ context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
	s.nextID++
	tx.ID = s.nextID
	s.txs = append(s.txs, tx)
	return tx, nil
}

func (s *stubPort) CreateBatch(_ context.Context, txs []ledger.Transaction) ([]ledger.Transaction, error) {
	out := make([]ledger.Transaction, 0, len(txs))
	for _, tx := range txs {
		created, _ := s.Create(context.Background(), tx)
		out = append(out, created)
	}
	return out, nil
}

func (s *stubPort) Update(_ context.Context, tx ledger.Transaction) error {
	for i := range s.txs {
		if s.txs[i].ID == tx.ID {
			s.txs[i] = tx
			return nil
		}
	}
	return shared.ErrNotFound
}

func (s *stubPort) Delete(_ context.Context, id int64) error { return nil }

func (s *stubPort) FundBalance(_ context.Context, _ []string, _ string) (decimal.Decimal, error) {
	return s.balance, nil
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(&stubPort{})
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateInput
		want error
	}{
		{"bad date", CreateInput{Date: "05/10/2023", Description: "x", Income: decimal.NewFromInt(1)}, ErrInvalidDate},
		{"both amounts", CreateInput{Date: "2023-10-05", Description: "x", Income: decimal.NewFromInt(1), Expense: decimal.NewFromInt(1)}, ErrExclusiveAmounts},
		{"neither amount", CreateInput{Date: "2023-10-05", Description: "x"}, ErrExclusiveAmounts},
		{"negative income", CreateInput{Date: "2023-10-05", Description: "x", Income: decimal.NewFromInt(-5), Expense: decimal.NewFromInt(5)}, ErrExclusiveAmounts},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Create(ctx, tc.in)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreateClassifiesEmptyFundType(t *testing.T) {
	repo := &stubPort{balance: decimal.NewFromInt(1000)}
	svc := NewService(repo)

	created, warnings, err := svc.Create(context.Background(), CreateInput{
		Date:        "2023-10-05",
		Description: "รับดอกเบี้ยเงินอาหารกลางวัน ไตรมาส 1",
		Income:      decimal.NewFromInt(25),
	})
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, "fund-state-lunch-interest", created.FundType)
	require.Equal(t, "bank-lunch", created.BankID, "the matching rule also hints the bank account")
	require.NotZero(t, created.ID)
}

func TestCreateKeepsExplicitFundType(t *testing.T) {
	svc := NewService(&stubPort{balance: decimal.NewFromInt(1000)})

	created, _, err := svc.Create(context.Background(), CreateInput{
		Date:        "2023-10-05",
		FundType:    "fund-lunch",
		Description: "ดอกเบี้ยเงินฝากธนาคาร",
		Income:      decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.Equal(t, "fund-lunch", created.FundType, "explicit fund type wins over the classifier")
}

func TestCreateRoundsAmounts(t *testing.T) {
	svc := NewService(&stubPort{balance: decimal.NewFromInt(1000)})
	created, _, err := svc.Create(context.Background(), CreateInput{
		Date:        "2023-10-05",
		FundType:    "fund-lunch",
		Description: "ดอกเบี้ย",
		Income:      decimal.RequireFromString("10.006"),
	})
	require.NoError(t, err)
	require.Equal(t, "10.01", created.Income.StringFixed(2))
}

func TestCreateOverdraftWarning(t *testing.T) {
	svc := NewService(&stubPort{balance: decimal.NewFromInt(100)})

	created, warnings, err := svc.Create(context.Background(), CreateInput{
		Date:        "2023-10-05",
		FundType:    "fund-lunch",
		Description: "ค่าอาหาร",
		Expense:     decimal.NewFromInt(250),
	})
	require.NoError(t, err, "the write goes through, the warning is advisory")
	require.NotZero(t, created.ID)
	require.Len(t, warnings, 1)
	require.Equal(t, WarnOverdraft, warnings[0].Code)
	require.Contains(t, warnings[0].Message, "เงินอาหารกลางวัน")
	require.Contains(t, warnings[0].Message, "100.00")
}

func TestCreateNoWarningWhenCovered(t *testing.T) {
	svc := NewService(&stubPort{balance: decimal.NewFromInt(500)})
	_, warnings, err := svc.Create(context.Background(), CreateInput{
		Date:        "2023-10-05",
		FundType:    "fund-lunch",
		Description: "ค่าอาหาร",
		Expense:     decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	require.Empty(t, warnings, "spending exactly the balance is not an overdraft")
}

func TestUpdateKeepsID(t *testing.T) {
	repo := &stubPort{balance: decimal.NewFromInt(1000)}
	svc := NewService(repo)
	created, _, err := svc.Create(context.Background(), CreateInput{
		Date:        "2023-10-05",
		FundType:    "fund-lunch",
		Description: "เดิม",
		Income:      decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	updated, _, err := svc.Update(context.Background(), UpdateInput{
		ID: created.ID,
		CreateInput: CreateInput{
			Date:        "2023-10-06",
			FundType:    "fund-lunch",
			Description: "แก้ไข",
			Income:      decimal.NewFromInt(150),
		},
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "แก้ไข", repo.txs[0].Description)
}

func TestResolveIncomeRef(t *testing.T) {
	repo := &stubPort{}
	svc := NewService(repo)
	income, _ := repo.Create(context.Background(), ledger.Transaction{Date: "2023-10-05", Income: decimal.NewFromInt(100)})

	got, err := svc.ResolveIncomeRef(context.Background(), ledger.Transaction{IncomeRefID: &income.ID})
	require.NoError(t, err)
	require.Equal(t, income.ID, got.ID)

	_, err = svc.ResolveIncomeRef(context.Background(), ledger.Transaction{})
	require.Error(t, err)
}

func TestPostCarryForward(t *testing.T) {
	repo := &stubPort{txs: []ledger.Transaction{
		{ID: 1, Date: "2023-06-01", FundType: "fund-subsidy", Income: decimal.NewFromInt(800)},
		{ID: 2, Date: "2023-07-01", FundType: "fund-lunch", Income: decimal.NewFromInt(300)},
	}, nextID: 2}
	svc := NewService(repo)

	created, err := svc.PostCarryForward(context.Background(), 2567)
	require.NoError(t, err)
	require.Len(t, created, 2)
	for _, tx := range created {
		require.Equal(t, "2023-10-01", tx.Date)
		require.Equal(t, "-", tx.DocNo)
		require.Contains(t, tx.Description, ledger.CarryForwardMarker)
		require.NotZero(t, tx.ID)
	}
	require.Len(t, repo.txs, 4)
}

func TestDailySnapshotRejectsBadDate(t *testing.T) {
	svc := NewService(&stubPort{})
	_, err := svc.DailySnapshot(context.Background(), "31-10-2023")
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestYearBookFromStore(t *testing.T) {
	repo := &stubPort{txs: []ledger.Transaction{
		{ID: 1, Date: "2023-10-05", FundType: "fund-subsidy", Income: decimal.NewFromInt(1000)},
	}, nextID: 1}
	svc := NewService(repo)

	book, err := svc.YearBook(context.Background(), 2567)
	require.NoError(t, err)
	require.Equal(t, 2567, book.FiscalYearBE)
	require.True(t, book.ClosingCash.Equal(decimal.NewFromInt(1000)))
}
