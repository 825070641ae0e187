package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestAggregateSeedsOpeningFromPrior(t *testing.T) {
	p := Partition{
		Range: FiscalYearRange(2567),
		Prior: []Transaction{
			{Date: "2023-05-01", FundType: "fund-subsidy", Income: d(1000)},
			{Date: "2023-06-01", FundType: "fund-subsidy", Expense: d(300)},
		},
		InYear: []Transaction{
			{Date: "2023-10-02", FundType: "fund-subsidy", Income: d(500)},
		},
	}
	agg := Aggregate(p)
	require.True(t, agg.OpeningCash.Equal(d(700)))
	require.Len(t, agg.Days, 1)
	require.True(t, agg.Days[0].Opening.Equal(d(700)))
	require.True(t, agg.Days[0].Closing.Equal(d(1200)))
}

func TestAggregateGroupsByDateAndChains(t *testing.T) {
	p := Partition{
		Range: FiscalYearRange(2567),
		InYear: []Transaction{
			{Date: "2023-10-05", FundType: "fund-subsidy", Income: d(100)},
			{Date: "2023-10-02", FundType: "fund-subsidy", Income: d(200)},
			{Date: "2023-10-05", FundType: "fund-lunch", Expense: d(30)},
		},
	}
	agg := Aggregate(p)
	require.Len(t, agg.Days, 2)

	first, second := agg.Days[0], agg.Days[1]
	require.Equal(t, "2023-10-02", first.Date)
	require.Equal(t, "2023-10-05", second.Date)

	// Closing of one day is the opening of the next.
	require.True(t, first.Closing.Equal(second.Opening))
	require.True(t, second.Closing.Equal(d(270)))

	// Running totals accumulate across days.
	require.True(t, second.AccReceipts.Cash.Equal(d(300)))
	require.True(t, second.AccPayments.Cash.Equal(d(30)))
}

func TestAggregateEmptyYearEmitsSyntheticDay(t *testing.T) {
	p := Partition{
		Range: FiscalYearRange(2567),
		Prior: []Transaction{
			{Date: "2023-04-01", FundType: "fund-subsidy", Income: d(900)},
		},
	}
	agg := Aggregate(p)
	require.Len(t, agg.Days, 1)
	day := agg.Days[0]
	require.Equal(t, "2024-09-30", day.Date)
	require.True(t, day.Opening.Equal(d(900)))
	require.True(t, day.Closing.Equal(d(900)))
	require.Empty(t, day.Receipts)
	require.Empty(t, day.Payments)
}

func TestAggregateSplitsByFundGroup(t *testing.T) {
	p := Partition{
		Range: FiscalYearRange(2567),
		InYear: []Transaction{
			{Date: "2023-10-02", FundType: "fund-subsidy", Income: d(100)},
			{Date: "2023-10-02", FundType: "fund-state", Income: d(40)},
			{Date: "2023-10-02", FundType: "fund-lunch", Income: d(60)},
			{Date: "2023-10-02", FundType: "mystery-fund", Income: d(5)},
		},
	}
	agg := Aggregate(p)
	total := agg.Days[0].TotalReceipts
	require.True(t, total.Cash.Equal(d(205)))
	require.True(t, total.Budget.Equal(d(100)))
	require.True(t, total.Revenue.Equal(d(40)))
	// Unknown codes fall back to the off-budget bucket.
	require.True(t, total.NonBudget.Equal(d(65)))
}

func TestAggregateHeaderTitles(t *testing.T) {
	p := Partition{
		Range: FiscalYearRange(2567),
		InYear: []Transaction{
			{Date: "2023-10-02", FundType: "fund-subsidy", Income: d(100), Payer: "สพฐ."},
			{Date: "2023-10-02", FundType: "fund-subsidy", Expense: d(20), Payee: "ร้านค้า"},
		},
	}
	agg := Aggregate(p)
	require.Equal(t, "สพฐ.", agg.Days[0].Receipts[0].HeaderTitle)
	require.Equal(t, "ร้านค้า", agg.Days[0].Payments[0].HeaderTitle)
}

func TestBalance(t *testing.T) {
	txs := []Transaction{
		{Date: "2023-10-01", FundType: "fund-lunch", Income: d(100)},
		{Date: "2023-10-05", FundType: "fund-lunch", Expense: d(30)},
		{Date: "2023-10-09", FundType: "fund-subsidy", Income: d(500)},
		{Date: "2023-10-20", FundType: "fund-lunch", Income: d(10)},
		{Date: "bad", FundType: "fund-lunch", Income: d(999)},
	}
	got := Balance(txs, []string{"fund-lunch"}, "2023-10-10")
	require.True(t, got.Equal(d(70)), "got %s", got)

	both := Balance(txs, []string{"fund-lunch", "fund-subsidy"}, "2023-12-31")
	require.True(t, both.Equal(d(580)), "got %s", both)
}
