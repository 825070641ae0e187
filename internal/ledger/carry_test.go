package ledger

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPriorFundBalances(t *testing.T) {
	txs := []Transaction{
		{Date: "2023-05-01", FundType: "fund-subsidy", Income: d(1000)},
		{Date: "2023-06-01", FundType: "fund-subsidy", Expense: d(250)},
		{Date: "2023-07-01", FundType: "fund-lunch", Income: d(400)},
		// restatement rows must not double count
		{Date: "2023-10-01", FundType: "fund-subsidy", Income: d(750), Description: "ยกยอดมา (เงินอุดหนุนรายหัว) จากปี 2566"},
		// at or after the cutoff
		{Date: "2023-10-01", FundType: "fund-lunch", Income: d(99)},
		{Date: "bad-date", FundType: "fund-lunch", Income: d(99)},
	}
	balances := PriorFundBalances(txs, "2023-10-01")
	require.True(t, balances["fund-subsidy"].Equal(d(750)))
	require.True(t, balances["fund-lunch"].Equal(d(400)))
	require.Len(t, balances, 2)
}

func TestCarryForwardBreakdownOrderAndFiltering(t *testing.T) {
	txs := []Transaction{
		{Date: "2023-05-01", FundType: "fund-lunch", Income: d(400)},
		{Date: "2023-05-02", FundType: "fund-subsidy", Income: d(1000)},
		{Date: "2023-05-03", FundType: "fund-tax", Income: decimal.NewFromFloat(0.004)},
		{Date: "2023-05-04", FundType: "fund-school-income", Income: d(10)},
	}
	items := CarryForwardBreakdown(txs, 2567)
	require.Len(t, items, 3, "sub-cent balances are dropped")
	require.Equal(t, "fund-subsidy", items[0].FundType)
	require.Equal(t, "fund-lunch", items[1].FundType)
	require.Equal(t, "fund-school-income", items[2].FundType)
	require.Equal(t, "เงินอุดหนุนรายหัว", items[0].Label)
	require.True(t, items[0].Amounts.Budget.Equal(d(1000)))
	require.True(t, items[1].Amounts.NonBudget.Equal(d(400)))
}

func TestCarryForwardBreakdownUnknownFundsSortLast(t *testing.T) {
	txs := []Transaction{
		{Date: "2023-05-01", FundType: "zz-unknown", Income: d(5)},
		{Date: "2023-05-02", FundType: "fund-safekeeping", Income: d(7)},
	}
	items := CarryForwardBreakdown(txs, 2567)
	require.Len(t, items, 2)
	require.Equal(t, "fund-safekeeping", items[0].FundType)
	require.Equal(t, "zz-unknown", items[1].FundType)
}

func TestCarryForwardTransactions(t *testing.T) {
	items := []CarryItem{
		{FundType: "fund-subsidy", Label: "เงินอุดหนุนรายหัว", Balance: d(750)},
		{FundType: "fund-lunch", Label: "เงินอาหารกลางวัน", Balance: d(-30)},
	}
	out := CarryForwardTransactions(items, 2567)
	require.Len(t, out, 1, "negative balances are not restated")

	tx := out[0]
	require.Equal(t, "2023-10-01", tx.Date)
	require.Equal(t, int64(0), tx.ID)
	require.Equal(t, "-", tx.DocNo)
	require.True(t, tx.Income.Equal(d(750)))
	require.True(t, tx.IsCarryForward())
	if !strings.Contains(tx.Description, "เงินอุดหนุนรายหัว") {
		t.Fatalf("expected fund label in description, got %q", tx.Description)
	}
	if !strings.Contains(tx.Description, "2566") {
		t.Fatalf("expected prior year in description, got %q", tx.Description)
	}
}
