package cashbook

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/banchee-erp/banchee-erp/internal/ledger"
)

func tx(date, fund string, income, expense int64) ledger.Transaction {
	return ledger.Transaction{
		Date:     date,
		FundType: fund,
		Income:   decimal.NewFromInt(income),
		Expense:  decimal.NewFromInt(expense),
	}
}

func TestBuildCoverSheetBalances(t *testing.T) {
	txs := []ledger.Transaction{
		tx("2023-06-01", "fund-subsidy", 1000, 200),
		tx("2023-07-15", "fund-lunch", 500, 0),
		tx("2023-08-01", "fund-tax", 30, 0),
		// inside the new year, must not count
		tx("2023-10-02", "fund-subsidy", 9999, 0),
		// malformed date, skipped
		tx("bad-date", "fund-lunch", 100, 0),
	}

	sheet := BuildCoverSheet(txs, 2567)
	require.Equal(t, 2567, sheet.FiscalYearBE)
	require.Equal(t, "1 ตุลาคม 2566", sheet.StartLabel)
	require.Len(t, sheet.Rows, 21)

	byLabel := map[string]CoverRow{}
	for _, r := range sheet.Rows {
		byLabel[r.Label] = r
	}

	cash := byLabel["เงินสด (ภาษีหัก ณ ที่จ่าย)"]
	require.NotNil(t, cash.Debit)
	require.True(t, cash.Debit.Equal(decimal.NewFromInt(30)))
	require.Nil(t, cash.Credit)

	subsidyDeposit := byLabel["   - เงินอุดหนุนรายหัว"]
	require.True(t, subsidyDeposit.Debit.Equal(decimal.NewFromInt(800)))

	subsidyCredit := byLabel["เงินอุดหนุนรายหัว"]
	require.Nil(t, subsidyCredit.Debit)
	require.True(t, subsidyCredit.Credit.Equal(decimal.NewFromInt(800)))

	// debit: 30 tax + 800 subsidy + 500 lunch; credit mirrors them
	require.True(t, sheet.TotalDebit.Equal(decimal.NewFromInt(1330)))
	require.True(t, sheet.TotalCredit.Equal(decimal.NewFromInt(1330)))
	require.True(t, sheet.Balanced())
}

func TestBuildCoverSheetSchoolIncomeOnBothSides(t *testing.T) {
	sheet := BuildCoverSheet([]ledger.Transaction{
		tx("2023-05-01", "fund-school-income", 250, 0),
	}, 2567)

	var found bool
	for _, r := range sheet.Rows {
		if r.Label == "   - เงินรายได้สถานศึกษา" {
			found = true
			require.True(t, r.Debit.Equal(decimal.NewFromInt(250)))
			require.True(t, r.Credit.Equal(decimal.NewFromInt(250)))
		}
	}
	require.True(t, found)
	require.True(t, sheet.Balanced())
}

func TestBuildCoverSheetEmptyHistory(t *testing.T) {
	sheet := BuildCoverSheet(nil, 2567)
	require.True(t, sheet.TotalDebit.IsZero())
	require.True(t, sheet.TotalCredit.IsZero())
	require.True(t, sheet.Balanced())
}

func TestRenderCoverSinglePage(t *testing.T) {
	sheet := BuildCoverSheet([]ledger.Transaction{
		tx("2023-05-01", "fund-subsidy", 1200, 0),
	}, 2567)
	doc := RenderCover(SarabunMetrics{}, sheet, ledger.SchoolMeta{
		SchoolName:     "โรงเรียนทดสอบ",
		FinanceOfficer: "ครูการเงิน",
		Director:       "ผอ.ทดสอบ",
	})
	require.Equal(t, portraitW, doc.Width)
	require.Equal(t, portraitH, doc.Height)
	require.Len(t, doc.Pages, 1)
	require.True(t, hasText(doc.Pages[0], "เอกสารหมายเลข 1"))
	require.True(t, hasText(doc.Pages[0], "ปีงบประมาณ 2567"))
	require.True(t, hasText(doc.Pages[0], "รวมทั้งสิ้น"))
}
