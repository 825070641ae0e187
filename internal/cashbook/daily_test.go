package cashbook

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/banchee-erp/banchee-erp/internal/ledger"
	"github.com/banchee-erp/banchee-erp/internal/thai"
)

func TestBuildDailySnapshot(t *testing.T) {
	txs := []ledger.Transaction{
		tx("2023-10-02", "fund-tax", 45, 0),
		tx("2023-10-03", "fund-lunch", 600, 100),
		tx("2023-10-04", "fund-state-lunch-interest", 12, 0),
		tx("2023-10-05", "fund-subsidy", 2000, 500),
		tx("2023-10-06", "fund-eef", 300, 0),
		tx("2023-10-07", "fund-school-income", 150, 0),
		// after the cutoff, must not count
		tx("2023-11-01", "fund-lunch", 9999, 0),
	}

	s := BuildDailySnapshot(txs, "2023-10-31")
	require.Equal(t, "2023-10-31", s.Date)
	require.Len(t, s.Rows, 21)

	require.Equal(t, "เงินสดในมือ (ภาษีหัก ณ ที่จ่าย 1%)", s.Rows[0].Item)
	require.True(t, s.Rows[0].Amount.Equal(decimal.NewFromInt(45)))

	// document-count lines carry the unit caption and a zero amount
	require.Equal(t, "ฉบับ", s.Rows[1].Note)
	require.True(t, s.Rows[1].Amount.IsZero())

	byItem := map[string]DailyRow{}
	for _, r := range s.Rows {
		byItem[r.Item] = r
	}

	lunchAcct := byItem["2. บช.เงินอาหารกลางวันนักเรียน"]
	require.True(t, lunchAcct.AccountTotal)
	require.True(t, lunchAcct.Amount.Equal(decimal.NewFromInt(512)), "lunch balance plus its interest")

	lunchDetail := byItem["    - เงินอาหารกลางวัน"]
	require.True(t, lunchDetail.Detail)
	require.True(t, lunchDetail.Amount.Equal(decimal.NewFromInt(500)))

	subsidyAcct := byItem["3. บช.เงินอุดหนุนอื่น (บัญชี ธกส.)"]
	require.True(t, subsidyAcct.Amount.Equal(decimal.NewFromInt(1500)))

	// total sums cash plus the four accounts, never the detail rows:
	// 45 + 300 + 512 + 1500 + 150
	require.True(t, s.Total.Equal(decimal.NewFromInt(2507)))
}

func TestBuildDailySnapshotZeroDetailHidden(t *testing.T) {
	s := BuildDailySnapshot(nil, "2023-10-31")
	for _, r := range s.Rows {
		if r.Detail {
			require.Nil(t, r.Amount, "zero detail rows stay blank: %s", r.Item)
		}
	}
	require.True(t, s.Total.IsZero())
}

func TestRenderDailySinglePage(t *testing.T) {
	s := BuildDailySnapshot([]ledger.Transaction{
		tx("2023-10-02", "fund-lunch", 120, 0),
	}, "2023-10-31")
	doc := RenderDaily(SarabunMetrics{}, s, 2567, ledger.SchoolMeta{
		SchoolName:     "โรงเรียนทดสอบ",
		FinanceOfficer: "ครูการเงิน",
	})
	require.Len(t, doc.Pages, 1)
	p := doc.Pages[0]
	require.True(t, hasText(p, "รายงานเงินคงเหลือประจำวัน (ปีงบประมาณ 2567)"))
	require.True(t, hasText(p, "ส่วนราชการ โรงเรียนทดสอบ"))
	require.True(t, hasText(p, "(ครูการเงิน)"))
	require.True(t, hasText(p, thai.BahtText(s.Total)))
}

func TestMoneyParts(t *testing.T) {
	baht, satang := moneyParts(decimal.NewFromFloat(1234.56))
	require.Equal(t, "1,234", baht)
	require.Equal(t, "56", satang)

	baht, satang = moneyParts(decimal.Zero)
	require.Equal(t, "-", baht)
	require.Equal(t, "-", satang)
}
