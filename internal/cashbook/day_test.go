package cashbook

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/banchee-erp/banchee-erp/internal/ledger"
)

func TestBuildDayRowsRegularDay(t *testing.T) {
	day := ledger.DayRecord{
		Date:    "2023-10-05",
		Opening: decimal.NewFromInt(1000),
		Closing: decimal.NewFromInt(1300),
		Receipts: []ledger.Entry{
			entry("บร.1", "รับเงินอุดหนุน", "", 500),
		},
		Payments: []ledger.Entry{
			entry("บจ.1", "ค่าวัสดุ", "", 100),
			entry("บจ.2", "ค่าไฟฟ้า", "", 100),
		},
		TotalReceipts: ledger.SplitAmount(decimal.NewFromInt(500), "fund-subsidy"),
		TotalPayments: ledger.SplitAmount(decimal.NewFromInt(200), "fund-lunch"),
		AccReceipts:   ledger.SplitAmount(decimal.NewFromInt(500), "fund-subsidy"),
		AccPayments:   ledger.SplitAmount(decimal.NewFromInt(200), "fund-lunch"),
	}

	rows := BuildDayRows(day)
	require.Equal(t, len(rows.Left), len(rows.Right), "sub-tables must stay row-aligned")

	open := rows.Left[0]
	require.Equal(t, "5 ต.ค. 2566", open.DateLabel)
	require.Equal(t, "ยอดยกมา", open.Label)
	require.True(t, open.Bold)
	require.True(t, open.Cash.Equal(decimal.NewFromInt(1000)))
	require.True(t, open.NonBudget.Equal(decimal.NewFromInt(1000)))
	require.Nil(t, open.Budget)

	// the payment side opening carries the label only
	require.Equal(t, "ยอดยกมา", rows.Right[0].Label)
	require.Nil(t, rows.Right[0].Cash)

	// one receipt padded against two payments
	require.Equal(t, "รับเงินอุดหนุน", rows.Left[1].Desc)
	require.True(t, rows.Left[2].IsEmpty())
	require.Equal(t, "ค่าวัสดุ", rows.Right[1].Desc)
	require.Equal(t, "ค่าไฟฟ้า", rows.Right[2].Desc)

	n := len(rows.Left)
	require.True(t, rows.Left[n-3].IsEmpty(), "receipts side spaces against the carried balance")
	require.Equal(t, "รวมรับ", rows.Left[n-2].Label)
	require.Equal(t, "รวมตั้งแต่ต้นปี", rows.Left[n-1].Label)

	carried := rows.Right[n-3]
	require.Equal(t, "ยอดยกไป", carried.Label)
	require.True(t, carried.Cash.Equal(decimal.NewFromInt(1300)))
	require.True(t, carried.NonBudget.Equal(decimal.NewFromInt(1300)))
	require.Equal(t, "รวมจ่าย", rows.Right[n-2].Label)
	require.Equal(t, "รวมตั้งแต่ต้นปี", rows.Right[n-1].Label)
}

func TestBuildDayRowsCarryForwardDay(t *testing.T) {
	day := ledger.DayRecord{
		Date:         "2023-10-01",
		CarryForward: true,
		PrevYearBE:   2566,
		Closing:      decimal.NewFromInt(1150),
		Receipts: []ledger.Entry{
			{Description: "ยกยอดมา (เงินอุดหนุนรายหัว)", Amounts: ledger.SplitAmount(decimal.NewFromInt(750), "fund-subsidy")},
			{Description: "ยกยอดมา (เงินอาหารกลางวัน)", Amounts: ledger.SplitAmount(decimal.NewFromInt(400), "fund-lunch")},
		},
		TotalReceipts: ledger.SplitAmount(decimal.NewFromInt(1150), "fund-subsidy"),
	}

	rows := BuildDayRows(day)
	require.Equal(t, len(rows.Left), len(rows.Right))

	require.Equal(t, "ยอดยกมาจากปี 2566", rows.Left[0].Label)
	require.Equal(t, "ยอดยกมาจากปี 2566", rows.Right[0].Label)
	require.True(t, rows.Left[0].Bold)
	require.Nil(t, rows.Left[0].Cash, "the per-fund rows carry the amounts")

	require.Equal(t, "1. เงินอุดหนุนรายหัว", rows.Left[1].Desc)
	require.Equal(t, "2. เงินอาหารกลางวัน", rows.Left[2].Desc)
	require.True(t, rows.Right[1].IsEmpty())
	require.True(t, rows.Right[2].IsEmpty())
}

func TestBuildDayRowsEmptyDayStillHasDataRow(t *testing.T) {
	day := ledger.DayRecord{Date: "2024-09-30"}
	rows := BuildDayRows(day)
	require.Equal(t, len(rows.Left), len(rows.Right))
	// opening + one padded data row + three summary rows per side
	require.Len(t, rows.Left, 5)
	require.True(t, rows.Left[1].IsEmpty())
}
