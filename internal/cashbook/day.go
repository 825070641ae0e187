package cashbook

import (
	"fmt"

	"github.com/banchee-erp/banchee-erp/internal/ledger"
	"github.com/banchee-erp/banchee-erp/internal/thai"
)

// DayRows is a day record expanded into two parallel sub-table row slices.
// Left carries receipts, right carries payments; both slices always have the
// same length so the two tables stay row-aligned on the page.
type DayRows struct {
	Left  []PrintRow
	Right []PrintRow
}

// BuildDayRows expands one aggregated day into its printable row pair.
//
// A regular day opens with a bold brought-forward row on each side, then the
// header-grouped data rows padded to equal length, then the summary block:
// a spacer, daily total and year-to-date total on the left against carried
// balance, daily total and year-to-date total on the right.
//
// A carry-forward day replaces the brought-forward row with a prior-year
// label and lists the per-fund balances as numbered receipts.
func BuildDayRows(day ledger.DayRecord) DayRows {
	dateLabel := thai.FormatDateShort(day.Date)
	var left, right []PrintRow

	if day.CarryForward {
		label := fmt.Sprintf("ยอดยกมาจากปี %d", day.PrevYearBE)
		left = append(left, PrintRow{DateLabel: dateLabel, Label: label, Bold: true})
		right = append(right, PrintRow{DateLabel: dateLabel, Label: label, Bold: true})
		left = append(left, padRows(carryForwardRows(day.Receipts), ExpandRows(day.Payments), &right)...)
	} else {
		opening := day.Opening
		left = append(left, PrintRow{
			DateLabel: dateLabel, Label: "ยอดยกมา", Bold: true,
			Cash: amt(opening), NonBudget: amt(opening),
		})
		right = append(right, PrintRow{DateLabel: dateLabel, Label: "ยอดยกมา", Bold: true})
		left = append(left, padRows(ExpandRows(day.Receipts), ExpandRows(day.Payments), &right)...)
	}

	closing := day.Closing
	left = append(left,
		PrintRow{},
		summaryRow("รวมรับ", day.TotalReceipts),
		summaryRow("รวมตั้งแต่ต้นปี", day.AccReceipts),
	)
	right = append(right,
		PrintRow{Label: "ยอดยกไป", Bold: true, Cash: amt(closing), NonBudget: amt(closing)},
		summaryRow("รวมจ่าย", day.TotalPayments),
		summaryRow("รวมตั้งแต่ต้นปี", day.AccPayments),
	)
	return DayRows{Left: left, Right: right}
}

// padRows appends rs to *right padded against ls, then returns ls padded to
// the common length. Both sides end up with at least one data row.
func padRows(ls, rs []PrintRow, right *[]PrintRow) []PrintRow {
	n := max(max(len(ls), len(rs)), 1)
	for len(ls) < n {
		ls = append(ls, PrintRow{})
	}
	for len(rs) < n {
		rs = append(rs, PrintRow{})
	}
	*right = append(*right, rs...)
	return ls
}

func summaryRow(label string, a ledger.Amounts) PrintRow {
	return PrintRow{
		Label: label, Bold: true,
		Cash: amt(a.Cash), Budget: amt(a.Budget), Revenue: amt(a.Revenue), NonBudget: amt(a.NonBudget),
	}
}
