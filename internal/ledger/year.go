package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// YearBook is the complete aggregated ledger for one fiscal year, ready
// for row expansion and pagination.
type YearBook struct {
	FiscalYearBE int
	Range        FiscalRange
	OpeningCash  decimal.Decimal
	ClosingCash  decimal.Decimal
	Days         []DayRecord
}

// BuildYear assembles the year book for fyBE from the full transaction
// history. Carry-forward restatements in the data are dropped and replaced
// by a synthetic carry-forward day computed from the per-fund prior-year
// balances, so brought-forward amounts are stated exactly once.
//
// The carry-forward day opens at zero and closes at the prior balance; it
// does not count toward the year-to-date receipt totals, which track actual
// in-year activity only.
func BuildYear(txs []Transaction, fyBE int) YearBook {
	real := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.IsCarryForward() {
			continue
		}
		real = append(real, tx)
	}

	p := PartitionByFiscalYear(real, fyBE)
	agg := Aggregate(p)

	book := YearBook{
		FiscalYearBE: fyBE,
		Range:        p.Range,
		OpeningCash:  agg.OpeningCash,
		Days:         agg.Days,
	}

	if len(p.InYear) > 0 && !agg.OpeningCash.IsZero() {
		if breakdown := CarryForwardBreakdown(txs, fyBE); len(breakdown) > 0 {
			book.Days = append([]DayRecord{carryForwardDay(breakdown, p.Range)}, book.Days...)
		}
	}

	if n := len(book.Days); n > 0 {
		book.ClosingCash = book.Days[n-1].Closing
	} else {
		book.ClosingCash = book.OpeningCash
	}
	return book
}

// carryForwardDay synthesises the opening day restating prior-year fund
// balances as receipts dated at the fiscal-year start.
func carryForwardDay(items []CarryItem, r FiscalRange) DayRecord {
	day := DayRecord{
		Date:         r.Start,
		CarryForward: true,
		PrevYearBE:   r.YearBE - 1,
	}
	for _, item := range items {
		day.Receipts = append(day.Receipts, Entry{
			Date:        r.Start,
			Description: fmt.Sprintf("%s (%s)", CarryForwardMarker, item.Label),
			Amounts:     item.Amounts,
		})
		day.TotalReceipts = day.TotalReceipts.Add(item.Amounts)
	}
	day.Closing = day.Opening.Add(day.TotalReceipts.Cash)
	return day
}
