package ledger

import (
	"fmt"
	"time"
)

// FiscalRange is the Gregorian window of a Thai government fiscal year,
// Buddhist Era numbered, running Oct 1 through Sep 30 inclusive.
type FiscalRange struct {
	YearBE int
	Start  string
	End    string
}

// FiscalYearRange maps a BE fiscal year number to its Gregorian range.
func FiscalYearRange(fyBE int) FiscalRange {
	return FiscalRange{
		YearBE: fyBE,
		Start:  fmt.Sprintf("%04d-10-01", fyBE-544),
		End:    fmt.Sprintf("%04d-09-30", fyBE-543),
	}
}

// FiscalYearOf returns the BE fiscal year a date falls in, or 0 for a
// malformed date.
func FiscalYearOf(date string) int {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	year := d.Year() + 543
	if d.Month() >= time.October {
		return year + 1
	}
	return year
}

// Partition splits a transaction list around a fiscal year window.
type Partition struct {
	Range  FiscalRange
	Prior  []Transaction
	InYear []Transaction
}

// PartitionByFiscalYear splits transactions into prior-year and in-year
// slices for the given BE fiscal year. Entries with malformed dates are
// excluded from both sides. Pure; an empty input yields empty partitions.
//
// ISO dates compare lexicographically, so the window test is a plain string
// comparison against the range bounds.
func PartitionByFiscalYear(txs []Transaction, fyBE int) Partition {
	p := Partition{Range: FiscalYearRange(fyBE)}
	for _, tx := range txs {
		if !tx.HasValidDate() {
			continue
		}
		switch {
		case tx.Date < p.Range.Start:
			p.Prior = append(p.Prior, tx)
		case tx.Date <= p.Range.End:
			p.InYear = append(p.InYear, tx)
		}
	}
	return p
}
