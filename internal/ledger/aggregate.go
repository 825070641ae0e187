package ledger

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// DayRecord is the aggregated snapshot of one transaction date within a
// fiscal year. Records are rebuilt from the transaction list on every
// render and never persisted.
type DayRecord struct {
	Date          string
	CarryForward  bool
	PrevYearBE    int
	Opening       decimal.Decimal
	Closing       decimal.Decimal
	Receipts      []Entry
	Payments      []Entry
	TotalReceipts Amounts
	TotalPayments Amounts
	// Running totals since the start of the fiscal year, after this day.
	AccReceipts Amounts
	AccPayments Amounts
}

// Aggregation is the output of a fiscal-year balance walk.
type Aggregation struct {
	OpeningCash        decimal.Decimal
	OpeningAccReceipts Amounts
	OpeningAccPayments Amounts
	Days               []DayRecord
}

// runningTotals is the fold accumulator threaded across day records.
type runningTotals struct {
	cash     decimal.Decimal
	receipts Amounts
	payments Amounts
}

// Aggregate seeds opening balances from the prior-year slice, then folds the
// in-year slice grouped by unique date into day records. Pure: data-quality
// issues degrade via the documented fund-group fallback, never an error.
//
// When the in-year slice is empty a single synthetic day record dated at the
// range end is emitted so reports always have one row group to render.
func Aggregate(p Partition) Aggregation {
	agg := Aggregation{}
	for _, tx := range p.Prior {
		agg.OpeningCash = agg.OpeningCash.Add(tx.Net())
		if tx.Income.IsPositive() {
			agg.OpeningAccReceipts = agg.OpeningAccReceipts.Add(SplitAmount(tx.Income, tx.FundType))
		}
		if tx.Expense.IsPositive() {
			agg.OpeningAccPayments = agg.OpeningAccPayments.Add(SplitAmount(tx.Expense, tx.FundType))
		}
	}

	if len(p.InYear) == 0 {
		agg.Days = []DayRecord{{
			Date:       p.Range.End,
			PrevYearBE: p.Range.YearBE - 1,
			Opening:    agg.OpeningCash,
			Closing:    agg.OpeningCash,
		}}
		return agg
	}

	byDate := make(map[string][]Transaction)
	dates := make([]string, 0)
	for _, tx := range p.InYear {
		if _, ok := byDate[tx.Date]; !ok {
			dates = append(dates, tx.Date)
		}
		byDate[tx.Date] = append(byDate[tx.Date], tx)
	}
	sort.Strings(dates)

	run := runningTotals{cash: agg.OpeningCash}
	for _, date := range dates {
		day := buildDay(date, byDate[date], run, p.Range.YearBE)
		run = runningTotals{cash: day.Closing, receipts: day.AccReceipts, payments: day.AccPayments}
		agg.Days = append(agg.Days, day)
	}
	return agg
}

// buildDay produces one immutable day record from the day's transactions,
// kept in input order for reproducible display.
func buildDay(date string, txs []Transaction, run runningTotals, fyBE int) DayRecord {
	day := DayRecord{
		Date:       date,
		PrevYearBE: fyBE - 1,
		Opening:    run.cash,
	}
	for _, tx := range txs {
		if tx.Income.IsPositive() {
			day.Receipts = append(day.Receipts, Entry{
				Date:        tx.Date,
				DocNo:       tx.DocNo,
				Description: tx.Description,
				HeaderTitle: tx.Payer,
				Amounts:     SplitAmount(tx.Income, tx.FundType),
			})
		}
		if tx.Expense.IsPositive() {
			day.Payments = append(day.Payments, Entry{
				Date:        tx.Date,
				DocNo:       tx.DocNo,
				Description: tx.Description,
				HeaderTitle: tx.Payee,
				Amounts:     SplitAmount(tx.Expense, tx.FundType),
			})
		}
	}
	for _, e := range day.Receipts {
		day.TotalReceipts = day.TotalReceipts.Add(e.Amounts)
	}
	for _, e := range day.Payments {
		day.TotalPayments = day.TotalPayments.Add(e.Amounts)
	}
	day.Closing = day.Opening.Add(day.TotalReceipts.Cash).Sub(day.TotalPayments.Cash)
	day.AccReceipts = run.receipts.Add(day.TotalReceipts)
	day.AccPayments = run.payments.Add(day.TotalPayments)
	day.CarryForward = allCarryForward(day.Receipts)
	return day
}

func allCarryForward(receipts []Entry) bool {
	if len(receipts) == 0 {
		return false
	}
	for _, e := range receipts {
		if !strings.Contains(e.Description, CarryForwardMarker) {
			return false
		}
	}
	return true
}

// Balance is the point-in-time query behind the daily snapshot report: the
// signed sum of all entries whose fund code is in the set, dated at or
// before asOf.
func Balance(txs []Transaction, fundCodes []string, asOf string) decimal.Decimal {
	set := make(map[string]struct{}, len(fundCodes))
	for _, c := range fundCodes {
		set[c] = struct{}{}
	}
	total := decimal.Zero
	for _, tx := range txs {
		if !tx.HasValidDate() || tx.Date > asOf {
			continue
		}
		if _, ok := set[tx.FundType]; !ok {
			continue
		}
		total = total.Add(tx.Net())
	}
	return total
}
