package ledger

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// carryOrder is the statutory ordering of funds on the carry-forward day.
var carryOrder = []string{
	"fund-subsidy",
	"fund-15y-book",
	"fund-15y-supply",
	"fund-15y-uniform",
	"fund-15y-activity",
	"fund-poor",
	"fund-state",
	"fund-lunch",
	"fund-eef",
	"fund-school-income",
	"fund-tax",
	"fund-safekeeping",
}

var thaiCollator = sync.OnceValue(func() *collate.Collator {
	return collate.New(language.Thai)
})

// CarryItem is one fund's balance brought into a new fiscal year.
type CarryItem struct {
	FundType string
	Label    string
	Balance  decimal.Decimal
	Amounts
}

// PriorFundBalances sums income minus expense per fund code over entries
// strictly before the cutoff date. Carry-forward restatements are excluded
// so balances are never double counted; malformed dates fall outside.
func PriorFundBalances(txs []Transaction, before string) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if !tx.HasValidDate() || tx.Date >= before || tx.IsCarryForward() {
			continue
		}
		balances[tx.FundType] = balances[tx.FundType].Add(tx.Net())
	}
	return balances
}

// CarryForwardBreakdown lists the non-zero per-fund balances to bring into
// fiscal year fyBE, in statutory order with a Thai-collated label tie-break
// for funds outside the statutory table.
func CarryForwardBreakdown(txs []Transaction, fyBE int) []CarryItem {
	start := FiscalYearRange(fyBE).Start
	balances := PriorFundBalances(txs, start)

	items := make([]CarryItem, 0, len(balances))
	for code, bal := range balances {
		if bal.Abs().LessThan(decimal.New(1, -2)) {
			continue
		}
		items = append(items, CarryItem{
			FundType: code,
			Label:    FundLabel(code),
			Balance:  bal,
			Amounts:  SplitAmount(bal, code),
		})
	}

	rank := make(map[string]int, len(carryOrder))
	for i, code := range carryOrder {
		rank[code] = i
	}
	sort.SliceStable(items, func(i, j int) bool {
		ri, iKnown := rank[items[i].FundType]
		rj, jKnown := rank[items[j].FundType]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return thaiCollator().CompareString(items[i].Label, items[j].Label) < 0
		}
	})
	return items
}

// CarryForwardTransactions builds the restatement entries posted on
// confirmation: one dated Oct 1 per positive-balance fund, described with
// the marker phrase plus the fund label so later renders recognise them.
// IDs are left unset for the store to assign.
func CarryForwardTransactions(items []CarryItem, fyBE int) []Transaction {
	prevBE := fyBE - 1
	out := make([]Transaction, 0, len(items))
	for _, item := range items {
		if !item.Balance.IsPositive() {
			continue
		}
		out = append(out, Transaction{
			Date:        FiscalYearRange(fyBE).Start,
			DocNo:       "-",
			Description: fmt.Sprintf("%s (%s) จากปี %d", CarryForwardMarker, item.Label, prevBE),
			FundType:    item.FundType,
			Income:      item.Balance,
			Payer:       fmt.Sprintf("ยกยอดจากปีงบ %d", prevBE),
		})
	}
	return out
}
