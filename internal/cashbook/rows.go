package cashbook

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/banchee-erp/banchee-erp/internal/ledger"
)

// PrintRow is one renderable line of a cash-book sub-table: a data row, a
// header/label-only row, or a bold summary row. Nil amounts leave the cell
// blank; a zero amount prints as "-".
type PrintRow struct {
	DateLabel string
	DocNo     string
	Desc      string
	Label     string // label-only rows render in the description column
	Bold      bool
	Cash      *decimal.Decimal
	Budget    *decimal.Decimal
	Revenue   *decimal.Decimal
	NonBudget *decimal.Decimal
}

// IsEmpty reports whether the row is a pure spacer.
func (r PrintRow) IsEmpty() bool {
	return r.DateLabel == "" && r.DocNo == "" && r.Desc == "" && r.Label == "" &&
		r.Cash == nil && r.Budget == nil && r.Revenue == nil && r.NonBudget == nil
}

func amt(d decimal.Decimal) *decimal.Decimal { return &d }

// ExpandRows walks a day's receipts or payments expanding header-title
// groups: a new non-empty header emits a header-only row and starts a
// group, repeats extend it, an empty header flushes. A flushed group of one
// stays unnumbered; two or more members are prefixed "1. ", "2. ", …
func ExpandRows(entries []ledger.Entry) []PrintRow {
	var rows []PrintRow
	var group []ledger.Entry
	lastHeader := ""

	flush := func() {
		numbered := len(group) > 1
		for i, e := range group {
			desc := e.Description
			if numbered {
				desc = fmt.Sprintf("%d. %s", i+1, desc)
			}
			rows = append(rows, dataRow(e, desc))
		}
		group = group[:0]
	}

	for _, e := range entries {
		switch {
		case e.HeaderTitle != "" && e.HeaderTitle != lastHeader:
			flush()
			rows = append(rows, PrintRow{DocNo: e.DocNo, Desc: e.HeaderTitle})
			group = append(group, e)
			lastHeader = e.HeaderTitle
		case e.HeaderTitle != "":
			group = append(group, e)
		default:
			flush()
			rows = append(rows, dataRow(e, e.Description))
			lastHeader = ""
		}
	}
	flush()
	return rows
}

func dataRow(e ledger.Entry, desc string) PrintRow {
	return PrintRow{
		DocNo:     e.DocNo,
		Desc:      desc,
		Cash:      amt(e.Cash),
		Budget:    amt(e.Budget),
		Revenue:   amt(e.Revenue),
		NonBudget: amt(e.NonBudget),
	}
}

var parenRe = regexp.MustCompile(`\(([^)]+)\)`)

// carryForwardRows renders a carry-forward day's receipts: always numbered,
// labelled by the parenthesised fund name with the marker boilerplate
// stripped.
func carryForwardRows(entries []ledger.Entry) []PrintRow {
	rows := make([]PrintRow, 0, len(entries))
	for i, e := range entries {
		label := e.Description
		if m := parenRe.FindStringSubmatch(label); m != nil {
			label = m[1]
		}
		rows = append(rows, PrintRow{
			Desc:      fmt.Sprintf("%d. %s", i+1, label),
			Cash:      amt(e.Cash),
			Budget:    amt(e.Budget),
			Revenue:   amt(e.Revenue),
			NonBudget: amt(e.NonBudget),
		})
	}
	return rows
}
