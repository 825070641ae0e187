package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FundGroup enumerates the statutory top-level fund categories.
type FundGroup string

const (
	GroupBudget       FundGroup = "เงินงบประมาณ"
	GroupStateRevenue FundGroup = "เงินรายได้แผ่นดิน"
	GroupOffBudget    FundGroup = "เงินนอกงบประมาณ"
)

// FundType maps a fund code to its display label and category group.
type FundType struct {
	Code  string
	Label string
	Group FundGroup
}

// FundTypes is the statutory fund table in reporting order.
var FundTypes = []FundType{
	{Code: "fund-subsidy", Label: "เงินอุดหนุนรายหัว", Group: GroupBudget},
	{Code: "fund-15y-book", Label: "เงินเรียนฟรี 15 ปี - หนังสือเรียน", Group: GroupBudget},
	{Code: "fund-15y-supply", Label: "เงินเรียนฟรี 15 ปี - อุปกรณ์การเรียน", Group: GroupBudget},
	{Code: "fund-15y-uniform", Label: "เงินเรียนฟรี 15 ปี - เครื่องแบบนักเรียน", Group: GroupBudget},
	{Code: "fund-15y-activity", Label: "เงินเรียนฟรี 15 ปี - กิจกรรมพัฒนาคุณภาพผู้เรียน", Group: GroupBudget},
	{Code: "fund-poor", Label: "เงินปัจจัยพื้นฐานนักเรียนยากจน", Group: GroupBudget},
	{Code: "fund-state", Label: "เงินรายได้แผ่นดิน(ดอกเบี้ย)", Group: GroupStateRevenue},
	{Code: "fund-state-subsidy-interest", Label: "เงินรายได้แผ่นดิน-ดอกเบี้ยเงินอุดหนุน", Group: GroupStateRevenue},
	{Code: "fund-state-lunch-interest", Label: "เงินรายได้แผ่นดิน-ดอกเบี้ยเงินอาหารกลางวัน", Group: GroupStateRevenue},
	{Code: "fund-lunch", Label: "เงินอาหารกลางวัน", Group: GroupOffBudget},
	{Code: "fund-eef", Label: "เงิน กสศ.", Group: GroupOffBudget},
	{Code: "fund-school-income", Label: "เงินรายได้สถานศึกษา", Group: GroupOffBudget},
	{Code: "fund-tax", Label: "เงินภาษี 1%", Group: GroupOffBudget},
	{Code: "fund-safekeeping", Label: "บันทึกการรับเงินเพื่อเก็บรักษา", Group: GroupOffBudget},
}

// LookupFund resolves a fund code against the statutory table.
func LookupFund(code string) (FundType, bool) {
	for _, ft := range FundTypes {
		if ft.Code == code {
			return ft, true
		}
	}
	return FundType{}, false
}

// FundLabel returns the display label for a code, or the code itself when unknown.
func FundLabel(code string) string {
	if ft, ok := LookupFund(code); ok {
		return ft.Label
	}
	return code
}

// FundGroupOf returns the category group for a code. Unknown codes fall
// back to the off-budget group; callers treat that as a data-quality signal,
// never an error.
func FundGroupOf(code string) FundGroup {
	if ft, ok := LookupFund(code); ok {
		return ft.Group
	}
	return GroupOffBudget
}

// CarryForwardMarker is the literal phrase written into the description of a
// balance-brought-forward transaction. Carry-forward detection string-matches
// it for compatibility with existing ledgers.
const CarryForwardMarker = "ยกยอดมา"

// Transaction is the atomic ledger entry. Exactly one of Income and Expense
// is positive for a well-formed entry.
type Transaction struct {
	ID          int64
	Date        string // ISO calendar date, no time component
	FundType    string
	DocNo       string
	Description string
	Income      decimal.Decimal
	Expense     decimal.Decimal
	Payer       string // grouping header for receipts
	Payee       string // grouping header for payments
	IncomeRefID *int64 // weak reference to the income entry being drawn down
	BankID      string
}

// Net returns income minus expense.
func (t Transaction) Net() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// IsCarryForward reports whether the entry restates a prior-year balance.
func (t Transaction) IsCarryForward() bool {
	return strings.Contains(t.Description, CarryForwardMarker)
}

// HasValidDate reports whether Date parses as an ISO calendar date.
// Entries with malformed dates sit outside every fiscal range.
func (t Transaction) HasValidDate() bool {
	_, err := time.Parse("2006-01-02", t.Date)
	return err == nil
}

// Amounts carries the four parallel balance series. Cash always holds the
// full amount; exactly one of the remaining buckets mirrors it.
type Amounts struct {
	Cash      decimal.Decimal
	Budget    decimal.Decimal
	Revenue   decimal.Decimal
	NonBudget decimal.Decimal
}

// SplitAmount routes an amount into its category bucket by fund code.
func SplitAmount(amount decimal.Decimal, fundCode string) Amounts {
	a := Amounts{Cash: amount}
	switch FundGroupOf(fundCode) {
	case GroupBudget:
		a.Budget = amount
	case GroupStateRevenue:
		a.Revenue = amount
	default:
		a.NonBudget = amount
	}
	return a
}

// Add returns the bucket-wise sum of two amount sets.
func (a Amounts) Add(b Amounts) Amounts {
	return Amounts{
		Cash:      a.Cash.Add(b.Cash),
		Budget:    a.Budget.Add(b.Budget),
		Revenue:   a.Revenue.Add(b.Revenue),
		NonBudget: a.NonBudget.Add(b.NonBudget),
	}
}

// Additive reports whether cash equals the sum of the three category buckets.
func (a Amounts) Additive() bool {
	return a.Cash.Equal(a.Budget.Add(a.Revenue).Add(a.NonBudget))
}

// Entry is a single receipt or payment line within a day record.
type Entry struct {
	Date        string
	DocNo       string
	Description string
	HeaderTitle string
	Amounts
}

// SchoolMeta carries the school identity and signatory names threaded into
// report headers and signature blocks.
type SchoolMeta struct {
	SchoolName     string
	FinanceOfficer string
	Auditor        string
	Director       string
}
