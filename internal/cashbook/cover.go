package cashbook

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/banchee-erp/banchee-erp/internal/ledger"
	"github.com/banchee-erp/banchee-erp/internal/thai"
)

// coverSpec is the fixed row plan of the opening-balance cover sheet
// (เอกสารหมายเลข 1): cash in hand and the per-fund bank deposits on the
// debit side, the funds themselves on the credit side. The school-income
// row appears on both sides so the two columns reconcile.
var coverSpec = []struct {
	label     string
	debitKey  string
	creditKey string
}{
	{"เงินสด (ภาษีหัก ณ ที่จ่าย)", "fund-tax", ""},
	{"เงินฝากธนาคาร", "", ""},
	{"   - เงินอุดหนุนรายหัว", "fund-subsidy", ""},
	{"   - เงินเรียนฟรี 15 ปี – หนังสือเรียน", "fund-15y-book", ""},
	{"   - เงินเรียนฟรี 15 ปี – อุปกรณ์การเรียน", "fund-15y-supply", ""},
	{"   - เงินเรียนฟรี 15 ปี – เครื่องแบบนักเรียน", "fund-15y-uniform", ""},
	{"   - เงินเรียนฟรี 15 ปี – กิจกรรมพัฒนาคุณภาพผู้เรียน", "fund-15y-activity", ""},
	{"   - เงินปัจจัยพื้นฐานนักเรียนยากจน", "fund-poor", ""},
	{"   - เงินอาหารกลางวัน", "fund-lunch", ""},
	{"   - เงิน กสศ.", "fund-eef", ""},
	{"   - เงินรายได้สถานศึกษา", "fund-school-income", "fund-school-income"},
	{"เงินอุดหนุนรายหัว", "", "fund-subsidy"},
	{"เงินเรียนฟรี 15 ปี – หนังสือเรียน", "", "fund-15y-book"},
	{"เงินเรียนฟรี 15 ปี – อุปกรณ์การเรียน", "", "fund-15y-supply"},
	{"เงินเรียนฟรี 15 ปี – เครื่องแบบนักเรียน", "", "fund-15y-uniform"},
	{"เงินเรียนฟรี 15 ปี – กิจกรรมพัฒนาคุณภาพผู้เรียน", "", "fund-15y-activity"},
	{"เงินปัจจัยพื้นฐานนักเรียนยากจน", "", "fund-poor"},
	{"เงิน กสศ.", "", "fund-eef"},
	{"เงินอาหารกลางวัน", "", "fund-lunch"},
	{"เงินภาษี 1 %", "", "fund-tax"},
	{"เงินรายได้แผ่นดิน", "", "fund-state"},
}

// CoverRow is one line of the opening-balance table. Nil cells render empty.
type CoverRow struct {
	Label  string
	Debit  *decimal.Decimal
	Credit *decimal.Decimal
}

// CoverSheet is the computed opening-balance statement for a fiscal year.
type CoverSheet struct {
	FiscalYearBE int
	StartLabel   string // Thai date of the opening entry
	Rows         []CoverRow
	TotalDebit   decimal.Decimal
	TotalCredit  decimal.Decimal
}

// Balanced reports whether the debit and credit columns agree. A false
// result is surfaced to the caller as a data-quality warning; the sheet is
// rendered as computed either way.
func (s CoverSheet) Balanced() bool {
	return s.TotalDebit.Equal(s.TotalCredit)
}

// BuildCoverSheet computes the opening-balance cover from the per-fund net
// balances of all transactions dated before the fiscal-year start.
func BuildCoverSheet(txs []ledger.Transaction, fyBE int) CoverSheet {
	r := ledger.FiscalYearRange(fyBE)

	balances := map[string]decimal.Decimal{}
	for _, tx := range txs {
		if !tx.HasValidDate() || tx.Date >= r.Start {
			continue
		}
		balances[tx.FundType] = balances[tx.FundType].Add(tx.Net())
	}

	sheet := CoverSheet{
		FiscalYearBE: fyBE,
		StartLabel:   fmt.Sprintf("1 ตุลาคม %d", fyBE-1),
	}
	for _, spec := range coverSpec {
		row := CoverRow{Label: spec.label}
		if spec.debitKey != "" {
			row.Debit = amt(balances[spec.debitKey])
			sheet.TotalDebit = sheet.TotalDebit.Add(balances[spec.debitKey])
		}
		if spec.creditKey != "" {
			row.Credit = amt(balances[spec.creditKey])
			sheet.TotalCredit = sheet.TotalCredit.Add(balances[spec.creditKey])
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

// Portrait A4 geometry for the cover and daily reports.
const (
	portraitW = 595.28
	portraitH = 841.89
)

// RenderCover lays the cover sheet out on a single portrait page.
func RenderCover(m FontMetrics, s CoverSheet, meta ledger.SchoolMeta) Document {
	d := &drawList{}
	mL, mR := 50.0, 50.0
	y := portraitH - 40

	tableW := portraitW - mL - mR
	col1 := tableW * 0.60
	col2 := tableW * 0.20
	col3 := tableW * 0.20
	rH := fontSize + 6.0

	docLabel := "เอกสารหมายเลข 1"
	dlW := m.WidthOfTextAtSize(docLabel, fontSize, true) + 12
	dlH := fontSize + 6.0
	d.rect(portraitW-mR-dlW, y-dlH, dlW, dlH, 0.75)
	d.text(docLabel, portraitW-mR-dlW+6, y-dlH+4, fontSize, true, AlignLeft)
	y -= dlH + 4

	banner := func(text string, yy float64, bold bool) {
		d.rect(mL, yy, tableW, rH, 0.75)
		d.text(text, mL+tableW/2, yy+4, fontSize, bold, AlignCenter)
	}
	banner(fmt.Sprintf("ปีงบประมาณ %d", s.FiscalYearBE), y-rH, true)
	banner(fmt.Sprintf("รายการเปิดบัญชี ณ วันที่ %s", s.StartLabel), y-rH*2, false)

	hdrY := y - rH*3
	for _, c := range []struct {
		x, w  float64
		title string
	}{{mL, col1, "รายการ"}, {mL + col1, col2, "เดบิต"}, {mL + col1 + col2, col3, "เครดิต"}} {
		d.rect(c.x, hdrY, c.w, rH, 0.75)
		d.text(c.title, c.x+c.w/2, hdrY+4, fontSize, true, AlignCenter)
	}

	curY := hdrY
	cell := func(x, w, yy float64, v *decimal.Decimal) {
		d.rect(x, yy, w, rH, 0.5)
		if v != nil {
			d.text(thai.FormatMoney(*v), x+w-4, yy+4, fontSize, false, AlignRight)
		}
	}
	for _, row := range s.Rows {
		curY -= rH
		d.rect(mL, curY, col1, rH, 0.5)
		d.text(row.Label, mL+4, curY+4, fontSize, false, AlignLeft)
		cell(mL+col1, col2, curY, row.Debit)
		cell(mL+col1+col2, col3, curY, row.Credit)
	}

	curY -= rH
	d.rect(mL, curY, col1, rH, 0.75)
	d.text("รวมทั้งสิ้น", mL+4, curY+4, fontSize, true, AlignLeft)
	d.rect(mL+col1, curY, col2, rH, 0.75)
	d.text(thai.FormatMoney(s.TotalDebit), mL+col1+col2-4, curY+4, fontSize, true, AlignRight)
	d.rect(mL+col1+col2, curY, col3, rH, 0.75)
	d.text(thai.FormatMoney(s.TotalCredit), mL+col1+col2+col3-4, curY+4, fontSize, true, AlignRight)

	curY -= 40
	sigX := mL + tableW*0.30
	sig := func(name, role string, yy float64) {
		d.text("ลงชื่อ", sigX-50, yy+fontSize, fontSize, false, AlignLeft)
		d.line(sigX-20, yy+fontSize-2, sigX+100, yy+fontSize-2, 0.5)
		d.text(role, sigX+106, yy+fontSize, fontSize, false, AlignLeft)
		if name != "" {
			d.text("("+name+")", sigX-20, yy+2, fontSize-2, false, AlignLeft)
		}
	}
	sig(meta.FinanceOfficer, "ผู้สรุป", curY)
	curY -= 45
	sig(meta.Director, "หัวหน้าหน่วยงานย่อย", curY)

	return Document{Width: portraitW, Height: portraitH, Pages: []Page{{Ops: d.ops}}}
}
