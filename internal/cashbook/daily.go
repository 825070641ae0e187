package cashbook

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/banchee-erp/banchee-erp/internal/ledger"
	"github.com/banchee-erp/banchee-erp/internal/thai"
)

// DailyRow is one line of the daily balance form. Note rows carry a unit
// caption instead of an amount; detail rows break an account total down and
// are excluded from the grand total.
type DailyRow struct {
	Item         string
	Note         string
	Amount       *decimal.Decimal
	Indent       int
	Detail       bool
	AccountTotal bool
}

// DailySnapshot is the computed daily balance report for one date.
type DailySnapshot struct {
	Date  string
	Rows  []DailyRow
	Total decimal.Decimal
}

// BuildDailySnapshot computes the statutory daily balance form: cash in
// hand, the document-count lines, and the four passbook accounts with their
// per-fund detail rows, all as point-in-time balances at asOf.
func BuildDailySnapshot(txs []ledger.Transaction, asOf string) DailySnapshot {
	bal := func(codes ...string) decimal.Decimal {
		return ledger.Balance(txs, codes, asOf)
	}

	tax := bal("fund-tax")
	eef := bal("fund-eef")
	lunch := bal("fund-lunch")
	lunchInt := bal("fund-state-lunch-interest")
	subsidy := bal("fund-subsidy")
	book := bal("fund-15y-book")
	supply := bal("fund-15y-supply")
	uniform := bal("fund-15y-uniform")
	activity := bal("fund-15y-activity")
	poor := bal("fund-poor")
	subsidyInt := bal("fund-state-subsidy-interest")
	schoolIncome := bal("fund-school-income")

	lunchAcct := lunch.Add(lunchInt)
	subsidyAcct := subsidy.Add(book).Add(supply).Add(uniform).Add(activity).Add(poor).Add(subsidyInt)

	detail := func(item string, v decimal.Decimal) DailyRow {
		row := DailyRow{Item: item, Indent: 2, Detail: true}
		if v.IsPositive() {
			row.Amount = amt(v)
		}
		return row
	}
	note := func(item string) DailyRow {
		return DailyRow{Item: item, Note: "ฉบับ", Amount: amt(decimal.Zero)}
	}

	rows := []DailyRow{
		{Item: "เงินสดในมือ (ภาษีหัก ณ ที่จ่าย 1%)", Amount: amt(tax)},
		note("เช็ค"),
		note("ธนาณัติ"),
		note("ใบสำคัญรองจ่าย"),
		note("ใบสำคัญรองจ่าย (รอเบิก)"),
		note("สัญญารับรองการยืมเงิน"),
		note("ใบเบิกเงินเพื่อจ่ายใช้ในราชการ"),
		{Item: "สมุดคู่ฝาก 4 เล่ม"},
		{Item: "1. บช.เงิน กสศ.เพื่อโรงเรียน (นร.ยากจนพิเศษ)", Amount: amt(eef), Indent: 1},
		{Item: "2. บช.เงินอาหารกลางวันนักเรียน", Amount: amt(lunchAcct), Indent: 1, AccountTotal: true},
		detail("    - เงินอาหารกลางวัน", lunch),
		detail("    - รายได้แผ่นดิน (ดอกเบี้ย)", lunchInt),
		{Item: "3. บช.เงินอุดหนุนอื่น (บัญชี ธกส.)", Amount: amt(subsidyAcct), Indent: 1, AccountTotal: true},
		detail("    - เงินค่ารายหัว (ค่าจัดการเรียนการสอน)", subsidy),
		detail("    - เงินค่าหนังสือเรียน", book),
		detail("    - เงินค่าเครื่องแบบนักเรียน", uniform),
		detail("    - เงินอุปกรณ์การเรียน", supply),
		detail("    - เงินค่ากิจกรรมพัฒนาคุณภาพผู้เรียน", activity),
		detail("    - เงินปัจจัยพื้นฐานนักเรียนยากจน", poor),
		detail("    - รายได้แผ่นดิน (ดอกเบี้ย)", subsidyInt),
		{Item: "4. บช.เงินรายได้สถานศึกษา", Amount: amt(schoolIncome), Indent: 1},
	}

	s := DailySnapshot{Date: asOf, Rows: rows}
	for _, r := range rows {
		if r.Detail || r.Amount == nil {
			continue
		}
		s.Total = s.Total.Add(*r.Amount)
	}
	return s
}

const dailyTableFS = 12.0

// RenderDaily lays the daily balance form out on a single portrait page,
// including the cash-custody committee block below the signature.
func RenderDaily(m FontMetrics, s DailySnapshot, fyBE int, meta ledger.SchoolMeta) Document {
	d := &drawList{}
	margin := 30.0
	y := portraitH - margin - 10

	d.text(fmt.Sprintf("รายงานเงินคงเหลือประจำวัน (ปีงบประมาณ %d)", fyBE), portraitW/2, y, fontSize, true, AlignCenter)
	y -= 20
	d.text("ส่วนราชการ "+meta.SchoolName, portraitW/2, y, fontSize, false, AlignCenter)
	y -= 20
	d.text("ประจำวันที่ "+thai.FormatDate(s.Date), portraitW/2, y, fontSize, false, AlignCenter)
	y -= 10

	col1W, bahtW, satangW := 340.0, 100.0, 30.0
	x1 := margin
	x2 := x1 + col1W
	x3 := x2 + bahtW
	x4 := x3 + satangW
	x5 := portraitW - margin
	rowH := 16.0

	d.line(x1, y, x5, y, 1)
	d.line(x1, y-25, x5, y-25, 1)
	for _, x := range []float64{x1, x2, x4, x5} {
		d.line(x, y, x, y-25, 1)
	}
	d.text("รายการ", x1+col1W/2, y-18, dailyTableFS, true, AlignCenter)
	d.text("จำนวนเงิน", x2+(bahtW+satangW)/2, y-18, dailyTableFS, true, AlignCenter)
	d.text("หมายเหตุ", x4+(x5-x4)/2, y-18, dailyTableFS, true, AlignCenter)
	y -= 25

	for _, row := range s.Rows {
		for _, x := range []float64{x1, x2, x3, x4, x5} {
			d.line(x, y, x, y-rowH, 1)
		}
		itemX := x1 + 5 + float64(row.Indent)*15

		if row.AccountTotal && row.Amount != nil && row.Amount.IsPositive() {
			// The account title carries its own total so the amount column
			// stays free for the detail rows beneath it.
			d.text(fmt.Sprintf("%s รวม %s บาท", row.Item, thai.FormatMoney(*row.Amount)), itemX, y-12, dailyTableFS, false, AlignLeft)
		} else {
			d.text(row.Item, itemX, y-12, dailyTableFS, false, AlignLeft)
			switch {
			case row.Note != "":
				d.text("-", x2+bahtW/2, y-12, dailyTableFS, false, AlignCenter)
				d.text(row.Note, x4+5, y-12, dailyTableFS, false, AlignLeft)
			case row.Amount != nil:
				baht, satang := moneyParts(*row.Amount)
				d.text(baht, x3-5, y-12, dailyTableFS, false, AlignRight)
				d.text(satang, x4-5, y-12, dailyTableFS, false, AlignRight)
			}
		}
		y -= rowH
	}

	d.line(x1, y, x5, y, 1)
	totalH := 22.0
	d.line(x1, y-totalH, x5, y-totalH, 1)
	for _, x := range []float64{x1, x2, x3, x4, x5} {
		d.line(x, y, x, y-totalH, 1)
	}
	d.text("รวม", x1+col1W/2, y-16, dailyTableFS, true, AlignCenter)
	baht, satang := moneyParts(s.Total)
	d.text(baht, x3-5, y-16, dailyTableFS, true, AlignRight)
	d.text(satang, x4-5, y-16, dailyTableFS, true, AlignRight)
	y -= totalH + 25

	d.text("จำนวนเงิน (ตัวอักษร) "+thai.BahtText(s.Total), x1+5, y, fontSize, false, AlignLeft)
	y -= 20

	d.text("ลงชื่อ"+sigDots, portraitW/2, y, fontSize, false, AlignCenter)
	y -= 16
	officer := "(" + sigDots + ")"
	if meta.FinanceOfficer != "" {
		officer = "(" + meta.FinanceOfficer + ")"
	}
	d.text(officer, portraitW/2, y, fontSize, false, AlignCenter)
	y -= 14
	d.text("หัวหน้าหน่วยงานย่อย", portraitW/2, y, fontSize, false, AlignCenter)
	y -= 10

	d.line(x1, y, x5, y, 1)
	y -= 16
	d.text("คณะกรรมการการเก็บรักษาเงิน ได้ตรวจนับเงินและหลักฐานแทนตัวเงินถูกต้อง ตามรายการข้างต้นแล้ว จึงได้รับมอบ", x1, y, fontSize, false, AlignLeft)
	y -= 16
	d.text("รักษาไว้ในลักษณะหีบห่อ", x1, y, fontSize, false, AlignLeft)
	y -= 25

	dots := "............................................."
	dotW := m.WidthOfTextAtSize(dots, fontSize, false)
	d.text(dots, portraitW/2, y, fontSize, false, AlignCenter)
	d.text(dots, margin+10, y, fontSize, false, AlignLeft)
	d.text(dots, portraitW-margin-dotW-10, y, fontSize, false, AlignLeft)
	y -= 16
	d.text("กรรมการ", portraitW/2, y, fontSize, false, AlignCenter)
	d.text("กรรมการ", margin+10+dotW/2, y, fontSize, false, AlignCenter)
	d.text("กรรมการ", portraitW-margin-10-dotW/2, y, fontSize, false, AlignCenter)
	y -= 15

	d.line(x1, y, x5, y, 1)
	y -= 20
	d.text("ข้าพเจ้าผู้ได้รับมอบหมายได้รับเงินและเอกสารตัวเงินตามรายละเอียดข้างต้นนี้ไปแล้ว เมื่อวันที่.......เดือน.......................พ.ศ..........", x1, y, fontSize, false, AlignLeft)
	y -= 20

	sigLine := "ลงชื่อ" + sigDots
	sigW := m.WidthOfTextAtSize(sigLine, fontSize, false)
	roleW := m.WidthOfTextAtSize(" หัวหน้าหน่วยงานย่อย", fontSize, false)
	startX := portraitW/2 - (sigW+roleW)/2
	d.text(sigLine, startX, y, fontSize, false, AlignLeft)
	d.text(" ผู้รับเงิน", startX+sigW, y, fontSize, false, AlignLeft)
	y -= 20
	d.text(sigLine, startX, y, fontSize, false, AlignLeft)
	d.text(" หัวหน้าหน่วยงานย่อย", startX+sigW, y, fontSize, false, AlignLeft)
	y -= 10
	d.line(x1, y, x5, y, 1)

	return Document{Width: portraitW, Height: portraitH, Pages: []Page{{Ops: d.ops}}}
}

// moneyParts splits an amount into grouped baht and two-digit satang for
// the split amount column. Zero renders as a dash pair.
func moneyParts(v decimal.Decimal) (string, string) {
	if v.IsZero() {
		return "-", "-"
	}
	s := thai.FormatMoney(v)
	return s[:len(s)-3], s[len(s)-2:]
}
