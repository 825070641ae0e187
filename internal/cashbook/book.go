package cashbook

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/banchee-erp/banchee-erp/internal/ledger"
	"github.com/banchee-erp/banchee-erp/internal/thai"
)

const sigDots = "........................................"

// BuildCashBook renders a fiscal-year book into absolutely positioned draw
// instructions: one receipts sub-table and one payments sub-table per page,
// with the signature block repeated at the bottom of every page.
func BuildCashBook(m FontMetrics, book ledger.YearBook, meta ledger.SchoolMeta) Document {
	days := make([]DayRows, 0, len(book.Days))
	for _, d := range book.Days {
		days = append(days, BuildDayRows(d))
	}
	paged := Paginate(m, days)

	doc := Document{Width: pageW, Height: pageH}
	for i, pr := range paged {
		doc.Pages = append(doc.Pages, renderBookPage(m, pr, i+1, book.FiscalYearBE, meta))
	}
	return doc
}

func renderBookPage(m FontMetrics, pr PageRows, pageNum, fyBE int, meta ledger.SchoolMeta) Page {
	d := &drawList{}
	curY := pageH - marginT

	d.text(fmt.Sprintf("สมุดเงินสด แผ่นที่ %d", pageNum), pageW/2, curY-bandTitle+8, fontSize+2, true, AlignCenter)
	d.text(fmt.Sprintf("ปีงบประมาณ %d", fyBE), pageW-marginR, curY-bandTitle+8, fontSize, false, AlignRight)
	curY -= bandTitle

	xL, xR := marginL, marginL+subW
	drawTableHeader(d, curY, xL, fyBE, true)
	drawTableHeader(d, curY, xR, fyBE, false)
	curY -= bandUpper + bandLower

	for _, p := range pr.Rows {
		curY -= p.H
		drawBodyRow(d, m, xL, curY, p.H, p.Left)
		drawBodyRow(d, m, xR, curY, p.H, p.Right)
	}

	d.line(xL, curY, xL+subW, curY, 0.5)
	d.line(xR, curY, xR+subW, curY, 0.5)

	drawSignatures(d, m, xR, curY, meta)
	return Page{Ops: d.ops}
}

// drawTableHeader draws the two-band column header of one sub-table. The
// debit and credit captions swap sides between the receipts and payments
// tables: receipts debit cash, payments credit it.
func drawTableHeader(d *drawList, curY, px float64, fyBE int, receipts bool) {
	amtX := px + colDate + colDoc + colDesc
	d.rect(px, curY-bandUpper-bandLower, subW, bandUpper+bandLower, 0.8)

	cx := 0.0
	for _, cw := range []float64{colDate, colDoc, colDesc, colCash} {
		cx += cw
		d.line(px+cx, curY, px+cx, curY-bandUpper-bandLower, 0.5)
	}
	d.line(amtX+colCash+colBudg, curY-bandUpper, amtX+colCash+colBudg, curY-bandUpper-bandLower, 0.5)
	d.line(amtX+colCash+colBudg+colRev, curY-bandUpper, amtX+colCash+colBudg+colRev, curY-bandUpper-bandLower, 0.5)

	if receipts {
		d.text("เดบิต", amtX+colCash/2, curY-bandUpper+5, fontSize, true, AlignCenter)
		d.text("เครดิต", amtX+colCash+(colBudg+colRev+colNon)/2, curY-bandUpper+5, fontSize, true, AlignCenter)
	} else {
		d.text("เครดิต", amtX+colCash/2, curY-bandUpper+5, fontSize, true, AlignCenter)
		d.text("เดบิต", amtX+colCash+(colBudg+colRev+colNon)/2, curY-bandUpper+5, fontSize, true, AlignCenter)
	}
	d.line(px, curY-bandUpper, px+colDate, curY-bandUpper, 0.5)
	d.line(amtX, curY-bandUpper, px+subW, curY-bandUpper, 0.5)

	mergeY := curY - (bandUpper+bandLower)/2 - fontSize/2 + 5
	d.text(fmt.Sprintf("พ.ศ.%d", fyBE), px+colDate/2, curY-bandUpper+5, fontSize, true, AlignCenter)
	d.text("วันที่", px+colDate/2, curY-bandUpper-bandLower+5, fontSize, true, AlignCenter)
	d.text("ที่เอกสาร", px+colDate+colDoc/2, mergeY, fontSize, true, AlignCenter)
	title := "รายการจ่าย"
	if receipts {
		title = "รายการรับ"
	}
	d.text(title, px+colDate+colDoc+colDesc/2, mergeY, fontSize, true, AlignCenter)

	r2y := curY - bandUpper - bandLower + 6
	d.text("เงินสด", amtX+colCash/2, r2y, fontSizeSm, true, AlignCenter)
	d.text("เงิน", amtX+colCash+colBudg/2, r2y+7, fontSizeSm, true, AlignCenter)
	d.text("งบประมาณ", amtX+colCash+colBudg/2, r2y-3, fontSizeSm, true, AlignCenter)
	d.text("เงินรายได้", amtX+colCash+colBudg+colRev/2, r2y+7, fontSizeSm, true, AlignCenter)
	d.text("แผ่นดิน", amtX+colCash+colBudg+colRev/2, r2y-3, fontSizeSm, true, AlignCenter)
	d.text("เงินนอก", amtX+colCash+colBudg+colRev+colNon/2, r2y+7, fontSizeSm, true, AlignCenter)
	d.text("งบประมาณ", amtX+colCash+colBudg+colRev+colNon/2, r2y-3, fontSizeSm, true, AlignCenter)
}

// drawBodyRow draws the grid lines and content of one row at rowY (the row's
// bottom edge). Wrapped cells fill downward from the row's first line.
func drawBodyRow(d *drawList, m FontMetrics, px, rowY, h float64, r PrintRow) {
	cx := px
	d.line(cx, rowY, cx, rowY+h, 0.5)
	for _, cw := range []float64{colDate, colDoc, colDesc, colCash, colBudg, colRev, colNon} {
		cx += cw
		d.line(cx, rowY, cx, rowY+h, 0.5)
	}
	d.line(px, rowY, px+subW, rowY, 0.5)

	ty := rowY + h - rowH + 4
	amtX := px + colDate + colDoc + colDesc

	if r.DateLabel != "" {
		d.text(fitText(m, r.DateLabel, colDate-4, fontSize, false), px+2, ty, fontSize, false, AlignLeft)
	}

	if r.Label != "" {
		d.text(fitText(m, r.Label, colDesc-4, fontSize, r.Bold), px+colDate+colDoc+2, ty, fontSize, r.Bold, AlignLeft)
	} else {
		for li, line := range wrapCell(m, r.DocNo, colDoc-6) {
			d.text(line, px+colDate+2, rowY+h-rowH*float64(li+1)+4, fontSize, false, AlignLeft)
		}
		for li, line := range wrapCell(m, r.Desc, colDesc-6) {
			d.text(line, px+colDate+colDoc+2, rowY+h-rowH*float64(li+1)+4, fontSize, false, AlignLeft)
		}
	}

	drawAmount(d, r.Cash, amtX+colCash-2, ty, r.Bold)
	drawAmount(d, r.Budget, amtX+colCash+colBudg-2, ty, r.Bold)
	drawAmount(d, r.Revenue, amtX+colCash+colBudg+colRev-2, ty, r.Bold)
	drawAmount(d, r.NonBudget, amtX+colCash+colBudg+colRev+colNon-2, ty, r.Bold)
}

func wrapCell(m FontMetrics, text string, w float64) []string {
	if text == "" {
		return nil
	}
	return WrapText(m, text, w, fontSize, false)
}

func drawAmount(d *drawList, v *decimal.Decimal, x, y float64, bold bool) {
	if v == nil {
		return
	}
	d.text(formatAmount(*v), x, y, fontSize, bold, AlignRight)
}

// formatAmount prints a zero balance as a dash so empty columns stay legible
// across the grid.
func formatAmount(v decimal.Decimal) string {
	if v.IsZero() {
		return "-"
	}
	return thai.FormatMoney(v)
}

// fitText truncates trailing graphemes until the text fits the cell width.
func fitText(m FontMetrics, text string, maxW, size float64, bold bool) string {
	for text != "" && m.WidthOfTextAtSize(text, size, bold) > maxW {
		runes := []rune(text)
		text = string(runes[:len(runes)-1])
	}
	return text
}

// drawSignatures draws the three-role signature block under the table on
// every page, right-aligned within the payments sub-table.
func drawSignatures(d *drawList, m FontMetrics, xR, curY float64, meta ledger.SchoolMeta) {
	sigs := []struct {
		role string
		name string
	}{
		{"เจ้าหน้าที่บัญชี", meta.FinanceOfficer},
		{"ผู้ตรวจบัญชี", meta.Auditor},
		{"ผู้อำนวยการโรงเรียน", meta.Director},
	}

	roleW := m.WidthOfTextAtSize("ผู้อำนวยการโรงเรียน", fontSize, false) + 10
	dotW := m.WidthOfTextAtSize(sigDots, fontSize, false)
	startX := xR + subW - dotW - roleW
	sy := curY - 30

	for _, s := range sigs {
		d.text(sigDots, startX, sy+8, fontSize, false, AlignLeft)
		d.text(s.role, startX+dotW+5, sy+8, fontSize, false, AlignLeft)
		if s.name != "" {
			d.text("("+s.name+")", startX+dotW/2, sy-12, fontSize, false, AlignCenter)
			sy -= bandUpper + 16
		} else {
			sy -= bandUpper
		}
	}
}
