package cashbook

// A4 landscape geometry for the two-sub-table cash-book layout. All values
// are PDF points and were chosen so a full year renders without horizontal
// overflow at the 14pt body size.
const (
	pageW = 841.89
	pageH = 595.28

	marginL = 12.0
	marginR = 12.0
	marginT = 16.0

	// subW is one sub-table's width; receipts table at marginL, payments
	// table at marginL+subW.
	subW = (pageW - marginL - marginR) / 2

	colDate = 38.0
	colDoc  = 44.0
	colDesc = 120.0
	colCash = 48.0
	colBudg = 48.0
	colRev  = 48.0
	colNon  = subW - colDate - colDoc - colDesc - colCash - colBudg - colRev

	bandTitle  = 28.0 // page title band
	bandUpper  = 20.0 // upper table-header band
	bandLower  = 22.0 // lower table-header band
	rowH       = 20.0 // one text line
	fontSize   = 14.0
	fontSizeSm = 11.0

	// Signature area reserved at the bottom of every page.
	sigAreaH  = (bandUpper+16)*3 + 40
	minBottom = 35 + sigAreaH
)

// bodyTop is the Y coordinate where data rows start on a fresh page.
const bodyTop = pageH - marginT - bandTitle - bandUpper - bandLower

// RowPair is one aligned line across both sub-tables, with its resolved
// height after text wrapping.
type RowPair struct {
	Left  PrintRow
	Right PrintRow
	H     float64
}

// PageRows is the row content of one paginated page.
type PageRows struct {
	Rows []RowPair
}

// rowLines is the wrapped line count a row needs. Only the document number
// and description cells wrap; label and amount cells are single-line.
func rowLines(m FontMetrics, r PrintRow) int {
	lines := 1
	if r.Desc != "" {
		if n := LineCount(m, r.Desc, colDesc-6, fontSize, false); n > lines {
			lines = n
		}
	}
	if r.DocNo != "" {
		if n := LineCount(m, r.DocNo, colDoc-6, fontSize, false); n > lines {
			lines = n
		}
	}
	return lines
}

// Paginate splits the day row groups across pages. A row moves to the next
// page when it would intrude on the signature reserve; days break mid-group
// when they must. A row too tall even for an empty page is placed anyway at
// the top of its own page rather than dropped.
func Paginate(m FontMetrics, days []DayRows) []PageRows {
	var pages []PageRows
	cur := PageRows{}
	curY := bodyTop

	place := func(p RowPair) {
		if curY-p.H < minBottom && len(cur.Rows) > 0 {
			pages = append(pages, cur)
			cur = PageRows{}
			curY = bodyTop
		}
		curY -= p.H
		cur.Rows = append(cur.Rows, p)
	}

	for _, day := range days {
		for i := range day.Left {
			lines := rowLines(m, day.Left[i])
			if n := rowLines(m, day.Right[i]); n > lines {
				lines = n
			}
			place(RowPair{Left: day.Left[i], Right: day.Right[i], H: rowH * float64(lines)})
		}
	}

	if len(cur.Rows) > 0 || len(pages) == 0 {
		pages = append(pages, cur)
	}
	return pages
}
