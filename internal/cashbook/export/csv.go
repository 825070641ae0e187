// Package export serializes assembled cash-book reports for download: CSV
// for spreadsheets and absolutely positioned HTML for PDF conversion.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/banchee-erp/banchee-erp/internal/cashbook"
	"github.com/banchee-erp/banchee-erp/internal/ledger"
	"github.com/banchee-erp/banchee-erp/internal/thai"
)

const (
	csvFlushEvery = 200
	csvBufferSize = 32 * 1024
)

type csvStreamer struct {
	buf          *bufio.Writer
	csv          *csv.Writer
	flushEvery   int
	pendingLines int
}

func newCSVStreamer(w io.Writer) *csvStreamer {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true
	return &csvStreamer{buf: buf, csv: writer, flushEvery: csvFlushEvery}
}

func (s *csvStreamer) writeComment(line string) error {
	if s == nil || s.buf == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	if !strings.HasSuffix(line, "\r\n") {
		line = strings.TrimSuffix(line, "\n")
		line += "\r\n"
	}
	_, err := s.buf.WriteString(line)
	return err
}

func (s *csvStreamer) writeRow(row []string) error {
	if s == nil || s.csv == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	if err := s.csv.Write(row); err != nil {
		return err
	}
	s.pendingLines++
	if s.flushEvery > 0 && s.pendingLines >= s.flushEvery {
		return s.Flush()
	}
	return nil
}

func (s *csvStreamer) Flush() error {
	if s == nil || s.csv == nil || s.buf == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return err
	}
	if err := s.buf.Flush(); err != nil {
		return err
	}
	s.pendingLines = 0
	return nil
}

func (s *csvStreamer) Close() error {
	return s.Flush()
}

// WriteCashBookCSV streams a fiscal-year book as one flat receipts/payments
// sheet, one line per original entry, byte-order mark first so spreadsheet
// tools pick up the Thai text as UTF-8.
func WriteCashBookCSV(w io.Writer, book ledger.YearBook) error {
	streamer := newCSVStreamer(w)
	if err := streamer.writeComment("\uFEFF# สมุดเงินสด ปีงบประมาณ " + fmt.Sprint(book.FiscalYearBE)); err != nil {
		return err
	}
	if err := streamer.writeComment(fmt.Sprintf("# ช่วงวันที่: %s ถึง %s", book.Range.Start, book.Range.End)); err != nil {
		return err
	}
	header := []string{"วันที่", "ด้าน", "ที่เอกสาร", "รายการ", "เงินสด", "เงินงบประมาณ", "เงินรายได้แผ่นดิน", "เงินนอกงบประมาณ"}
	if err := streamer.writeRow(header); err != nil {
		return err
	}

	side := func(date, kind string, entries []ledger.Entry) error {
		for _, e := range entries {
			row := []string{
				date, kind, e.DocNo, e.Description,
				money(e.Cash), money(e.Budget), money(e.Revenue), money(e.NonBudget),
			}
			if err := streamer.writeRow(row); err != nil {
				return err
			}
		}
		return nil
	}

	for _, day := range book.Days {
		date := thai.FormatDate(day.Date)
		if err := side(date, "รับ", day.Receipts); err != nil {
			return err
		}
		if err := side(date, "จ่าย", day.Payments); err != nil {
			return err
		}
		summary := [][]string{
			{date, "รับ", "", "รวมรับ", money(day.TotalReceipts.Cash), money(day.TotalReceipts.Budget), money(day.TotalReceipts.Revenue), money(day.TotalReceipts.NonBudget)},
			{date, "จ่าย", "", "รวมจ่าย", money(day.TotalPayments.Cash), money(day.TotalPayments.Budget), money(day.TotalPayments.Revenue), money(day.TotalPayments.NonBudget)},
			{date, "", "", "ยอดยกไป", money(day.Closing), "", "", ""},
		}
		for _, row := range summary {
			if err := streamer.writeRow(row); err != nil {
				return err
			}
		}
	}
	if err := streamer.writeRow([]string{"", "", "", "ยอดคงเหลือสิ้นปี", money(book.ClosingCash), "", "", ""}); err != nil {
		return err
	}
	return streamer.Close()
}

// WriteCoverCSV streams the opening-balance cover sheet.
func WriteCoverCSV(w io.Writer, sheet cashbook.CoverSheet) error {
	streamer := newCSVStreamer(w)
	if err := streamer.writeComment("\uFEFF# หน้าปกสมุดเงินสด ปีงบประมาณ " + fmt.Sprint(sheet.FiscalYearBE)); err != nil {
		return err
	}
	if err := streamer.writeComment("# รายการเปิดบัญชี ณ วันที่ " + sheet.StartLabel); err != nil {
		return err
	}
	if err := streamer.writeRow([]string{"รายการ", "เดบิต", "เครดิต"}); err != nil {
		return err
	}
	for _, row := range sheet.Rows {
		if err := streamer.writeRow([]string{row.Label, moneyPtr(row.Debit), moneyPtr(row.Credit)}); err != nil {
			return err
		}
	}
	if err := streamer.writeRow([]string{"รวมทั้งสิ้น", money(sheet.TotalDebit), money(sheet.TotalCredit)}); err != nil {
		return err
	}
	return streamer.Close()
}

// WriteTransactionsCSV streams the raw transaction list, the format used by
// the yearly backup bundle.
func WriteTransactionsCSV(w io.Writer, txs []ledger.Transaction) error {
	streamer := newCSVStreamer(w)
	if err := streamer.writeComment("\uFEFF# รายการรับจ่าย"); err != nil {
		return err
	}
	header := []string{"id", "date", "doc_no", "description", "fund_type", "income", "expense", "payer", "payee", "bank_id", "income_ref_id"}
	if err := streamer.writeRow(header); err != nil {
		return err
	}
	for _, tx := range txs {
		refID := ""
		if tx.IncomeRefID != nil {
			refID = fmt.Sprint(*tx.IncomeRefID)
		}
		row := []string{
			fmt.Sprint(tx.ID), tx.Date, tx.DocNo, tx.Description, tx.FundType,
			tx.Income.StringFixed(2), tx.Expense.StringFixed(2),
			tx.Payer, tx.Payee, tx.BankID, refID,
		}
		if err := streamer.writeRow(row); err != nil {
			return err
		}
	}
	return streamer.Close()
}

func money(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func moneyPtr(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}
	return v.StringFixed(2)
}
