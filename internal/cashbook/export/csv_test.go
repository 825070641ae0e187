package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/banchee-erp/banchee-erp/internal/cashbook"
	"github.com/banchee-erp/banchee-erp/internal/ledger"
)

func TestWriteCashBookCSV(t *testing.T) {
	txs := []ledger.Transaction{
		{Date: "2023-10-05", FundType: "fund-subsidy", DocNo: "บร.1", Description: "รับเงินอุดหนุน", Income: decimal.NewFromInt(1000)},
		{Date: "2023-10-05", FundType: "fund-lunch", DocNo: "บจ.1", Description: "ค่าอาหาร", Expense: decimal.NewFromInt(200)},
	}
	book := ledger.BuildYear(txs, 2567)

	var buf bytes.Buffer
	require.NoError(t, WriteCashBookCSV(&buf, book))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\uFEFF"), "byte-order mark first")
	require.Contains(t, out, "# สมุดเงินสด ปีงบประมาณ 2567")
	require.Contains(t, out, "# ช่วงวันที่: 2023-10-01 ถึง 2024-09-30")
	require.Contains(t, out, "\r\n", "CRLF line endings for spreadsheet tools")

	// skip the two comment lines before handing to the csv reader
	lines := strings.SplitN(out, "\r\n", 3)
	r := csv.NewReader(strings.NewReader(lines[2]))
	records, err := r.ReadAll()
	require.NoError(t, err)

	require.Equal(t, []string{"วันที่", "ด้าน", "ที่เอกสาร", "รายการ", "เงินสด", "เงินงบประมาณ", "เงินรายได้แผ่นดิน", "เงินนอกงบประมาณ"}, records[0])

	receipt := records[1]
	require.Equal(t, "รับ", receipt[1])
	require.Equal(t, "บร.1", receipt[2])
	require.Equal(t, "1000.00", receipt[4])
	require.Equal(t, "1000.00", receipt[5], "subsidy lands in the budget bucket")

	last := records[len(records)-1]
	require.Equal(t, "ยอดคงเหลือสิ้นปี", last[3])
	require.Equal(t, "800.00", last[4])
}

func TestWriteCoverCSV(t *testing.T) {
	sheet := cashbook.BuildCoverSheet([]ledger.Transaction{
		{Date: "2023-05-01", FundType: "fund-subsidy", Income: decimal.NewFromInt(900)},
	}, 2567)

	var buf bytes.Buffer
	require.NoError(t, WriteCoverCSV(&buf, sheet))

	out := buf.String()
	require.Contains(t, out, "# หน้าปกสมุดเงินสด ปีงบประมาณ 2567")
	require.Contains(t, out, "# รายการเปิดบัญชี ณ วันที่ 1 ตุลาคม 2566")
	require.Contains(t, out, "รวมทั้งสิ้น,900.00,900.00")
	// blank cells for rows on the other side of the sheet
	require.Contains(t, out, "เงินอุดหนุนรายหัว,,900.00")
}

func TestWriteTransactionsCSV(t *testing.T) {
	ref := int64(7)
	txs := []ledger.Transaction{
		{ID: 1, Date: "2023-10-05", DocNo: "บร.1", Description: "รับเงิน", FundType: "fund-subsidy",
			Income: decimal.NewFromInt(1000), Payer: "สพฐ.", BankID: "bank-1"},
		{ID: 2, Date: "2023-10-06", DocNo: "บจ.1", Description: "จ่ายเงิน", FundType: "fund-lunch",
			Expense: decimal.NewFromFloat(49.5), Payee: "ร้านค้า", IncomeRefID: &ref},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactionsCSV(&buf, txs))

	out := buf.String()
	lines := strings.SplitN(out, "\r\n", 2)
	r := csv.NewReader(strings.NewReader(lines[1]))
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "income_ref_id", records[0][10])
	require.Equal(t, "1000.00", records[1][5])
	require.Equal(t, "", records[1][10])
	require.Equal(t, "49.50", records[2][6])
	require.Equal(t, "7", records[2][10])
}
