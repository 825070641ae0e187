// Package backup bundles the full dataset into a downloadable zip archive.
// The archive carries a JSON snapshot for restore plus per-fiscal-year CSV
// exports readable without the application.
package backup

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/banchee-erp/banchee-erp/internal/cashbook"
	"github.com/banchee-erp/banchee-erp/internal/cashbook/export"
	"github.com/banchee-erp/banchee-erp/internal/ledger"
	"github.com/banchee-erp/banchee-erp/internal/settings"
)

// TransactionSource lists every stored transaction.
type TransactionSource interface {
	ListAll(ctx context.Context) ([]ledger.Transaction, error)
}

// SettingsSource fetches the school profile.
type SettingsSource interface {
	Get(ctx context.Context) (settings.Settings, error)
}

// Service assembles backup archives.
type Service struct {
	txs TransactionSource
	cfg SettingsSource
	now func() time.Time
}

// NewService constructs Service.
func NewService(txs TransactionSource, cfg SettingsSource) *Service {
	return &Service{txs: txs, cfg: cfg, now: time.Now}
}

type snapshot struct {
	ExportedAt   string              `json:"exportedAt"`
	Settings     settings.Settings   `json:"settings"`
	Transactions []transactionRecord `json:"transactions"`
}

type transactionRecord struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	FundType    string `json:"fundType"`
	DocNo       string `json:"docNo"`
	Description string `json:"description"`
	Income      string `json:"income"`
	Expense     string `json:"expense"`
	Payer       string `json:"payer,omitempty"`
	Payee       string `json:"payee,omitempty"`
	IncomeRefID *int64 `json:"incomeRefId,omitempty"`
	BankID      string `json:"bankId,omitempty"`
}

type yearBundle struct {
	fyBE     int
	cashbook []byte
	cover    []byte
	txsCSV   []byte
}

// WriteArchive streams a zip archive with the complete dataset to w.
func (s *Service) WriteArchive(ctx context.Context, w io.Writer) error {
	txs, err := s.txs.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("backup: list transactions: %w", err)
	}
	cfg, err := s.cfg.Get(ctx)
	if err != nil {
		return fmt.Errorf("backup: load settings: %w", err)
	}

	years := fiscalYears(txs)
	bundles := make([]yearBundle, len(years))

	g, gctx := errgroup.WithContext(ctx)
	for i, fy := range years {
		i, fy := i, fy
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b, err := buildYearBundle(txs, fy)
			if err != nil {
				return err
			}
			bundles[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	if err := s.writeSnapshot(zw, cfg, txs); err != nil {
		return err
	}
	for _, b := range bundles {
		files := []struct {
			name string
			data []byte
		}{
			{fmt.Sprintf("cashbook_%d.csv", b.fyBE), b.cashbook},
			{fmt.Sprintf("cover_%d.csv", b.fyBE), b.cover},
			{fmt.Sprintf("transactions_%d.csv", b.fyBE), b.txsCSV},
		}
		for _, f := range files {
			fw, err := zw.Create(f.name)
			if err != nil {
				return fmt.Errorf("backup: create %s: %w", f.name, err)
			}
			if _, err := fw.Write(f.data); err != nil {
				return fmt.Errorf("backup: write %s: %w", f.name, err)
			}
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("backup: close archive: %w", err)
	}
	return nil
}

func (s *Service) writeSnapshot(zw *zip.Writer, cfg settings.Settings, txs []ledger.Transaction) error {
	records := make([]transactionRecord, 0, len(txs))
	for _, tx := range txs {
		records = append(records, transactionRecord{
			ID:          tx.ID,
			Date:        tx.Date,
			FundType:    tx.FundType,
			DocNo:       tx.DocNo,
			Description: tx.Description,
			Income:      tx.Income.StringFixed(2),
			Expense:     tx.Expense.StringFixed(2),
			Payer:       tx.Payer,
			Payee:       tx.Payee,
			IncomeRefID: tx.IncomeRefID,
			BankID:      tx.BankID,
		})
	}
	snap := snapshot{
		ExportedAt:   s.now().UTC().Format(time.RFC3339),
		Settings:     cfg,
		Transactions: records,
	}
	fw, err := zw.Create("backup.json")
	if err != nil {
		return fmt.Errorf("backup: create backup.json: %w", err)
	}
	enc := json.NewEncoder(fw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("backup: encode snapshot: %w", err)
	}
	return nil
}

func buildYearBundle(txs []ledger.Transaction, fyBE int) (yearBundle, error) {
	book := ledger.BuildYear(txs, fyBE)

	var cb bytes.Buffer
	if err := export.WriteCashBookCSV(&cb, book); err != nil {
		return yearBundle{}, fmt.Errorf("backup: cashbook csv %d: %w", fyBE, err)
	}

	sheet := cashbook.BuildCoverSheet(txs, fyBE)
	var cv bytes.Buffer
	if err := export.WriteCoverCSV(&cv, sheet); err != nil {
		return yearBundle{}, fmt.Errorf("backup: cover csv %d: %w", fyBE, err)
	}

	r := ledger.FiscalYearRange(fyBE)
	var inYear []ledger.Transaction
	for _, tx := range txs {
		if tx.HasValidDate() && tx.Date >= r.Start && tx.Date <= r.End {
			inYear = append(inYear, tx)
		}
	}
	var tc bytes.Buffer
	if err := export.WriteTransactionsCSV(&tc, inYear); err != nil {
		return yearBundle{}, fmt.Errorf("backup: transactions csv %d: %w", fyBE, err)
	}

	return yearBundle{fyBE: fyBE, cashbook: cb.Bytes(), cover: cv.Bytes(), txsCSV: tc.Bytes()}, nil
}

// fiscalYears returns the distinct fiscal years touched by txs, ascending.
func fiscalYears(txs []ledger.Transaction) []int {
	seen := make(map[int]struct{})
	for _, tx := range txs {
		if !tx.HasValidDate() {
			continue
		}
		seen[ledger.FiscalYearOf(tx.Date)] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for fy := range seen {
		years = append(years, fy)
	}
	sort.Ints(years)
	return years
}
