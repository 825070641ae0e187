// Package settings stores the school identity: the name and the signatory
// officers printed on every report.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/banchee-erp/banchee-erp/internal/ledger"
)

// Settings is the single school profile row.
type Settings struct {
	SchoolName     string `json:"schoolName" validate:"required,max=200"`
	FinanceOfficer string `json:"financeOfficer" validate:"max=200"`
	Auditor        string `json:"auditor" validate:"max=200"`
	Director       string `json:"director" validate:"max=200"`
}

// Meta converts the profile into the report header form.
func (s Settings) Meta() ledger.SchoolMeta {
	return ledger.SchoolMeta{
		SchoolName:     s.SchoolName,
		FinanceOfficer: s.FinanceOfficer,
		Auditor:        s.Auditor,
		Director:       s.Director,
	}
}

// Repository persists the school profile.
type Repository struct {
	pool     *pgxpool.Pool
	defaults Settings
}

// NewRepository constructs Repository. Defaults fill the profile until the
// officer saves one.
func NewRepository(pool *pgxpool.Pool, defaults Settings) *Repository {
	return &Repository{pool: pool, defaults: defaults}
}

// Get loads the profile, falling back to configured defaults when no row
// has been saved yet.
func (r *Repository) Get(ctx context.Context) (Settings, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT school_name, finance_officer, auditor, director FROM school_settings WHERE id = 1`)
	var s Settings
	err := row.Scan(&s.SchoolName, &s.FinanceOfficer, &s.Auditor, &s.Director)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.defaults, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("settings: get: %w", err)
	}
	return s, nil
}

// Save upserts the profile row.
func (r *Repository) Save(ctx context.Context, s Settings) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO school_settings (id, school_name, finance_officer, auditor, director)
		 VALUES (1, $1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE
		 SET school_name = EXCLUDED.school_name,
		     finance_officer = EXCLUDED.finance_officer,
		     auditor = EXCLUDED.auditor,
		     director = EXCLUDED.director`,
		s.SchoolName, s.FinanceOfficer, s.Auditor, s.Director,
	)
	if err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	return nil
}

// SchoolMeta satisfies the report header port used by the API handlers.
func (r *Repository) SchoolMeta(ctx context.Context) (ledger.SchoolMeta, error) {
	s, err := r.Get(ctx)
	if err != nil {
		return ledger.SchoolMeta{}, err
	}
	return s.Meta(), nil
}
