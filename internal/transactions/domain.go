// Package transactions owns the cash-book transaction store and its HTTP
// surface: CRUD on ledger entries plus the report endpoints built on them.
package transactions

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrExclusiveAmounts indicates a payload carrying both an income and an
	// expense amount, or neither.
	ErrExclusiveAmounts = errors.New("transactions: exactly one of income and expense must be positive")
	// ErrInvalidDate indicates a date that does not parse as an ISO calendar day.
	ErrInvalidDate = errors.New("transactions: invalid date")
	// ErrDuplicateDocNo indicates a document number already registered.
	ErrDuplicateDocNo = errors.New("transactions: duplicate document number")
)

// CreateInput is the payload for registering a transaction. FundType may be
// left empty, in which case the keyword classifier picks one from the
// description.
type CreateInput struct {
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
	FundType    string          `json:"fundType"`
	DocNo       string          `json:"docNo" validate:"max=64"`
	Description string          `json:"description" validate:"required,max=500"`
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
	Payer       string          `json:"payer" validate:"max=200"`
	Payee       string          `json:"payee" validate:"max=200"`
	IncomeRefID *int64          `json:"incomeRefId"`
	BankID      string          `json:"bankId" validate:"max=64"`
}

// UpdateInput is the payload for editing a transaction. Semantics match
// CreateInput; the store does not lock past periods.
type UpdateInput struct {
	CreateInput
	ID int64 `json:"id" validate:"required,min=1"`
}

// Warning is an advisory attached to a successful write. The write goes
// through; warnings surface data-quality findings to the officer.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// overdraft warning code used when an expense would take its fund below zero.
const WarnOverdraft = "fund-overdraft"
