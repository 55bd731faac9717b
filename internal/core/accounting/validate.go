// Package accounting holds the pure double-entry rules shared by the journal
// and voucher surfaces: line well-formedness, whole-entry balance checking,
// voucher projection and the signed-amount convention. Nothing in this
// package touches storage, the clock or any ambient state; every function is
// a plain computation over its inputs so the same call always produces the
// same result.
package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
)

// LineError identifies a well-formedness violation on a single line.
type LineError string

const (
	// LineErrBothAmountsSet means both debit and credit are strictly positive.
	LineErrBothAmountsSet LineError = "BOTH_AMOUNTS_SET"
	// LineErrNeitherAmountSet means both debit and credit are exactly zero.
	LineErrNeitherAmountSet LineError = "NEITHER_AMOUNT_SET"
	// LineErrNegativeAmount means the debit or the credit is below zero.
	LineErrNegativeAmount LineError = "NEGATIVE_AMOUNT"
	// LineErrMissingAccount means the line has no account reference.
	LineErrMissingAccount LineError = "MISSING_ACCOUNT"
)

// EntryError identifies an entry-level violation.
type EntryError string

const (
	// EntryErrTooFewLines means the entry has fewer than two lines.
	EntryErrTooFewLines EntryError = "TOO_FEW_LINES"
	// EntryErrUnbalanced means total debits and total credits differ by at
	// least the configured tolerance.
	EntryErrUnbalanced EntryError = "UNBALANCED"
)

// DefaultTolerance is one cent, matching the two-decimal currency precision
// used throughout the system. It absorbs display rounding on amounts like
// 33.33 entered three times against a 99.99 total.
var DefaultTolerance = decimal.New(1, -2)

// Result is the outcome of validating a candidate entry. All applicable
// errors are collected in a single pass so a form can show every problem at
// once; Valid is true only when both error collections are empty. Totals are
// populated either way so the caller can render a live running total.
type Result struct {
	Valid       bool                `json:"valid"`
	TotalDebit  decimal.Decimal     `json:"totalDebit"`
	TotalCredit decimal.Decimal     `json:"totalCredit"`
	LineErrors  map[int][]LineError `json:"lineErrors,omitempty"`
	EntryErrors []EntryError        `json:"entryErrors,omitempty"`
}

// Validator checks candidate journal entries against the double-entry
// invariants. The zero value is not useful; construct with NewValidator.
type Validator struct {
	tolerance decimal.Decimal
}

// NewValidator returns a Validator using the given balance tolerance.
// A non-positive tolerance falls back to DefaultTolerance.
func NewValidator(tolerance decimal.Decimal) Validator {
	if tolerance.LessThanOrEqual(decimal.Zero) {
		tolerance = DefaultTolerance
	}
	return Validator{tolerance: tolerance}
}

// Tolerance reports the balance tolerance this validator applies.
func (v Validator) Tolerance() decimal.Decimal {
	return v.tolerance
}

// ValidateEntry checks an ordered sequence of candidate lines plus entry
// metadata against the double-entry invariants:
//
//   - each line has exactly one of debit/credit strictly positive, neither
//     negative, and a non-empty account reference;
//   - the entry has at least two lines;
//   - total debits equal total credits within the tolerance.
//
// Line order is preserved for display but has no effect on the outcome, and
// the metadata never influences the balance computation. Validation does not
// short-circuit: every violation on every line is reported.
func (v Validator) ValidateEntry(lines []domain.TransactionLine, meta domain.EntryMetadata) Result {
	_ = meta // carried through the contract; entry-level input checks live in the service layer

	res := Result{
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	lineErrors := make(map[int][]LineError)
	for i, line := range lines {
		var errs []LineError
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			errs = append(errs, LineErrNegativeAmount)
		}
		hasDebit := line.Debit.IsPositive()
		hasCredit := line.Credit.IsPositive()
		switch {
		case hasDebit && hasCredit:
			errs = append(errs, LineErrBothAmountsSet)
		case line.Debit.IsZero() && line.Credit.IsZero():
			errs = append(errs, LineErrNeitherAmountSet)
		}
		if line.AccountID == "" {
			errs = append(errs, LineErrMissingAccount)
		}
		if len(errs) > 0 {
			lineErrors[i] = errs
		}

		res.TotalDebit = res.TotalDebit.Add(line.Debit)
		res.TotalCredit = res.TotalCredit.Add(line.Credit)
	}
	if len(lineErrors) > 0 {
		res.LineErrors = lineErrors
	}

	if len(lines) < 2 {
		res.EntryErrors = append(res.EntryErrors, EntryErrTooFewLines)
	}
	if res.TotalDebit.Sub(res.TotalCredit).Abs().GreaterThanOrEqual(v.tolerance) {
		res.EntryErrors = append(res.EntryErrors, EntryErrUnbalanced)
	}

	res.Valid = len(res.LineErrors) == 0 && len(res.EntryErrors) == 0
	return res
}
