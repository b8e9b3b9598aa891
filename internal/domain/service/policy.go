package service

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Policy holds the business-rule cutoffs the engine classifies against. None
// of these are algorithmic invariants; they are lender appetite and can be
// overridden from configuration.
//
// Defaults:
//
//	FOIR <  40%                               -> APPROVED (with safety margin)
//	40% <= FOIR <= 55%                        -> CONDITIONAL
//	FOIR >  55% or negative disposable income -> REJECTED
type Policy struct {
	// BaselineRate is the annual percentage used to price the requested loan
	// for the decision itself, independent of any bank.
	BaselineRate decimal.Decimal
	// ApproveFOIR is the exclusive upper bound for APPROVED.
	ApproveFOIR decimal.Decimal
	// RejectFOIR is the inclusive upper bound for CONDITIONAL.
	RejectFOIR decimal.Decimal
	// SafetyMargin is the share of income that must remain after expenses,
	// existing EMI and the new EMI for an APPROVED verdict.
	SafetyMargin decimal.Decimal
	// BorderlineBand is the FOIR distance from a cutoff that raises a caution.
	BorderlineBand decimal.Decimal
	// RateFloor is the lowest effective annual rate any bank will quote.
	RateFloor decimal.Decimal
	// NeutralCreditScore stands in for a missing credit score when computing
	// confidence.
	NeutralCreditScore int
}

// DefaultPolicy returns the documented default cutoffs.
func DefaultPolicy() Policy {
	return Policy{
		BaselineRate:       decimal.NewFromInt(10),
		ApproveFOIR:        decimal.RequireFromString("0.40"),
		RejectFOIR:         decimal.RequireFromString("0.55"),
		SafetyMargin:       decimal.RequireFromString("0.10"),
		BorderlineBand:     decimal.RequireFromString("0.03"),
		RateFloor:          decimal.RequireFromString("7.75"),
		NeutralCreditScore: 650,
	}
}

// Validate checks the cutoffs are ordered and in range.
func (p Policy) Validate() error {
	if p.BaselineRate.IsNegative() {
		return errors.New("baseline rate cannot be negative")
	}
	if !p.ApproveFOIR.IsPositive() {
		return errors.New("approve FOIR must be positive")
	}
	if p.RejectFOIR.LessThan(p.ApproveFOIR) {
		return errors.New("reject FOIR must not be below approve FOIR")
	}
	if p.SafetyMargin.IsNegative() || p.SafetyMargin.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return errors.New("safety margin must be in [0, 1)")
	}
	if p.BorderlineBand.IsNegative() {
		return errors.New("borderline band cannot be negative")
	}
	if p.RateFloor.IsNegative() {
		return errors.New("rate floor cannot be negative")
	}
	if p.NeutralCreditScore < 300 || p.NeutralCreditScore > 900 {
		return errors.New("neutral credit score must be between 300 and 900")
	}
	return nil
}
