package model

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/NimalpudiAshrita/smartloan/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// BankOffer – static reference data
// ---------------------------------------------------------------------------

// BankOffer is one lender's product for a loan type. Offers are loaded once at
// start-up and never mutated.
type BankOffer struct {
	bankName         string
	loanType         valueobject.LoanType
	baseRate         decimal.Decimal
	maxFOIR          decimal.Decimal
	processingFeePct decimal.Decimal
	minCreditScore   int
	maxTenureMonths  int
}

// NewBankOffer validates and builds an offer. maxTenureMonths == 0 means the
// bank imposes no tenure cap; minCreditScore == 0 means no credit floor.
func NewBankOffer(
	bankName string,
	loanType valueobject.LoanType,
	baseRate decimal.Decimal,
	minCreditScore int,
	maxFOIR decimal.Decimal,
	processingFeePct decimal.Decimal,
	maxTenureMonths int,
) (BankOffer, error) {
	if strings.TrimSpace(bankName) == "" {
		return BankOffer{}, errors.New("bank name is required")
	}
	if loanType.IsZero() {
		return BankOffer{}, errors.New("loan type is required")
	}
	if baseRate.IsNegative() {
		return BankOffer{}, errors.New("base rate cannot be negative")
	}
	if !maxFOIR.IsPositive() {
		return BankOffer{}, errors.New("max FOIR must be positive")
	}
	if processingFeePct.IsNegative() {
		return BankOffer{}, errors.New("processing fee cannot be negative")
	}
	if minCreditScore < 0 || maxTenureMonths < 0 {
		return BankOffer{}, errors.New("credit and tenure limits cannot be negative")
	}
	return BankOffer{
		bankName:         bankName,
		loanType:         loanType,
		baseRate:         baseRate,
		maxFOIR:          maxFOIR,
		processingFeePct: processingFeePct,
		minCreditScore:   minCreditScore,
		maxTenureMonths:  maxTenureMonths,
	}, nil
}

func (o BankOffer) BankName() string                  { return o.bankName }
func (o BankOffer) LoanType() valueobject.LoanType    { return o.loanType }
func (o BankOffer) BaseRate() decimal.Decimal         { return o.baseRate }
func (o BankOffer) MaxFOIR() decimal.Decimal          { return o.maxFOIR }
func (o BankOffer) ProcessingFeePct() decimal.Decimal { return o.processingFeePct }
func (o BankOffer) MinCreditScore() int               { return o.minCreditScore }
func (o BankOffer) MaxTenureMonths() int              { return o.maxTenureMonths }

// ---------------------------------------------------------------------------
// RankedOffer – derived, per evaluation
// ---------------------------------------------------------------------------

const (
	TagBestRate     = "Best Rate"
	TagFastApproval = "Fast Approval"
)

// RankedOffer is a BankOffer priced for one profile.
type RankedOffer struct {
	BankName         string
	Tag              string
	IneligibleReason []string
	BaseRate         decimal.Decimal
	EffectiveRate    decimal.Decimal
	EMI              decimal.Decimal
	FOIR             decimal.Decimal
	ProcessingFee    decimal.Decimal
	TotalPayable     decimal.Decimal
	ApprovalScore    int
	Eligible         bool
	IsBest           bool
}
