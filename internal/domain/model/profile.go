package model

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/NimalpudiAshrita/smartloan/internal/domain/valueobject"
)

const (
	MinCreditScore = 300
	MaxCreditScore = 900
	MinAge         = 21
	MaxAge         = 65
)

// ---------------------------------------------------------------------------
// FinancialProfile value object
// ---------------------------------------------------------------------------

// ProfileParams is the raw, unvalidated input for NewFinancialProfile.
// Pointer fields distinguish "absent" from zero: CreditScore and Age are
// optional, MonthlyExpenses and ExistingEMI are required but may be zero.
type ProfileParams struct {
	FullName        string
	MonthlyIncome   decimal.Decimal
	MonthlyExpenses *decimal.Decimal
	ExistingEMI     *decimal.Decimal
	LoanAmount      decimal.Decimal
	CreditScore     *int
	Age             *int
	Employment      string
	LoanType        string
	TenureMonths    int
}

// FinancialProfile is the immutable input to one evaluation.
type FinancialProfile struct {
	fullName        string
	monthlyIncome   decimal.Decimal
	monthlyExpenses decimal.Decimal
	existingEMI     decimal.Decimal
	loanAmount      decimal.Decimal
	employment      valueobject.EmploymentType
	loanType        valueobject.LoanType
	tenureMonths    int
	creditScore     int
	age             int
	hasCreditScore  bool
	hasAge          bool
}

// NewFinancialProfile validates params and returns a profile. Any failure is a
// *ValidationError wrapping ErrInvalidProfile; nothing is silently corrected.
func NewFinancialProfile(p ProfileParams) (FinancialProfile, error) {
	if !p.MonthlyIncome.IsPositive() {
		return FinancialProfile{}, invalid("monthly_income", "must be positive")
	}
	if p.MonthlyIncome.GreaterThan(MaxAmount) {
		return FinancialProfile{}, invalid("monthly_income", "is out of range")
	}
	expenses, err := requiredAmount("monthly_expenses", p.MonthlyExpenses)
	if err != nil {
		return FinancialProfile{}, err
	}
	existingEMI, err := requiredAmount("existing_emi", p.ExistingEMI)
	if err != nil {
		return FinancialProfile{}, err
	}
	if !p.LoanAmount.IsPositive() {
		return FinancialProfile{}, invalid("loan_amount", "must be positive")
	}
	if p.LoanAmount.GreaterThan(MaxAmount) {
		return FinancialProfile{}, invalid("loan_amount", "is out of range")
	}
	if p.TenureMonths <= 0 {
		return FinancialProfile{}, invalid("tenure_months", "must be positive")
	}
	if p.TenureMonths > MaxScheduleMonths {
		return FinancialProfile{}, invalid("tenure_months", "must not exceed 480")
	}
	if p.CreditScore != nil && (*p.CreditScore < MinCreditScore || *p.CreditScore > MaxCreditScore) {
		return FinancialProfile{}, invalid("credit_score", "must be between 300 and 900")
	}
	if p.Age != nil && (*p.Age < MinAge || *p.Age > MaxAge) {
		return FinancialProfile{}, invalid("age", "must be between 21 and 65")
	}

	employment, err := valueobject.NewEmploymentType(p.Employment)
	if err != nil {
		return FinancialProfile{}, invalid("employment", "must be salaried, self_employed or freelancer")
	}
	loanType, err := valueobject.NewLoanType(p.LoanType)
	if err != nil {
		return FinancialProfile{}, invalid("loan_type", "must be Home, Education, Personal or Business")
	}

	name := strings.TrimSpace(p.FullName)
	if name == "" {
		name = "Applicant"
	}

	profile := FinancialProfile{
		fullName:        name,
		monthlyIncome:   p.MonthlyIncome,
		monthlyExpenses: expenses,
		existingEMI:     existingEMI,
		loanAmount:      p.LoanAmount,
		employment:      employment,
		loanType:        loanType,
		tenureMonths:    p.TenureMonths,
	}
	if p.CreditScore != nil {
		profile.creditScore = *p.CreditScore
		profile.hasCreditScore = true
	}
	if p.Age != nil {
		profile.age = *p.Age
		profile.hasAge = true
	}
	return profile, nil
}

func requiredAmount(field string, v *decimal.Decimal) (decimal.Decimal, error) {
	switch {
	case v == nil:
		return decimal.Zero, invalid(field, "is required")
	case v.IsNegative():
		return decimal.Zero, invalid(field, "cannot be negative")
	case v.GreaterThan(MaxAmount):
		return decimal.Zero, invalid(field, "is out of range")
	}
	return *v, nil
}

// DisposableIncome is income minus expenses minus existing EMI. It may be negative.
func (p FinancialProfile) DisposableIncome() decimal.Decimal {
	return p.monthlyIncome.Sub(p.monthlyExpenses).Sub(p.existingEMI)
}

// FOIR returns (existing EMI + newEMI) / income.
func (p FinancialProfile) FOIR(newEMI decimal.Decimal) decimal.Decimal {
	return p.existingEMI.Add(newEMI).Div(p.monthlyIncome)
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (p FinancialProfile) FullName() string                       { return p.fullName }
func (p FinancialProfile) MonthlyIncome() decimal.Decimal         { return p.monthlyIncome }
func (p FinancialProfile) MonthlyExpenses() decimal.Decimal       { return p.monthlyExpenses }
func (p FinancialProfile) ExistingEMI() decimal.Decimal           { return p.existingEMI }
func (p FinancialProfile) LoanAmount() decimal.Decimal            { return p.loanAmount }
func (p FinancialProfile) TenureMonths() int                      { return p.tenureMonths }
func (p FinancialProfile) Employment() valueobject.EmploymentType { return p.employment }
func (p FinancialProfile) LoanType() valueobject.LoanType         { return p.loanType }
func (p FinancialProfile) CreditScore() (int, bool)               { return p.creditScore, p.hasCreditScore }
func (p FinancialProfile) Age() (int, bool)                       { return p.age, p.hasAge }
