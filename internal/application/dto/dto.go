package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// EvaluateEligibilityRequest carries one applicant's financial profile.
// Credit score and age are optional; employment and loan type default to
// salaried and Home. Expenses and existing EMI are required, zero included.
type EvaluateEligibilityRequest struct {
	FullName        string           `json:"full_name"`
	MonthlyIncome   decimal.Decimal  `json:"monthly_income"`
	MonthlyExpenses *decimal.Decimal `json:"monthly_expenses"`
	ExistingEMI     *decimal.Decimal `json:"existing_emi"`
	LoanAmount      decimal.Decimal  `json:"loan_amount"`
	CreditScore     *int             `json:"credit_score,omitempty"`
	Age             *int             `json:"age,omitempty"`
	Employment      string           `json:"employment"`
	LoanType        string           `json:"loan_type"`
	TenureMonths    int              `json:"tenure_months"`
}

// ScheduleRequest asks for the amortization schedule of a fixed-rate loan.
type ScheduleRequest struct {
	StartDate    *time.Time      `json:"start_date,omitempty"`
	Principal    decimal.Decimal `json:"principal"`
	AnnualRate   decimal.Decimal `json:"annual_rate"`
	TenureMonths int             `json:"tenure_months"`
}

// ListOffersRequest filters the catalog by loan type. Empty means all types.
type ListOffersRequest struct {
	LoanType string `json:"loan_type"`
}

// LoginRequest carries operator credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// EligibilityResponse is the external representation of one evaluation.
type EligibilityResponse struct {
	EvaluationID  string           `json:"evaluation_id"`
	Applicant     string           `json:"applicant"`
	LoanType      string           `json:"loan_type"`
	Decision      DecisionResponse `json:"decision"`
	BestOffer     *OfferResponse   `json:"best_offer,omitempty"`
	Offers        []OfferResponse  `json:"offers"`
	EligibleCount int              `json:"eligible_count"`
}

// DecisionResponse is the verdict with its explanation.
type DecisionResponse struct {
	Status           string          `json:"status"`
	RiskLabel        string          `json:"risk_label"`
	Reasons          []string        `json:"reasons"`
	Cautions         []string        `json:"cautions"`
	DisposableIncome decimal.Decimal `json:"disposable_income"`
	BaselineEMI      decimal.Decimal `json:"baseline_emi"`
	FOIR             decimal.Decimal `json:"foir"`
	FOIRPercent      decimal.Decimal `json:"foir_percent"`
	RiskScore        int             `json:"risk_score"`
	Confidence       int             `json:"confidence"`
}

// OfferResponse is one bank offer priced for the applicant.
type OfferResponse struct {
	Bank              string          `json:"bank"`
	Tag               string          `json:"tag"`
	IneligibleReasons []string        `json:"ineligible_reasons"`
	BaseRate          decimal.Decimal `json:"base_rate"`
	EffectiveRate     decimal.Decimal `json:"effective_rate"`
	EMI               decimal.Decimal `json:"emi"`
	FOIRPercent       decimal.Decimal `json:"foir_percent"`
	ProcessingFee     decimal.Decimal `json:"processing_fee"`
	TotalPayable      decimal.Decimal `json:"total_payable"`
	ApprovalScore     int             `json:"approval_score"`
	Eligible          bool            `json:"eligible"`
	IsBest            bool            `json:"is_best"`
}

// AmortizationEntryResponse represents a single amortization schedule entry.
type AmortizationEntryResponse struct {
	Period           int             `json:"period"`
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// ScheduleResponse is a full repayment schedule with totals.
type ScheduleResponse struct {
	EMI           decimal.Decimal             `json:"emi"`
	TotalInterest decimal.Decimal             `json:"total_interest"`
	TotalPayable  decimal.Decimal             `json:"total_payable"`
	Entries       []AmortizationEntryResponse `json:"entries"`
}

// CatalogOfferResponse is a bank offer as configured, before pricing.
type CatalogOfferResponse struct {
	Bank             string          `json:"bank"`
	LoanType         string          `json:"loan_type"`
	BaseRate         decimal.Decimal `json:"base_rate"`
	MaxFOIR          decimal.Decimal `json:"max_foir"`
	ProcessingFeePct decimal.Decimal `json:"processing_fee_pct"`
	MinCreditScore   int             `json:"min_credit_score"`
	MaxTenureMonths  int             `json:"max_tenure_months,omitempty"`
}

// ListOffersResponse lists the catalog.
type ListOffersResponse struct {
	Offers []CatalogOfferResponse `json:"offers"`
}

// LoginResponse carries an issued bearer token.
type LoginResponse struct {
	ExpiresAt   time.Time `json:"expires_at"`
	Token       string    `json:"token"`
	TokenType   string    `json:"token_type"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Roles       []string  `json:"roles"`
}
