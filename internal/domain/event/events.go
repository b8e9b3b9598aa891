package event

import (
	"github.com/shopspring/decimal"

	"github.com/NimalpudiAshrita/smartloan/internal/domain/model"
	"github.com/NimalpudiAshrita/smartloan/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const EligibilityEvaluatedType = "smartloan.eligibility.evaluated"

// ---------------------------------------------------------------------------
// Eligibility Events
// ---------------------------------------------------------------------------

// EligibilityEvaluated is raised after every successful evaluation. It carries
// the decision summary only; no applicant name or income figures leave the
// process.
type EligibilityEvaluated struct {
	events.BaseEvent
	Status         string          `json:"status"`
	RiskLabel      string          `json:"risk_label"`
	LoanType       string          `json:"loan_type"`
	BestBank       string          `json:"best_bank,omitempty"`
	LoanAmount     decimal.Decimal `json:"loan_amount"`
	FOIR           decimal.Decimal `json:"foir"`
	TenureMonths   int             `json:"tenure_months"`
	RiskScore      int             `json:"risk_score"`
	Confidence     int             `json:"confidence"`
	EligibleOffers int             `json:"eligible_offers"`
}

func NewEligibilityEvaluated(
	evaluationID string,
	profile model.FinancialProfile,
	eval model.Evaluation,
) EligibilityEvaluated {
	e := EligibilityEvaluated{
		BaseEvent:      events.NewBaseEvent(EligibilityEvaluatedType, evaluationID, "Evaluation"),
		Status:         eval.Decision.Status.String(),
		RiskLabel:      eval.Decision.RiskLabel.String(),
		LoanType:       profile.LoanType().String(),
		LoanAmount:     profile.LoanAmount(),
		FOIR:           eval.Decision.FOIR,
		TenureMonths:   profile.TenureMonths(),
		RiskScore:      eval.Decision.RiskScore,
		Confidence:     eval.Decision.Confidence,
		EligibleOffers: eval.EligibleCount(),
	}
	if best, ok := eval.BestOffer(); ok {
		e.BestBank = best.BankName
	}
	return e
}
