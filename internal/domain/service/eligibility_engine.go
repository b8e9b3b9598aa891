package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/NimalpudiAshrita/smartloan/internal/domain/model"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// EligibilityEngine – rule-based decisioning and offer ranking
// ---------------------------------------------------------------------------

// EligibilityEngine maps a profile and a static offer list to a decision and a
// ranked offer list. It holds no mutable state and is safe for concurrent use.
type EligibilityEngine struct {
	policy Policy
}

// NewEligibilityEngine returns an engine bound to the given policy.
func NewEligibilityEngine(policy Policy) *EligibilityEngine {
	return &EligibilityEngine{policy: policy}
}

// Policy returns the cutoffs the engine classifies against.
func (e *EligibilityEngine) Policy() Policy { return e.policy }

// signals are the per-profile measurements every rule reads from.
type signals struct {
	income      decimal.Decimal
	existingEMI decimal.Decimal
	disposable  decimal.Decimal
	baselineEMI decimal.Decimal
	residual    decimal.Decimal
	foir        decimal.Decimal
	stability   float64
	creditScore int
	hasCredit   bool
}

// Evaluate classifies the profile and ranks offers. Offers whose loan type
// differs from the profile's are ignored. The only error is ErrInvalidProfile,
// returned for a zero-value profile that bypassed NewFinancialProfile.
func (e *EligibilityEngine) Evaluate(
	profile model.FinancialProfile,
	offers []model.BankOffer,
) (model.Evaluation, error) {
	if !profile.MonthlyIncome().IsPositive() || !profile.LoanAmount().IsPositive() || profile.TenureMonths() <= 0 {
		return model.Evaluation{}, fmt.Errorf("evaluate: %w", model.ErrInvalidProfile)
	}

	sig := e.measure(profile)
	status := e.classify(sig)
	confidence := e.confidence(profile)
	riskScore, riskLabel := scoreRisk(sig)

	ranked := e.rankOffers(profile, offers, sig, confidence)

	downgraded := false
	if status.Equal(valueobject.DecisionApproved) && !anyEligible(ranked) {
		status = valueobject.DecisionConditional
		downgraded = true
	}

	if !status.Equal(valueobject.DecisionRejected) {
		markBest(ranked)
	}

	reasons, cautions := e.explain(sig, confidence, riskLabel)
	if downgraded {
		cautions = append(cautions, "No lender in the catalog matches this profile at the requested terms.")
	}

	return model.Evaluation{
		Decision: model.Decision{
			Status:           status,
			RiskLabel:        riskLabel,
			RiskScore:        riskScore,
			Confidence:       confidence,
			Reasons:          reasons,
			Cautions:         cautions,
			DisposableIncome: sig.disposable.Round(2),
			BaselineEMI:      sig.baselineEMI,
			FOIR:             sig.foir.Round(4),
		},
		Offers: ranked,
	}, nil
}

func (e *EligibilityEngine) measure(profile model.FinancialProfile) signals {
	baselineEMI := model.EMI(profile.LoanAmount(), e.policy.BaselineRate, profile.TenureMonths())
	disposable := profile.DisposableIncome()
	credit, hasCredit := profile.CreditScore()

	return signals{
		income:      profile.MonthlyIncome(),
		existingEMI: profile.ExistingEMI(),
		disposable:  disposable,
		baselineEMI: baselineEMI,
		residual:    disposable.Sub(baselineEMI),
		foir:        profile.FOIR(baselineEMI),
		stability:   profile.Employment().Stability(),
		creditScore: credit,
		hasCredit:   hasCredit,
	}
}

// classify applies the FOIR bands and the disposable-income checks.
func (e *EligibilityEngine) classify(sig signals) valueobject.DecisionStatus {
	switch {
	case sig.disposable.IsNegative():
		return valueobject.DecisionRejected
	case sig.foir.GreaterThan(e.policy.RejectFOIR):
		return valueobject.DecisionRejected
	case sig.foir.LessThan(e.policy.ApproveFOIR) &&
		sig.residual.GreaterThanOrEqual(sig.income.Mul(e.policy.SafetyMargin)):
		return valueobject.DecisionApproved
	default:
		return valueobject.DecisionConditional
	}
}

// confidence estimates approval likelihood as a percentage in [5, 95] from
// credit score and income headroom over the requested amount.
func (e *EligibilityEngine) confidence(profile model.FinancialProfile) int {
	credit, ok := profile.CreditScore()
	if !ok {
		credit = e.policy.NeutralCreditScore
	}
	income := profile.MonthlyIncome().InexactFloat64()
	loan := profile.LoanAmount().InexactFloat64()

	score := 0.22
	score += clamp((float64(credit)-500)/360, 0, 0.53)
	score += clamp((income-loan/120)/120000, 0, 0.2)
	score = clamp(score, 0.05, 0.95)

	return int(decimal.NewFromFloat(score * 100).Round(0).IntPart())
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
