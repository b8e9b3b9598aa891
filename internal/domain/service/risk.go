package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/NimalpudiAshrita/smartloan/internal/domain/valueobject"
)

const (
	minRiskScore         = 5
	maxRiskScore         = 95
	lowConfidencePercent = 55
)

var (
	debtBurdenShare  = decimal.RequireFromString("0.30")
	comfortableShare = decimal.RequireFromString("0.35")
	healthyFOIR      = decimal.RequireFromString("0.40")
)

// scoreRisk starts at 100 and subtracts for strengths, adds for weaknesses.
//
//	credit    >= 760: -35   >= 700: -22   >= 650 or absent: -10
//	FOIR      <= 35%: -25   <= 45%: -15   <= 55%: -5   else +20
//	stability >= 0.95: -12  < 0.80: +10
//	disposable >= 35% of income: -5; disposable short of the new EMI: +15
//
// The result is clamped to [5, 95]: <= 35 LOW, <= 60 MEDIUM, else HIGH.
func scoreRisk(sig signals) (int, valueobject.RiskLabel) {
	score := 100

	switch {
	case !sig.hasCredit:
		score -= 10
	case sig.creditScore >= 760:
		score -= 35
	case sig.creditScore >= 700:
		score -= 22
	case sig.creditScore >= 650:
		score -= 10
	}

	foir := sig.foir.InexactFloat64()
	switch {
	case foir <= 0.35:
		score -= 25
	case foir <= 0.45:
		score -= 15
	case foir <= 0.55:
		score -= 5
	default:
		score += 20
	}

	switch {
	case sig.stability >= 0.95:
		score -= 12
	case sig.stability < 0.8:
		score += 10
	}

	if sig.disposable.GreaterThanOrEqual(sig.income.Mul(comfortableShare)) {
		score -= 5
	}
	if sig.residual.IsNegative() {
		score += 15
	}

	score = max(minRiskScore, min(maxRiskScore, score))

	switch {
	case score <= 35:
		return score, valueobject.RiskLow
	case score <= 60:
		return score, valueobject.RiskMedium
	default:
		return score, valueobject.RiskHigh
	}
}

// explain turns the same signals into human-readable reasons (strengths) and
// cautions (weaknesses or borderline measurements).
func (e *EligibilityEngine) explain(
	sig signals,
	confidence int,
	label valueobject.RiskLabel,
) (reasons, cautions []string) {
	reasons = []string{}
	cautions = []string{}

	switch {
	case !sig.hasCredit:
		cautions = append(cautions, "No credit score supplied; lender terms may differ once it is verified.")
	case sig.creditScore >= 740:
		reasons = append(reasons, "Strong credit profile increases lender trust.")
	case sig.creditScore < 670:
		cautions = append(cautions, "Credit score is below preferred range for premium offers.")
	}

	switch {
	case sig.foir.LessThanOrEqual(healthyFOIR):
		reasons = append(reasons, "Healthy FOIR indicates manageable repayment capacity.")
	case sig.foir.GreaterThan(e.policy.RejectFOIR):
		cautions = append(cautions, "FOIR is high; lenders may reduce sanction amount.")
	}

	if sig.disposable.IsNegative() {
		cautions = append(cautions, "Expenses and existing EMIs exceed monthly income.")
	} else if sig.disposable.GreaterThanOrEqual(sig.income.Mul(comfortableShare)) {
		reasons = append(reasons, "Disposable income supports stable EMI servicing.")
	}

	if sig.existingEMI.Div(sig.income).GreaterThan(debtBurdenShare) {
		cautions = append(cautions, "High existing debt burden.")
	}

	if cutoff, ok := e.nearCutoff(sig.foir); ok {
		cautions = append(cautions, fmt.Sprintf(
			"FOIR of %s%% is close to the %s%% cutoff; small changes in obligations may change the outcome.",
			percent(sig.foir), percent(cutoff),
		))
	}

	if confidence < lowConfidencePercent {
		cautions = append(cautions, "Eligibility confidence is moderate; terms may vary by lender.")
	}

	if label.Equal(valueobject.RiskHigh) && len(cautions) == 0 {
		cautions = append(cautions, "Overall profile is sensitive to higher loan burden.")
	}

	return reasons, cautions
}

// nearCutoff reports the policy cutoff within BorderlineBand of foir, if any.
func (e *EligibilityEngine) nearCutoff(foir decimal.Decimal) (decimal.Decimal, bool) {
	for _, cutoff := range []decimal.Decimal{e.policy.ApproveFOIR, e.policy.RejectFOIR} {
		if foir.Sub(cutoff).Abs().LessThanOrEqual(e.policy.BorderlineBand) {
			return cutoff, true
		}
	}
	return decimal.Zero, false
}

func percent(ratio decimal.Decimal) string {
	return ratio.Mul(decimal.NewFromInt(100)).Round(1).StringFixed(1)
}
