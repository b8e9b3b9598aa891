package service

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/NimalpudiAshrita/smartloan/internal/domain/model"
)

const approvalFOIR = 0.35

var (
	foirAdjustLow  = decimal.RequireFromString("0.40")
	foirAdjustHigh = decimal.RequireFromString("0.50")
)

// rankOffers prices every offer of the profile's loan type and orders them:
// eligible first, then EMI, rate, approval score (descending) and bank name.
// Ineligible offers are flagged with reasons, never dropped.
func (e *EligibilityEngine) rankOffers(
	profile model.FinancialProfile,
	offers []model.BankOffer,
	sig signals,
	confidence int,
) []model.RankedOffer {
	ranked := make([]model.RankedOffer, 0, len(offers))
	for _, offer := range offers {
		if !offer.LoanType().Equal(profile.LoanType()) {
			continue
		}
		ranked = append(ranked, e.priceOffer(profile, offer, sig, confidence))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Eligible != b.Eligible {
			return a.Eligible
		}
		if !a.EMI.Equal(b.EMI) {
			return a.EMI.LessThan(b.EMI)
		}
		if !a.EffectiveRate.Equal(b.EffectiveRate) {
			return a.EffectiveRate.LessThan(b.EffectiveRate)
		}
		if a.ApprovalScore != b.ApprovalScore {
			return a.ApprovalScore > b.ApprovalScore
		}
		return a.BankName < b.BankName
	})

	return ranked
}

func (e *EligibilityEngine) priceOffer(
	profile model.FinancialProfile,
	offer model.BankOffer,
	sig signals,
	confidence int,
) model.RankedOffer {
	base := offer.BaseRate()
	rate := base.Add(creditAdjustment(sig)).Add(foirAdjustment(sig)).Add(stabilityAdjustment(sig))
	rate = decimal.Max(rate, e.policy.RateFloor).Round(2)

	tenure := profile.TenureMonths()
	emi := model.EMI(profile.LoanAmount(), rate, tenure)
	foir := profile.FOIR(emi)
	fee := profile.LoanAmount().Mul(offer.ProcessingFeePct()).Div(decimal.NewFromInt(100)).Round(2)
	total := emi.Mul(decimal.NewFromInt(int64(tenure))).Add(fee).Round(2)

	tag := model.TagFastApproval
	if rate.LessThanOrEqual(base) {
		tag = model.TagBestRate
	}

	reasons := ineligibility(profile, offer, sig, foir)

	return model.RankedOffer{
		BankName:         offer.BankName(),
		Tag:              tag,
		IneligibleReason: reasons,
		BaseRate:         base,
		EffectiveRate:    rate,
		EMI:              emi,
		FOIR:             foir.Round(4),
		ProcessingFee:    fee,
		TotalPayable:     total,
		ApprovalScore:    approvalScore(rate, base, foir, confidence),
		Eligible:         len(reasons) == 0,
	}
}

// ineligibility lists every bank constraint the profile violates. Credit
// floors are only checked when the applicant supplied a score.
func ineligibility(
	profile model.FinancialProfile,
	offer model.BankOffer,
	sig signals,
	foir decimal.Decimal,
) []string {
	var reasons []string

	if limit := offer.MaxTenureMonths(); limit > 0 && profile.TenureMonths() > limit {
		reasons = append(reasons, fmt.Sprintf(
			"Tenure of %d months exceeds %s maximum of %d months.",
			profile.TenureMonths(), offer.BankName(), limit,
		))
	}
	if sig.hasCredit && sig.creditScore < offer.MinCreditScore() {
		reasons = append(reasons, fmt.Sprintf(
			"Credit score %d is below %s minimum of %d.",
			sig.creditScore, offer.BankName(), offer.MinCreditScore(),
		))
	}
	if foir.GreaterThan(offer.MaxFOIR()) {
		reasons = append(reasons, fmt.Sprintf(
			"FOIR of %s%% exceeds %s limit of %s%%.",
			percent(foir), offer.BankName(), percent(offer.MaxFOIR()),
		))
	}

	return reasons
}

func creditAdjustment(sig signals) decimal.Decimal {
	switch {
	case sig.hasCredit && sig.creditScore >= 760:
		return decimal.RequireFromString("-0.35")
	case sig.hasCredit && sig.creditScore >= 720:
		return decimal.RequireFromString("-0.15")
	default:
		return decimal.RequireFromString("0.20")
	}
}

func foirAdjustment(sig signals) decimal.Decimal {
	switch {
	case sig.foir.LessThanOrEqual(foirAdjustLow):
		return decimal.RequireFromString("-0.10")
	case sig.foir.GreaterThan(foirAdjustHigh):
		return decimal.RequireFromString("0.25")
	default:
		return decimal.Zero
	}
}

func stabilityAdjustment(sig signals) decimal.Decimal {
	switch {
	case sig.stability >= 1:
		return decimal.RequireFromString("-0.10")
	case sig.stability < 0.8:
		return decimal.RequireFromString("0.20")
	default:
		return decimal.Zero
	}
}

// approvalScore estimates how readily the bank sanctions the offer, in [35, 98].
func approvalScore(rate, base, foir decimal.Decimal, confidence int) int {
	score := 100.0
	score -= rate.Sub(base).InexactFloat64() * 10
	score -= max(foir.InexactFloat64()-approvalFOIR, 0) * 120
	score += float64(confidence-50) * 0.2
	return int(clamp(score, 35, 98))
}

func anyEligible(offers []model.RankedOffer) bool {
	for _, o := range offers {
		if o.Eligible {
			return true
		}
	}
	return false
}

// markBest flags the first eligible offer. rankOffers sorts eligible offers
// first by ascending EMI, so this is the cheapest eligible monthly payment.
func markBest(offers []model.RankedOffer) {
	for i := range offers {
		if offers[i].Eligible {
			offers[i].IsBest = true
			return
		}
	}
}
