package service_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NimalpudiAshrita/smartloan/internal/domain/model"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/service"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func intPtr(v int) *int { return &v }

func offer(t *testing.T, bank string, lt valueobject.LoanType, rate string, minCredit int, maxFOIR string, maxTenure int) model.BankOffer {
	t.Helper()
	o, err := model.NewBankOffer(bank, lt, dec(rate), minCredit, dec(maxFOIR), dec("0.5"), maxTenure)
	require.NoError(t, err)
	return o
}

func homeCatalog(t *testing.T) []model.BankOffer {
	return []model.BankOffer{
		offer(t, "Alpha Bank", valueobject.LoanTypeHome, "8.35", 680, "0.55", 360),
		offer(t, "Beta Bank", valueobject.LoanTypeHome, "8.50", 0, "0.60", 240),
		offer(t, "Gamma Finance", valueobject.LoanTypePersonal, "10.50", 700, "0.50", 60),
	}
}

func profile(t *testing.T, income, expenses, existing, loan int64, tenure int, mutate ...func(*model.ProfileParams)) model.FinancialProfile {
	t.Helper()
	exp, emi := decimal.NewFromInt(expenses), decimal.NewFromInt(existing)
	p := model.ProfileParams{
		MonthlyIncome:   decimal.NewFromInt(income),
		MonthlyExpenses: &exp,
		ExistingEMI:     &emi,
		LoanAmount:      decimal.NewFromInt(loan),
		TenureMonths:    tenure,
	}
	for _, m := range mutate {
		m(&p)
	}
	fp, err := model.NewFinancialProfile(p)
	require.NoError(t, err)
	return fp
}

func withCredit(score int) func(*model.ProfileParams) {
	return func(p *model.ProfileParams) { p.CreditScore = intPtr(score) }
}

// zeroRatePolicy prices the decision EMI as loan/tenure so FOIR cutoffs can
// be hit exactly.
func zeroRatePolicy() service.Policy {
	p := service.DefaultPolicy()
	p.BaselineRate = decimal.Zero
	return p
}

// ---------------------------------------------------------------------------
// Worked examples
// ---------------------------------------------------------------------------

func TestEvaluate_ApprovedProfile(t *testing.T) {
	engine := service.NewEligibilityEngine(service.DefaultPolicy())

	eval, err := engine.Evaluate(profile(t, 50_000, 15_000, 5_000, 500_000, 60), homeCatalog(t))
	require.NoError(t, err)

	d := eval.Decision
	assert.Equal(t, valueobject.DecisionApproved, d.Status)
	assert.InDelta(t, 10624.0, d.BaselineEMI.InexactFloat64(), 1.0)
	assert.InDelta(t, 0.3125, d.FOIR.InexactFloat64(), 0.001)
	assert.True(t, d.DisposableIncome.Equal(decimal.NewFromInt(30_000)))
	assert.Equal(t, 48, d.RiskScore)
	assert.Equal(t, valueobject.RiskMedium, d.RiskLabel)
	assert.Equal(t, 84, d.Confidence)
	assert.Contains(t, d.Reasons, "Healthy FOIR indicates manageable repayment capacity.")
	assert.Contains(t, d.Reasons, "Disposable income supports stable EMI servicing.")
	assert.Contains(t, d.Cautions, "No credit score supplied; lender terms may differ once it is verified.")

	require.Len(t, eval.Offers, 2, "personal offers are filtered out")
	assert.Equal(t, 2, eval.EligibleCount())
	best, ok := eval.BestOffer()
	require.True(t, ok)
	assert.Equal(t, "Alpha Bank", best.BankName)
}

func TestEvaluate_InputLimits(t *testing.T) {
	engine := service.NewEligibilityEngine(service.DefaultPolicy())

	tests := []struct {
		name   string
		income int64
		loan   int64
		tenure int
	}{
		{"longest tenure", 50_000, 500_000, model.MaxScheduleMonths},
		{"largest amounts", model.MaxAmount.IntPart(), model.MaxAmount.IntPart(), 60},
		{"largest loan on small income", 10_000, model.MaxAmount.IntPart(), model.MaxScheduleMonths},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := profile(t, tt.income, 0, 0, tt.loan, tt.tenure)
			require.NotPanics(t, func() {
				eval, err := engine.Evaluate(fp, homeCatalog(t))
				require.NoError(t, err)
				assert.True(t, eval.Decision.BaselineEMI.IsPositive())
				assert.GreaterOrEqual(t, eval.Decision.Confidence, 5)
				assert.LessOrEqual(t, eval.Decision.Confidence, 95)
			})
		})
	}
}

func TestEvaluate_RejectedProfile(t *testing.T) {
	engine := service.NewEligibilityEngine(service.DefaultPolicy())

	eval, err := engine.Evaluate(profile(t, 20_000, 18_000, 0, 800_000, 24), homeCatalog(t))
	require.NoError(t, err)

	d := eval.Decision
	assert.Equal(t, valueobject.DecisionRejected, d.Status)
	assert.True(t, d.FOIR.GreaterThan(dec("0.55")))
	assert.Equal(t, valueobject.RiskHigh, d.RiskLabel)
	assert.Equal(t, 95, d.RiskScore)
	assert.Contains(t, d.Cautions, "FOIR is high; lenders may reduce sanction amount.")

	_, ok := eval.BestOffer()
	assert.False(t, ok, "a rejected profile has no recommendation")
	for _, o := range eval.Offers {
		assert.False(t, o.IsBest)
	}
}

// ---------------------------------------------------------------------------
// Classification boundaries
// ---------------------------------------------------------------------------

func TestEvaluate_ClassificationBoundaries(t *testing.T) {
	engine := service.NewEligibilityEngine(zeroRatePolicy())

	// income 5000, loan 12000 over 12 months: decision EMI is exactly 1000.
	tests := []struct {
		name     string
		expenses int64
		existing int64
		want     valueobject.DecisionStatus
		wantFOIR string
	}{
		{"just under approve cutoff", 0, 999, valueobject.DecisionApproved, "0.3998"},
		{"exactly at approve cutoff", 0, 1000, valueobject.DecisionConditional, "0.4"},
		{"exactly at reject cutoff", 0, 1750, valueobject.DecisionConditional, "0.55"},
		{"just over reject cutoff", 0, 1751, valueobject.DecisionRejected, "0.5502"},
		{"low FOIR but residual under safety margin", 2700, 900, valueobject.DecisionConditional, "0.38"},
		{"negative disposable income", 5001, 0, valueobject.DecisionRejected, "0.2"},
		{"income fully consumed", 2000, 2000, valueobject.DecisionRejected, "0.6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval, err := engine.Evaluate(profile(t, 5_000, tt.expenses, tt.existing, 12_000, 12), homeCatalog(t))
			require.NoError(t, err)

			assert.True(t, eval.Decision.BaselineEMI.Equal(decimal.NewFromInt(1000)))
			assert.True(t, eval.Decision.FOIR.Equal(dec(tt.wantFOIR)), "FOIR = %s", eval.Decision.FOIR)
			assert.Equal(t, tt.want, eval.Decision.Status)
		})
	}
}

func TestEvaluate_BorderlineCaution(t *testing.T) {
	engine := service.NewEligibilityEngine(zeroRatePolicy())

	eval, err := engine.Evaluate(profile(t, 5_000, 0, 1_000, 12_000, 12), homeCatalog(t))
	require.NoError(t, err)

	assert.Contains(t, eval.Decision.Cautions,
		"FOIR of 40.0% is close to the 40.0% cutoff; small changes in obligations may change the outcome.")
}

// ---------------------------------------------------------------------------
// Offer ranking
// ---------------------------------------------------------------------------

func TestEvaluate_BestIsCheapestEligibleOffer(t *testing.T) {
	engine := service.NewEligibilityEngine(service.DefaultPolicy())
	catalog := []model.BankOffer{
		offer(t, "Prime Bank", valueobject.LoanTypeHome, "7.90", 750, "0.55", 360),
		offer(t, "North Bank", valueobject.LoanTypeHome, "8.50", 650, "0.55", 360),
		offer(t, "Coastal Bank", valueobject.LoanTypeHome, "8.20", 600, "0.55", 360),
	}

	eval, err := engine.Evaluate(profile(t, 50_000, 15_000, 5_000, 500_000, 60, withCredit(700)), catalog)
	require.NoError(t, err)
	require.Len(t, eval.Offers, 3, "ineligible offers are kept")

	var best model.RankedOffer
	bestCount := 0
	for _, o := range eval.Offers {
		if o.IsBest {
			best = o
			bestCount++
		}
	}
	require.Equal(t, 1, bestCount)
	assert.Equal(t, "Coastal Bank", best.BankName)
	for _, o := range eval.Offers {
		if o.Eligible {
			assert.True(t, best.EMI.LessThanOrEqual(o.EMI))
		}
	}

	last := eval.Offers[2]
	assert.Equal(t, "Prime Bank", last.BankName)
	assert.False(t, last.Eligible)
	assert.False(t, last.IsBest)
	require.Len(t, last.IneligibleReason, 1)
	assert.Equal(t, "Credit score 700 is below Prime Bank minimum of 750.", last.IneligibleReason[0])
	assert.True(t, last.EMI.LessThan(best.EMI), "the cheaper offer is still not recommended")
}

func TestEvaluate_OfferPricing(t *testing.T) {
	engine := service.NewEligibilityEngine(service.DefaultPolicy())
	catalog := []model.BankOffer{
		offer(t, "Floor Bank", valueobject.LoanTypeHome, "7.50", 0, "0.55", 360),
	}

	eval, err := engine.Evaluate(profile(t, 50_000, 15_000, 5_000, 500_000, 60, withCredit(780)), catalog)
	require.NoError(t, err)
	require.Len(t, eval.Offers, 1)

	o := eval.Offers[0]
	assert.True(t, o.EffectiveRate.Equal(dec("7.75")), "rate floor applies, got %s", o.EffectiveRate)
	assert.Equal(t, model.TagFastApproval, o.Tag)
	assert.True(t, o.EMI.Equal(model.EMI(decimal.NewFromInt(500_000), dec("7.75"), 60)))
	assert.True(t, o.ProcessingFee.Equal(decimal.NewFromInt(2500)))
	assert.True(t, o.TotalPayable.Equal(o.EMI.Mul(decimal.NewFromInt(60)).Add(o.ProcessingFee)))
	assert.GreaterOrEqual(t, o.ApprovalScore, 35)
	assert.LessOrEqual(t, o.ApprovalScore, 98)
}

func TestEvaluate_IneligibleReasons(t *testing.T) {
	engine := service.NewEligibilityEngine(service.DefaultPolicy())
	catalog := []model.BankOffer{
		offer(t, "Short Bank", valueobject.LoanTypeHome, "8.00", 0, "0.20", 36),
	}

	eval, err := engine.Evaluate(profile(t, 50_000, 15_000, 5_000, 500_000, 60), catalog)
	require.NoError(t, err)
	require.Len(t, eval.Offers, 1)

	o := eval.Offers[0]
	assert.False(t, o.Eligible)
	require.Len(t, o.IneligibleReason, 2)
	assert.Equal(t, "Tenure of 60 months exceeds Short Bank maximum of 36 months.", o.IneligibleReason[0])
	assert.Contains(t, o.IneligibleReason[1], "exceeds Short Bank limit of 20.0%")
}

func TestEvaluate_ApprovedWithoutEligibleOfferIsDowngraded(t *testing.T) {
	engine := service.NewEligibilityEngine(service.DefaultPolicy())
	catalog := []model.BankOffer{
		offer(t, "Short Bank", valueobject.LoanTypeHome, "8.00", 0, "0.55", 36),
	}

	eval, err := engine.Evaluate(profile(t, 50_000, 15_000, 5_000, 500_000, 60), catalog)
	require.NoError(t, err)

	assert.Equal(t, valueobject.DecisionConditional, eval.Decision.Status)
	assert.Contains(t, eval.Decision.Cautions, "No lender in the catalog matches this profile at the requested terms.")
	_, ok := eval.BestOffer()
	assert.False(t, ok)
}

func TestEvaluate_EmptyCatalog(t *testing.T) {
	engine := service.NewEligibilityEngine(service.DefaultPolicy())

	eval, err := engine.Evaluate(profile(t, 50_000, 15_000, 5_000, 500_000, 60), nil)
	require.NoError(t, err)

	assert.Empty(t, eval.Offers)
	assert.Equal(t, valueobject.DecisionConditional, eval.Decision.Status)
}

// ---------------------------------------------------------------------------
// Risk and general properties
// ---------------------------------------------------------------------------

func TestEvaluate_LowRiskForStrongProfile(t *testing.T) {
	engine := service.NewEligibilityEngine(service.DefaultPolicy())

	eval, err := engine.Evaluate(profile(t, 50_000, 15_000, 5_000, 500_000, 60, withCredit(800)), homeCatalog(t))
	require.NoError(t, err)

	assert.Equal(t, 23, eval.Decision.RiskScore)
	assert.Equal(t, valueobject.RiskLow, eval.Decision.RiskLabel)
	assert.Contains(t, eval.Decision.Reasons, "Strong credit profile increases lender trust.")
}

func TestEvaluate_Deterministic(t *testing.T) {
	engine := service.NewEligibilityEngine(service.DefaultPolicy())
	p := profile(t, 64_000, 21_000, 7_500, 1_800_000, 180, withCredit(721))

	first, err := engine.Evaluate(p, homeCatalog(t))
	require.NoError(t, err)
	second, err := engine.Evaluate(p, homeCatalog(t))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEvaluate_RiskScoreWithinBounds(t *testing.T) {
	engine := service.NewEligibilityEngine(service.DefaultPolicy())
	profiles := []model.FinancialProfile{
		profile(t, 20_000, 18_000, 0, 800_000, 24),
		profile(t, 200_000, 10_000, 0, 100_000, 12, withCredit(900)),
		profile(t, 30_000, 31_000, 9_000, 2_000_000, 12, withCredit(300),
			func(p *model.ProfileParams) { p.Employment = "freelancer" }),
	}

	for _, p := range profiles {
		eval, err := engine.Evaluate(p, homeCatalog(t))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, eval.Decision.RiskScore, 5)
		assert.LessOrEqual(t, eval.Decision.RiskScore, 95)
		assert.GreaterOrEqual(t, eval.Decision.Confidence, 5)
		assert.LessOrEqual(t, eval.Decision.Confidence, 95)
	}
}

func TestEvaluate_ZeroValueProfile(t *testing.T) {
	engine := service.NewEligibilityEngine(service.DefaultPolicy())

	_, err := engine.Evaluate(model.FinancialProfile{}, homeCatalog(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidProfile))
}

func TestPolicy_Validate(t *testing.T) {
	assert.NoError(t, service.DefaultPolicy().Validate())

	p := service.DefaultPolicy()
	p.RejectFOIR = dec("0.30")
	assert.Error(t, p.Validate())

	p = service.DefaultPolicy()
	p.SafetyMargin = dec("1")
	assert.Error(t, p.Validate())

	p = service.DefaultPolicy()
	p.NeutralCreditScore = 100
	assert.Error(t, p.Validate())
}
