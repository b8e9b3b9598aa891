package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MaxScheduleMonths bounds loan tenure and the length of a generated schedule.
const MaxScheduleMonths = 480

// MaxAmount is the largest monetary input accepted anywhere.
var MaxAmount = decimal.New(1, 12)

var hundred = decimal.NewFromInt(100)

// EMI returns the equated monthly instalment for a principal at an annual
// percentage rate over termMonths, rounded to 2 places:
//
//	r   = annualRate / 12 / 100
//	EMI = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate splits the principal evenly. Non-positive principal or term
// yields zero. When (1+r)^n overflows the instalment tends to P*r, the interest
// alone; a principal too large for float64 yields zero.
func EMI(principal, annualRate decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 || !principal.IsPositive() {
		return decimal.Zero
	}

	monthlyRate := annualRate.InexactFloat64() / 12.0 / 100.0
	if monthlyRate == 0 {
		return principal.Div(decimal.NewFromInt(int64(termMonths))).Round(2)
	}

	// float64 for the power, decimal for the money.
	factor := math.Pow(1+monthlyRate, float64(termMonths))
	if math.IsInf(factor, 0) || math.IsNaN(factor) {
		return principal.Mul(annualRate).Div(hundred).Div(decimal.NewFromInt(12)).Round(2)
	}
	payment := principal.InexactFloat64() * monthlyRate * factor / (factor - 1)
	if math.IsInf(payment, 0) || math.IsNaN(payment) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(payment).Round(2)
}

// AmortizationEntry is an immutable value object representing one period in an
// amortization schedule.
type AmortizationEntry struct {
	DueDate          time.Time
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
	Period           int
}

// GenerateAmortizationSchedule computes a fixed-payment schedule whose first
// instalment falls due one month after startDate. The final period absorbs
// rounding so the balance ends at exactly zero.
func GenerateAmortizationSchedule(
	principal decimal.Decimal,
	annualRate decimal.Decimal,
	termMonths int,
	startDate time.Time,
) []AmortizationEntry {
	if termMonths <= 0 || !principal.IsPositive() {
		return nil
	}

	payment := EMI(principal, annualRate, termMonths)
	monthlyRate := annualRate.Div(hundred).Div(decimal.NewFromInt(12))

	schedule := make([]AmortizationEntry, 0, termMonths)
	remaining := principal

	for period := 1; period <= termMonths; period++ {
		interest := remaining.Mul(monthlyRate).Round(2)
		principalPart := payment.Sub(interest)

		if period == termMonths {
			principalPart = remaining
		}

		remaining = remaining.Sub(principalPart)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		schedule = append(schedule, AmortizationEntry{
			Period:           period,
			DueDate:          startDate.AddDate(0, period, 0),
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})
	}

	return schedule
}

// TotalInterest sums the interest column of a schedule.
func TotalInterest(schedule []AmortizationEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range schedule {
		total = total.Add(e.Interest)
	}
	return total
}

// ValidateLoanTerms checks the inputs of a schedule request. Failures are
// *ValidationError values so callers handle them like profile errors.
func ValidateLoanTerms(principal, annualRate decimal.Decimal, termMonths int) error {
	if !principal.IsPositive() {
		return invalid("principal", "must be positive")
	}
	if principal.GreaterThan(MaxAmount) {
		return invalid("principal", "is out of range")
	}
	if annualRate.IsNegative() {
		return invalid("annual_rate", "cannot be negative")
	}
	if annualRate.GreaterThan(hundred) {
		return invalid("annual_rate", "must not exceed 100")
	}
	if termMonths <= 0 {
		return invalid("tenure_months", "must be positive")
	}
	if termMonths > MaxScheduleMonths {
		return invalid("tenure_months", "must not exceed 480")
	}
	return nil
}
