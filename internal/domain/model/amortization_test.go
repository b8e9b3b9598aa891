package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NimalpudiAshrita/smartloan/internal/domain/model"
)

func TestEMI_KnownValue(t *testing.T) {
	emi := model.EMI(decimal.NewFromInt(500_000), decimal.NewFromInt(10), 60)
	assert.InDelta(t, 10624.0, emi.InexactFloat64(), 1.0)
}

func TestEMI_ZeroRateIsEvenSplit(t *testing.T) {
	cases := []struct {
		principal int64
		months    int
	}{
		{1200, 12},
		{500_000, 60},
		{1000, 3},
		{7, 7},
	}
	for _, c := range cases {
		p := decimal.NewFromInt(c.principal)
		got := model.EMI(p, decimal.Zero, c.months)
		want := p.Div(decimal.NewFromInt(int64(c.months))).Round(2)
		assert.True(t, got.Equal(want), "EMI(%d, 0, %d) = %s, want %s", c.principal, c.months, got, want)
	}
}

func TestEMI_MonotonicInRate(t *testing.T) {
	p := decimal.NewFromInt(250_000)
	prev := model.EMI(p, decimal.Zero, 36)
	for _, rate := range []string{"0.5", "1", "4.25", "7.75", "8.35", "10", "11.8", "18", "36"} {
		emi := model.EMI(p, decimal.RequireFromString(rate), 36)
		assert.True(t, emi.GreaterThan(prev), "EMI at %s%% (%s) should exceed %s", rate, emi, prev)
		prev = emi
	}
}

func TestEMI_NonPositiveInputs(t *testing.T) {
	rate := decimal.NewFromInt(10)
	assert.True(t, model.EMI(decimal.NewFromInt(1000), rate, 0).IsZero())
	assert.True(t, model.EMI(decimal.NewFromInt(1000), rate, -6).IsZero())
	assert.True(t, model.EMI(decimal.Zero, rate, 12).IsZero())
	assert.True(t, model.EMI(decimal.NewFromInt(-5), rate, 12).IsZero())
}

func TestGenerateAmortizationSchedule(t *testing.T) {
	principal := decimal.NewFromInt(100_000)
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	schedule := model.GenerateAmortizationSchedule(principal, decimal.RequireFromString("8.5"), 24, start)
	require.Len(t, schedule, 24)

	assert.Equal(t, 1, schedule[0].Period)
	assert.Equal(t, start.AddDate(0, 1, 0), schedule[0].DueDate)
	assert.True(t, schedule[23].RemainingBalance.IsZero())

	sum := decimal.Zero
	for _, e := range schedule {
		sum = sum.Add(e.Principal)
		assert.True(t, e.Total.Equal(e.Principal.Add(e.Interest)))
	}
	assert.True(t, sum.Equal(principal), "principal parts sum to %s", sum)
	assert.True(t, model.TotalInterest(schedule).IsPositive())
}

func TestGenerateAmortizationSchedule_ZeroRate(t *testing.T) {
	schedule := model.GenerateAmortizationSchedule(decimal.NewFromInt(1200), decimal.Zero, 12, time.Now())
	require.Len(t, schedule, 12)
	for _, e := range schedule {
		assert.True(t, e.Interest.IsZero())
		assert.True(t, e.Principal.Equal(decimal.NewFromInt(100)))
	}
	assert.True(t, model.TotalInterest(schedule).IsZero())
}

func TestGenerateAmortizationSchedule_InvalidInputs(t *testing.T) {
	assert.Nil(t, model.GenerateAmortizationSchedule(decimal.NewFromInt(1000), decimal.NewFromInt(5), 0, time.Now()))
	assert.Nil(t, model.GenerateAmortizationSchedule(decimal.Zero, decimal.NewFromInt(5), 12, time.Now()))
}

func TestEMI_OverflowingFactorTendsToInterestOnly(t *testing.T) {
	assert.NotPanics(t, func() {
		emi := model.EMI(decimal.NewFromInt(500_000), decimal.NewFromInt(10), 100_000)
		assert.True(t, emi.Equal(decimal.RequireFromString("4166.67")), "got %s", emi)
	})
}

func TestEMI_PrincipalBeyondFloatRange(t *testing.T) {
	assert.NotPanics(t, func() {
		emi := model.EMI(decimal.RequireFromString("1e400"), decimal.NewFromInt(10), 60)
		assert.True(t, emi.IsZero())
	})
}

func TestValidateLoanTerms(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		months    int
		field     string
	}{
		{"valid", "500000", "9.5", 240, ""},
		{"max tenure", "500000", "9.5", model.MaxScheduleMonths, ""},
		{"zero principal", "0", "9.5", 240, "principal"},
		{"principal out of range", "1e400", "9.5", 240, "principal"},
		{"negative rate", "500000", "-1", 240, "annual_rate"},
		{"rate above 100", "500000", "101", 240, "annual_rate"},
		{"zero tenure", "500000", "9.5", 0, "tenure_months"},
		{"tenure beyond limit", "500000", "9.5", model.MaxScheduleMonths + 1, "tenure_months"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := model.ValidateLoanTerms(
				decimal.RequireFromString(tt.principal),
				decimal.RequireFromString(tt.rate),
				tt.months,
			)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *model.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}
