package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/NimalpudiAshrita/smartloan/internal/application/dto"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/model"
)

// GenerateScheduleUseCase produces the amortization schedule for a loan.
type GenerateScheduleUseCase struct {
	now func() time.Time
}

// NewGenerateScheduleUseCase creates the use case. Schedules start today
// unless the request names a start date.
func NewGenerateScheduleUseCase() *GenerateScheduleUseCase {
	return &GenerateScheduleUseCase{now: time.Now}
}

// Execute validates the loan terms and returns the schedule with totals.
func (uc *GenerateScheduleUseCase) Execute(
	ctx context.Context,
	req dto.ScheduleRequest,
) (dto.ScheduleResponse, error) {
	_, span := tracer.Start(ctx, "GenerateSchedule")
	defer span.End()

	if err := model.ValidateLoanTerms(req.Principal, req.AnnualRate, req.TenureMonths); err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("validate loan terms: %w", err)
	}

	start := uc.now().UTC().Truncate(24 * time.Hour)
	if req.StartDate != nil {
		start = req.StartDate.UTC()
	}

	schedule := model.GenerateAmortizationSchedule(req.Principal, req.AnnualRate, req.TenureMonths, start)

	resp := dto.ScheduleResponse{
		EMI:           model.EMI(req.Principal, req.AnnualRate, req.TenureMonths),
		TotalInterest: model.TotalInterest(schedule),
		Entries:       make([]dto.AmortizationEntryResponse, 0, len(schedule)),
	}
	resp.TotalPayable = req.Principal.Add(resp.TotalInterest)

	for _, e := range schedule {
		resp.Entries = append(resp.Entries, dto.AmortizationEntryResponse{
			Period:           e.Period,
			DueDate:          e.DueDate,
			Principal:        e.Principal,
			Interest:         e.Interest,
			Total:            e.Total,
			RemainingBalance: e.RemainingBalance,
		})
	}
	return resp, nil
}
