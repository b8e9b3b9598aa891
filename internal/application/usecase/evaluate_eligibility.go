package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/NimalpudiAshrita/smartloan/internal/application/dto"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/event"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/model"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/port"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/service"
)

var tracer = otel.Tracer("github.com/NimalpudiAshrita/smartloan/internal/application/usecase")

// publishTimeout caps how long an evaluation waits on the event publisher.
const publishTimeout = 2 * time.Second

// EvaluateEligibilityUseCase builds a profile, runs the eligibility engine
// against the catalog offers for its loan type and announces the outcome.
type EvaluateEligibilityUseCase struct {
	catalog   port.OfferCatalog
	publisher port.EventPublisher
	recorder  port.EvaluationRecorder
	engine    *service.EligibilityEngine
	logger    *slog.Logger
}

// NewEvaluateEligibilityUseCase wires dependencies.
func NewEvaluateEligibilityUseCase(
	catalog port.OfferCatalog,
	publisher port.EventPublisher,
	recorder port.EvaluationRecorder,
	engine *service.EligibilityEngine,
	logger *slog.Logger,
) *EvaluateEligibilityUseCase {
	return &EvaluateEligibilityUseCase{
		catalog:   catalog,
		publisher: publisher,
		recorder:  recorder,
		engine:    engine,
		logger:    logger,
	}
}

// Execute evaluates one profile. Invalid input surfaces as an error wrapping
// model.ErrInvalidProfile. A failed event publish is logged, not returned: the
// decision has already been made.
func (uc *EvaluateEligibilityUseCase) Execute(
	ctx context.Context,
	req dto.EvaluateEligibilityRequest,
) (dto.EligibilityResponse, error) {
	ctx, span := tracer.Start(ctx, "EvaluateEligibility")
	defer span.End()
	started := time.Now()

	// 1. Validate the profile.
	profile, err := model.NewFinancialProfile(model.ProfileParams{
		FullName:        req.FullName,
		MonthlyIncome:   req.MonthlyIncome,
		MonthlyExpenses: req.MonthlyExpenses,
		ExistingEMI:     req.ExistingEMI,
		LoanAmount:      req.LoanAmount,
		CreditScore:     req.CreditScore,
		Age:             req.Age,
		Employment:      req.Employment,
		LoanType:        req.LoanType,
		TenureMonths:    req.TenureMonths,
	})
	if err != nil {
		span.SetStatus(codes.Error, "invalid profile")
		return dto.EligibilityResponse{}, fmt.Errorf("build profile: %w", err)
	}
	span.SetAttributes(
		attribute.String("loan.type", profile.LoanType().String()),
		attribute.Int("loan.tenure_months", profile.TenureMonths()),
	)

	// 2. Load the offers for the requested loan type.
	offers, err := uc.catalog.Offers(ctx, profile.LoanType())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load offers")
		return dto.EligibilityResponse{}, fmt.Errorf("load offers: %w", err)
	}

	// 3. Run the engine.
	eval, err := uc.engine.Evaluate(profile, offers)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluate profile")
		return dto.EligibilityResponse{}, fmt.Errorf("evaluate profile: %w", err)
	}

	evaluationID := uuid.NewString()
	status := eval.Decision.Status.String()
	span.SetAttributes(
		attribute.String("evaluation.id", evaluationID),
		attribute.String("decision.status", status),
		attribute.Int("offers.eligible", eval.EligibleCount()),
	)

	// 4. Publish the decision summary.
	evt := event.NewEligibilityEvaluated(evaluationID, profile, eval)
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	err = uc.publisher.Publish(pubCtx, evt)
	cancel()
	if err != nil {
		uc.logger.WarnContext(ctx, "failed to publish eligibility event",
			"evaluation_id", evaluationID,
			"error", err,
		)
	}

	uc.recorder.RecordEvaluation(ctx, status, profile.LoanType().String(), eval.EligibleCount(), time.Since(started))

	uc.logger.InfoContext(ctx, "eligibility evaluated",
		"evaluation_id", evaluationID,
		"status", status,
		"risk_label", eval.Decision.RiskLabel.String(),
		"loan_type", profile.LoanType().String(),
		"offers", len(eval.Offers),
		"eligible_offers", eval.EligibleCount(),
	)

	return toEligibilityResponse(evaluationID, profile, eval), nil
}

func toEligibilityResponse(id string, profile model.FinancialProfile, eval model.Evaluation) dto.EligibilityResponse {
	d := eval.Decision
	resp := dto.EligibilityResponse{
		EvaluationID: id,
		Applicant:    profile.FullName(),
		LoanType:     profile.LoanType().String(),
		Decision: dto.DecisionResponse{
			Status:           d.Status.String(),
			RiskLabel:        d.RiskLabel.String(),
			RiskScore:        d.RiskScore,
			Confidence:       d.Confidence,
			Reasons:          nonNil(d.Reasons),
			Cautions:         nonNil(d.Cautions),
			DisposableIncome: d.DisposableIncome,
			BaselineEMI:      d.BaselineEMI,
			FOIR:             d.FOIR,
			FOIRPercent:      asPercent(d.FOIR),
		},
		Offers:        make([]dto.OfferResponse, 0, len(eval.Offers)),
		EligibleCount: eval.EligibleCount(),
	}

	for _, o := range eval.Offers {
		offer := toOfferResponse(o)
		resp.Offers = append(resp.Offers, offer)
		if o.IsBest {
			best := offer
			resp.BestOffer = &best
		}
	}
	return resp
}

func toOfferResponse(o model.RankedOffer) dto.OfferResponse {
	return dto.OfferResponse{
		Bank:              o.BankName,
		Tag:               o.Tag,
		IneligibleReasons: nonNil(o.IneligibleReason),
		BaseRate:          o.BaseRate,
		EffectiveRate:     o.EffectiveRate,
		EMI:               o.EMI,
		FOIRPercent:       asPercent(o.FOIR),
		ProcessingFee:     o.ProcessingFee,
		TotalPayable:      o.TotalPayable,
		ApprovalScore:     o.ApprovalScore,
		Eligible:          o.Eligible,
		IsBest:            o.IsBest,
	}
}

func asPercent(ratio decimal.Decimal) decimal.Decimal {
	return ratio.Mul(decimal.NewFromInt(100)).Round(2)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
