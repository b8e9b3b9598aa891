package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/NimalpudiAshrita/smartloan/internal/application/dto"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/model"
)

type EligibilityEvaluator interface {
	Execute(ctx context.Context, req dto.EvaluateEligibilityRequest) (dto.EligibilityResponse, error)
}

type ScheduleGenerator interface {
	Execute(ctx context.Context, req dto.ScheduleRequest) (dto.ScheduleResponse, error)
}

type OfferLister interface {
	Execute(ctx context.Context, req dto.ListOffersRequest) (dto.ListOffersResponse, error)
}

// EligibilityHandler exposes the eligibility use cases over gRPC.
type EligibilityHandler struct {
	UnimplementedEligibilityServiceServer
	evaluate EligibilityEvaluator
	schedule ScheduleGenerator
	offers   OfferLister
	logger   *slog.Logger
}

func NewEligibilityHandler(
	evaluate EligibilityEvaluator,
	schedule ScheduleGenerator,
	offers OfferLister,
	logger *slog.Logger,
) *EligibilityHandler {
	return &EligibilityHandler{
		evaluate: evaluate,
		schedule: schedule,
		offers:   offers,
		logger:   logger,
	}
}

func (h *EligibilityHandler) Evaluate(ctx context.Context, req *dto.EvaluateEligibilityRequest) (*dto.EligibilityResponse, error) {
	resp, err := h.evaluate.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, EvaluateFullMethod, err)
	}
	return &resp, nil
}

func (h *EligibilityHandler) Schedule(ctx context.Context, req *dto.ScheduleRequest) (*dto.ScheduleResponse, error) {
	resp, err := h.schedule.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, ScheduleFullMethod, err)
	}
	return &resp, nil
}

func (h *EligibilityHandler) ListOffers(ctx context.Context, req *dto.ListOffersRequest) (*dto.ListOffersResponse, error) {
	resp, err := h.offers.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, ListOffersFullMethod, err)
	}
	return &resp, nil
}

// toStatus maps use-case errors to gRPC codes. Only validation messages reach
// the client.
func (h *EligibilityHandler) toStatus(ctx context.Context, method string, err error) error {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		return status.Errorf(codes.InvalidArgument, "%s %s", vErr.Field, vErr.Message)
	}
	if errors.Is(err, model.ErrInvalidProfile) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	h.logger.ErrorContext(ctx, "rpc failed", "method", method, "error", err)
	return status.Error(codes.Internal, "internal error")
}
