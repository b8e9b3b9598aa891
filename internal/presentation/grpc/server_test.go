package grpc

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/NimalpudiAshrita/smartloan/internal/application/dto"
	"github.com/NimalpudiAshrita/smartloan/internal/application/usecase"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/service"
	"github.com/NimalpudiAshrita/smartloan/internal/infrastructure/catalog"
	"github.com/NimalpudiAshrita/smartloan/internal/infrastructure/kafka"
	"github.com/NimalpudiAshrita/smartloan/pkg/auth"
)

type nopRecorder struct{}

func (nopRecorder) RecordEvaluation(context.Context, string, string, int, time.Duration) {}

type harness struct {
	conn *grpclib.ClientConn
	jwt  *auth.JWTService
}

type panickingEvaluator struct{}

func (panickingEvaluator) Execute(context.Context, dto.EvaluateEligibilityRequest) (dto.EligibilityResponse, error) {
	panic("boom")
}

func newHarness(t *testing.T) harness {
	t.Helper()
	return newHarnessWith(t, nil)
}

// newHarnessWith serves the real use cases, replacing the evaluator when one
// is given.
func newHarnessWith(t *testing.T, evaluate EligibilityEvaluator) harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	offers, err := catalog.Default()
	require.NoError(t, err)
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{Secret: "grpc-secret", Issuer: "smartloan", Expiration: time.Hour})
	require.NoError(t, err)

	if evaluate == nil {
		evaluate = usecase.NewEvaluateEligibilityUseCase(offers, kafka.NewLogEventPublisher(logger), nopRecorder{},
			service.NewEligibilityEngine(service.DefaultPolicy()), logger)
	}
	handler := NewEligibilityHandler(
		evaluate,
		usecase.NewGenerateScheduleUseCase(),
		usecase.NewListOffersUseCase(offers),
		logger,
	)
	srv := NewServer(handler, logger, jwtSvc, ServerOptions{Roles: []string{auth.RoleAnalyst}})

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.ServeListener(lis) }()
	t.Cleanup(srv.GracefulStop)

	conn, err := grpclib.NewClient("passthrough:///bufnet",
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpclib.WithTransportCredentials(insecure.NewCredentials()),
		grpclib.WithDefaultCallOptions(grpclib.CallContentSubtype("json")),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return harness{conn: conn, jwt: jwtSvc}
}

func (h harness) authed(t *testing.T, roles ...string) context.Context {
	t.Helper()
	token, _, err := h.jwt.GenerateToken("analyst", "Loan Analyst", roles)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}

func TestEvaluate(t *testing.T) {
	h := newHarness(t)
	credit := 780

	req := &dto.EvaluateEligibilityRequest{
		FullName:        "Ravi",
		MonthlyIncome:   mustDecimal("50000"),
		MonthlyExpenses: decimalPtr("15000"),
		ExistingEMI:     decimalPtr("5000"),
		LoanAmount:      mustDecimal("500000"),
		CreditScore:     &credit,
		TenureMonths:    60,
	}
	var resp dto.EligibilityResponse
	err := h.conn.Invoke(h.authed(t, auth.RoleAnalyst), EvaluateFullMethod, req, &resp)
	require.NoError(t, err)

	assert.Equal(t, "APPROVED", resp.Decision.Status)
	require.NotNil(t, resp.BestOffer)
	assert.Equal(t, "Home", resp.LoanType)
}

func TestEvaluate_InvalidArgument(t *testing.T) {
	h := newHarness(t)

	var resp dto.EligibilityResponse
	err := h.conn.Invoke(h.authed(t, auth.RoleAnalyst), EvaluateFullMethod, &dto.EvaluateEligibilityRequest{}, &resp)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), "monthly_income")
}

func TestEvaluate_OutOfRangeInputs(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name   string
		mutate func(*dto.EvaluateEligibilityRequest)
		field  string
	}{
		{"tenure beyond limit", func(r *dto.EvaluateEligibilityRequest) { r.TenureMonths = 100_000 }, "tenure_months"},
		{"loan beyond float range", func(r *dto.EvaluateEligibilityRequest) { r.LoanAmount = mustDecimal("1e400") }, "loan_amount"},
		{"missing expenses", func(r *dto.EvaluateEligibilityRequest) { r.MonthlyExpenses = nil }, "monthly_expenses"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.EvaluateEligibilityRequest{
				MonthlyIncome:   mustDecimal("50000"),
				MonthlyExpenses: decimalPtr("0"),
				ExistingEMI:     decimalPtr("0"),
				LoanAmount:      mustDecimal("500000"),
				TenureMonths:    60,
			}
			tt.mutate(&req)

			var resp dto.EligibilityResponse
			err := h.conn.Invoke(h.authed(t, auth.RoleAnalyst), EvaluateFullMethod, &req, &resp)
			require.Error(t, err)
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
			assert.Contains(t, status.Convert(err).Message(), tt.field)
		})
	}
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	h := newHarnessWith(t, panickingEvaluator{})

	var resp dto.EligibilityResponse
	err := h.conn.Invoke(h.authed(t, auth.RoleAnalyst), EvaluateFullMethod, &dto.EvaluateEligibilityRequest{}, &resp)
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.NotContains(t, status.Convert(err).Message(), "boom")

	// The server keeps serving after the panic.
	var offers dto.ListOffersResponse
	err = h.conn.Invoke(h.authed(t, auth.RoleAnalyst), ListOffersFullMethod, &dto.ListOffersRequest{}, &offers)
	require.NoError(t, err)
	assert.Len(t, offers.Offers, 13)
}

func TestSchedule(t *testing.T) {
	h := newHarness(t)

	var resp dto.ScheduleResponse
	err := h.conn.Invoke(h.authed(t, auth.RoleAnalyst), ScheduleFullMethod, &dto.ScheduleRequest{
		Principal:    mustDecimal("1200"),
		AnnualRate:   mustDecimal("0"),
		TenureMonths: 12,
	}, &resp)
	require.NoError(t, err)
	assert.Len(t, resp.Entries, 12)
	assert.True(t, resp.EMI.Equal(mustDecimal("100")))
}

func TestListOffers(t *testing.T) {
	h := newHarness(t)

	var resp dto.ListOffersResponse
	err := h.conn.Invoke(h.authed(t, auth.RoleAnalyst), ListOffersFullMethod, &dto.ListOffersRequest{LoanType: "Business"}, &resp)
	require.NoError(t, err)
	assert.Len(t, resp.Offers, 3)
}

func TestAuthRequired(t *testing.T) {
	h := newHarness(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var resp dto.ListOffersResponse
	err := h.conn.Invoke(ctx, ListOffersFullMethod, &dto.ListOffersRequest{}, &resp)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	err = h.conn.Invoke(h.authed(t, "viewer"), ListOffersFullMethod, &dto.ListOffersRequest{}, &resp)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestHealthSkipsAuth(t *testing.T) {
	h := newHarness(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Health uses the proto codec; override the json default for this call.
	client := healthpb.NewHealthClient(h.conn)
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName}, grpclib.CallContentSubtype("proto"))
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decimalPtr(s string) *decimal.Decimal {
	d := mustDecimal(s)
	return &d
}
