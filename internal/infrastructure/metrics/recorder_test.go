package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NimalpudiAshrita/smartloan/pkg/observability"
)

func scrape(t *testing.T, handler http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestRecorder(t *testing.T) {
	provider, handler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: "smartloan-test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	r, err := NewRecorder(provider.Meter("smartloan"))
	require.NoError(t, err)

	ctx := context.Background()
	r.RecordEvaluation(ctx, "APPROVED", "Home", 3, 2*time.Millisecond)
	r.RecordEvaluation(ctx, "APPROVED", "Home", 2, time.Millisecond)
	r.RecordEvaluation(ctx, "REJECTED", "Personal", 0, time.Millisecond)
	r.RecordHTTPRequest(ctx, http.MethodPost, "POST /api/v1/eligibility", http.StatusOK, 5*time.Millisecond)

	body := scrape(t, handler)

	assert.Contains(t, body, "smartloan_evaluations_total")
	assert.Contains(t, body, `status="APPROVED"`)
	assert.Contains(t, body, `loan_type="Personal"`)
	assert.Contains(t, body, "smartloan_evaluation_duration_seconds_bucket")
	assert.Contains(t, body, "smartloan_evaluation_eligible_offers_bucket")
	assert.Contains(t, body, "smartloan_http_requests_total")
	assert.Contains(t, body, `route="POST /api/v1/eligibility"`)
}
