package port

import (
	"context"
	"time"

	"github.com/NimalpudiAshrita/smartloan/internal/domain/event"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/model"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Reference data ports
// ---------------------------------------------------------------------------

// OfferCatalog supplies the static bank offers. Implementations are read-only
// after construction and safe for concurrent use.
type OfferCatalog interface {
	// Offers returns the offers for one loan type, in catalog order.
	Offers(ctx context.Context, loanType valueobject.LoanType) ([]model.BankOffer, error)
	// All returns every offer in catalog order.
	All(ctx context.Context) ([]model.BankOffer, error)
}

// ---------------------------------------------------------------------------
// Authentication ports
// ---------------------------------------------------------------------------

// CredentialVerifier checks a username and password. It returns
// model.ErrInvalidCredentials on any mismatch.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (model.User, error)
}

// TokenIssuer mints a bearer token for an authenticated user.
type TokenIssuer interface {
	GenerateToken(user model.User) (string, time.Time, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Telemetry port
// ---------------------------------------------------------------------------

// EvaluationRecorder records per-evaluation metrics.
type EvaluationRecorder interface {
	RecordEvaluation(ctx context.Context, status, loanType string, eligibleOffers int, elapsed time.Duration)
}
