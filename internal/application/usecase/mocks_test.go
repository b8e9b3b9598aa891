package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/NimalpudiAshrita/smartloan/internal/domain/event"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/model"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockOfferCatalog struct {
	offersFunc func(ctx context.Context, loanType valueobject.LoanType) ([]model.BankOffer, error)
	allFunc    func(ctx context.Context) ([]model.BankOffer, error)
	offers     []model.BankOffer
}

func (m *mockOfferCatalog) Offers(ctx context.Context, loanType valueobject.LoanType) ([]model.BankOffer, error) {
	if m.offersFunc != nil {
		return m.offersFunc(ctx, loanType)
	}
	var out []model.BankOffer
	for _, o := range m.offers {
		if o.LoanType().Equal(loanType) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOfferCatalog) All(ctx context.Context) ([]model.BankOffer, error) {
	if m.allFunc != nil {
		return m.allFunc(ctx)
	}
	return m.offers, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type recordedEvaluation struct {
	status   string
	loanType string
	eligible int
}

type mockRecorder struct {
	mu       sync.Mutex
	recorded []recordedEvaluation
}

func (m *mockRecorder) RecordEvaluation(_ context.Context, status, loanType string, eligible int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = append(m.recorded, recordedEvaluation{status: status, loanType: loanType, eligible: eligible})
}

type mockCredentialVerifier struct {
	verifyFunc func(ctx context.Context, username, password string) (model.User, error)
}

func (m *mockCredentialVerifier) Verify(ctx context.Context, username, password string) (model.User, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, username, password)
	}
	return model.User{Username: username, DisplayName: "Test User", Roles: []string{"analyst"}}, nil
}

type mockTokenIssuer struct {
	generateFunc func(user model.User) (string, time.Time, error)
}

func (m *mockTokenIssuer) GenerateToken(user model.User) (string, time.Time, error) {
	if m.generateFunc != nil {
		return m.generateFunc(user)
	}
	return "token-for-" + user.Username, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
