package usecase

import (
	"context"
	"fmt"

	"github.com/NimalpudiAshrita/smartloan/internal/application/dto"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/model"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/port"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/valueobject"
)

// ListOffersUseCase exposes the static catalog.
type ListOffersUseCase struct {
	catalog port.OfferCatalog
}

// NewListOffersUseCase wires dependencies.
func NewListOffersUseCase(catalog port.OfferCatalog) *ListOffersUseCase {
	return &ListOffersUseCase{catalog: catalog}
}

// Execute returns the offers for one loan type, or every offer when the
// request leaves the type empty.
func (uc *ListOffersUseCase) Execute(ctx context.Context, req dto.ListOffersRequest) (dto.ListOffersResponse, error) {
	var (
		offers []model.BankOffer
		err    error
	)
	if req.LoanType == "" {
		offers, err = uc.catalog.All(ctx)
	} else {
		loanType, parseErr := valueobject.NewLoanType(req.LoanType)
		if parseErr != nil {
			return dto.ListOffersResponse{}, fmt.Errorf("list offers: %w",
				&model.ValidationError{Field: "loan_type", Message: "must be Home, Education, Personal or Business"})
		}
		offers, err = uc.catalog.Offers(ctx, loanType)
	}
	if err != nil {
		return dto.ListOffersResponse{}, fmt.Errorf("load offers: %w", err)
	}

	resp := dto.ListOffersResponse{Offers: make([]dto.CatalogOfferResponse, 0, len(offers))}
	for _, o := range offers {
		resp.Offers = append(resp.Offers, dto.CatalogOfferResponse{
			Bank:             o.BankName(),
			LoanType:         o.LoanType().String(),
			BaseRate:         o.BaseRate(),
			MaxFOIR:          o.MaxFOIR(),
			ProcessingFeePct: o.ProcessingFeePct(),
			MinCreditScore:   o.MinCreditScore(),
			MaxTenureMonths:  o.MaxTenureMonths(),
		})
	}
	return resp, nil
}
