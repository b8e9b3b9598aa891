// Package catalog serves the static lender offer list from YAML. The built-in
// catalog is embedded; OFFER_CATALOG_FILE replaces it wholesale.
package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/NimalpudiAshrita/smartloan/internal/domain/model"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/valueobject"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

type offerEntry struct {
	Bank             string  `yaml:"bank"`
	LoanType         string  `yaml:"loan_type"`
	BaseRate         float64 `yaml:"base_rate"`
	MinCreditScore   int     `yaml:"min_credit_score"`
	MaxFOIR          float64 `yaml:"max_foir"`
	ProcessingFeePct float64 `yaml:"processing_fee_pct"`
	MaxTenureMonths  int     `yaml:"max_tenure_months"`
}

type catalogFile struct {
	Offers []offerEntry `yaml:"offers"`
}

// Catalog is an immutable, in-memory port.OfferCatalog.
type Catalog struct {
	offers []model.BankOffer
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path. An empty path yields the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog. File order is kept; the engine
// does its own ranking.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Offers) == 0 {
		return nil, errors.New("parse catalog: no offers defined")
	}

	offers := make([]model.BankOffer, 0, len(file.Offers))
	for i, e := range file.Offers {
		loanType, err := valueobject.NewLoanType(e.LoanType)
		if err != nil {
			return nil, fmt.Errorf("parse catalog: offer %d: %w", i+1, err)
		}
		offer, err := model.NewBankOffer(
			e.Bank,
			loanType,
			decimal.NewFromFloat(e.BaseRate),
			e.MinCreditScore,
			decimal.NewFromFloat(e.MaxFOIR),
			decimal.NewFromFloat(e.ProcessingFeePct),
			e.MaxTenureMonths,
		)
		if err != nil {
			return nil, fmt.Errorf("parse catalog: offer %d (%s): %w", i+1, e.Bank, err)
		}
		offers = append(offers, offer)
	}

	return &Catalog{offers: offers}, nil
}

// Offers returns the offers for one loan type.
func (c *Catalog) Offers(_ context.Context, loanType valueobject.LoanType) ([]model.BankOffer, error) {
	out := make([]model.BankOffer, 0, len(c.offers))
	for _, o := range c.offers {
		if o.LoanType().Equal(loanType) {
			out = append(out, o)
		}
	}
	return out, nil
}

// All returns a copy of every offer.
func (c *Catalog) All(_ context.Context) ([]model.BankOffer, error) {
	out := make([]model.BankOffer, len(c.offers))
	copy(out, c.offers)
	return out, nil
}

// Len reports the number of offers loaded.
func (c *Catalog) Len() int { return len(c.offers) }
