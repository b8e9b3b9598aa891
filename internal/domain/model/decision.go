package model

import (
	"github.com/shopspring/decimal"

	"github.com/NimalpudiAshrita/smartloan/internal/domain/valueobject"
)

// Decision is the engine's verdict for one profile.
type Decision struct {
	Status           valueobject.DecisionStatus
	RiskLabel        valueobject.RiskLabel
	Reasons          []string
	Cautions         []string
	DisposableIncome decimal.Decimal
	BaselineEMI      decimal.Decimal
	FOIR             decimal.Decimal
	RiskScore        int
	Confidence       int
}

// Evaluation bundles a decision with the offers ranked for the same profile.
type Evaluation struct {
	Decision Decision
	Offers   []RankedOffer
}

// BestOffer returns the offer flagged as the recommendation, if any.
func (e Evaluation) BestOffer() (RankedOffer, bool) {
	for _, o := range e.Offers {
		if o.IsBest {
			return o, true
		}
	}
	return RankedOffer{}, false
}

// EligibleCount returns how many offers passed every bank constraint.
func (e Evaluation) EligibleCount() int {
	n := 0
	for _, o := range e.Offers {
		if o.Eligible {
			n++
		}
	}
	return n
}
