package valueobject

import (
	"encoding/json"
	"fmt"
)

// ---------------------------------------------------------------------------
// DecisionStatus – immutable value object
// ---------------------------------------------------------------------------

// DecisionStatus is the eligibility verdict for a single evaluation.
type DecisionStatus struct {
	value string
}

const (
	decisionApproved    = "APPROVED"
	decisionConditional = "CONDITIONAL"
	decisionRejected    = "REJECTED"
)

var (
	DecisionApproved    = DecisionStatus{value: decisionApproved}
	DecisionConditional = DecisionStatus{value: decisionConditional}
	DecisionRejected    = DecisionStatus{value: decisionRejected}
)

var validDecisionStatuses = map[string]DecisionStatus{
	decisionApproved:    DecisionApproved,
	decisionConditional: DecisionConditional,
	decisionRejected:    DecisionRejected,
}

// NewDecisionStatus creates a DecisionStatus from a raw string.
func NewDecisionStatus(s string) (DecisionStatus, error) {
	v, ok := validDecisionStatuses[s]
	if !ok {
		return DecisionStatus{}, fmt.Errorf("invalid decision status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s DecisionStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s DecisionStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s DecisionStatus) Equal(other DecisionStatus) bool { return s.value == other.value }

// MarshalJSON encodes the status as its string value.
func (s DecisionStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.value) }

// ---------------------------------------------------------------------------
// RiskLabel – immutable value object
// ---------------------------------------------------------------------------

// RiskLabel buckets a numeric risk score for display.
type RiskLabel struct {
	value string
}

const (
	riskLow    = "LOW"
	riskMedium = "MEDIUM"
	riskHigh   = "HIGH"
)

var (
	RiskLow    = RiskLabel{value: riskLow}
	RiskMedium = RiskLabel{value: riskMedium}
	RiskHigh   = RiskLabel{value: riskHigh}
)

// String returns the string representation of the label.
func (r RiskLabel) String() string { return r.value }

// IsZero returns true if the label has not been initialised.
func (r RiskLabel) IsZero() bool { return r.value == "" }

// Equal returns true when both labels carry the same value.
func (r RiskLabel) Equal(other RiskLabel) bool { return r.value == other.value }

// MarshalJSON encodes the label as its string value.
func (r RiskLabel) MarshalJSON() ([]byte, error) { return json.Marshal(r.value) }
