package valueobject

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// LoanType – immutable value object
// ---------------------------------------------------------------------------

// LoanType selects which bank catalog an evaluation ranks against.
type LoanType struct {
	value string
}

const (
	loanTypeHome      = "Home"
	loanTypeEducation = "Education"
	loanTypePersonal  = "Personal"
	loanTypeBusiness  = "Business"
)

var (
	LoanTypeHome      = LoanType{value: loanTypeHome}
	LoanTypeEducation = LoanType{value: loanTypeEducation}
	LoanTypePersonal  = LoanType{value: loanTypePersonal}
	LoanTypeBusiness  = LoanType{value: loanTypeBusiness}
)

var validLoanTypes = map[string]LoanType{
	strings.ToLower(loanTypeHome):      LoanTypeHome,
	strings.ToLower(loanTypeEducation): LoanTypeEducation,
	strings.ToLower(loanTypePersonal):  LoanTypePersonal,
	strings.ToLower(loanTypeBusiness):  LoanTypeBusiness,
}

// NewLoanType parses a loan type case-insensitively. An empty string yields Home.
func NewLoanType(s string) (LoanType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LoanTypeHome, nil
	}
	v, ok := validLoanTypes[strings.ToLower(s)]
	if !ok {
		return LoanType{}, fmt.Errorf("invalid loan type: %q", s)
	}
	return v, nil
}

// AllLoanTypes lists every supported loan type in display order.
func AllLoanTypes() []LoanType {
	return []LoanType{LoanTypeHome, LoanTypeEducation, LoanTypePersonal, LoanTypeBusiness}
}

// String returns the string representation of the loan type.
func (t LoanType) String() string { return t.value }

// IsZero returns true if the loan type has not been initialised.
func (t LoanType) IsZero() bool { return t.value == "" }

// Equal returns true when both loan types carry the same value.
func (t LoanType) Equal(other LoanType) bool { return t.value == other.value }

// MarshalJSON encodes the loan type as its string value.
func (t LoanType) MarshalJSON() ([]byte, error) { return json.Marshal(t.value) }

// ---------------------------------------------------------------------------
// EmploymentType – immutable value object
// ---------------------------------------------------------------------------

// EmploymentType describes income stability. Stability feeds both the risk
// score and the per-bank rate adjustment.
type EmploymentType struct {
	value     string
	stability float64
}

var (
	EmploymentSalaried     = EmploymentType{value: "salaried", stability: 1.0}
	EmploymentSelfEmployed = EmploymentType{value: "self_employed", stability: 0.85}
	EmploymentFreelancer   = EmploymentType{value: "freelancer", stability: 0.75}
)

var validEmploymentTypes = map[string]EmploymentType{
	"salaried":      EmploymentSalaried,
	"self_employed": EmploymentSelfEmployed,
	"freelancer":    EmploymentFreelancer,
}

// NewEmploymentType parses an employment type. An empty string yields salaried.
func NewEmploymentType(s string) (EmploymentType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")
	if normalized == "" {
		return EmploymentSalaried, nil
	}
	v, ok := validEmploymentTypes[normalized]
	if !ok {
		return EmploymentType{}, fmt.Errorf("invalid employment type: %q", s)
	}
	return v, nil
}

// String returns the string representation of the employment type.
func (e EmploymentType) String() string { return e.value }

// Stability returns the income stability factor in (0, 1].
func (e EmploymentType) Stability() float64 { return e.stability }

// IsZero returns true if the employment type has not been initialised.
func (e EmploymentType) IsZero() bool { return e.value == "" }

// MarshalJSON encodes the employment type as its string value.
func (e EmploymentType) MarshalJSON() ([]byte, error) { return json.Marshal(e.value) }
