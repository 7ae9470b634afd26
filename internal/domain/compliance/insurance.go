package compliance

import (
	"strings"
	"time"

	"github.com/guudz-audit-ledger/internal/domain/shared"
)

// PremiumRate is the share of the coverage charged as premium.
const PremiumRate = 0.005

// PolicyStatus is the lifecycle state of an insurance policy
type PolicyStatus string

const (
	PolicyActive    PolicyStatus = "active"
	PolicyExpired   PolicyStatus = "expired"
	PolicyCancelled PolicyStatus = "cancelled"
)

// PolicyRequest describes the cover requested for a shipment
type PolicyRequest struct {
	Insured      string  `json:"insured,omitempty"`
	CoverageType string  `json:"coverageType"`
	Coverage     float64 `json:"coverage"`
	Deductible   float64 `json:"deductible"`
	TermDays     int     `json:"termDays"`
}

// Validate checks the request shape.
func (r PolicyRequest) Validate() error {
	if strings.TrimSpace(r.CoverageType) == "" {
		return shared.Required("coverageType")
	}
	if r.Coverage <= 0 {
		return shared.ValidationError{Field: "coverage", Reason: "must be greater than 0"}
	}
	if r.Deductible < 0 {
		return shared.ValidationError{Field: "deductible", Reason: "must not be negative"}
	}
	if r.TermDays <= 0 {
		return shared.ValidationError{Field: "termDays", Reason: "must be greater than 0"}
	}
	return nil
}

// PremiumFor returns the premium charged for a coverage amount.
func PremiumFor(coverage float64) float64 {
	return coverage * PremiumRate
}

// Policy is an issued trade insurance policy
type Policy struct {
	ID           string       `json:"policyId"`
	Insured      string       `json:"insured,omitempty"`
	CoverageType string       `json:"coverageType"`
	Coverage     float64      `json:"coverage"`
	Deductible   float64      `json:"deductible"`
	Premium      float64      `json:"premium"`
	Status       PolicyStatus `json:"status"`
	StartDate    time.Time    `json:"startDate"`
	EndDate      time.Time    `json:"endDate"`
}

// NewPolicy issues an active policy starting at start.
func NewPolicy(id string, req PolicyRequest, start time.Time) Policy {
	return Policy{
		ID:           id,
		Insured:      req.Insured,
		CoverageType: req.CoverageType,
		Coverage:     req.Coverage,
		Deductible:   req.Deductible,
		Premium:      PremiumFor(req.Coverage),
		Status:       PolicyActive,
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, req.TermDays),
	}
}

// ActiveAt reports whether claims may be filed against the policy at t.
func (p Policy) ActiveAt(t time.Time) bool {
	return p.Status == PolicyActive && !t.Before(p.StartDate) && t.Before(p.EndDate)
}

// ClaimRequest is a claim filed against a policy
type ClaimRequest struct {
	PolicyID          string   `json:"policyId"`
	ClaimAmount       float64  `json:"claimAmount"`
	Description       string   `json:"description"`
	EvidenceDocuments []string `json:"evidenceDocuments,omitempty"`
}

// Validate checks the claim shape.
func (r ClaimRequest) Validate() error {
	if strings.TrimSpace(r.PolicyID) == "" {
		return shared.Required("policyId")
	}
	if r.ClaimAmount <= 0 {
		return shared.ValidationError{Field: "claimAmount", Reason: "must be greater than 0"}
	}
	return nil
}

// ClaimResult acknowledges a submitted claim
type ClaimResult struct {
	Success     bool      `json:"success"`
	ClaimID     string    `json:"claimId"`
	PolicyID    string    `json:"policyId"`
	SubmittedAt time.Time `json:"submittedAt"`
}
