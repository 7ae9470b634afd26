// Package compliance models compliance verdicts, credit profiles and trade insurance.
package compliance

import "time"

// Status is the outcome of a compliance verification
type Status string

const (
	StatusCompliant    Status = "compliant"
	StatusNonCompliant Status = "non-compliant"
	StatusPending      Status = "pending"
)

// Check is a single requirement of a standard and whether it was met
type Check struct {
	Requirement string `json:"requirement"`
	Passed      bool   `json:"passed"`
}

// Result is the verdict of a compliance verification
type Result struct {
	Standard  string    `json:"standard"`
	Subject   string    `json:"subject"`
	Status    Status    `json:"status"`
	Details   []string  `json:"details"`
	Timestamp time.Time `json:"timestamp"`
	Authority string    `json:"authority"`
}

// Evaluate derives a Result from the checks so that Status always agrees with Details.
// No checks means the verification is still pending.
func Evaluate(standard, subject, authority string, checks []Check, at time.Time) Result {
	res := Result{
		Standard:  standard,
		Subject:   subject,
		Status:    StatusCompliant,
		Details:   make([]string, 0, len(checks)),
		Timestamp: at,
		Authority: authority,
	}
	if len(checks) == 0 {
		res.Status = StatusPending
		return res
	}
	for _, c := range checks {
		if c.Passed {
			res.Details = append(res.Details, c.Requirement+": satisfied")
			continue
		}
		res.Status = StatusNonCompliant
		res.Details = append(res.Details, c.Requirement+": not satisfied")
	}
	return res
}
