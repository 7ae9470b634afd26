package compliance

// ErrPolicyNotFound indicates a claim references an unknown policy
type ErrPolicyNotFound struct {
	PolicyID string
}

func (e ErrPolicyNotFound) Error() string {
	return "insurance policy not found: " + e.PolicyID
}

// Is implements the errors.Is interface for ErrPolicyNotFound
func (e ErrPolicyNotFound) Is(target error) bool {
	t, ok := target.(ErrPolicyNotFound)
	if !ok {
		return false
	}
	if t.PolicyID == "" {
		return true
	}
	return e.PolicyID == t.PolicyID
}

// ErrPolicyInactive indicates a claim against an expired or cancelled policy
type ErrPolicyInactive struct {
	PolicyID string
}

func (e ErrPolicyInactive) Error() string {
	return "insurance policy is not active: " + e.PolicyID
}

// Is implements the errors.Is interface for ErrPolicyInactive
func (e ErrPolicyInactive) Is(target error) bool {
	t, ok := target.(ErrPolicyInactive)
	if !ok {
		return false
	}
	if t.PolicyID == "" {
		return true
	}
	return e.PolicyID == t.PolicyID
}
