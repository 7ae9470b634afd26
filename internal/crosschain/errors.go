package crosschain

// ErrSessionNotFound indicates a session id that is not open
type ErrSessionNotFound struct {
	ID string
}

func (e ErrSessionNotFound) Error() string {
	return "session not found: " + e.ID
}

// Is implements the errors.Is interface for ErrSessionNotFound
func (e ErrSessionNotFound) Is(target error) bool {
	_, ok := target.(ErrSessionNotFound)
	return ok
}
