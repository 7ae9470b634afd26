package crosschain

import "fmt"

// ErrNetworkNotFound indicates a network id absent from the catalog
type ErrNetworkNotFound struct {
	NetworkID string
}

func (e ErrNetworkNotFound) Error() string {
	return "network not found: " + e.NetworkID
}

// Is implements the errors.Is interface for ErrNetworkNotFound
func (e ErrNetworkNotFound) Is(target error) bool {
	t, ok := target.(ErrNetworkNotFound)
	if !ok {
		return false
	}
	if t.NetworkID == "" {
		return true
	}
	return e.NetworkID == t.NetworkID
}

// ErrInvalidTransfer indicates a transfer that can never succeed
type ErrInvalidTransfer struct {
	Reason string
}

func (e ErrInvalidTransfer) Error() string {
	return "invalid transfer: " + e.Reason
}

// Is implements the errors.Is interface for ErrInvalidTransfer
func (e ErrInvalidTransfer) Is(target error) bool {
	_, ok := target.(ErrInvalidTransfer)
	return ok
}

// ErrInvalidTransition indicates a status change other than pending to a terminal state
type ErrInvalidTransition struct {
	ID   string
	From Status
	To   Status
}

func (e ErrInvalidTransition) Error() string {
	return fmt.Sprintf("transaction %s cannot move from %s to %s", e.ID, e.From, e.To)
}

// Is implements the errors.Is interface for ErrInvalidTransition
func (e ErrInvalidTransition) Is(target error) bool {
	_, ok := target.(ErrInvalidTransition)
	return ok
}

// ErrTransactionNotFound indicates no ledger transaction carries the id
type ErrTransactionNotFound struct {
	ID string
}

func (e ErrTransactionNotFound) Error() string {
	return "transaction not found: " + e.ID
}

// Is implements the errors.Is interface for ErrTransactionNotFound
func (e ErrTransactionNotFound) Is(target error) bool {
	t, ok := target.(ErrTransactionNotFound)
	if !ok {
		return false
	}
	if t.ID == "" {
		return true
	}
	return e.ID == t.ID
}
