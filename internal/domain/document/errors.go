package document

// ErrDocumentNotFound indicates no document is registered under the key (docId or hash)
type ErrDocumentNotFound struct {
	Key string
}

func (e ErrDocumentNotFound) Error() string {
	return "document not found: " + e.Key
}

// Is implements the errors.Is interface for ErrDocumentNotFound
func (e ErrDocumentNotFound) Is(target error) bool {
	t, ok := target.(ErrDocumentNotFound)
	if !ok {
		return false
	}
	if t.Key == "" {
		return true
	}
	return e.Key == t.Key
}

// ErrAlreadyRegistered indicates a second registration for the same docId
type ErrAlreadyRegistered struct {
	DocID string
}

func (e ErrAlreadyRegistered) Error() string {
	return "document already registered: " + e.DocID
}

// Is implements the errors.Is interface for ErrAlreadyRegistered
func (e ErrAlreadyRegistered) Is(target error) bool {
	t, ok := target.(ErrAlreadyRegistered)
	if !ok {
		return false
	}
	if t.DocID == "" {
		return true
	}
	return e.DocID == t.DocID
}
