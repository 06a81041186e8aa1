package usecase

// DomainError is a business-rule failure the caller is expected to
// handle (unknown lead, invalid input). It is always returned, never
// panicked, so a remote hiccup or a bad id can never crash a view.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure failure (transport, encoding).
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

const (
	CodeLeadNotFound    = "LEAD_NOT_FOUND"
	CodeValidationError = "VALIDATION_ERROR"
)

// ErrLeadNotFound is returned by every mutating operation handed an id
// that does not resolve. The message is part of the API contract.
func ErrLeadNotFound() *DomainError {
	return &DomainError{Code: CodeLeadNotFound, Message: "Lead not found"}
}

func IsNotFound(err error) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == CodeLeadNotFound
}

func IsValidation(err error) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == CodeValidationError
}
