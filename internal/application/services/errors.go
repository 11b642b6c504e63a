package services

// ValidationError marks input the caller can correct. Controllers
// translate it to 400; anything else from the service is a store
// failure and maps to 500.
type ValidationError struct {
	msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

func (e *ValidationError) Error() string { return e.msg }
