package check

import (
	"github.com/pb33f/libopenapi-validator/errors"
)

// ValidationError wraps libopenapi-validator errors.
type ValidationError struct {
	Message string
	Errors  []*errors.ValidationError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	return e.Message + ": " + e.Errors[0].Message
}

// CredentialError reports a security scheme whose credential is missing from a request.
type CredentialError struct {
	Scheme  string
	Message string
}

func (e *CredentialError) Error() string {
	return e.Scheme + ": " + e.Message
}

// NewCredentialError creates a credential error for scheme.
func NewCredentialError(scheme, message string) *CredentialError {
	return &CredentialError{
		Scheme:  scheme,
		Message: message,
	}
}
