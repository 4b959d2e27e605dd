package clienting

import (
	"errors"
	"fmt"
)

var (
	ErrClientIDRequired   = errors.New("client ID is required")
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidStatus      = errors.New("invalid client status")
	ErrInvalidHealthScore = errors.New("health score must be between 0 and 100")
	ErrInvalidLTV         = errors.New("ltv cannot be negative")
	ErrClientNotFound     = errors.New("client not found")

	ErrDatabaseOperation = errors.New("database operation error")
)

// ClientError é um erro com contexto adicional para clientes
type ClientError struct {
	Err      error
	Code     string
	ClientID string
	Details  string
}

func (e *ClientError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

func NewClientError(err error, code string, details string) *ClientError {
	return &ClientError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewClientErrorWithID(err error, code string, clientID string, details string) *ClientError {
	return &ClientError{
		Err:      err,
		Code:     code,
		ClientID: clientID,
		Details:  details,
	}
}
