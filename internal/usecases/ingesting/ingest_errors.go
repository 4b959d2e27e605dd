package ingesting

import (
	"errors"
	"fmt"
)

// As mensagens seguem o contrato público do webhook
var (
	ErrInvalidSecret = errors.New("Invalid webhook secret")
	ErrTitleRequired = errors.New("Title is required")
	ErrCreateTask    = errors.New("Failed to create task")
)

// IngestError carrega o erro base e a mensagem do banco que será exposta em details
type IngestError struct {
	Err     error
	Code    string
	Details string
}

func (e *IngestError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

func NewIngestError(err error, code string, details string) *IngestError {
	return &IngestError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
