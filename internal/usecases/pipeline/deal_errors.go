package pipeline

import (
	"errors"
	"fmt"
)

var (
	ErrDealIDRequired = errors.New("deal ID is required")
	ErrTitleRequired  = errors.New("title is required")
	ErrInvalidStage   = errors.New("invalid deal stage")
	ErrInvalidValue   = errors.New("deal value cannot be negative")
	ErrDealNotFound   = errors.New("deal not found")

	ErrDatabaseOperation = errors.New("database operation error")
)

// DealError é um erro com contexto adicional para negócios do pipeline
type DealError struct {
	Err     error
	Code    string
	DealID  string
	Details string
}

func (e *DealError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *DealError) Unwrap() error {
	return e.Err
}

func NewDealError(err error, code string, details string) *DealError {
	return &DealError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewDealErrorWithID(err error, code string, dealID string, details string) *DealError {
	return &DealError{
		Err:     err,
		Code:    code,
		DealID:  dealID,
		Details: details,
	}
}
