package projecting

import (
	"errors"
	"fmt"
)

var (
	ErrProjectIDRequired = errors.New("project ID is required")
	ErrSectionIDRequired = errors.New("section ID is required")
	ErrNameRequired      = errors.New("name is required")
	ErrInvalidPosition   = errors.New("position cannot be negative")
	ErrProjectNotFound   = errors.New("project not found")
	ErrSectionNotFound   = errors.New("section not found")

	ErrDatabaseOperation = errors.New("database operation error")
)

// ProjectError é um erro com contexto adicional para projetos e seções
type ProjectError struct {
	Err     error
	Code    string
	Details string
}

func (e *ProjectError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ProjectError) Unwrap() error {
	return e.Err
}

func NewProjectError(err error, code string, details string) *ProjectError {
	return &ProjectError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
