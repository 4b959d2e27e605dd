package staffing

import (
	"errors"
	"fmt"
)

var (
	ErrMemberIDRequired = errors.New("team member ID is required")
	ErrNameRequired     = errors.New("name is required")
	ErrInvalidRole      = errors.New("invalid team role")
	ErrMemberNotFound   = errors.New("team member not found")

	ErrDatabaseOperation = errors.New("database operation error")
)

// TeamError é um erro com contexto adicional para membros da equipe
type TeamError struct {
	Err     error
	Code    string
	Details string
}

func (e *TeamError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *TeamError) Unwrap() error {
	return e.Err
}

func NewTeamError(err error, code string, details string) *TeamError {
	return &TeamError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
