package noting

import (
	"errors"
	"fmt"
)

var (
	ErrNoteIDRequired = errors.New("note ID is required")
	ErrTitleRequired  = errors.New("title is required")
	ErrNoteNotFound   = errors.New("note not found")

	ErrDatabaseOperation = errors.New("database operation error")
)

// NoteError é um erro com contexto adicional para notas
type NoteError struct {
	Err     error
	Code    string
	Details string
}

func (e *NoteError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *NoteError) Unwrap() error {
	return e.Err
}

func NewNoteError(err error, code string, details string) *NoteError {
	return &NoteError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
