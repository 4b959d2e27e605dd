package tasking

import (
	"errors"
	"fmt"
)

var (
	// Erros de validação
	ErrTaskIDRequired    = errors.New("task ID is required")
	ErrTitleRequired     = errors.New("title is required")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrInvalidDateFilter = errors.New("invalid date filter")

	ErrTaskNotFound = errors.New("task not found")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
)

// TaskError é um erro com contexto adicional para tarefas
type TaskError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	TaskID  string // ID da tarefa envolvida (quando aplicável)
	Details string // Detalhes adicionais
}

func (e *TaskError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

func NewTaskError(err error, code string, details string) *TaskError {
	return &TaskError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewTaskErrorWithID(err error, code string, taskID string, details string) *TaskError {
	return &TaskError{
		Err:     err,
		Code:    code,
		TaskID:  taskID,
		Details: details,
	}
}
