package reporting

import (
	"errors"
	"fmt"
)

var (
	ErrLogIDRequired    = errors.New("log ID is required")
	ErrLogDateRequired  = errors.New("log_date is required")
	ErrRepNameRequired  = errors.New("rep_name is required")
	ErrNegativeMetric   = errors.New("metrics cannot be negative")
	ErrInvalidPeriod    = errors.New("invalid period")
	ErrKPILogNotFound   = errors.New("kpi log not found")
	ErrRepEntryNotFound = errors.New("rep performance entry not found")

	ErrDatabaseOperation = errors.New("database operation error")
)

// ReportError é um erro com contexto adicional para KPIs e relatórios
type ReportError struct {
	Err     error
	Code    string
	Details string
}

func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

func NewReportError(err error, code string, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
