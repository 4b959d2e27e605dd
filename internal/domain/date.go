package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date é uma data de calendário sem horário, serializada como YYYY-MM-DD no JSON e no banco
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		*d = Date{}
		return nil
	}

	// aceita também timestamps completos vindos de clientes antigos
	if len(value) > len(dateLayout) {
		value = value[:len(dateLayout)]
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return fmt.Errorf("data inválida %q, esperado YYYY-MM-DD", value)
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return fmt.Errorf("tipo não suportado para Date: %T", src)
	}
}

func (d *Date) scanText(value string) error {
	if len(value) > len(dateLayout) {
		value = value[:len(dateLayout)]
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateRange é um intervalo fechado de datas usado em filtros
type DateRange struct {
	From Date
	To   Date
}

func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.From.Time) && !d.After(r.To.Time)
}
