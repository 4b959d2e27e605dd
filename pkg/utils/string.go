package utils

import "strings"

// NullIfBlank devolve nil para ponteiros nulos ou textos em branco, senão o texto aparado
func NullIfBlank(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// StringValue devolve o texto apontado ou vazio para nil
func StringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
