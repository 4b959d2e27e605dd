package ingesting

import "strings"

const (
	defaultProjectIcon = "📁"
	autoProjectColor   = "#6366F1"
)

// projeto criado automaticamente para cada origem conhecida
var sourceProjects = map[string]string{
	"accredipro": "AccrediPro",
	"website":    "Website",
	"zapier":     "Zapier",
	"calendly":   "Calendly",
}

var sourceIcons = map[string]string{
	"accredipro": "🎓",
	"website":    "🌐",
	"zapier":     "⚡",
	"calendly":   "📅",
}

func projectNameForSource(source string) (string, bool) {
	name, ok := sourceProjects[strings.ToLower(strings.TrimSpace(source))]
	return name, ok
}

func iconForSource(source string) string {
	if icon, ok := sourceIcons[strings.ToLower(strings.TrimSpace(source))]; ok {
		return icon
	}
	return defaultProjectIcon
}
