package app

import (
	"fmt"
	"html/template"
	"strings"
)

// TemplateFuncs returns the helpers shared by all views.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"add":   func(a, b int) int { return a + b },
		"sub":   func(a, b int) int { return a - b },
		"usd":   FormatUSD,
		"badge": BadgeClass,
		"img": func(u string) string {
			s := strings.TrimSpace(u)
			if s == "" {
				return s
			}
			if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") && !strings.HasPrefix(s, "/") {
				s = "/" + s
			}
			return strings.ReplaceAll(s, " ", "%20")
		},
		"excerpt": Excerpt,
	}
}

// Excerpt shortens a text to at most n runes. Cutting on runes rather
// than bytes keeps multi-byte characters intact.
func Excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}

// FormatUSD renders a price with exactly two decimal places.
func FormatUSD(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// BadgeClass maps a status to its badge color class.
func BadgeClass(status string) string {
	switch status {
	case "new":
		return "badge-blue"
	case "read":
		return "badge-gray"
	case "replied":
		return "badge-green"
	case "pending":
		return "badge-yellow"
	case "approved":
		return "badge-green"
	case "rejected":
		return "badge-red"
	}
	return "badge-gray"
}
