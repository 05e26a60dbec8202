package email

import "strings"

// Встроенные шаблоны писем
const (
	TemplateNewApplication    = "new_application"
	TemplateApplicationStatus = "application_status"
	TemplateGigCompleted      = "gig_completed"
)

// Email - одно письмо. Если заданы и Body, и HTMLBody,
// уходит multipart/alternative.
type Email struct {
	From     string
	To       []string
	ReplyTo  string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData - данные для шаблона. RecipientName всегда заполняет отправитель.
type TemplateData map[string]interface{}

// Recipients убирает пустые адреса и повторы (без учета регистра)
func Recipients(addrs ...string) []string {
	seen := make(map[string]struct{}, len(addrs))
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		key := strings.ToLower(a)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}
