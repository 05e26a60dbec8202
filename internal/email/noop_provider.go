package email

import "sync"

// NoopProvider используется, когда email отключен, и в тестах:
// письма не отправляются, а запоминаются.
type NoopProvider struct {
	mu   sync.Mutex
	sent []Email
}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) Send(email *Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, *email)
	return nil
}

func (p *NoopProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	return p.Send(&Email{To: to, Subject: subject, Body: templateName})
}

func (p *NoopProvider) Validate() error { return nil }
func (p *NoopProvider) Close() error    { return nil }

// Sent возвращает копию отправленных писем
func (p *NoopProvider) Sent() []Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Email(nil), p.sent...)
}
