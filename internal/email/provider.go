package email

// Provider - канал доставки писем. Реализации: SMTPProvider и NoopProvider.
type Provider interface {
	Send(email *Email) error
	// SendTemplate рендерит шаблон templateName и отправляет результат как HTML
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error
	Validate() error
	Close() error
}

// TemplateRenderer превращает имя шаблона и данные в HTML
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
}
