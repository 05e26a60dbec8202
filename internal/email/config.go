package email

import "tujitume_backend/internal/config"

const defaultSMTPPort = 587

// SMTPConfig - параметры подключения к SMTP и адрес отправителя
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	// UseTLS: на 465 - неявный TLS, на остальных портах STARTTLS с проверкой имени хоста
	UseTLS bool
}

// FromAppConfig строит SMTPConfig из секции email конфигурации приложения
func FromAppConfig(cfg config.EmailConfig) *SMTPConfig {
	port := cfg.SMTPPort
	if port == 0 {
		port = defaultSMTPPort
	}
	return &SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      port,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.FromEmail,
		FromName:  cfg.FromName,
		UseTLS:    cfg.UseTLS,
	}
}
