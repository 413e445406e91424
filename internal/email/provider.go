package email

import "worklink_backend/internal/logger"

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет письмо
	Send(msg *Message) error

	// SendWithTemplate рендерит шаблон и отправляет письмо
	SendWithTemplate(templateName string, data TemplateData, msg *Message) error

	// Validate проверяет конфигурацию провайдера
	Validate() error

	// Close закрывает соединение с провайдером
	Close() error
}

// NoopProvider пишет письма в лог вместо отправки.
// Используется в разработке и тестах, когда SMTP не настроен.
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) Send(msg *Message) error {
	logger.Info("email suppressed (no SMTP configured)",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}

func (p *NoopProvider) SendWithTemplate(templateName string, data TemplateData, msg *Message) error {
	logger.Info("email suppressed (no SMTP configured)",
		"to", msg.To,
		"subject", msg.Subject,
		"template", templateName,
	)
	return nil
}

func (p *NoopProvider) Validate() error { return nil }
func (p *NoopProvider) Close() error    { return nil }
