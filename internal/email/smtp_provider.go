package email

import (
	"fmt"
	"net/http"

	"worklink_backend/internal/config"
	"worklink_backend/pkg/apperrors"

	gomail "gopkg.in/gomail.v2"
)

// SMTPProvider отправляет письма через SMTP (gomail)
type SMTPProvider struct {
	dialer    *gomail.Dialer
	from      string
	fromName  string
	templates *TemplateManager
}

// NewSMTPProvider создает провайдер из конфигурации приложения
func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	e := cfg.Email
	return &SMTPProvider{
		dialer:    gomail.NewDialer(e.SMTPHost, e.SMTPPort, e.SMTPUsername, e.SMTPPassword),
		from:      e.FromEmail,
		fromName:  e.FromName,
		templates: NewTemplateManager(),
	}
}

func (p *SMTPProvider) Send(msg *Message) error {
	if err := p.Validate(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.from, p.fromName)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)

	if msg.HTMLBody != "" {
		m.SetBody("text/html", msg.HTMLBody)
		if msg.Body != "" {
			m.AddAlternative("text/plain", msg.Body)
		}
	} else {
		m.SetBody("text/plain", msg.Body)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		// Отказ внешнего SMTP - это не наша 500-ка
		return apperrors.Wrap(err, apperrors.CodeExternalServiceError,
			"email", "Email delivery failed", http.StatusBadGateway)
	}
	return nil
}

func (p *SMTPProvider) SendWithTemplate(templateName string, data TemplateData, msg *Message) error {
	htmlBody, err := p.templates.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("render template: %w", err)
	}
	msg.HTMLBody = htmlBody
	return p.Send(msg)
}

func (p *SMTPProvider) Validate() error {
	if p.dialer.Host == "" {
		return fmt.Errorf("smtp host is not configured")
	}
	if p.from == "" {
		return fmt.Errorf("from email is not configured")
	}
	return nil
}

// Close - gomail открывает соединение на каждую отправку,
// закрывать нечего
func (p *SMTPProvider) Close() error { return nil }
