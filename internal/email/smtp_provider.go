package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds SMTP server configuration.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool

	// PublicURL is the app base used to build activation links.
	PublicURL string
}

// SMTPProvider implements Provider over SMTP via gomail.
type SMTPProvider struct {
	config *SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPProvider creates a new SMTP provider.
func NewSMTPProvider(config *SMTPConfig) (*SMTPProvider, error) {
	p := &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Send sends an email message.
func (p *SMTPProvider) Send(email *Email) error {
	m := gomail.NewMessage()

	from := email.From
	if from == "" {
		from = p.config.FromEmail
	}
	if p.config.FromName != "" {
		m.SetHeader("From", m.FormatAddress(from, p.config.FromName))
	} else {
		m.SetHeader("From", from)
	}
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendActivation sends the account activation email.
func (p *SMTPProvider) SendActivation(to string, token string) error {
	activationURL := fmt.Sprintf("%s/api/v1/auth/activate?token=%s", p.config.PublicURL, token)

	htmlBody, err := RenderActivation(TemplateData{"ActivationURL": activationURL})
	if err != nil {
		return fmt.Errorf("failed to render activation template: %w", err)
	}

	return p.Send(&Email{
		To:       []string{to},
		Subject:  "Activate your UniMatch account",
		Body:     "Activate your account: " + activationURL,
		HTMLBody: htmlBody,
	})
}

// Validate checks the SMTP configuration.
func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if p.config.Port <= 0 || p.config.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.config.Port)
	}
	if p.config.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

// Close closes the connection (not required for SMTP dialers).
func (p *SMTPProvider) Close() error {
	return nil
}
