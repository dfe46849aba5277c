package email

// Provider defines the interface for sending email.
type Provider interface {
	// Send sends a plain email message
	Send(email *Email) error

	// SendActivation sends the account activation email with the token link
	SendActivation(to string, token string) error

	// Validate checks the provider configuration
	Validate() error

	// Close closes the connection to the provider
	Close() error
}

// Email represents an email message.
type Email struct {
	From     string
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData carries values into email templates.
type TemplateData map[string]interface{}
