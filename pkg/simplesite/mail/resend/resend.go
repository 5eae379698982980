// Package resend implements simplesite.Mailer on top of the Resend API.
package resend

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
	"github.com/tendant/simple-site/pkg/simplesite"
)

// Config holds Resend email provider configuration
type Config struct {
	APIKey      string
	SenderEmail string
	SenderName  string
}

// Sender implements simplesite.Mailer using the Resend API
type Sender struct {
	client *resend.Client
	config Config
}

// New creates a new Resend sender
func New(cfg Config) *Sender {
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		config: cfg,
	}
}

// Send implements simplesite.Mailer
func (s *Sender) Send(ctx context.Context, email *simplesite.Email) error {
	from := s.config.SenderEmail
	if s.config.SenderName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.SenderName, s.config.SenderEmail)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
	}

	_, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}

	return nil
}
