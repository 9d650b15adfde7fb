package email

import (
	"context"

	"github.com/resend/resend-go/v2"

	"github.com/pcist/pcist-backend/internal/config"
	ierr "github.com/pcist/pcist-backend/internal/errors"
)

// Attachment is a file sent along with an email, typically a rendered
// document PDF named after its serial.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Client wraps the resend API. A disabled client accepts sends and reports
// them as skipped, so the document flow works in environments without an
// API key.
type Client struct {
	client      *resend.Client
	enabled     bool
	fromAddress string
	replyTo     string
}

func NewClient(cfg *config.Configuration) *Client {
	if !cfg.Email.Enabled || cfg.Email.APIKey == "" {
		return &Client{enabled: false}
	}

	return &Client{
		client:      resend.NewClient(cfg.Email.APIKey),
		enabled:     true,
		fromAddress: cfg.Email.FromAddress,
		replyTo:     cfg.Email.ReplyTo,
	}
}

// IsEnabled returns whether the email client is enabled
func (c *Client) IsEnabled() bool {
	return c.enabled
}

// GetFromAddress returns the default from address
func (c *Client) GetFromAddress() string {
	return c.fromAddress
}

// Send sends an HTML email and returns the provider message id.
func (c *Client) Send(ctx context.Context, to, subject, htmlContent string) (string, error) {
	return c.send(ctx, to, subject, htmlContent, nil)
}

// SendWithAttachments sends an HTML email with file attachments.
func (c *Client) SendWithAttachments(ctx context.Context, to, subject, htmlContent string, attachments []Attachment) (string, error) {
	return c.send(ctx, to, subject, htmlContent, attachments)
}

func (c *Client) send(ctx context.Context, to, subject, htmlContent string, attachments []Attachment) (string, error) {
	if !c.enabled {
		return "", ierr.NewError("email client is disabled").
			WithHint("set email.enabled and email.apikey to send emails").
			Mark(ierr.ErrInvalidOperation)
	}

	params := &resend.SendEmailRequest{
		From:    c.fromAddress,
		To:      []string{to},
		Subject: subject,
		Html:    htmlContent,
	}
	if c.replyTo != "" {
		params.ReplyTo = c.replyTo
	}
	// resend infers the content type from the filename extension.
	for _, a := range attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Filename: a.Filename,
			Content:  a.Content,
		})
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("failed to send email").
			Mark(ierr.ErrHTTPClient)
	}
	return sent.Id, nil
}
