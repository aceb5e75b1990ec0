// Package mailer provides core.Mailer implementations: a Postmark-backed
// sender for real deployments and a slog-backed sender for development.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"

	"github.com/okondo/bulletin/core"
)

var ErrInvalidConfig = errors.New("invalid mailer config")

// PostmarkConfig carries the Postmark credentials and sender identity.
type PostmarkConfig struct {
	ServerToken  string
	AccountToken string
	SenderEmail  string
}

type postmarkMailer struct {
	client *postmark.Client
	sender string
}

var _ core.Mailer = (*postmarkMailer)(nil)

// NewPostmark creates a Postmark-backed mailer. All fields are required;
// a half-configured mailer should fail at startup, not at send time.
func NewPostmark(cfg PostmarkConfig) (core.Mailer, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: server token is required", ErrInvalidConfig)
	}
	if cfg.AccountToken == "" {
		return nil, fmt.Errorf("%w: account token is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: sender email is required", ErrInvalidConfig)
	}

	return &postmarkMailer{
		client: postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		sender: cfg.SenderEmail,
	}, nil
}

// Send delivers the message through Postmark's transactional API. A
// transport error or a non-zero API error code both count as the
// recipient not being accepted.
func (m *postmarkMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	resp, err := m.client.SendEmail(ctx, postmark.Email{
		From:     m.sender,
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("postmark rejected message: %d - %s", resp.ErrorCode, resp.Message)
	}
	return nil
}
