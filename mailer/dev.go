package mailer

import (
	"context"
	"log/slog"

	"github.com/okondo/bulletin/core"
)

// DevMailer logs messages instead of sending them, for local runs where
// no Postmark account is configured. The body is logged too, so the
// one-time codes it carries are readable from the console.
type DevMailer struct {
	log *slog.Logger
}

var _ core.Mailer = (*DevMailer)(nil)

func NewDev(log *slog.Logger) *DevMailer {
	if log == nil {
		log = slog.Default()
	}
	return &DevMailer{log: log}
}

func (m *DevMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.log.InfoContext(ctx, "dev mail",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", htmlBody),
	)
	return nil
}
