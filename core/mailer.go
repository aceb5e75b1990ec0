package core

import "context"

// Mailer sends transactional mail. Send returns an error when the
// transport does not accept the recipient; callers must not persist any
// state that depends on the message having been delivered until Send
// returns nil.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
