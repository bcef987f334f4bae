// Package mail sends outbound e-mail. Production uses SendGrid; development
// and tests log or record messages instead.
package mail

import (
	"context"
	"errors"
	"log/slog"
)

var ErrDispatch = errors.New("mail: dispatch failed")

type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers one message. Implementations must honour ctx cancellation.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct {
	Logger *slog.Logger
}

func (l LogMailer) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("mail not sent (log mailer)",
		slog.String("to", m.To),
		slog.String("subject", m.Subject),
		slog.String("text", m.Text),
	)
	return nil
}
