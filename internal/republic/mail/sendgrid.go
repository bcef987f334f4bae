package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGrid delivers through the SendGrid v3 API.
type SendGrid struct {
	client  *sendgrid.Client
	from    *sgmail.Email
	timeout time.Duration
}

const defaultHost = "https://api.sendgrid.com"

// NewSendGrid returns a mailer that sends as sender. timeout bounds each
// API call; zero means 10s.
func NewSendGrid(apiKey, sender string, timeout time.Duration) (*SendGrid, error) {
	return NewSendGridWithHost(apiKey, sender, defaultHost, timeout)
}

// NewSendGridWithHost points the client at another API host, e.g. a local
// stub.
func NewSendGridWithHost(apiKey, sender, host string, timeout time.Duration) (*SendGrid, error) {
	if apiKey == "" {
		return nil, errors.New("mail: SendGrid API key is empty")
	}
	if sender == "" {
		return nil, errors.New("mail: sender address is empty")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	req := sendgrid.GetRequest(apiKey, "/v3/mail/send", host)
	req.Method = "POST"

	return &SendGrid{
		client:  &sendgrid.Client{Request: req},
		from:    sgmail.NewEmail("Republic", sender),
		timeout: timeout,
	}, nil
}

func (s *SendGrid) Send(ctx context.Context, m Message) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	msg := sgmail.NewSingleEmail(s.from, m.Subject, sgmail.NewEmail("", m.To), m.Text, m.HTML)

	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDispatch, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: sendgrid status %d: %s", ErrDispatch, resp.StatusCode, resp.Body)
	}
	return nil
}
