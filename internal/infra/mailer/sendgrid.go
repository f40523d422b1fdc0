package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// restClient is the subset of the SendGrid client used for delivery.
// Tests inject a mock to assert on sent mail without network access.
type restClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGrid delivers HTML digests through the SendGrid API.
type SendGrid struct {
	config Config
	client restClient
	now    func() time.Time
}

// NewSendGrid creates a SendGrid mailer from the given configuration.
func NewSendGrid(cfg Config) *SendGrid {
	return &SendGrid{
		config: cfg,
		client: sendgrid.NewSendClient(cfg.APIKey),
		now:    time.Now,
	}
}

// Send delivers the digest as an HTML email.
//
// Missing credentials skip the dispatch with a warning, and transport or API
// failures are logged and swallowed. Send never returns an error so that a
// broken mail path cannot fail an otherwise successful digest run.
func (s *SendGrid) Send(ctx context.Context, html string) error {
	if !s.config.Complete() {
		slog.Warn("email delivery skipped, SendGrid configuration incomplete",
			slog.Bool("api_key_set", s.config.APIKey != ""),
			slog.Bool("to_set", s.config.To != ""),
			slog.Bool("from_set", s.config.From != ""))
		return nil
	}

	subject := fmt.Sprintf("今日のニュースサマリー (%s)", s.now().Format("2006-01-02"))

	from := mail.NewEmail(s.config.FromName, s.config.From)
	to := mail.NewEmail("", s.config.To)
	message := mail.NewSingleEmail(from, subject, to, "本メールはHTML対応のメールクライアントでご覧ください。", html)

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		slog.Error("email delivery failed",
			slog.String("to", s.config.To),
			slog.Any("error", err))
		return nil
	}
	if resp.StatusCode >= 300 {
		slog.Error("email delivery rejected by SendGrid",
			slog.String("to", s.config.To),
			slog.Int("status_code", resp.StatusCode),
			slog.String("body", resp.Body))
		return nil
	}

	slog.Info("digest email dispatched",
		slog.String("to", s.config.To),
		slog.Int("status_code", resp.StatusCode))
	return nil
}
