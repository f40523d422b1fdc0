// Package mailer delivers the assembled digest over email.
//
// Delivery is strictly best-effort: a digest run never fails because the
// email could not be sent. When the SendGrid credentials are incomplete the
// dispatch is skipped with a warning instead of erroring out.
package mailer

import (
	"time"

	"news-digest/pkg/config"
)

// Config holds SendGrid delivery settings.
type Config struct {
	// APIKey authenticates against the SendGrid API.
	APIKey string

	// To is the recipient email address.
	To string

	// From is the sender email address.
	From string

	// FromName is the display name attached to the sender address.
	FromName string

	// Timeout bounds a single delivery attempt.
	Timeout time.Duration
}

// LoadConfig loads mailer configuration from environment variables.
//
// Environment variables:
//   - SENDGRID_API_KEY: SendGrid API key
//   - TO_EMAIL_ADDRESS: recipient address
//   - FROM_EMAIL_ADDRESS: sender address
//   - MAILER_FROM_NAME: sender display name (default: News Digest)
//   - MAILER_TIMEOUT: delivery timeout (default: 30s)
func LoadConfig() Config {
	return Config{
		APIKey:   config.GetEnvString("SENDGRID_API_KEY", ""),
		To:       config.GetEnvString("TO_EMAIL_ADDRESS", ""),
		From:     config.GetEnvString("FROM_EMAIL_ADDRESS", ""),
		FromName: config.GetEnvString("MAILER_FROM_NAME", "News Digest"),
		Timeout:  config.GetEnvDuration("MAILER_TIMEOUT", 30*time.Second),
	}
}

// Complete reports whether every field required for delivery is present.
// Dispatch is skipped entirely when any of them is missing.
func (c Config) Complete() bool {
	return c.APIKey != "" && c.To != "" && c.From != ""
}
