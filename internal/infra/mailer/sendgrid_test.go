package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRestClient struct {
	sent     []*mail.SGMailV3
	response *rest.Response
	err      error
}

func (m *mockRestClient) SendWithContext(_ context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	m.sent = append(m.sent, email)
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func completeConfig() Config {
	return Config{
		APIKey:   "SG.test-key",
		To:       "reader@example.com",
		From:     "digest@example.com",
		FromName: "News Digest",
		Timeout:  5 * time.Second,
	}
}

func newTestMailer(cfg Config, client *mockRestClient) *SendGrid {
	return &SendGrid{
		config: cfg,
		client: client,
		now: func() time.Time {
			return time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
		},
	}
}

func TestSend_IncompleteConfigSkipsDelivery(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no api key", Config{To: "a@example.com", From: "b@example.com"}},
		{"no recipient", Config{APIKey: "k", From: "b@example.com"}},
		{"no sender", Config{APIKey: "k", To: "a@example.com"}},
		{"only api key", Config{APIKey: "k"}},
		{"only recipient", Config{To: "a@example.com"}},
		{"only sender", Config{From: "b@example.com"}},
		{"all empty", Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockRestClient{}
			m := newTestMailer(tt.cfg, client)

			err := m.Send(context.Background(), "<html></html>")

			assert.NoError(t, err, "skipping is not an error")
			assert.Empty(t, client.sent, "no delivery attempt without full credentials")
		})
	}
}

func TestSend_DeliversDigest(t *testing.T) {
	client := &mockRestClient{response: &rest.Response{StatusCode: 202}}
	m := newTestMailer(completeConfig(), client)

	err := m.Send(context.Background(), "<html><body><h1>digest</h1></body></html>")

	require.NoError(t, err)
	require.Len(t, client.sent, 1)

	sent := client.sent[0]
	assert.Equal(t, "今日のニュースサマリー (2025-06-01)", sent.Subject)
	assert.Equal(t, "digest@example.com", sent.From.Address)
	require.Len(t, sent.Personalizations, 1)
	require.Len(t, sent.Personalizations[0].To, 1)
	assert.Equal(t, "reader@example.com", sent.Personalizations[0].To[0].Address)

	var htmlContent string
	for _, c := range sent.Content {
		if c.Type == "text/html" {
			htmlContent = c.Value
		}
	}
	assert.Contains(t, htmlContent, "<h1>digest</h1>")
}

func TestSend_TransportErrorIsSwallowed(t *testing.T) {
	client := &mockRestClient{err: errors.New("connection refused")}
	m := newTestMailer(completeConfig(), client)

	err := m.Send(context.Background(), "<html></html>")

	assert.NoError(t, err, "delivery failure must not fail the digest run")
	assert.Len(t, client.sent, 1, "exactly one attempt, no retry")
}

func TestSend_RejectedStatusIsSwallowed(t *testing.T) {
	client := &mockRestClient{response: &rest.Response{StatusCode: 401, Body: "unauthorized"}}
	m := newTestMailer(completeConfig(), client)

	err := m.Send(context.Background(), "<html></html>")

	assert.NoError(t, err)
	assert.Len(t, client.sent, 1)
}

func TestConfigComplete(t *testing.T) {
	assert.True(t, completeConfig().Complete())
	assert.False(t, Config{APIKey: "k", To: "a@example.com"}.Complete())
	assert.False(t, Config{}.Complete())
}
