package mailer

import (
	"context"
	"time"

	"github.com/wneessen/go-mail"
)

// WithDelivery replaces SMTP delivery in tests
func (s *Sender) WithDelivery(fn func(ctx context.Context, c Config, m *mail.Msg) error) *Sender {
	s.deliver = fn
	return s
}

// WithClock fixes the Date header in tests
func (s *Sender) WithClock(now func() time.Time) *Sender {
	s.nowLocal = now
	return s
}
