// Package mailer sends test emails of rendered templates over SMTP.
// It wraps github.com/wneessen/go-mail.
package mailer

import (
	"context"
	"time"

	"github.com/arthur-debert/mjstudio/pkg/config"
	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/logging"
	"github.com/wneessen/go-mail"
)

// Config holds SMTP server configuration
type Config struct {
	Host     string
	Port     int
	Username string
	Password string

	// FromAddress is the sender email address
	FromAddress string
	// FromName is the sender display name (optional)
	FromName string

	// UseTLS enables STARTTLS, UseSSL implicit TLS (port 465)
	UseTLS bool
	UseSSL bool

	Timeout time.Duration
}

// ConfigFromSettings maps the [mail] config section
func ConfigFromSettings(cfg config.MailConfig) Config {
	return Config{
		Host:        cfg.Host,
		Port:        cfg.Port,
		Username:    cfg.Username,
		Password:    cfg.Password,
		FromAddress: cfg.From,
		FromName:    cfg.FromName,
		UseTLS:      cfg.UseTLS,
		UseSSL:      cfg.UseSSL,
		Timeout:     cfg.Timeout,
	}
}

// Message is one email to send
type Message struct {
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer sends messages
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Sender sends emails using the configured SMTP server
type Sender struct {
	cfg      Config
	deliver  func(ctx context.Context, c Config, m *mail.Msg) error
	nowLocal func() time.Time
}

// NewSender creates a sender with defaults filled in
func NewSender(cfg Config) *Sender {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	// Default to TLS unless SSL is explicitly enabled
	if !cfg.UseSSL && cfg.Port != 465 {
		cfg.UseTLS = true
	}
	return &Sender{cfg: cfg, deliver: dialAndSend, nowLocal: time.Now}
}

// Build assembles the MIME message without sending it
func (s *Sender) Build(msg Message) (*mail.Msg, error) {
	if len(msg.To) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no recipients specified")
	}
	if msg.TextBody == "" && msg.HTMLBody == "" {
		return nil, errors.New(errors.ErrInvalidInput, "message body is empty")
	}
	if s.cfg.FromAddress == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no sender address; set mail.from")
	}

	m := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := m.FromFormat(s.cfg.FromName, s.cfg.FromAddress); err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid from address")
		}
	} else if err := m.From(s.cfg.FromAddress); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid from address")
	}

	if err := m.To(msg.To...); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid to address")
	}

	m.Subject(msg.Subject)
	m.SetDateWithValue(s.nowLocal())

	switch {
	case msg.TextBody != "" && msg.HTMLBody != "":
		m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTMLBody)
	case msg.HTMLBody != "":
		m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)
	default:
		m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
	}

	return m, nil
}

// Send builds and delivers msg
func (s *Sender) Send(ctx context.Context, msg Message) error {
	logger := logging.GetLogger("mailer")

	m, err := s.Build(msg)
	if err != nil {
		return err
	}

	if err := s.deliver(ctx, s.cfg, m); err != nil {
		logger.Error().Err(err).Str("host", s.cfg.Host).Msg("Send failed")
		return errors.Wrap(err, errors.ErrSend, "failed to send email").
			WithDetail("host", s.cfg.Host)
	}

	logger.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("Email sent")
	return nil
}

func dialAndSend(ctx context.Context, cfg Config, m *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(cfg.Timeout),
	}

	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	if cfg.UseSSL {
		opts = append(opts, mail.WithSSL())
	} else if cfg.UseTLS {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.NoTLS))
	}

	c, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return err
	}
	return c.DialAndSendWithContext(ctx, m)
}
