package mailer

import (
	"context"
	"fmt"

	"healthcare-booking/pkg/utils"

	"github.com/go-gomail/gomail"
	"go.uber.org/zap"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an SMTP sender, or a sender that only logs when no SMTP host
// is configured.
func New(cfg utils.EmailConfig, log *zap.Logger) Sender {
	log = log.With(zap.String("component", "mailer"))
	if !cfg.Enabled() {
		log.Warn("SMTP_HOST not set, emails will only be logged")
		return &logSender{log: log}
	}
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		log:    log,
	}
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
}

func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.log.Error("Failed to send email", zap.Error(err), zap.String("to", msg.To), zap.String("subject", msg.Subject))
		return fmt.Errorf("send email: %w", err)
	}

	s.log.Info("Email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

type logSender struct {
	log *zap.Logger
}

func (s *logSender) Send(_ context.Context, msg Message) error {
	s.log.Info("Email (not sent)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("bytes", len(msg.HTML)),
	)
	return nil
}
