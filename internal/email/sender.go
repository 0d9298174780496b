package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Sender delivers account emails. Services treat delivery as best
// effort: a failed send is logged, never surfaced to the client.
type Sender interface {
	SendOtp(to string, code int, expiryMinutes int) error
	SendTwoFactorCode(to string, code int, expiryMinutes int) error
}

// SMTPSender sends over SMTP via gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTPSender) SendOtp(to string, code int, expiryMinutes int) error {
	body := fmt.Sprintf(
		"Your eHandout verification code is %06d. It expires in %d minutes.",
		code, expiryMinutes)
	return s.send(to, "Your verification code", body)
}

func (s *SMTPSender) SendTwoFactorCode(to string, code int, expiryMinutes int) error {
	body := fmt.Sprintf(
		"Your eHandout two-factor code is %04d. It expires in %d minutes.",
		code, expiryMinutes)
	return s.send(to, "Your two-factor code", body)
}

func (s *SMTPSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}

// NoopSender drops all mail. Used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) SendOtp(string, int, int) error           { return nil }
func (NoopSender) SendTwoFactorCode(string, int, int) error { return nil }
