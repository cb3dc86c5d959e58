package portfolio

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
)

// ErrMailNotConfigured is returned when the SMTP relay has no credentials.
var ErrMailNotConfigured = errors.New("SMTP credentials not configured")

// ContactForm is a contact form submission.
type ContactForm struct {
	Name    string `form:"name" binding:"required,max=200"`
	Email   string `form:"email" binding:"required,email,max=320"`
	Message string `form:"message" binding:"required,max=5000"`
}

// Message is an outgoing email.
type Message struct {
	ID      string
	To      string
	From    string
	ReplyTo string
	Subject string
	Body    string
}

// Mailer delivers contact messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewContactMessage builds the email for a submission. from and to are the
// relay account and the inbox messages are delivered to.
func NewContactMessage(form ContactForm, from, to string) Message {
	return Message{
		ID:      uuid.NewString(),
		To:      to,
		From:    from,
		ReplyTo: form.Email,
		Subject: fmt.Sprintf("Portfolio Contact: %s", form.Name),
		Body: fmt.Sprintf(`New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, form.Name, form.Email, form.Message),
	}
}

// Bytes renders the message in RFC 5322 form.
func (m Message) Bytes() []byte {
	var b strings.Builder
	header := func(k, v string) {
		if v != "" {
			b.WriteString(k + ": " + headerValue(v) + "\r\n")
		}
	}
	header("To", m.To)
	header("From", m.From)
	header("Reply-To", m.ReplyTo)
	header("Subject", m.Subject)
	header("X-Contact-Reference", m.ID)
	header("Content-Type", "text/plain; charset=UTF-8")
	b.WriteString("\r\n")
	body := strings.ReplaceAll(m.Body, "\r\n", "\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}

// headerValue strips line breaks so submitted values cannot add headers.
func headerValue(v string) string {
	return strings.Join(strings.FieldsFunc(v, func(r rune) bool { return r == '\r' || r == '\n' }), " ")
}

var _ Mailer = (*SMTPMailer)(nil)

// SMTPMailer sends mail through an SMTP relay with PLAIN auth.
type SMTPMailer struct {
	cfg MailConfig

	// sendMail is smtp.SendMail, swapped in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, sendMail: smtp.SendMail}
}

// Send delivers msg to the relay. The context is only checked before
// dialing; net/smtp has no cancellation.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if !m.cfg.Configured() {
		return ErrMailNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	if err := m.sendMail(addr, auth, m.cfg.Username, []string{msg.To}, msg.Bytes()); err != nil {
		return fmt.Errorf("send mail %s: %w", msg.ID, err)
	}
	return nil
}
