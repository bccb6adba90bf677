package service

import (
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// EmailMessage is one outbound message for the mail relay
type EmailMessage struct {
	From    string // display form, e.g. `CTI Sourcing <noreply@example.com>`
	To      string
	ReplyTo string // optional
	Subject string
	HTML    string
}

// Mailer delivers messages through the transactional mail relay
type Mailer interface {
	Send(msg *EmailMessage) error
}

// SMTPMailer sends mail over an authenticated STARTTLS session with
// the relay. Connecting, the STARTTLS handshake and every SMTP command
// run under the configured timeout so a hung relay cannot hold a
// request handler open.
type SMTPMailer struct {
	host     string
	addr     string
	username string
	password string
	timeout  time.Duration
}

// NewSMTPMailer creates a mailer for the given relay. Credentials are
// passed through as configuration and never logged.
func NewSMTPMailer(host, addr, username, password string, timeout time.Duration) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		addr:     addr,
		username: username,
		password: password,
		timeout:  timeout,
	}
}

// Send delivers one message and does not return until the relay has
// accepted or rejected it
func (m *SMTPMailer) Send(msg *EmailMessage) error {
	from, err := envelopeAddress(msg.From)
	if err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	to, err := envelopeAddress(msg.To)
	if err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	conn, err := (&net.Dialer{Timeout: m.timeout}).Dial("tcp", m.addr)
	if err != nil {
		return fmt.Errorf("failed to connect to mail relay: %w", err)
	}

	// The greeting, EHLO and STARTTLS exchange happens inside
	// NewClientStartTLS, before the per-command timeouts exist, so it
	// needs its own deadline on the raw connection
	conn.SetDeadline(time.Now().Add(m.timeout))

	c, err := smtp.NewClientStartTLS(conn, &tls.Config{ServerName: m.host})
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to mail relay: %w", err)
	}
	defer c.Close()

	conn.SetDeadline(time.Time{})
	c.CommandTimeout = m.timeout
	c.SubmissionTimeout = m.timeout

	if m.username != "" {
		if err := c.Auth(sasl.NewPlainClient("", m.username, m.password)); err != nil {
			return fmt.Errorf("mail relay authentication failed: %w", err)
		}
	}

	if err := c.SendMail(from, []string{to}, strings.NewReader(encodeMessage(msg))); err != nil {
		return fmt.Errorf("mail relay rejected message: %w", err)
	}

	return c.Quit()
}

// envelopeAddress extracts the bare address from a display-form address
func envelopeAddress(display string) (string, error) {
	addr, err := mail.ParseAddress(display)
	if err != nil {
		return "", err
	}
	return addr.Address, nil
}

// encodeMessage renders the RFC 5322 message with an HTML body
func encodeMessage(msg *EmailMessage) string {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	b.WriteString("\r\n")

	return b.String()
}
