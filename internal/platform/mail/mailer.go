// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

/*
Package mail implements the outbound email Notifier.

It renders the two transactional templates Reelo sends (welcome, password
reset) and delivers them over authenticated SMTP.

Architecture:

  - The auth service depends on a small Notifier interface it defines itself;
    this package provides the production implementation.
  - Delivery failures are returned to the caller. The forgot-password flow
    treats them as must-complete and rolls back persisted reset state.
*/
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer sends transactional email through a single SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailer constructs a mailer for the given relay.
//
// # Parameters
//   - host, port: SMTP relay address.
//   - username, password: PLAIN auth credentials; empty username disables auth
//     (local development relays).
//   - from: RFC 5322 From header, e.g. "Reelo <no-reply@reelo.dev>".
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendWelcome delivers the post-signup greeting with a link back to the app.
func (mailer *SMTPMailer) SendWelcome(ctx context.Context, to, name, homeURL string) error {
	subject := "Welcome to the Reelo family!"
	body := fmt.Sprintf(welcomeTemplate, firstName(name), homeURL)

	return mailer.send(ctx, to, subject, body)
}

// SendPasswordReset delivers the plain reset secret.
//
// This is the only place the secret leaves the process in plain form; storage
// only ever sees its hash.
func (mailer *SMTPMailer) SendPasswordReset(ctx context.Context, to, name, resetToken string) error {
	subject := "Your password reset token (valid for only 10 minutes)"
	body := fmt.Sprintf(resetTemplate, firstName(name), resetToken)

	return mailer.send(ctx, to, subject, body)
}

// send assembles a MIME message and pushes it through the relay.
//
// net/smtp has no context support; the ctx parameter keeps the method
// signatures consistent with every other suspension point and allows a
// future switch to a context-aware client without touching callers.
func (mailer *SMTPMailer) send(_ context.Context, to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", mailer.host, mailer.port)

	var auth smtp.Auth
	if mailer.username != "" {
		auth = smtp.PlainAuth("", mailer.username, mailer.password, mailer.host)
	}

	var msg strings.Builder
	msg.WriteString("From: " + mailer.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	if err := smtp.SendMail(addr, auth, envelopeFrom(mailer.from), []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("mail: failed to send %q to %s: %w", subject, to, err)
	}

	return nil
}

// firstName extracts the leading word of a display name for the greeting.
func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}

// envelopeFrom strips the display-name part of a From header for the
// SMTP MAIL FROM command ("Reelo <a@b>" -> "a@b").
func envelopeFrom(from string) string {
	if start := strings.LastIndex(from, "<"); start != -1 {
		if end := strings.LastIndex(from, ">"); end > start {
			return from[start+1 : end]
		}
	}
	return from
}

const welcomeTemplate = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Welcome to Reelo</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; color: #333; text-align: center; padding: 20px;">
  <h1>Welcome to Reelo!</h1>
  <p>Dear %s,</p>
  <p>We are excited to welcome you to our community! Thank you for joining us.</p>
  <p>Click here to start watching: <a href="%s">Watch videos</a></p>
  <p>Best regards,<br>The Reelo team</p>
</body>
</html>`

const resetTemplate = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Password reset</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; color: #333; text-align: center; padding: 20px;">
  <h2>Dear %s,</h2>
  <p>Here is your password reset token: %s</p>
  <p>If you did not request a reset, you can safely ignore this email.</p>
  <p>Best regards,<br>The Reelo team</p>
</body>
</html>`
