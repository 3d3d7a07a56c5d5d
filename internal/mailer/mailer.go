// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mailer sends transactional email over SMTP. When SMTP is not
// configured (local development) messages are logged instead of sent,
// so the password reset flow stays testable without a mail server.
package mailer

import (
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail for account flows.
type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
}

// New creates a Mailer. Empty host disables sending.
func New(host string, port int, user, pass, from string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from}
}

// configured reports whether SMTP delivery is possible.
func (m *Mailer) configured() bool {
	return m.host != "" && m.from != ""
}

// SendPasswordReset emails a reset link to the given address. The link
// embeds the plaintext reset token; only its hash is stored server-side.
func (m *Mailer) SendPasswordReset(toEmail, name, resetURL string) error {
	if strings.TrimSpace(toEmail) == "" {
		return fmt.Errorf("empty recipient")
	}
	if !m.configured() {
		slog.Info("smtp not configured, logging reset link instead",
			"to", toEmail, "url", resetURL)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Reset your password")
	msg.SetBody("text/html", buildResetBody(name, resetURL))

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	slog.Info("password reset email sent", "to", toEmail)
	return nil
}

func buildResetBody(name, resetURL string) string {
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Password reset</h2>
    <p>Hi %s,</p>
    <p>Someone requested a password reset for your account. If that was
    you, click the button below. The link expires in 10 minutes.</p>
    <p style="text-align: center; margin: 24px 0;">
      <a href="%s" style="display: inline-block; padding: 12px 20px; background: #0f172a; color: #fff; text-decoration: none; border-radius: 8px; font-weight: bold;">Reset password</a>
    </p>
    <p style="font-size: 12px; color: #6b7280;">If you did not request
    this, you can safely ignore this email.</p>
  </div>
</body>
</html>`, name, resetURL)
}
