package utils

import (
	"context"
	"fmt"
	"net/smtp"
	"os"
	"time"

	"madrasa/domain"

	"github.com/rs/zerolog/log"
)

// LogNotifier writes the code to the server log instead of sending anything.
// This is the default delivery path; real email is out of scope.
type LogNotifier struct{}

func NewLogNotifier() domain.Notifier { return &LogNotifier{} }

func (n *LogNotifier) SendOTP(_ context.Context, email, code string, expiresAt time.Time) error {
	log.Info().
		Str("email", email).
		Str("code", code).
		Time("expires_at", expiresAt).
		Msg("admin OTP issued (log delivery)")
	return nil
}

// SMTPNotifier sends the code over plain SMTP, configured from env.
type SMTPNotifier struct{}

func NewSMTPNotifier() domain.Notifier { return &SMTPNotifier{} }

func (n *SMTPNotifier) SendOTP(_ context.Context, email, code string, expiresAt time.Time) error {
	subject := "Your Madrasa admin login code"
	body := fmt.Sprintf("Your one-time login code is: %s\nIt expires at %s.",
		code, expiresAt.Format(time.RFC1123))
	return sendEmail(email, subject, body)
}

func sendEmail(to, subject, body string) error {
	from := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")

	addr := fmt.Sprintf("%s:%s", host, port)
	msg := []byte(
		"From: " + os.Getenv("SMTP_FROM") + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body + "\r\n")

	auth := smtp.PlainAuth("", from, pass, host)
	return smtp.SendMail(addr, auth, from, []string{to}, msg)
}
