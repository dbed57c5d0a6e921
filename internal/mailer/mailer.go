// internal/mailer/mailer.go
package mailer

import (
    "fmt"
    "net/smtp"
    "os"
)

// Mailer sends one email. Implementations must be safe to call repeatedly
// with the same arguments; the pipeline retries without deduplication.
type Mailer interface {
    Send(to, subject, htmlBody string) error
}

// SMTPMailer delivers mail through a plain SMTP relay configured from
// SMTP_* environment variables.
type SMTPMailer struct {
    Host     string
    Port     string
    Username string
    Password string
    From     string
    FromName string
}

func NewSMTPMailerFromEnv() *SMTPMailer {
    return &SMTPMailer{
        Host:     os.Getenv("SMTP_HOST"),
        Port:     os.Getenv("SMTP_PORT"),
        Username: os.Getenv("SMTP_USERNAME"),
        Password: os.Getenv("SMTP_PASSWORD"),
        From:     os.Getenv("SMTP_FROM"),
        FromName: os.Getenv("SMTP_FROM_NAME"),
    }
}

// Send builds a MIME message with an HTML body and submits it. Auth,
// connectivity and timeout errors all surface as the returned error.
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
    msg := fmt.Sprintf(
        "From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
        m.FromName, m.From, to, subject, htmlBody,
    )

    addr := m.Host + ":" + m.Port
    var auth smtp.Auth
    if m.Username != "" {
        auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
    }

    if err := smtp.SendMail(addr, auth, m.From, []string{to}, []byte(msg)); err != nil {
        return fmt.Errorf("failed to send email to %s: %w", to, err)
    }
    return nil
}
