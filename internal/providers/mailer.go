package providers

import (
	"fmt"
	"net/smtp"
	"strings"

	"salao_backend/pkg/utils"
)

// Mailer delivers an email.
type Mailer interface {
	SendMail(to, subject, body string) error
}

// SMTPConfig holds mail relay settings. Empty Host disables delivery.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPConfigFromEnv reads relay settings from the environment.
func SMTPConfigFromEnv() SMTPConfig {
	return SMTPConfig{
		Host:     utils.Getenv("SMTP_HOST", ""),
		Port:     utils.Getenv("SMTP_PORT", "587"),
		Username: utils.Getenv("SMTP_USERNAME", ""),
		Password: utils.Getenv("SMTP_PASSWORD", ""),
		From:     utils.Getenv("SMTP_FROM", "nao-responda@salao.app"),
	}
}

type smtpMailer struct {
	config SMTPConfig
}

// NewSMTPMailer creates a plain SMTP mailer.
func NewSMTPMailer(config SMTPConfig) Mailer {
	return &smtpMailer{config: config}
}

func (m *smtpMailer) SendMail(to, subject, body string) error {
	if m.config.Host == "" {
		utils.LogInfo(fmt.Sprintf("smtp disabled, dropping mail to %s", to))
		return nil
	}

	var msg strings.Builder
	msg.WriteString("From: " + m.config.From + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	msg.WriteString(body)

	addr := m.config.Host + ":" + m.config.Port
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}
