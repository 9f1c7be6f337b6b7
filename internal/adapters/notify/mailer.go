package notify

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/mgiraldez/aurelia/internal/domain"
)

// Mailer sends a short e-mail to the shop owner when a contact message
// arrives. When SMTP is not configured it logs and does nothing, so the
// public contact form never fails because of mail settings.
type Mailer struct {
	host string
	port int
	user string
	pass string
	to   string
}

func NewMailerFromEnv() *Mailer {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	to := os.Getenv("CONTACT_NOTIFY_EMAIL")
	if to == "" {
		to = os.Getenv("SMTP_USER")
	}
	return &Mailer{
		host: os.Getenv("SMTP_HOST"),
		port: port,
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASS"),
		to:   to,
	}
}

func (m *Mailer) configured() bool {
	return m.host != "" && m.port != 0 && m.user != "" && m.pass != ""
}

func (m *Mailer) NotifyContactMessage(msg *domain.ContactMessage) error {
	if !m.configured() {
		log.Warn().Msg("SMTP not configured, skipping contact notification")
		return nil
	}
	mail := gomail.NewMessage()
	mail.SetHeader("From", m.user)
	mail.SetHeader("To", m.to)
	mail.SetHeader("Subject", fmt.Sprintf("New contact message: %s", msg.Subject))
	mail.SetBody("text/plain", fmt.Sprintf(
		"From: %s <%s>\n\n%s\n", msg.Name, msg.Email, msg.Message))
	return gomail.NewDialer(m.host, m.port, m.user, m.pass).DialAndSend(mail)
}
