package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendgridMailer sends transactional email in the background. A failed send
// is logged and dropped, never surfaced to the request that triggered it.
type SendgridMailer struct {
	client  *sendgrid.Client
	from    *mail.Email
	appName string
	logger  *zap.Logger
}

func NewSendgridMailer(apiKey, fromAddress, appName string, logger *zap.Logger) *SendgridMailer {
	return &SendgridMailer{
		client:  sendgrid.NewSendClient(apiKey),
		from:    mail.NewEmail(appName, fromAddress),
		appName: appName,
		logger:  logger,
	}
}

func (m *SendgridMailer) SendPasswordResetEmail(to, code string) {
	subject := fmt.Sprintf("%s password recovery", m.appName)
	plain := fmt.Sprintf("Your recovery code is %s. It expires in 10 minutes.", code)
	html := fmt.Sprintf("<p>Your recovery code is <strong>%s</strong>.</p><p>It expires in 10 minutes.</p>", code)
	m.send(to, subject, plain, html)
}

func (m *SendgridMailer) SendWelcomeEmail(to, tempPassword string) {
	subject := fmt.Sprintf("Welcome to %s", m.appName)
	plain := fmt.Sprintf("Your account is ready. Temporary password: %s. You will be asked to change it at first login.", tempPassword)
	html := fmt.Sprintf("<p>Your account is ready.</p><p>Temporary password: <strong>%s</strong></p><p>You will be asked to change it at first login.</p>", tempPassword)
	m.send(to, subject, plain, html)
}

func (m *SendgridMailer) send(to, subject, plain, html string) {
	message := mail.NewSingleEmail(m.from, subject, mail.NewEmail("", to), plain, html)
	go func() {
		response, err := m.client.Send(message)
		if err != nil {
			m.logger.Warn("email send failed", zap.String("subject", subject), zap.Error(err))
			return
		}
		if response.StatusCode >= 400 {
			m.logger.Warn("email rejected",
				zap.String("subject", subject), zap.Int("status", response.StatusCode))
		}
	}()
}
