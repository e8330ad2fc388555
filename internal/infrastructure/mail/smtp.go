package mail

import (
	"context"
	"fmt"

	"github.com/jhoicas/Turismo-api/pkg/config"
	gomail "github.com/wneessen/go-mail"
)

// SMTPMailer implementación del puerto auth.Mailer sobre SMTP.
// El timeout de la configuración acota el envío: un SMTP caído no puede dejar
// colgada la respuesta HTTP que lo disparó.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer construye el adaptador de correo saliente.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send entrega un correo de texto plano. El error se devuelve al caller, que
// decide el rollback; nunca se reintenta aquí.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("remitente inválido: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("destinatario inválido: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithTimeout(m.cfg.Timeout),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.cfg.Username),
			gomail.WithPassword(m.cfg.Password),
		)
	}
	client, err := gomail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("cliente SMTP: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("envío SMTP: %w", err)
	}
	return nil
}
