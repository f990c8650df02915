// Package services содержит бизнес-логику отправки писем контактной формы.
package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/docmycode/docmycode/internal/lib/sl"
	"github.com/docmycode/docmycode/internal/lib/smtp"
)

// ContactService отправляет сообщения контактной формы на почтовый ящик поддержки.
type ContactService struct {
	transport smtp.TransportInterface
	inbox     string
	log       *slog.Logger
}

// NewContactService создает новый экземпляр ContactService.
// inbox — адрес, на который доставляются сообщения формы.
func NewContactService(transport smtp.TransportInterface, inbox string, log *slog.Logger) *ContactService {
	return &ContactService{
		transport: transport,
		inbox:     inbox,
		log:       log,
	}
}

// Send отправляет одно сообщение контактной формы.
// Адрес отправителя формы подставляется в Reply-To, чтобы на письмо
// можно было ответить напрямую.
func (s *ContactService) Send(name, email, message string) error {
	subject := fmt.Sprintf("New message from %s", name)

	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + s.inbox,
		"Reply-To: " + email,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		message,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", s.transport.GetSMTPUser()), sl.Err(err))
		return err
	}

	if err := client.Rcpt(s.inbox); err != nil {
		s.log.Error("failed to set RCPT TO", slog.String("recipient", s.inbox), sl.Err(err))
		return err
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("contact email sent", slog.String("reply_to", email))
	return nil
}
