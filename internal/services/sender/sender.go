// Package services содержит обработчик очереди приветственных писем рассылки.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/docmycode/docmycode/internal/lib/sl"
	"github.com/docmycode/docmycode/internal/lib/smtp"
	"github.com/docmycode/docmycode/internal/models"
)

// SenderService доставляет письма рассылки, поставленные в очередь брокера.
type SenderService struct {
	transport smtp.TransportInterface
	siteURL   string
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, siteURL string, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		siteURL:   siteURL,
		log:       log,
	}
}

// SendWelcomeEmail обрабатывает одно сообщение очереди приветственных писем.
func (s *SenderService) SendWelcomeEmail(body []byte) error {
	var message models.WelcomeMessage
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject := "Welcome to DocMyCode"
	bodyText := fmt.Sprintf("Hi!\n\nThanks for subscribing to the DocMyCode newsletter."+
		"\nWe will keep you posted about new documentation styles and platform updates."+
		"\n\n%s", s.siteURL)

	return s.sendEmail(message.Email, subject, bodyText)
}

func (s *SenderService) sendEmail(to, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
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

	if err := client.Rcpt(to); err != nil {
		s.log.Error("failed to set RCPT TO", slog.String("recipient", to), sl.Err(err))
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

	s.log.Info("welcome email sent", slog.String("to", to))
	return nil
}
