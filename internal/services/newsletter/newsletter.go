// Package services содержит бизнес-логику подписки на новостную рассылку.
package services

import (
	"context"
	"log/slog"

	"github.com/docmycode/docmycode/internal/lib/sl"
	"github.com/docmycode/docmycode/internal/models"
	"github.com/docmycode/docmycode/internal/rabbitmq"
)

// SubscriberRepository определяет методы для работы с подписчиками в хранилище.
type SubscriberRepository interface {
	// CreateSubscriber сохраняет подписчика; повторная подписка возвращает
	// models.ErrAlreadySubscribed.
	CreateSubscriber(ctx context.Context, email string) (*models.Subscriber, error)
}

// Publisher публикует сообщения рассылки в брокер.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// NewsletterService реализует подписку на рассылку.
type NewsletterService struct {
	repo      SubscriberRepository
	publisher Publisher
	log       *slog.Logger
}

// NewNewsletterService создает новый экземпляр NewsletterService.
func NewNewsletterService(repo SubscriberRepository, publisher Publisher, log *slog.Logger) *NewsletterService {
	return &NewsletterService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Subscribe сохраняет подписчика и ставит приветственное письмо в очередь.
//
// Сбой публикации не отменяет подписку: запись уже сохранена, письмо
// считается необязательным и ошибка только логируется.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*models.Subscriber, error) {
	sub, err := s.repo.CreateSubscriber(ctx, email)
	if err != nil {
		return nil, err
	}
	s.log.Info("new subscriber created", slog.Int("id", sub.ID))

	msg := models.WelcomeMessage{Email: sub.Email}
	if err := s.publisher.Publish(rabbitmq.WelcomeRoutingKey, msg); err != nil {
		s.log.Warn("failed to publish welcome message", slog.String("email", sub.Email), sl.Err(err))
	}

	return sub, nil
}
