package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/docmycode/docmycode/internal/models"
)

// CreateSubscriber сохраняет нового подписчика рассылки.
//
// Уникальность email обеспечивается ограничением в базе: повторная подписка
// возвращает models.ErrAlreadySubscribed, запись не изменяется.
func (s *Storage) CreateSubscriber(ctx context.Context, email string) (*models.Subscriber, error) {
	const op = "storage.CreateSubscriber"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	sub := &models.Subscriber{}
	query := `INSERT INTO subscribers (email)
			  VALUES ($1)
			  RETURNING id, email, created_at;`
	err := s.DB.QueryRowContext(ctx, query, email).Scan(&sub.ID, &sub.Email, &sub.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, models.ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// GetSubscriberByEmail возвращает подписчика по email или nil, если его нет.
func (s *Storage) GetSubscriberByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	const op = "storage.GetSubscriberByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	sub := &models.Subscriber{}
	query := `SELECT id, email, created_at FROM subscribers WHERE email = $1`
	err := s.DB.QueryRowContext(ctx, query, email).Scan(&sub.ID, &sub.Email, &sub.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}
