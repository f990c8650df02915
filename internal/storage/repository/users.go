package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/docmycode/docmycode/internal/models"
)

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его ID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO users (email, username, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.Role).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role,
			      requests_today, last_request_date
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, username)

	var lastRequestDate sql.NullTime
	if err := row.Scan(&u.UUID, &u.Email, &u.Username, &u.PasswordHash,
		&u.Role, &u.RequestsToday, &lastRequestDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if lastRequestDate.Valid {
		u.LastRequestDate = &lastRequestDate.Time
	}
	return u, nil
}

// ConsumeDailyQuota атомарно расходует одну единицу дневного лимита пользователя.
//
// Проверка даты, сброс счетчика и инкремент выполняются одним условным UPDATE:
// если дата последнего запроса отличается от today, счетчик начинается заново с 1;
// если лимит на сегодня исчерпан, строка не изменяется и возвращается
// models.ErrDailyLimitReached. Две конкурентные попытки при одном оставшемся
// запросе дают ровно одно разрешение.
func (s *Storage) ConsumeDailyQuota(ctx context.Context, username string, limit int, today time.Time) (int, error) {
	const op = "storage.ConsumeDailyQuota"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET requests_today = CASE
			          WHEN last_request_date IS NULL OR last_request_date <> $2::date THEN 1
			          ELSE requests_today + 1
			      END,
			      last_request_date = $2::date
			  WHERE username = $1
			    AND (last_request_date IS NULL OR last_request_date <> $2::date OR requests_today < $3)
			  RETURNING requests_today;`

	var used int
	err := s.DB.QueryRowContext(ctx, query, username, today, limit).Scan(&used)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, models.ErrDailyLimitReached
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return used, nil
}
