package models

import "errors"

// Ошибки бизнес-уровня, которые обработчики переводят в HTTP-статусы.
var (
	// ErrDailyLimitReached пользователь исчерпал дневной лимит запросов.
	ErrDailyLimitReached = errors.New("daily request limit reached")
	// ErrAlreadySubscribed email уже присутствует в списке рассылки.
	ErrAlreadySubscribed = errors.New("email already subscribed")
	// ErrUserNotFound пользователь не найден в хранилище.
	ErrUserNotFound = errors.New("user not found")
)
