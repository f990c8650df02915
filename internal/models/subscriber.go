package models

import "time"

// Subscriber представляет подписчика новостной рассылки.
// Уникальность email обеспечивается ограничением в базе данных.
type Subscriber struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// WelcomeMessage сообщение для очереди приветственных писем рассылки.
type WelcomeMessage struct {
	Email string `json:"email"`
}
