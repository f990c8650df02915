// Package models содержит структуры данных предметной области сервиса.
package models

import "time"

// User представляет пользователя сервиса.
//
// Поля RequestsToday и LastRequestDate образуют дневной счетчик запросов
// к генерации документации: счетчик имеет смысл только относительно даты
// последнего запроса и считается нулевым, если дата устарела.
type User struct {
	UUID            string     `json:"uid"`
	Email           string     `json:"email"`
	Username        string     `json:"username"`
	PasswordHash    string     `json:"-"`
	Role            string     `json:"role"`
	RequestsToday   int        `json:"requests_today"`
	LastRequestDate *time.Time `json:"last_request_date,omitempty"`
}
