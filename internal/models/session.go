package models

import "time"

// Session - результат успешной аутентификации: пользователь и пара токенов.
// RememberMe определяет, будет ли refresh-cookie персистентной.
type Session struct {
	User            *User
	AccessToken     string
	RefreshToken    string
	RememberMe      bool
	AccessExpiresAt time.Time
}
