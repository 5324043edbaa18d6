package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken - персистентный след выпущенного refresh-токена.
// TokenHash - SHA-256 (hex) от jti подписанного токена; сам токен не хранится.
// Токен активен, пока revoked=false и expires_at в будущем.
// Переход issued -> revoked одностороний, записи не удаляются.
type RefreshToken struct {
	TokenHash string
	UserID    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
	Revoked   bool
}
