package models

import (
	"time"

	"github.com/google/uuid"
)

// User - модель пользователя в системе.
// Email хранится в нормализованном виде (trim+lowercase),
// уникальность в БД регистронезависимая (CITEXT).
type User struct {
	ID             uuid.UUID
	FirstName      string
	LastName       string
	Email          string
	PasswordHash   string
	EmailConfirmed bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
