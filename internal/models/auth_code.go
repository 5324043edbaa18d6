package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthCodeType - назначение одноразового кода.
type AuthCodeType string

const (
	AuthCodeEmailConfirmation AuthCodeType = "email_confirmation"
	AuthCodePasswordReset     AuthCodeType = "password_reset"
	AuthCodeEmailChange       AuthCodeType = "email_change"
)

// AuthCode - одноразовый шестизначный код в хэшированном виде.
// Коды одноразовые: used выставляется ровно один раз и назад не откатывается.
// Записи никогда не удаляются (audit trail).
type AuthCode struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CodeHash  string
	CodeType  AuthCodeType
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
