// storage задаёт контракт персистентности auth-сервиса.
// Реализация — internal/storage/postgres.
package storage

import (
	"auth-api/internal/models"
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound — запись не найдена (пользователь/код/токен).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email/refresh-token).
	ErrAlreadyExists = errors.New("already exists")
)

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создает нового пользователя в БД.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email (регистронезависимо).
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// ConfirmUserEmail в одной транзакции помечает код использованным
	// и выставляет email_confirmed=true.
	ConfirmUserEmail(ctx context.Context, userID, codeID uuid.UUID) error
	// UpdateUserEmail в одной транзакции помечает код использованным и меняет
	// email пользователя, если адрес всё ещё свободен. Возвращает
	// ErrAlreadyExists, если адрес занят другим аккаунтом (вся транзакция
	// откатывается, код остаётся неиспользованным).
	UpdateUserEmail(ctx context.Context, userID, codeID uuid.UUID, email string) error
	// UpdatePasswordAndRevokeSessions в одной транзакции потребляет
	// предъявленный refresh-токен (conditional update), обновляет хэш пароля
	// и отзывает все остальные сессии пользователя. Возвращает false, если
	// токен не был активен на момент попытки (транзакция откатывается).
	UpdatePasswordAndRevokeSessions(ctx context.Context, userID uuid.UUID, consumedHash, passwordHash string) (bool, error)
}

// AuthCodeStorage выполняет операции над одноразовыми кодами.
type AuthCodeStorage interface {
	// SaveAuthCode сохраняет новый код в БД.
	SaveAuthCode(ctx context.Context, code *models.AuthCode) error
	// LatestAuthCode возвращает последний неиспользованный код пары
	// (user_id, code_type) без фильтра по сроку — срок проверяет сервис,
	// чтобы отличать "просрочен" от "неверен".
	LatestAuthCode(ctx context.Context, userID uuid.UUID, codeType models.AuthCodeType) (*models.AuthCode, error)
	// MarkAuthCodeUsed помечает код использованным.
	MarkAuthCodeUsed(ctx context.Context, id uuid.UUID) error
	// InvalidateAuthCodes помечает использованными все неиспользованные коды
	// пары (user_id, code_type) перед выпуском нового.
	InvalidateAuthCodes(ctx context.Context, userID uuid.UUID, codeType models.AuthCodeType) error
}

// RefreshTokenStorage выполняет операции над refresh-токенами.
type RefreshTokenStorage interface {
	// SaveRefreshToken сохраняет новый refresh-token в БД.
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error
	// IsRefreshTokenActive сообщает, активен ли токен
	// (revoked=false и expires_at в будущем).
	IsRefreshTokenActive(ctx context.Context, userID uuid.UUID, hash string) (bool, error)
	// RotateRefreshToken в одной транзакции потребляет старый токен
	// (conditional update: был активен и отозван именно сейчас) и сохраняет
	// новый. Возвращает false, если старый токен не был активен —
	// из двух конкурентных ротаций выигрывает ровно одна.
	RotateRefreshToken(ctx context.Context, userID uuid.UUID, oldHash string, next *models.RefreshToken) (bool, error)
	// RevokeRefreshToken безусловно отзывает токен по хэшу (logout).
	// Возвращает false, если токен уже был отозван.
	RevokeRefreshToken(ctx context.Context, hash string) (bool, error)
}

// Storage задает контракт работы с БД.
type Storage interface {
	UserStorage
	AuthCodeStorage
	RefreshTokenStorage
	Close()
}
