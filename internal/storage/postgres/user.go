package postgres

import (
	"auth-api/internal/models"
	"auth-api/internal/storage"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SaveUser создает нового пользователя в БД.
func (s *Storage) SaveUser(ctx context.Context, user *models.User) error {
	const op = "storage.postgres.SaveUser"

	query := `
		INSERT INTO users(id, first_name, last_name, email, password_hash, email_confirmed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.Exec(ctx, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.EmailConfirmed,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UserByEmail находит пользователя по email.
// Колонка email — CITEXT, сравнение регистронезависимое.
func (s *Storage) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.postgres.UserByEmail"

	query := `
		SELECT id, first_name, last_name, email, password_hash, email_confirmed, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := s.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.EmailConfirmed,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

// UserByID находит пользователя по ID.
func (s *Storage) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "storage.postgres.UserByID"

	query := `
		SELECT id, first_name, last_name, email, password_hash, email_confirmed, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := s.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.EmailConfirmed,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

// ConfirmUserEmail в одной транзакции помечает код использованным
// и выставляет email_confirmed=true.
func (s *Storage) ConfirmUserEmail(ctx context.Context, userID, codeID uuid.UUID) error {
	const op = "storage.postgres.ConfirmUserEmail"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE auth_codes SET used = TRUE WHERE id = $1`,
		codeID,
	); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET email_confirmed = TRUE, updated_at = $2 WHERE id = $1`,
		userID, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpdateUserEmail в одной транзакции помечает код использованным и меняет
// email пользователя. Смена условная: адрес не должен быть занят другим
// аккаунтом на момент коммита — это закрывает гонку между запросом и
// подтверждением смены. При занятом адресе транзакция откатывается целиком
// (код остаётся неиспользованным) и возвращается ErrAlreadyExists.
func (s *Storage) UpdateUserEmail(ctx context.Context, userID, codeID uuid.UUID, email string) error {
	const op = "storage.postgres.UpdateUserEmail"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE auth_codes SET used = TRUE WHERE id = $1`,
		codeID,
	); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	const upd = `
		UPDATE users
		SET email = $2, email_confirmed = TRUE, updated_at = $3
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM users WHERE email = $2 AND id <> $1)
	`

	cmdTag, err := tx.Exec(ctx, upd, userID, email, time.Now().UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpdatePasswordAndRevokeSessions в одной транзакции потребляет предъявленный
// refresh-токен, обновляет хэш пароля и отзывает все остальные сессии.
// Возвращает (false, nil), если токен не был активен — конкурентный logout
// или смена пароля уже успели его отозвать.
func (s *Storage) UpdatePasswordAndRevokeSessions(ctx context.Context, userID uuid.UUID, consumedHash, passwordHash string) (bool, error) {
	const op = "storage.postgres.UpdatePasswordAndRevokeSessions"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	consumed, err := consumeRefreshToken(ctx, tx, userID, consumedHash)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if !consumed {
		return false, nil
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`,
		userID, passwordHash, time.Now().UTC(),
	); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = TRUE WHERE user_id = $1 AND revoked = FALSE`,
		userID,
	); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return true, nil
}
