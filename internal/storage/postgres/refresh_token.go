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

// SaveRefreshToken сохраняет новый refresh-токен в БД.
func (s *Storage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	const op = "storage.postgres.SaveRefreshToken"

	query := `
        INSERT INTO refresh_tokens(token_hash, user_id, created_at, expires_at, revoked)
        VALUES ($1, $2, $3, $4, $5)
    `

	_, err := s.db.Exec(ctx, query,
		token.TokenHash,
		token.UserID,
		token.CreatedAt,
		token.ExpiresAt,
		token.Revoked,
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

// IsRefreshTokenActive сообщает, активен ли токен пользователя.
func (s *Storage) IsRefreshTokenActive(ctx context.Context, userID uuid.UUID, hash string) (bool, error) {
	const op = "storage.postgres.IsRefreshTokenActive"

	query := `
        SELECT EXISTS(
            SELECT 1 FROM refresh_tokens
            WHERE user_id = $1 AND token_hash = $2 AND revoked = FALSE AND expires_at > $3
        )
    `

	var active bool
	if err := s.db.QueryRow(ctx, query, userID, hash, time.Now().UTC()).Scan(&active); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return active, nil
}

// RotateRefreshToken в одной транзакции потребляет старый токен и сохраняет
// новый. Conditional UPDATE — ядро exactly-once ротации: из двух конкурентных
// запросов ровно один увидит RowsAffected=1, второй получит (false, nil).
func (s *Storage) RotateRefreshToken(ctx context.Context, userID uuid.UUID, oldHash string, next *models.RefreshToken) (bool, error) {
	const op = "storage.postgres.RotateRefreshToken"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	consumed, err := consumeRefreshToken(ctx, tx, userID, oldHash)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if !consumed {
		return false, nil
	}

	const ins = `
        INSERT INTO refresh_tokens(token_hash, user_id, created_at, expires_at, revoked)
        VALUES ($1, $2, $3, $4, $5)
    `

	if _, err := tx.Exec(ctx, ins,
		next.TokenHash,
		next.UserID,
		next.CreatedAt,
		next.ExpiresAt,
		next.Revoked,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return false, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return true, nil
}

// RevokeRefreshToken безусловно отзывает токен по хэшу.
// Возвращает:
//
//	(true, nil)  — токен был активен и отозван сейчас;
//	(false, nil) — токен существует, но уже был отозван;
//	(false, ErrNotFound) — токен не найден.
func (s *Storage) RevokeRefreshToken(ctx context.Context, hash string) (bool, error) {
	const op = "storage.postgres.RevokeRefreshToken"

	const upd = `
		UPDATE refresh_tokens
		SET revoked = TRUE
		WHERE token_hash = $1 AND revoked = FALSE
		RETURNING user_id
	`

	var userID string
	err := s.db.QueryRow(ctx, upd, hash).Scan(&userID)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	const sel = `
		SELECT revoked
		FROM refresh_tokens
		WHERE token_hash = $1
	`

	var revoked bool
	err = s.db.QueryRow(ctx, sel, hash).Scan(&revoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	return false, nil
}

// consumeRefreshToken — атомарное потребление токена внутри транзакции:
// "был активен И отозван именно сейчас" одним conditional UPDATE.
func consumeRefreshToken(ctx context.Context, tx pgx.Tx, userID uuid.UUID, hash string) (bool, error) {
	const upd = `
		UPDATE refresh_tokens
		SET revoked = TRUE
		WHERE user_id = $1 AND token_hash = $2 AND revoked = FALSE AND expires_at > $3
		RETURNING token_hash
	`

	var consumed string
	err := tx.QueryRow(ctx, upd, userID, hash, time.Now().UTC()).Scan(&consumed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
