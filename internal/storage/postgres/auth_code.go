package postgres

import (
	"auth-api/internal/models"
	"auth-api/internal/storage"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveAuthCode сохраняет новый одноразовый код в БД.
func (s *Storage) SaveAuthCode(ctx context.Context, code *models.AuthCode) error {
	const op = "storage.postgres.SaveAuthCode"

	query := `
        INSERT INTO auth_codes(id, user_id, code_hash, code_type, expires_at, used, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `

	_, err := s.db.Exec(ctx, query,
		code.ID,
		code.UserID,
		code.CodeHash,
		code.CodeType,
		code.ExpiresAt,
		code.Used,
		code.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// LatestAuthCode возвращает последний неиспользованный код пары
// (user_id, code_type). Срок действия намеренно не фильтруется:
// просроченный код сервис отличает от неверного.
func (s *Storage) LatestAuthCode(ctx context.Context, userID uuid.UUID, codeType models.AuthCodeType) (*models.AuthCode, error) {
	const op = "storage.postgres.LatestAuthCode"

	query := `
        SELECT id, user_id, code_hash, code_type, expires_at, used, created_at
        FROM auth_codes
        WHERE user_id = $1 AND code_type = $2 AND used = FALSE
        ORDER BY created_at DESC
        LIMIT 1
    `

	var code models.AuthCode
	err := s.db.QueryRow(ctx, query, userID, codeType).Scan(
		&code.ID,
		&code.UserID,
		&code.CodeHash,
		&code.CodeType,
		&code.ExpiresAt,
		&code.Used,
		&code.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &code, nil
}

// MarkAuthCodeUsed помечает код использованным.
func (s *Storage) MarkAuthCodeUsed(ctx context.Context, id uuid.UUID) error {
	const op = "storage.postgres.MarkAuthCodeUsed"

	query := `
        UPDATE auth_codes
        SET used = TRUE
        WHERE id = $1
    `

	cmdTag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// InvalidateAuthCodes помечает использованными все неиспользованные коды
// пары (user_id, code_type). Вызывается перед выпуском нового кода, чтобы
// действовал только последний.
func (s *Storage) InvalidateAuthCodes(ctx context.Context, userID uuid.UUID, codeType models.AuthCodeType) error {
	const op = "storage.postgres.InvalidateAuthCodes"

	query := `
        UPDATE auth_codes
        SET used = TRUE
        WHERE user_id = $1 AND code_type = $2 AND used = FALSE
    `

	if _, err := s.db.Exec(ctx, query, userID, codeType); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
