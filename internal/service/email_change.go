package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"auth-api/internal/models"
	"auth-api/internal/pkg/log"
	"auth-api/internal/pkg/redact"
	"auth-api/internal/storage"

	"github.com/google/uuid"
)

// RequestEmailChange выпускает код смены email и отправляет его на НОВЫЙ адрес.
// Если адрес совпадает с текущим или занят другим аккаунтом — возвращается
// тот же generic-успех без выпуска кода и без письма (anti-enumeration).
// Дайджест кода привязан к целевому адресу (email-scoped hash), поэтому код
// нельзя переиспользовать для другого email.
func (s *Service) RequestEmailChange(ctx context.Context, userID uuid.UUID, newEmail string) error {
	const op = "service.email_change.RequestEmailChange"

	lg := log.From(ctx)

	user, err := s.storage.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	normEmail := normalizeEmail(newEmail)
	if normEmail == normalizeEmail(user.Email) {
		return nil
	}

	if _, err := s.storage.UserByEmail(ctx, normEmail); err == nil {
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.InvalidateAuthCodes(ctx, user.ID, models.AuthCodeEmailChange); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	code, err := s.issueAuthCode(ctx, user.ID, models.AuthCodeEmailChange, func(c string) string {
		return hashAuthCodeForEmail(c, normEmail)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.mailer.SendEmailChangeCode(ctx, normEmail, user.FirstName, code); err != nil {
		lg.Warn("email_change_email_failed",
			slog.String("op", op),
			slog.String("email", redact.Email(normEmail)),
			slog.String("err", err.Error()),
		)
	}

	return nil
}

// ConfirmEmailChange проверяет email-scoped код и меняет адрес пользователя.
// Занятость адреса перепроверяется в той же транзакции, что и смена —
// гонка "адрес заняли между запросом и подтверждением" закрывается на
// коммите и возвращает ErrEmailTaken (код при этом остаётся неиспользованным).
// Возвращает обновлённого пользователя и свежий access-токен с новым email.
func (s *Service) ConfirmEmailChange(ctx context.Context, userID uuid.UUID, newEmail, code string) (*models.User, string, error) {
	const op = "service.email_change.ConfirmEmailChange"

	user, err := s.storage.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}

		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	normEmail := normalizeEmail(newEmail)

	authCode, err := s.checkAuthCode(ctx, user.ID, models.AuthCodeEmailChange, code, func(c, digest string) bool {
		return verifyAuthCodeForEmail(c, normEmail, digest)
	})
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateUserEmail(ctx, user.ID, authCode.ID, normEmail); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, "", fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	user.Email = normEmail
	user.EmailConfirmed = true

	accessToken, err := s.generateAccessToken(user.ID, user.Email, time.Now().UTC())
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	return user, accessToken, nil
}
