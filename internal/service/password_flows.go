package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"auth-api/internal/models"
	"auth-api/internal/pkg/log"
	"auth-api/internal/pkg/redact"
	"auth-api/internal/storage"

	"github.com/google/uuid"
)

// ForgotPassword запускает сброс пароля. Ответ одинаков независимо от того,
// существует ли адрес (anti-enumeration); ошибки доставки письма
// проглатываются по той же причине.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	const op = "service.password_flows.ForgotPassword"

	lg := log.From(ctx)

	user, err := s.storage.UserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.InvalidateAuthCodes(ctx, user.ID, models.AuthCodePasswordReset); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	code, err := s.issueAuthCode(ctx, user.ID, models.AuthCodePasswordReset, hashAuthCode)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.mailer.SendPasswordResetCode(ctx, user.Email, user.FirstName, code); err != nil {
		lg.Warn("password_reset_email_failed",
			slog.String("op", op),
			slog.String("email", redact.Email(user.Email)),
			slog.String("err", err.Error()),
		)
	}

	return nil
}

// VerifyForgotPassword проверяет код сброса и ведёт себя как неявный вход:
// помечает код использованным и выпускает свежую пару токенов, давая
// короткое аутентифицированное окно для вызова SetPassword.
func (s *Service) VerifyForgotPassword(ctx context.Context, email, code string) (*models.Session, error) {
	const op = "service.password_flows.VerifyForgotPassword"

	user, err := s.storage.UserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	authCode, err := s.checkAuthCode(ctx, user.ID, models.AuthCodePasswordReset, code, verifyAuthCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.MarkAuthCodeUsed(ctx, authCode.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	session, err := s.issueSession(ctx, user, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return session, nil
}

// ChangePassword меняет пароль аутентифицированного пользователя.
// Требует текущий пароль и активный refresh-токен: потребление токена,
// смена хэша и отзыв остальных сессий атомарны, поэтому logout немедленно
// инвалидирует смену пароля по устаревшим cookie. Новая сессия становится
// единственной.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, refreshToken, currentPassword, newPassword string) (*models.Session, error) {
	const op = "service.password_flows.ChangePassword"

	user, err := s.userForPasswordUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !checkPassword(user.PasswordHash, currentPassword) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	session, err := s.applyPasswordUpdate(ctx, user, refreshToken, newPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return session, nil
}

// SetPassword устанавливает новый пароль после сброса. Текущий пароль не
// требуется: право подтверждено кодом сброса, сессия от VerifyForgotPassword
// предъявляется refresh-токеном.
func (s *Service) SetPassword(ctx context.Context, userID uuid.UUID, refreshToken, newPassword string) (*models.Session, error) {
	const op = "service.password_flows.SetPassword"

	user, err := s.userForPasswordUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	session, err := s.applyPasswordUpdate(ctx, user, refreshToken, newPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return session, nil
}

func (s *Service) userForPasswordUpdate(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.storage.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUnauthorized
		}

		return nil, err
	}

	return user, nil
}

// applyPasswordUpdate — общая часть ChangePassword/SetPassword:
// валидация refresh-токена, атомарное потребление+смена+отзыв, затем выпуск
// новой (единственной) сессии. Вставка новой сессии происходит после коммита.
func (s *Service) applyPasswordUpdate(ctx context.Context, user *models.User, refreshToken, newPassword string) (*models.Session, error) {
	claims, err := s.parseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if claims.Subject != user.ID.String() {
		return nil, ErrUnauthorized
	}

	newHash, err := hashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	updated, err := s.storage.UpdatePasswordAndRevokeSessions(ctx, user.ID, refreshTokenHash(claims.ID), newHash)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrUnauthorized
	}

	return s.issueSession(ctx, user, claims.RememberMe)
}
