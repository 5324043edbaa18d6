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

// SignUpInput — данные регистрации нового пользователя.
type SignUpInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// SignUp регистрирует нового пользователя и отправляет код подтверждения email.
// Создание пользователя и кода намеренно не связаны одной транзакцией:
// пользователь без валидного кода восстанавливается через ResendConfirmation.
// Ошибка отправки письма здесь фатальна — это основной путь подтверждения.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*models.User, error) {
	const op = "service.auth.SignUp"

	lg := log.From(ctx)

	normEmail := normalizeEmail(in.Email)

	_, err := s.storage.UserByEmail(ctx, normEmail)
	if err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	passwordHash, err := hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        normEmail,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	code, err := s.issueAuthCode(ctx, user.ID, models.AuthCodeEmailConfirmation, hashAuthCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.mailer.SendConfirmationCode(ctx, user.Email, user.FirstName, code); err != nil {
		lg.Error("confirmation_email_failed",
			slog.String("op", op),
			slog.String("email", redact.Email(user.Email)),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrEmailSendFailed)
	}

	return user, nil
}

// ResendConfirmation повторно отправляет код подтверждения email.
// Ответ одинаков независимо от того, существует ли адрес и подтверждён ли он
// (anti-enumeration); ошибки доставки проглатываются.
func (s *Service) ResendConfirmation(ctx context.Context, email string) error {
	const op = "service.auth.ResendConfirmation"

	lg := log.From(ctx)

	user, err := s.storage.UserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if user.EmailConfirmed {
		return nil
	}

	if err := s.storage.InvalidateAuthCodes(ctx, user.ID, models.AuthCodeEmailConfirmation); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	code, err := s.issueAuthCode(ctx, user.ID, models.AuthCodeEmailConfirmation, hashAuthCode)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.mailer.SendConfirmationCode(ctx, user.Email, user.FirstName, code); err != nil {
		lg.Warn("confirmation_email_failed",
			slog.String("op", op),
			slog.String("email", redact.Email(user.Email)),
			slog.String("err", err.Error()),
		)
	}

	return nil
}

// ConfirmEmail подтверждает email по одноразовому коду.
// Повторное подтверждение идемпотентно.
func (s *Service) ConfirmEmail(ctx context.Context, email, code string) error {
	const op = "service.auth.ConfirmEmail"

	user, err := s.storage.UserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if user.EmailConfirmed {
		return nil
	}

	authCode, err := s.checkAuthCode(ctx, user.ID, models.AuthCodeEmailConfirmation, code, verifyAuthCode)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.ConfirmUserEmail(ctx, user.ID, authCode.ID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Login выполняет вход по email+пароль.
// Неподтверждённый email блокирует вход независимо от корректности пароля.
func (s *Service) Login(ctx context.Context, email, password string, rememberMe bool) (*models.Session, error) {
	const op = "service.auth.Login"

	user, err := s.storage.UserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !checkPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if !user.EmailConfirmed {
		return nil, fmt.Errorf("%s: %w", op, ErrEmailNotConfirmed)
	}

	session, err := s.issueSession(ctx, user, rememberMe)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return session, nil
}

// Refresh ротирует пару токенов по refresh-токену.
// Потребление старого токена и сохранение нового атомарны: из двух
// конкурентных запросов с одним токеном выигрывает ровно один, второй
// получает ErrUnauthorized. remember_me наследуется из старого токена.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*models.Session, error) {
	const op = "service.auth.Refresh"

	claims, err := s.parseRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	user, err := s.storage.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()

	accessToken, err := s.generateAccessToken(user.ID, user.Email, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	newRefresh, jti, err := s.generateRefreshToken(user.ID, claims.RememberMe, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	next := &models.RefreshToken{
		TokenHash: refreshTokenHash(jti),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.RefreshTokenTTL),
	}

	rotated, err := s.storage.RotateRefreshToken(ctx, user.ID, refreshTokenHash(claims.ID), next)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !rotated {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	return &models.Session{
		User:            user,
		AccessToken:     accessToken,
		RefreshToken:    newRefresh,
		RememberMe:      claims.RememberMe,
		AccessExpiresAt: now.Add(s.cfg.AccessTokenTTL),
	}, nil
}

// Logout отзывает refresh-токен, если он предъявлен и валиден.
// Любая ошибка проглатывается: logout не может завершиться неудачей.
func (s *Service) Logout(ctx context.Context, refreshToken string) {
	const op = "service.auth.Logout"

	if refreshToken == "" {
		return
	}

	claims, err := s.parseRefreshToken(refreshToken)
	if err != nil {
		return
	}

	if _, err := s.storage.RevokeRefreshToken(ctx, refreshTokenHash(claims.ID)); err != nil {
		log.From(ctx).Warn("logout_revoke_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}
}

// CurrentUser возвращает профиль аутентифицированного пользователя.
func (s *Service) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	const op = "service.auth.CurrentUser"

	user, err := s.storage.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// issueSession выпускает новую пару access+refresh и сохраняет хэш refresh-токена.
func (s *Service) issueSession(ctx context.Context, user *models.User, rememberMe bool) (*models.Session, error) {
	const op = "service.auth.issueSession"

	now := time.Now().UTC()

	accessToken, err := s.generateAccessToken(user.ID, user.Email, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, jti, err := s.generateRefreshToken(user.ID, rememberMe, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.SaveRefreshToken(ctx, &models.RefreshToken{
		TokenHash: refreshTokenHash(jti),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.RefreshTokenTTL),
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.Session{
		User:            user,
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		RememberMe:      rememberMe,
		AccessExpiresAt: now.Add(s.cfg.AccessTokenTTL),
	}, nil
}

// issueAuthCode генерирует одноразовый код, сохраняет его дайджест и
// возвращает plaintext для отправки письмом.
func (s *Service) issueAuthCode(ctx context.Context, userID uuid.UUID, codeType models.AuthCodeType, hashFn func(string) string) (string, error) {
	const op = "service.auth.issueAuthCode"

	code, err := generateAuthCode()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	if err := s.storage.SaveAuthCode(ctx, &models.AuthCode{
		ID:        uuid.New(),
		UserID:    userID,
		CodeHash:  hashFn(code),
		CodeType:  codeType,
		ExpiresAt: now.Add(s.cfg.AuthCodeTTL),
		CreatedAt: now,
	}); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return code, nil
}

// checkAuthCode находит последний неиспользованный код пары (user, type)
// и проверяет его: просроченный код — ErrAuthCodeExpired, несовпавший
// дайджест или отсутствие кода — ErrInvalidAuthCode.
func (s *Service) checkAuthCode(ctx context.Context, userID uuid.UUID, codeType models.AuthCodeType, code string, verifyFn func(string, string) bool) (*models.AuthCode, error) {
	const op = "service.auth.checkAuthCode"

	authCode, err := s.storage.LatestAuthCode(ctx, userID, codeType)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidAuthCode)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if time.Now().UTC().After(authCode.ExpiresAt) {
		return nil, fmt.Errorf("%s: %w", op, ErrAuthCodeExpired)
	}

	if !verifyFn(code, authCode.CodeHash) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidAuthCode)
	}

	return authCode, nil
}
