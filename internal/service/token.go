package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type accessClaims struct {
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type refreshClaims struct {
	TokenType string `json:"token_type"`
	// RememberMe отсутствует в токенах, выпущенных до появления поля;
	// при декодировании умолчание false.
	RememberMe bool `json:"remember_me"`
	jwt.RegisteredClaims
}

// generateAccessToken генерирует access-токен.
// Claims: {sub, email, exp, iat, token_type="access"}.
func (s *Service) generateAccessToken(userID uuid.UUID, email string, now time.Time) (string, error) {
	const op = "service.token.generateAccessToken"

	claims := accessClaims{
		Email:     email,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// ValidateAccessToken валидирует access-токен и возвращает субъект и email.
// Refresh-токен, предъявленный как access, отклоняется по token_type.
func (s *Service) ValidateAccessToken(tokenStr string) (uuid.UUID, string, error) {
	const op = "service.token.ValidateAccessToken"

	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return []byte(s.cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, "", fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return uuid.Nil, "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid || claims.TokenType != tokenTypeAccess {
		return uuid.Nil, "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return uid, claims.Email, nil
}

// generateRefreshToken генерирует refresh-токен со свежим jti.
// Возвращает подписанный токен и jti: в БД уходит только хэш jti,
// сам подписанный токен не хранится.
func (s *Service) generateRefreshToken(userID uuid.UUID, rememberMe bool, now time.Time) (string, string, error) {
	const op = "service.token.generateRefreshToken"

	jti := uuid.NewString()

	claims := refreshClaims{
		TokenType:  tokenTypeRefresh,
		RememberMe: rememberMe,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.RefreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, jti, nil
}

// parseRefreshToken валидирует refresh-токен и возвращает его claims.
// Access-токен, предъявленный как refresh, отклоняется по token_type.
func (s *Service) parseRefreshToken(tokenStr string) (*refreshClaims, error) {
	const op = "service.token.parseRefreshToken"

	token, err := jwt.ParseWithClaims(tokenStr, &refreshClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return []byte(s.cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*refreshClaims)
	if !ok || !token.Valid || claims.TokenType != tokenTypeRefresh || claims.ID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return claims, nil
}

// refreshTokenHash — ключ хранения refresh-токена: SHA-256 (hex) от jti.
func refreshTokenHash(jti string) string {
	sum := sha256.Sum256([]byte(jti))
	return hex.EncodeToString(sum[:])
}
