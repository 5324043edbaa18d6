package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// generateAuthCode генерирует равномерно случайный шестизначный код
// в диапазоне [100000, 999999].
func generateAuthCode() (string, error) {
	const op = "service.codes.generateAuthCode"

	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// hashAuthCode — детерминированный дайджест кода (SHA-256 hex).
// Plaintext кода нигде не хранится.
func hashAuthCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// hashAuthCodeForEmail привязывает код к конкретному адресу:
// дайджест считается от "normalize(email):code". Код смены email
// не может быть переиспользован для другого адреса.
func hashAuthCodeForEmail(code, email string) string {
	sum := sha256.Sum256([]byte(normalizeEmail(email) + ":" + code))
	return hex.EncodeToString(sum[:])
}

// verifyAuthCode сравнивает код с дайджестом за константное время.
// Несовпадение длин возвращает false сразу.
func verifyAuthCode(code, digest string) bool {
	return constantTimeEqual(hashAuthCode(code), digest)
}

// verifyAuthCodeForEmail — email-scoped вариант verifyAuthCode.
func verifyAuthCodeForEmail(code, email, digest string) bool {
	return constantTimeEqual(hashAuthCodeForEmail(code, email), digest)
}

func constantTimeEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// normalizeEmail приводит адрес к каноническому виду (trim + lowercase).
// Применяется перед любым хэшированием и сравнением с БД: нормализация
// при генерации и при проверке обязана совпадать.
func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
