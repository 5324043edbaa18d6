package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"auth-api/internal/models"
	"auth-api/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Интеграционные тесты репозитория refresh_token.go: сохранение и активность
// токенов, exactly-once ротация (включая конкурентную) и безусловный отзыв.

func saveToken(t *testing.T, st *Storage, userID uuid.UUID, hash string, expiresAt time.Time) *models.RefreshToken {
	t.Helper()

	token := &models.RefreshToken{
		TokenHash: hash,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	}
	require.NoError(t, st.SaveRefreshToken(context.Background(), token))
	return token
}

// TestIntegration_SaveRefreshToken_And_IsActive — happy-path сохранения и
// проверки активности; дубликат token_hash — storage.ErrAlreadyExists.
func TestIntegration_SaveRefreshToken_And_IsActive(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := mustSaveUser(t, st, "user@example.com")
	future := time.Now().UTC().Add(24 * time.Hour)

	token := saveToken(t, st, u.ID, "hash-1", future)

	active, err := st.IsRefreshTokenActive(context.Background(), u.ID, token.TokenHash)
	require.NoError(t, err)
	require.True(t, active)

	// Чужой user_id не видит токен.
	active, err = st.IsRefreshTokenActive(context.Background(), uuid.New(), token.TokenHash)
	require.NoError(t, err)
	require.False(t, active)

	// Дубликат первичного ключа.
	err = st.SaveRefreshToken(context.Background(), &models.RefreshToken{
		TokenHash: token.TokenHash,
		UserID:    u.ID,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: future,
	})
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

// TestIntegration_IsRefreshTokenActive_ExpiredIsInactive — просроченный токен
// неактивен, хотя запись остаётся в таблице.
func TestIntegration_IsRefreshTokenActive_ExpiredIsInactive(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := mustSaveUser(t, st, "user@example.com")
	token := saveToken(t, st, u.ID, "expired-hash", time.Now().UTC().Add(-time.Minute))

	active, err := st.IsRefreshTokenActive(context.Background(), u.ID, token.TokenHash)
	require.NoError(t, err)
	require.False(t, active)
}

// TestIntegration_RotateRefreshToken_OK_SecondAttemptLoses — ротация потребляет
// старый токен и сохраняет новый; повторная ротация того же токена проигрывает.
func TestIntegration_RotateRefreshToken_OK_SecondAttemptLoses(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := mustSaveUser(t, st, "user@example.com")
	future := time.Now().UTC().Add(24 * time.Hour)
	old := saveToken(t, st, u.ID, "old-hash", future)

	next := &models.RefreshToken{
		TokenHash: "next-hash",
		UserID:    u.ID,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: future,
	}

	rotated, err := st.RotateRefreshToken(context.Background(), u.ID, old.TokenHash, next)
	require.NoError(t, err)
	require.True(t, rotated)

	active, err := st.IsRefreshTokenActive(context.Background(), u.ID, old.TokenHash)
	require.NoError(t, err)
	require.False(t, active)

	active, err = st.IsRefreshTokenActive(context.Background(), u.ID, next.TokenHash)
	require.NoError(t, err)
	require.True(t, active)

	// Старый токен уже потреблён: вторая попытка проигрывает,
	// её новый токен не сохраняется.
	loser := &models.RefreshToken{
		TokenHash: "loser-hash",
		UserID:    u.ID,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: future,
	}
	rotated, err = st.RotateRefreshToken(context.Background(), u.ID, old.TokenHash, loser)
	require.NoError(t, err)
	require.False(t, rotated)

	active, err = st.IsRefreshTokenActive(context.Background(), u.ID, loser.TokenHash)
	require.NoError(t, err)
	require.False(t, active)
}

// TestIntegration_RotateRefreshToken_ExpiredOldToken — просроченный старый
// токен не потребляется, ротация проигрывает.
func TestIntegration_RotateRefreshToken_ExpiredOldToken(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := mustSaveUser(t, st, "user@example.com")
	old := saveToken(t, st, u.ID, "expired-old", time.Now().UTC().Add(-time.Minute))

	rotated, err := st.RotateRefreshToken(context.Background(), u.ID, old.TokenHash, &models.RefreshToken{
		TokenHash: "fresh-hash",
		UserID:    u.ID,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	require.False(t, rotated)
}

// TestIntegration_RotateRefreshToken_Concurrent_ExactlyOneWins — N конкурентных
// ротаций одного токена: выигрывает ровно одна.
func TestIntegration_RotateRefreshToken_Concurrent_ExactlyOneWins(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := mustSaveUser(t, st, "user@example.com")
	future := time.Now().UTC().Add(24 * time.Hour)
	old := saveToken(t, st, u.ID, "contended-hash", future)

	const workers = 8

	var wg sync.WaitGroup
	results := make([]bool, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = st.RotateRefreshToken(context.Background(), u.ID, old.TokenHash, &models.RefreshToken{
				TokenHash: fmt.Sprintf("winner-candidate-%d", i),
				UserID:    u.ID,
				CreatedAt: time.Now().UTC(),
				ExpiresAt: future,
			})
		}(i)
	}
	wg.Wait()

	wins := 0
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		if results[i] {
			wins++
		}
	}
	require.Equal(t, 1, wins)
}

// TestIntegration_RevokeRefreshToken — отзыв: активный токен отзывается один
// раз, повторный отзыв — (false, nil), несуществующий — ErrNotFound.
func TestIntegration_RevokeRefreshToken(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := mustSaveUser(t, st, "user@example.com")
	token := saveToken(t, st, u.ID, "revoke-me", time.Now().UTC().Add(24*time.Hour))

	revoked, err := st.RevokeRefreshToken(context.Background(), token.TokenHash)
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = st.RevokeRefreshToken(context.Background(), token.TokenHash)
	require.NoError(t, err)
	require.False(t, revoked)

	_, err = st.RevokeRefreshToken(context.Background(), "absent-hash")
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotFound)
}
