// rate реализует троттлинг попыток входа на Redis-счётчиках
// с fixed-window семантикой.
package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRateLimited — исчерпан лимит попыток входа.
// Транспорт: 429 TOO_MANY_ATTEMPTS.
var ErrRateLimited = errors.New("rate limited")

// Config — параметры лимитера.
type Config struct {
	MaxLoginAttempts int
	LoginCooldown    time.Duration
}

// Limiter ограничивает частоту неудачных попыток входа по паре email+IP.
type Limiter struct {
	rdb *redis.Client
	cfg Config
}

// New создаёт лимитер из Redis URL (например, redis://:pass@host:6379/0).
func New(redisURL string, cfg Config) (*Limiter, error) {
	const op = "rate.limiter.New"

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Limiter{rdb: rdb, cfg: cfg}, nil
}

// CheckLogin сообщает, не исчерпан ли бюджет попыток для пары email+IP.
func (l *Limiter) CheckLogin(ctx context.Context, email, ip string) error {
	if err := l.checkCounter(ctx, loginEmailKey(email)); err != nil {
		return err
	}

	if ip != "" {
		if err := l.checkCounter(ctx, loginIPKey(ip)); err != nil {
			return err
		}
	}

	return nil
}

// IncrementLogin фиксирует неудачную попытку входа.
func (l *Limiter) IncrementLogin(ctx context.Context, email, ip string) error {
	if _, err := l.incrementWithTTL(ctx, loginEmailKey(email)); err != nil {
		return err
	}

	if ip != "" {
		if _, err := l.incrementWithTTL(ctx, loginIPKey(ip)); err != nil {
			return err
		}
	}

	return nil
}

// ResetLogin сбрасывает счётчики после успешного входа.
func (l *Limiter) ResetLogin(ctx context.Context, email, ip string) error {
	keys := []string{loginEmailKey(email)}
	if ip != "" {
		keys = append(keys, loginIPKey(ip))
	}

	return l.rdb.Del(ctx, keys...).Err()
}

// Close закрывает клиент Redis.
func (l *Limiter) Close() error { return l.rdb.Close() }

func (l *Limiter) checkCounter(ctx context.Context, key string) error {
	count, err := l.rdb.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}

		return err
	}

	if count >= int64(l.cfg.MaxLoginAttempts) {
		return ErrRateLimited
	}

	return nil
}

func (l *Limiter) incrementWithTTL(ctx context.Context, key string) (int64, error) {
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	// Fixed-window: TTL выставляется только первому инкременту окна.
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, l.cfg.LoginCooldown).Err(); err != nil {
			return 0, err
		}
	}

	return count, nil
}

func loginEmailKey(email string) string { return "auth:login:email:" + email }
func loginIPKey(ip string) string       { return "auth:login:ip:" + ip }
