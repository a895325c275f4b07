package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

const msgLimiterUnavailable = "сервис временно недоступен"

// Counter увеличивает счетчик ключа в окне фиксированной длины
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisCounter счетчик фиксированного окна в Redis
type RedisCounter struct {
	client redis.Scripter
}

func NewRedisCounter(client redis.Scripter) *RedisCounter {
	return &RedisCounter{client: client}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, c.client, []string{key}, window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	return scriptCount(res)
}

func scriptCount(res interface{}) (int64, error) {
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	}
	return 0, fmt.Errorf("unexpected redis script result type %T", res)
}

// RateLimiter ограничивает число изменяющих запросов клиента в окне
type RateLimiter struct {
	counter  Counter
	limit    int
	window   time.Duration
	failOpen bool
	prefix   string
	logger   Logger
}

func NewRateLimiter(counter Counter, limit int, window time.Duration, failOpen bool, logger Logger) *RateLimiter {
	if limit <= 0 {
		limit = 30
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		counter:  counter,
		limit:    limit,
		window:   window,
		failOpen: failOpen,
		prefix:   "scheduling:rl",
		logger:   logger,
	}
}

// Middleware отвечает 429 при превышении лимита. При недоступном Redis запрос
// пропускается (failOpen) либо отклоняется с 503.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.prefix + ":" + clientKey(r)

		count, err := rl.counter.Incr(r.Context(), key, rl.window)
		if err != nil {
			rl.logger.Warn("RateLimiter: counter error for key=%s: %v", key, err)
			if rl.failOpen {
				next.ServeHTTP(w, r)
				return
			}
			handlers.RespondError(w, http.StatusServiceUnavailable, msgLimiterUnavailable)
			return
		}

		if count > int64(rl.limit) {
			rl.logger.Warn("RateLimiter: limit exceeded for key=%s (%d/%d)", key, count, rl.limit)
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			handlers.RespondTooManyRequests(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey пользователь из X-User-ID, иначе IP клиента
func clientKey(r *http.Request) string {
	if userID := strings.TrimSpace(r.Header.Get(UserIDHeader)); userID != "" {
		return "user:" + userID
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return "ip:" + strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}
