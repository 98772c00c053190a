package ratelimit

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=mocks_test.go -package=ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"crm-automation/internal/observability"

	"github.com/google/uuid"
)

// Window is the sorted set store backing the sliding window
type Window interface {
	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRemRangeByScore(ctx context.Context, key, min, max string) error
	ZCard(ctx context.Context, key string) (int64, error)
	ZRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
}

// RateLimitResult represents the result of a rate limit check
type RateLimitResult struct {
	Allowed      bool      `json:"allowed"`
	Limit        int       `json:"limit"`
	Remaining    int       `json:"remaining"`
	ResetAt      time.Time `json:"reset_at"`
	RetryAfterMs int       `json:"retry_after_ms,omitempty"`
}

// Service limits how many CRM events an organization can ingest per minute
type Service struct {
	window Window
	limit  int
	logger *observability.Logger
	now    func() time.Time
}

// NewService creates a new rate limiting service. With a nil window or a
// non-positive limit every request is allowed.
func NewService(window Window, limit int, logger *observability.Logger) *Service {
	return &Service{
		window: window,
		limit:  limit,
		logger: logger,
		now:    time.Now,
	}
}

// CheckRateLimit records one request for orgID and reports whether it fits the window.
// Redis failures fail open.
func (s *Service) CheckRateLimit(ctx context.Context, orgID uuid.UUID) RateLimitResult {
	now := s.now()
	if s.window == nil || s.limit <= 0 {
		return RateLimitResult{Allowed: true, Limit: s.limit, ResetAt: now.Add(time.Minute)}
	}

	result, err := s.checkSlidingWindow(ctx, orgID, now)
	if err != nil {
		s.logger.Warn(observability.WithFields(ctx,
			observability.Field{Key: "organization_id", Value: orgID},
			observability.Field{Key: "error", Value: err.Error()},
		), "rate limit check failed, allowing request")
		return RateLimitResult{Allowed: true, Limit: s.limit, Remaining: s.limit, ResetAt: now.Add(time.Minute)}
	}
	return result
}

// checkSlidingWindow keeps one member per request, scored by its arrival in milliseconds
func (s *Service) checkSlidingWindow(ctx context.Context, orgID uuid.UUID, now time.Time) (RateLimitResult, error) {
	key := fmt.Sprintf("rl:events:%s", orgID.String())
	nowMs := now.UnixMilli()
	windowStartMs := now.Add(-time.Minute).UnixMilli()

	if err := s.window.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStartMs, 10)); err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to remove old entries: %w", err)
	}

	count, err := s.window.ZCard(ctx, key)
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to count requests: %w", err)
	}

	if int(count) >= s.limit {
		resetAt := now.Add(time.Minute)
		if oldest, err := s.window.ZRange(ctx, key, 0, 0); err == nil && len(oldest) > 0 {
			if ms, ok := memberMillis(oldest[0]); ok {
				resetAt = time.UnixMilli(ms).Add(time.Minute)
			}
		}
		retryAfter := resetAt.Sub(now)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return RateLimitResult{
			Allowed:      false,
			Limit:        s.limit,
			Remaining:    0,
			ResetAt:      resetAt,
			RetryAfterMs: int(retryAfter.Milliseconds()),
		}, nil
	}

	member := fmt.Sprintf("%d-%s", nowMs, uuid.NewString())
	if err := s.window.ZAdd(ctx, key, float64(nowMs), member); err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to add request: %w", err)
	}
	if err := s.window.Expire(ctx, key, 2*time.Minute); err != nil {
		s.logger.Warn(ctx, "failed to set expiration on rate limit key")
	}

	return RateLimitResult{
		Allowed:   true,
		Limit:     s.limit,
		Remaining: s.limit - int(count) - 1,
		ResetAt:   now.Add(time.Minute),
	}, nil
}

func memberMillis(member string) (int64, bool) {
	prefix, _, _ := strings.Cut(member, "-")
	ms, err := strconv.ParseInt(prefix, 10, 64)
	return ms, err == nil
}
