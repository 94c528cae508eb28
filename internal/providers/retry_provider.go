package providers

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/games"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a GameProvider with retry/backoff behavior. It is
// only used for background polling; request paths call providers directly.
type retryingProvider struct {
	inner        GameProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	backoffFn    backoffFunc
	rng          *rand.Rand
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner GameProvider, logger *slog.Logger, rec *metrics.Recorder, providerName string, maxAttempts int, backoff time.Duration) GameProvider {
	return NewRetryingProviderWithRNG(inner, logger, rec, providerName, nil, maxAttempts, backoff)
}

// NewRetryingProviderWithRNG is NewRetryingProvider with a caller-supplied jitter source.
func NewRetryingProviderWithRNG(inner GameProvider, logger *slog.Logger, rec *metrics.Recorder, providerName string, rng *rand.Rand, maxAttempts int, backoff time.Duration) GameProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if providerName == "" {
		providerName = "provider"
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      rec,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		rng:          rng,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) FetchGames(ctx context.Context, date string, tz string) ([]games.Game, error) {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		result, err := r.inner.FetchGames(ctx, date, tz)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if rl, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rl.RetryAfter)
		}

		if attempt == r.maxAttempts {
			break
		}

		r.logWarn(ctx, "provider fetch retry", "attempt", attempt, "max_attempts", r.maxAttempts, "err", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.computeDelay(err, attempt)):
		}
	}

	r.logWarn(ctx, "provider fetch failed", "attempts", r.maxAttempts, "err", lastErr)
	return nil, lastErr
}

// computeDelay honours Retry-After when the upstream sent one, otherwise
// applies the backoff with jitter in [base/2, base].
func (r *retryingProvider) computeDelay(err error, attempt int) time.Duration {
	if rl, ok := AsRateLimitError(err); ok && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	base := r.backoffFn(attempt)
	if base <= 0 {
		return 0
	}
	half := base / 2
	return half + time.Duration(r.rng.Int63n(int64(base-half)+1))
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logger := logging.FromContext(ctx, r.logger)
	if logger != nil {
		args = append(args, logging.FieldProvider, r.providerName)
		logger.Warn(msg, args...)
	}
}
