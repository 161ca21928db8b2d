package api

import (
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	insightRequestInterval = 20 * time.Second
	insightRequestBurst    = 3
)

// insightLimiter throttles text generation per account with a token bucket.
type insightLimiter struct {
	limiters sync.Map // map[string]*rate.Limiter
	every    rate.Limit
	burst    int
}

func newInsightLimiter(interval time.Duration, burst int) *insightLimiter {
	return &insightLimiter{
		every: rate.Every(interval),
		burst: burst,
	}
}

func (limiter *insightLimiter) allow(userID uint, now time.Time) bool {
	key := strconv.FormatUint(uint64(userID), 10)
	if existing, ok := limiter.limiters.Load(key); ok {
		return existing.(*rate.Limiter).AllowN(now, 1)
	}
	created, _ := limiter.limiters.LoadOrStore(key, rate.NewLimiter(limiter.every, limiter.burst))
	return created.(*rate.Limiter).AllowN(now, 1)
}
