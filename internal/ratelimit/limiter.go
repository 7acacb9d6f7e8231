// Package ratelimit implements fixed-window request counters.
//
// A window is identified by floor(now / window); every key gets a fresh
// counter when a new window starts. Two backends exist: Redis for
// multi-instance deployments and an in-process map for single instances and
// tests.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

type Result struct {
	Allowed    bool
	Count      int
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
}

func windowIndex(now time.Time, window time.Duration) int64 {
	return now.UnixNano() / int64(window)
}

func windowEnd(index int64, window time.Duration) time.Time {
	return time.Unix(0, (index+1)*int64(window))
}

func windowKey(key string, index int64) string {
	return fmt.Sprintf("rl:%s:%d", key, index)
}

func result(count, limit int, now time.Time, index int64, window time.Duration) Result {
	r := Result{
		Allowed: count <= limit,
		Count:   count,
		Limit:   limit,
	}
	if r.Allowed {
		r.Remaining = limit - count
	} else {
		r.RetryAfter = windowEnd(index, window).Sub(now)
	}
	return r
}
