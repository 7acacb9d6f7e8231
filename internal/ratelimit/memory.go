package ratelimit

import (
	"context"
	"sync"
	"time"
)

type counter struct {
	count   int
	expires time.Time
}

// MemoryLimiter keeps counters in process. A janitor goroutine drops
// expired windows until Stop is called.
type MemoryLimiter struct {
	mu       sync.Mutex
	counters map[string]*counter
	now      func() time.Time

	stop chan struct{}
	done chan struct{}
}

func NewMemoryLimiter(sweepEvery time.Duration) *MemoryLimiter {
	m := &MemoryLimiter{
		counters: make(map[string]*counter),
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go m.janitor(sweepEvery)
	return m
}

func (m *MemoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (Result, error) {
	now := m.now()
	index := windowIndex(now, window)
	k := windowKey(key, index)

	m.mu.Lock()
	c, ok := m.counters[k]
	if !ok {
		c = &counter{expires: windowEnd(index, window)}
		m.counters[k] = c
	}
	c.count++
	count := c.count
	m.mu.Unlock()

	return result(count, limit, now, index, window), nil
}

func (m *MemoryLimiter) janitor(every time.Duration) {
	defer close(m.done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *MemoryLimiter) sweep() {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	for k, c := range m.counters {
		if !now.Before(c.expires) {
			delete(m.counters, k)
		}
	}
}

func (m *MemoryLimiter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.counters)
}

func (m *MemoryLimiter) Stop() {
	select {
	case <-m.stop:
	default:
		close(m.stop)
	}
	<-m.done
}
