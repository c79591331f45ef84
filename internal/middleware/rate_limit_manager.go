package middleware

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterPool keeps one limiter per client IP.
type limiterPool struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	idle     time.Duration
}

func newLimiterPool(idle time.Duration) *limiterPool {
	return &limiterPool{visitors: make(map[string]*visitor), idle: idle}
}

func (p *limiterPool) get(ip string, requestsPerWindow, windowSeconds, burst int) *rate.Limiter {
	if requestsPerWindow <= 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if v, exists := p.visitors[ip]; exists {
		v.lastSeen = time.Now()
		return v.limiter
	}

	if windowSeconds <= 0 {
		windowSeconds = 60
	}
	limit := rate.Limit(float64(requestsPerWindow) / float64(windowSeconds))
	if burst < requestsPerWindow {
		burst = requestsPerWindow
	}

	limiter := rate.NewLimiter(limit, burst)
	p.visitors[ip] = &visitor{limiter, time.Now()}
	return limiter
}

func (p *limiterPool) cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for ip, v := range p.visitors {
		if time.Since(v.lastSeen) > p.idle {
			delete(p.visitors, ip)
		}
	}
}

// RateLimitManager manages rate limiters with lifecycle control
type RateLimitManager struct {
	general    *limiterPool
	generation *limiterPool
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewRateLimitManager creates a new rate limit manager with context-based lifecycle
func NewRateLimitManager(ctx context.Context) *RateLimitManager {
	managerCtx, cancel := context.WithCancel(ctx)

	m := &RateLimitManager{
		general:    newLimiterPool(3 * time.Minute),
		generation: newLimiterPool(10 * time.Minute),
		ctx:        managerCtx,
		cancel:     cancel,
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

// GetVisitor retrieves or creates the general limiter for ip. Nil disables limiting.
func (m *RateLimitManager) GetVisitor(ip string, requestsPerWindow, windowSeconds, burst int) *rate.Limiter {
	return m.general.get(ip, requestsPerWindow, windowSeconds, burst)
}

// GetGenerationLimiter retrieves or creates the page generation limiter for ip.
func (m *RateLimitManager) GetGenerationLimiter(ip string, requestsPerWindow, windowSeconds int) *rate.Limiter {
	return m.generation.get(ip, requestsPerWindow, windowSeconds, 0)
}

// cleanupLoop periodically removes inactive rate limiters
func (m *RateLimitManager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.general.cleanup()
			m.generation.cleanup()
		}
	}
}

// Shutdown stops the cleanup goroutine and waits for it to finish
func (m *RateLimitManager) Shutdown() error {
	m.cancel()
	m.wg.Wait()
	return nil
}
