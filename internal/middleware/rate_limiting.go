package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/config"
)

// RateLimitMiddleware limits request rate per IP. Health and metrics probes are exempt.
func RateLimitMiddleware(manager *RateLimitManager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if manager == nil || shouldBypassRateLimit(c.Request) {
			c.Next()
			return
		}

		limiter := manager.GetVisitor(
			c.ClientIP(),
			cfg.RateLimitRequests,
			cfg.RateLimitWindow,
			cfg.RateLimitBurst,
		)
		if limiter == nil {
			c.Next()
			return
		}

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, please try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GenerationRateLimitMiddleware applies the stricter per-IP budget for page generation.
func GenerationRateLimitMiddleware(manager *RateLimitManager, cfg *config.Config) gin.HandlerFunc {
	requestsPerWindow := cfg.AIGenerateRateLimit
	windowSeconds := cfg.AIGenerateRateWindow
	if windowSeconds <= 0 {
		windowSeconds = 300
	}

	return func(c *gin.Context) {
		if manager == nil {
			c.Next()
			return
		}
		limiter := manager.GetGenerationLimiter(c.ClientIP(), requestsPerWindow, windowSeconds)
		if limiter == nil {
			c.Next()
			return
		}

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":          "generation rate limit exceeded",
				"message":        "Too many page generation requests. Please try again later.",
				"retry_after":    windowSeconds,
				"max_requests":   requestsPerWindow,
				"window_seconds": windowSeconds,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func shouldBypassRateLimit(r *http.Request) bool {
	if r == nil || r.URL == nil {
		return false
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}

	switch r.URL.Path {
	case "/health", "/metrics", "/favicon.ico":
		return true
	}
	return false
}
