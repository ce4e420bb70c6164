package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	requestIDHeader   = "X-Request-Id"
	requestIDKey      = "request_id"
	readHeaderTimeout = 10 * time.Second

	// limiterIdleTTL is how long a client's limiter survives without requests
	limiterIdleTTL = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// requestIDMiddleware tags each request with an id, reusing the client's if sent
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(requestIDKey, reqID)
		c.Header(requestIDHeader, reqID)
		c.Next()
	}
}

// accessLogMiddleware logs every request once it completes
func (s *Server) accessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDKey)),
		)
	}
}

// getLimiter returns the rate limiter for a client key, dropping limiters
// of clients idle for longer than limiterIdleTTL
func (s *Server) getLimiter(key string) *rate.Limiter {
	s.limiterMux.Lock()
	defer s.limiterMux.Unlock()

	now := s.now()
	if now.Sub(s.lastPrune) > limiterIdleTTL {
		for k, cl := range s.limiters {
			if now.Sub(cl.lastSeen) > limiterIdleTTL {
				delete(s.limiters, k)
			}
		}
		s.lastPrune = now
	}

	if cl, ok := s.limiters[key]; ok {
		cl.lastSeen = now
		return cl.limiter
	}
	lim := rate.NewLimiter(rate.Every(time.Second/time.Duration(s.opts.RateLimitRPS)), s.opts.RateLimitBurst)
	s.limiters[key] = &clientLimiter{limiter: lim, lastSeen: now}
	return lim
}

// rateLimitMiddleware rejects clients that exceed the configured request rate
func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !s.getLimiter(key).Allow() {
			s.logger.Warn("Rate limit exceeded", zap.String("client_ip", key))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
