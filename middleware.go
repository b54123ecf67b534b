package main

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/time/rate"

	constants "github.com/CodeAndHammer/nombroludo/internal/constants"
	models "github.com/CodeAndHammer/nombroludo/internal/models"
	util "github.com/CodeAndHammer/nombroludo/internal/util"
)

// contentSecurityPolicy limits scripts to the page origin and the pinned
// htmx build that index.html loads.
func contentSecurityPolicy() string {
	return strings.Join([]string{
		"default-src 'self'",
		"script-src 'self' " + constants.HTMXScriptURL,
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data:",
		"connect-src 'self'",
		"object-src 'none'",
		"base-uri 'self'",
		"form-action 'self'",
		"frame-ancestors 'none'",
	}, "; ")
}

func securityHeadersMiddleware() gin.HandlerFunc {
	csp := contentSecurityPolicy()
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", csp)
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
		}
		c.Next()
	}
}

func getLimiter(app *models.App, key string) *rate.Limiter {
	app.LimiterMutex.RLock()
	entry, ok := app.LimiterMap[key]
	app.LimiterMutex.RUnlock()
	if ok {
		app.LimiterMutex.Lock()
		entry.LastAccess = time.Now()
		app.LimiterMutex.Unlock()
		return entry.Limiter
	}

	app.LimiterMutex.Lock()
	defer app.LimiterMutex.Unlock()
	if entry, ok = app.LimiterMap[key]; ok {
		entry.LastAccess = time.Now()
		return entry.Limiter
	}

	if key == "" || key == "::1" {
		util.LogWarn("Rate limiter key is empty or loopback: %q", key)
	}
	rps := max(app.RateLimitRPS, 1)
	lim := rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), app.RateLimitBurst)
	app.LimiterMap[key] = &models.RateLimiterEntry{
		Limiter:    lim,
		LastAccess: time.Now(),
	}
	return lim
}

func rateLimitMiddleware(app *models.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !getLimiter(app, c.ClientIP()).Allow() {
			if c.GetHeader("HX-Request") == "true" {
				c.Header("HX-Trigger", "rate-limit-exceeded")
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please slow down."})
			return
		}
		c.Next()
	}
}

// cleanupStaleRateLimiters drops limiters idle for longer than
// app.RateLimiterTTL and returns how many were removed.
func cleanupStaleRateLimiters(app *models.App) int {
	app.LimiterMutex.Lock()
	defer app.LimiterMutex.Unlock()

	cutoffTime := time.Now().Add(-app.RateLimiterTTL)
	stale := lo.PickBy(app.LimiterMap, func(_ string, entry *models.RateLimiterEntry) bool {
		return entry.LastAccess.Before(cutoffTime)
	})
	for key := range stale {
		delete(app.LimiterMap, key)
	}

	if len(stale) > 0 {
		util.LogInfo("Cleaned up %d stale rate limiters", len(stale))
	}
	return len(stale)
}

// requestIDMiddleware tags the request context with an id that the game and
// handler log lines carry. An inbound X-Request-Id is kept when it is short
// and plain; anything else is replaced.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-Id")
		if !validRequestID(reqID) {
			reqID = uuid.NewString()
		}
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), constants.RequestIDKey, reqID))
		c.Header("X-Request-Id", reqID)
		c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	return lo.EveryBy([]rune(id), func(r rune) bool {
		return r == '-' || r == '_' || r == '.' ||
			(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	})
}

var unsafeMethods = []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch}

// validateCSRFMiddleware checks the double-submit token on state-changing
// requests. HTMX sends it as a header; plain form posts carry the hidden field.
func validateCSRFMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !lo.Contains(unsafeMethods, c.Request.Method) {
			c.Next()
			return
		}
		cookie, _ := c.Cookie(constants.CSRFCookieName)
		token := lo.CoalesceOrEmpty(c.GetHeader("X-CSRF-Token"), c.PostForm(constants.CSRFCookieName))
		if token == "" || cookie == "" || subtle.ConstantTimeCompare([]byte(token), []byte(cookie)) != 1 {
			util.LogWarnCtx(c.Request.Context(), "Rejected %s %s: invalid csrf token", c.Request.Method, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid csrf token"})
			return
		}
		c.Next()
	}
}

// csrfMiddleware issues the token cookie on first contact and exposes the
// token to templates under constants.CSRFCookieName.
func csrfMiddleware(app *models.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(constants.CSRFCookieName)
		if err != nil || len(token) < 8 {
			b := make([]byte, 32)
			if _, err := rand.Read(b); err != nil {
				util.LogWarnCtx(c.Request.Context(), "Failed to generate csrf token: %v", err)
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			token = hex.EncodeToString(b)
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(constants.CSRFCookieName, token, int(app.CookieMaxAge.Seconds()), "/", "", app.IsProduction, false)
		}
		c.Set(constants.CSRFCookieName, token)
		c.Next()
	}
}
