package models

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	board "github.com/CodeAndHammer/nombroludo/internal/board"
	game "github.com/CodeAndHammer/nombroludo/internal/game"
)

// SessionEntry is one browser's round and the page model rendered for it.
// Mu serializes requests that share a session cookie.
type SessionEntry struct {
	Mu             sync.Mutex
	Game           *game.Session
	Board          *board.Board
	LastAccessTime time.Time
}

// RateLimiterEntry represents a rate limiter entry for a client IP
type RateLimiterEntry struct {
	Limiter    *rate.Limiter
	LastAccess time.Time
}

type App struct {
	GameSessions   map[string]*SessionEntry
	SessionMutex   sync.RWMutex
	LimiterMap     map[string]*RateLimiterEntry
	LimiterMutex   sync.RWMutex
	NewSource      func() game.Source
	IsProduction   bool
	StartTime      time.Time
	CookieMaxAge   time.Duration
	StaticCacheAge time.Duration
	RateLimitRPS   int
	RateLimitBurst int
	RateLimiterTTL time.Duration
	SessionTTL     time.Duration
}

// Source returns the secret source for a new session. Nil means crypto/rand.
func (app *App) Source() game.Source {
	if app.NewSource == nil {
		return nil
	}
	return app.NewSource()
}
