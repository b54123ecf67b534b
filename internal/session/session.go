package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	board "github.com/CodeAndHammer/nombroludo/internal/board"
	constants "github.com/CodeAndHammer/nombroludo/internal/constants"
	game "github.com/CodeAndHammer/nombroludo/internal/game"
	models "github.com/CodeAndHammer/nombroludo/internal/models"
	util "github.com/CodeAndHammer/nombroludo/internal/util"
)

func GetOrCreateSession(app *models.App, c *gin.Context) string {
	sessionID, err := c.Cookie(constants.SessionCookieName)
	if err != nil || len(sessionID) < 10 {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		secure := app.IsProduction
		c.SetCookie(constants.SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", secure, true)
		util.LogInfo("Created new session: %s", sessionID)
	}
	return sessionID
}

// GetEntry returns the session's entry, starting a fresh round when the
// session has none yet.
func GetEntry(app *models.App, sessionID string) *models.SessionEntry {
	app.SessionMutex.RLock()
	entry, exists := app.GameSessions[sessionID]
	app.SessionMutex.RUnlock()
	if exists {
		entry.Mu.Lock()
		entry.LastAccessTime = time.Now()
		entry.Mu.Unlock()
		return entry
	}

	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	if entry, exists = app.GameSessions[sessionID]; exists {
		return entry
	}
	util.LogInfo("Creating new game for session: %s", sessionID)
	entry = NewEntry(app)
	app.GameSessions[sessionID] = entry
	return entry
}

func NewEntry(app *models.App) *models.SessionEntry {
	return &models.SessionEntry{
		Game:           game.NewSession(app.Source()),
		Board:          board.New(),
		LastAccessTime: time.Now(),
	}
}

func DeleteSession(app *models.App, sessionID string) {
	app.SessionMutex.Lock()
	delete(app.GameSessions, sessionID)
	app.SessionMutex.Unlock()
	util.LogInfo("Cleared session data for: %s", sessionID)
}

func SessionCount(app *models.App) int {
	app.SessionMutex.RLock()
	defer app.SessionMutex.RUnlock()
	return len(app.GameSessions)
}

// CleanupStaleSessions drops sessions idle for longer than app.SessionTTL and
// returns how many were removed.
func CleanupStaleSessions(app *models.App) int {
	cutoffTime := time.Now().Add(-app.SessionTTL)

	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()

	stale := lo.PickBy(app.GameSessions, func(_ string, entry *models.SessionEntry) bool {
		entry.Mu.Lock()
		defer entry.Mu.Unlock()
		return entry.LastAccessTime.Before(cutoffTime)
	})
	for sessionID := range stale {
		delete(app.GameSessions, sessionID)
	}

	if len(stale) > 0 {
		util.LogInfo("Cleaned up %d stale sessions", len(stale))
	}
	return len(stale)
}
