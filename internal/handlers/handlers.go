package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	board "github.com/CodeAndHammer/nombroludo/internal/board"
	constants "github.com/CodeAndHammer/nombroludo/internal/constants"
	game "github.com/CodeAndHammer/nombroludo/internal/game"
	models "github.com/CodeAndHammer/nombroludo/internal/models"
	session "github.com/CodeAndHammer/nombroludo/internal/session"
	util "github.com/CodeAndHammer/nombroludo/internal/util"
)

const pageTitle = "Nombroludo - Guess the Number"

func HomeHandler(app *models.App, c *gin.Context) {
	sessionID := session.GetOrCreateSession(app, c)
	entry := session.GetEntry(app, sessionID)

	entry.Mu.Lock()
	defer entry.Mu.Unlock()
	c.HTML(http.StatusOK, "index.html", pageData(c, entry, ""))
}

func GameStateHandler(app *models.App, c *gin.Context) {
	sessionID := session.GetOrCreateSession(app, c)
	entry := session.GetEntry(app, sessionID)

	entry.Mu.Lock()
	defer entry.Mu.Unlock()
	c.HTML(http.StatusOK, "game-content", pageData(c, entry, ""))
}

// SettingsHandler commits the min/max/attempt form to the session.
func SettingsHandler(app *models.App, c *gin.Context) {
	withEntry(app, c, func(ctx context.Context, entry *models.SessionEntry, p *board.Presenter) string {
		entry.Board.SetValue(constants.FieldMin, c.PostForm(constants.FieldMin))
		entry.Board.SetValue(constants.FieldMax, c.PostForm(constants.FieldMax))
		entry.Board.SetValue(constants.FieldAttempt, c.PostForm(constants.FieldAttempt))
		if !p.CommitSettings(ctx, entry.Game) {
			return constants.ErrorCodeInvalidForm
		}
		return ""
	})
}

func GuessHandler(app *models.App, c *gin.Context) {
	withEntry(app, c, func(ctx context.Context, entry *models.SessionEntry, p *board.Presenter) string {
		entry.Board.SetValue(constants.FieldGuess, c.PostForm(constants.FieldGuess))
		outcome := p.SubmitGuess(ctx, entry.Game)
		switch outcome.Kind {
		case game.OutcomeNotANumber:
			return constants.ErrorCodeNotANumber
		case game.OutcomeRoundOver:
			util.LogWarnCtx(ctx, "Session attempted guess on completed round")
			return constants.ErrorCodeGameOver
		}
		return ""
	})
}

// ExitHandler resets the round. With ?reset=1 the session entry is dropped
// first, so the page model starts over as well.
func ExitHandler(app *models.App, c *gin.Context) {
	if c.Query("reset") == "1" {
		if sessionID, err := c.Cookie(constants.SessionCookieName); err == nil {
			session.DeleteSession(app, sessionID)
		}
	}
	withEntry(app, c, func(_ context.Context, entry *models.SessionEntry, p *board.Presenter) string {
		p.Exit(entry.Game)
		return ""
	})
}

// withEntry runs one gesture against the caller's session and renders the
// result: the board partial for HTMX, a redirect home otherwise.
func withEntry(app *models.App, c *gin.Context, gesture func(context.Context, *models.SessionEntry, *board.Presenter) string) {
	ctx := c.Request.Context()
	sessionID := session.GetOrCreateSession(app, c)
	entry := session.GetEntry(app, sessionID)

	entry.Mu.Lock()
	defer entry.Mu.Unlock()

	errCode := gesture(ctx, entry, board.NewPresenter(entry.Board, entry.Board))
	entry.LastAccessTime = time.Now()

	if c.GetHeader("HX-Request") != "true" {
		c.Redirect(http.StatusSeeOther, constants.RouteHome)
		return
	}
	if errCode != "" {
		payload := map[string]string{"server_error_code": errCode}
		if b, jerr := json.Marshal(payload); jerr == nil {
			c.Header("HX-Trigger", string(b))
		} else {
			util.LogWarnCtx(ctx, "Failed to marshal HX-Trigger payload: %v", jerr)
		}
	}
	c.HTML(http.StatusOK, "game-content", pageData(c, entry, errCode))
}

func pageData(c *gin.Context, entry *models.SessionEntry, errCode string) gin.H {
	csrfToken := c.GetString(constants.CSRFCookieName)
	return gin.H{
		"title":      pageTitle,
		"board":      entry.Board,
		"phase":      entry.Game.Phase(),
		"error_code": errCode,
		"csrf_token": csrfToken,
		"htmx_src":   constants.HTMXScriptURL,
	}
}

func HealthzHandler(app *models.App, c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(app.StartTime)

	app.LimiterMutex.RLock()
	limiterCount := len(app.LimiterMap)
	app.LimiterMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"env":             map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"active_sessions": session.SessionCount(app),
		"active_limiters": limiterCount,
		"memory_alloc_mb": m.Alloc / 1024 / 1024,
		"memory_sys_mb":   m.Sys / 1024 / 1024,
		"memory_gc_count": m.NumGC,
		"uptime":          util.FormatUptime(uptime),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}
