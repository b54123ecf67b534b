package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"

	ginGzip "github.com/gin-contrib/gzip"

	"github.com/gin-gonic/gin"

	constants "github.com/CodeAndHammer/nombroludo/internal/constants"
	handlers "github.com/CodeAndHammer/nombroludo/internal/handlers"
	models "github.com/CodeAndHammer/nombroludo/internal/models"
	session "github.com/CodeAndHammer/nombroludo/internal/session"
	util "github.com/CodeAndHammer/nombroludo/internal/util"
	web "github.com/CodeAndHammer/nombroludo/internal/web"
)

func main() {
	_ = godotenv.Load()
	util.SetLogLevel(util.GetEnvString("LOG_LEVEL", "info"))

	isProduction := os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production"
	util.LogInfo("Starting Nombroludo in %s mode", map[bool]string{true: "production", false: "development"}[isProduction])

	app := newApp(isProduction)
	router, err := newRouter(app)
	if err != nil {
		util.LogFatal("Failed to build router: %v", err)
	}

	scheduler, err := startCleanupRoutines(app)
	if err != nil {
		util.LogFatal("Failed to schedule cleanup routines: %v", err)
	}
	defer scheduler.Stop()

	startServer(router)
}

func newApp(isProduction bool) *models.App {
	return &models.App{
		GameSessions:   make(map[string]*models.SessionEntry),
		LimiterMap:     make(map[string]*models.RateLimiterEntry),
		IsProduction:   isProduction,
		StartTime:      time.Now(),
		CookieMaxAge:   util.GetEnvDuration("COOKIE_MAX_AGE", 2*time.Hour),
		StaticCacheAge: util.GetEnvDuration("STATIC_CACHE_AGE", 5*time.Minute),
		RateLimitRPS:   util.GetEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: util.GetEnvInt("RATE_LIMIT_BURST", 10),
		RateLimiterTTL: util.GetEnvDuration("RATE_LIMITER_TTL", 1*time.Hour),
		SessionTTL:     util.GetEnvDuration("SESSION_TTL", 3*time.Hour),
	}
}

func newRouter(app *models.App) (*gin.Engine, error) {
	router := gin.Default()

	router.Use(requestIDMiddleware())
	router.Use(securityHeadersMiddleware())

	router.Use(csrfMiddleware(app))
	router.Use(validateCSRFMiddleware())

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		util.LogWarn("Failed to set trusted proxies: %v", err)
	}

	router.Use(func(c *gin.Context) {
		applyCacheHeaders(app, c)
	})

	tpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tpl)

	static, err := web.Static()
	if err != nil {
		return nil, err
	}
	router.StaticFS("/static", http.FS(static))

	router.GET(constants.RouteHome, func(c *gin.Context) { handlers.HomeHandler(app, c) })
	router.GET(constants.RouteGameState, func(c *gin.Context) { handlers.GameStateHandler(app, c) })
	router.POST(constants.RouteSettings, rateLimitMiddleware(app), func(c *gin.Context) { handlers.SettingsHandler(app, c) })
	router.POST(constants.RouteGuess, rateLimitMiddleware(app), func(c *gin.Context) { handlers.GuessHandler(app, c) })
	router.POST(constants.RouteExit, rateLimitMiddleware(app), func(c *gin.Context) { handlers.ExitHandler(app, c) })
	router.GET(constants.RouteHealthz, func(c *gin.Context) { handlers.HealthzHandler(app, c) })

	return router, nil
}

func startServer(router *gin.Engine) {
	port := util.GetEnvString("PORT", "8080")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		util.LogInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			util.LogWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	util.LogInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		util.LogFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	util.LogInfo("Server shutdown complete")
}

// applyCacheHeaders lets browsers cache static assets in production and
// forbids caching of game pages everywhere.
func applyCacheHeaders(app *models.App, c *gin.Context) {
	if app.IsProduction && strings.HasPrefix(c.Request.URL.Path, "/static/") {
		cachecontrol.New(cachecontrol.Config{
			Public: true,
			MaxAge: cachecontrol.Duration(app.StaticCacheAge),
		})(c)
		c.Header("Vary", "Accept-Encoding")
		return
	}
	cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	})(c)
}

func startCleanupRoutines(app *models.App) (*cron.Cron, error) {
	c := cron.New()

	if _, err := c.AddFunc(util.GetEnvString("SESSION_CLEANUP_SCHEDULE", "@every 10m"), func() {
		session.CleanupStaleSessions(app)
	}); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc(util.GetEnvString("LIMITER_CLEANUP_SCHEDULE", "@every 30m"), func() {
		cleanupStaleRateLimiters(app)
	}); err != nil {
		return nil, err
	}

	c.Start()
	util.LogInfo("Started cleanup routines for sessions and rate limiters")
	return c, nil
}
