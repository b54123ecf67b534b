package util

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	constants "github.com/CodeAndHammer/nombroludo/internal/constants"
)

func FormatUptime(d time.Duration) string {
	seconds := int(d.Seconds()) % 60
	minutes := int(d.Minutes()) % 60
	hours := int(d.Hours())
	switch {
	case hours > 0:
		return fmt.Sprintf("%d hour%s, %d minute%s, %d second%s",
			hours, Plural(hours),
			minutes, Plural(minutes),
			seconds, Plural(seconds))
	case minutes > 0:
		return fmt.Sprintf("%d minute%s, %d second%s",
			minutes, Plural(minutes),
			seconds, Plural(seconds))
	default:
		return fmt.Sprintf("%d second%s", seconds, Plural(seconds))
	}
}

func Plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func GetEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		LogWarn("Invalid duration for %s: %v, using default %v", key, err, fallback)
		return fallback
	}
	return d
}

func GetEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		LogWarn("Invalid int for %s: %v, using default %d", key, err, fallback)
		return fallback
	}
	return i
}

// SetLogLevel applies a zerolog level name; unknown names leave the level untouched.
func SetLogLevel(name string) {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		LogWarn("Invalid log level %q: %v", name, err)
		return
	}
	zerolog.SetGlobalLevel(lvl)
}

func LogInfo(format string, v ...any) {
	log.Info().Msgf(format, v...)
}

func LogWarn(format string, v ...any) {
	log.Warn().Msgf(format, v...)
}

func LogFatal(format string, v ...any) {
	log.Fatal().Msgf(format, v...)
}

// RequestID returns the id requestIDMiddleware attached to ctx, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	reqID, _ := ctx.Value(constants.RequestIDKey).(string)
	return reqID
}

func LogInfoCtx(ctx context.Context, format string, v ...any) {
	log.Info().Msgf(withRequestID(ctx, format), v...)
}

func LogWarnCtx(ctx context.Context, format string, v ...any) {
	log.Warn().Msgf(withRequestID(ctx, format), v...)
}

func withRequestID(ctx context.Context, format string) string {
	if reqID := RequestID(ctx); reqID != "" {
		return "[request_id=" + strings.ReplaceAll(reqID, "%", "%%") + "] " + format
	}
	return format
}
