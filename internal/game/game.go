package game

import (
	"context"

	constants "github.com/CodeAndHammer/nombroludo/internal/constants"
	util "github.com/CodeAndHammer/nombroludo/internal/util"
)

// Session is one player's round: the bounds, the remaining attempts and the
// secret. It is not safe for concurrent use; callers serialize access.
type Session struct {
	settings          Settings
	attemptsRemaining int
	secret            int
	phase             Phase
	src               Source
}

func DefaultSettings() Settings {
	return Settings{
		Min:         constants.DefaultMin,
		Max:         constants.DefaultMax,
		MaxAttempts: constants.DefaultMaxAttempts,
	}
}

// NewSession starts a live round with the default settings. A nil src draws
// from crypto/rand.
func NewSession(src Source) *Session {
	if src == nil {
		src = CryptoSource{}
	}
	s := &Session{src: src}
	s.Reset()
	return s
}

// Configure validates the raw settings and, when all three pass, starts a new
// round with them. On failure the session is left untouched and the returned
// error is a ValidationErrors.
func (s *Session) Configure(ctx context.Context, rawMin, rawMax, rawAttempts string) error {
	settings, errs := ValidateSettings(rawMin, rawMax, rawAttempts)
	if len(errs) > 0 {
		util.LogInfoCtx(ctx, "Rejected settings min=%q max=%q attempts=%q: %v", rawMin, rawMax, rawAttempts, errs)
		return errs
	}
	s.start(settings)
	util.LogInfoCtx(ctx, "New round configured: range [%d,%d], %d attempts", settings.Min, settings.Max, settings.MaxAttempts)
	return nil
}

// Guess scores one raw guess against the secret.
func (s *Session) Guess(ctx context.Context, raw string) Outcome {
	if s.Over() {
		return Outcome{Kind: OutcomeRoundOver, AttemptsRemaining: s.attemptsRemaining}
	}
	n, ok := ParseGuess(raw)
	if !ok {
		return Outcome{Kind: OutcomeNotANumber, AttemptsRemaining: s.attemptsRemaining}
	}

	if n == s.secret {
		s.phase = PhaseWon
		util.LogInfoCtx(ctx, "Player won! Secret was: %d", s.secret)
		return Outcome{Kind: OutcomeCorrect, AttemptsRemaining: s.attemptsRemaining, Secret: s.secret}
	}

	if s.attemptsRemaining <= 1 {
		s.attemptsRemaining = 0
		s.phase = PhaseLost
		util.LogInfoCtx(ctx, "Player lost. Secret was: %d", s.secret)
		return Outcome{Kind: OutcomeLost, AttemptsRemaining: 0, Secret: s.secret}
	}

	s.attemptsRemaining--
	kind := OutcomeTooLow
	if n > s.secret {
		kind = OutcomeTooHigh
	}
	return Outcome{Kind: kind, AttemptsRemaining: s.attemptsRemaining}
}

// Reset discards the round and starts over with the default settings.
func (s *Session) Reset() {
	s.start(DefaultSettings())
}

func (s *Session) start(settings Settings) {
	s.settings = settings
	s.secret = drawSecret(s.src, settings.Min, settings.Max)
	s.attemptsRemaining = settings.MaxAttempts
	s.phase = PhaseInProgress
}

func (s *Session) Settings() Settings { return s.settings }
func (s *Session) Phase() Phase { return s.phase }
func (s *Session) AttemptsRemaining() int { return s.attemptsRemaining }
func (s *Session) Over() bool { return s.phase == PhaseWon || s.phase == PhaseLost }

// Secret exposes the drawn value. Renderers must only show it once Over.
func (s *Session) Secret() int { return s.secret }
