package board

import (
	"context"
	"strconv"

	"github.com/samber/lo"

	constants "github.com/CodeAndHammer/nombroludo/internal/constants"
	game "github.com/CodeAndHammer/nombroludo/internal/game"
)

// Presenter maps the three page gestures onto a game session and renders the
// results through an OutputPort.
type Presenter struct {
	in  InputPort
	out OutputPort
}

func NewPresenter(in InputPort, out OutputPort) *Presenter {
	return &Presenter{in: in, out: out}
}

// CommitSettings applies the settings inputs. It reports whether the session
// accepted them.
func (p *Presenter) CommitSettings(ctx context.Context, s *game.Session) bool {
	p.clearInputErrors()

	rawMin := p.in.ReadField(constants.FieldMin)
	rawMax := p.in.ReadField(constants.FieldMax)
	rawAttempts := p.in.ReadField(constants.FieldAttempt)

	err := s.Configure(ctx, rawMin, rawMax, rawAttempts)
	if errs, ok := err.(game.ValidationErrors); ok {
		lo.ForEach(errs, func(e game.ValidationError, _ int) {
			p.out.SetClass(e.Field, constants.ClassBounce, true)
			p.out.WriteText(constants.TextError, violationMessage(e))
		})
		p.out.SetEnabled(constants.ButtonGenerate, false)
		return false
	}

	settings := s.Settings()
	p.out.WriteText(constants.TextMinTitle, itoa(settings.Min))
	p.out.WriteText(constants.TextMaxTitle, itoa(settings.Max))
	p.out.WriteText(constants.TextAttemptTitle, itoa(settings.MaxAttempts))
	p.out.WriteText(constants.TextAttemptCount, itoa(settings.MaxAttempts))
	p.clearRoundStyling()
	p.out.SetEnabled(constants.ButtonGenerate, true)
	p.out.SetEnabled(constants.ButtonSave, false)
	p.clearGuessInput()
	p.out.WriteText(constants.TextMessage, constants.MessageStart)
	return true
}

// SubmitGuess scores the guess input against the session.
func (p *Presenter) SubmitGuess(ctx context.Context, s *game.Session) game.Outcome {
	p.clearInputErrors()
	p.out.SetEnabled(constants.ButtonSave, false)

	outcome := s.Guess(ctx, p.in.ReadField(constants.FieldGuess))
	switch outcome.Kind {
	case game.OutcomeNotANumber:
		p.out.WriteText(constants.TextMessage, constants.MessageNotANumber)
	case game.OutcomeRoundOver:
		p.out.WriteText(constants.TextMessage, constants.MessageRoundOver)
		p.endRound()
	case game.OutcomeTooHigh, game.OutcomeTooLow:
		p.out.WriteText(constants.TextMessage, lo.Ternary(outcome.Kind == game.OutcomeTooHigh, constants.MessageTooHigh, constants.MessageTooLow))
		p.out.WriteText(constants.TextAttemptCount, itoa(outcome.AttemptsRemaining))
	case game.OutcomeCorrect:
		p.out.WriteText(constants.TextSecret, itoa(outcome.Secret))
		p.out.WriteText(constants.TextMessage, constants.MessageWon)
		p.out.SetClass(constants.ContainerBody, constants.ClassWin, true)
		p.out.SetClass(constants.TextMessage, constants.ClassWin, true)
		p.out.SetClass(constants.TextSecret, constants.ClassShake, true)
		p.endRound()
	case game.OutcomeLost:
		p.out.WriteText(constants.TextMessage, constants.MessageLost)
		p.out.SetClass(constants.TextMessage, constants.ClassLost, true)
		p.out.WriteText(constants.TextSecret, itoa(outcome.Secret))
		p.out.SetClass(constants.TextSecret, constants.ClassBase, false)
		p.out.SetClass(constants.TextSecret, constants.ClassShake, true)
		p.out.SetClass(constants.TextSecret, constants.ClassContainerLost, true)
		p.out.WriteText(constants.TextAttemptCount, "0")
		p.endRound()
	}
	return outcome
}

// Exit resets the session and the page to the defaults.
func (p *Presenter) Exit(s *game.Session) {
	s.Reset()
	p.clearInputErrors()
	p.clearRoundStyling()
	p.out.SetEnabled(constants.ButtonSave, true)
	p.out.SetEnabled(constants.ButtonGenerate, true)

	settings := s.Settings()
	if setter, ok := p.in.(ValueSetter); ok {
		setter.SetValue(constants.FieldMin, itoa(settings.Min))
		setter.SetValue(constants.FieldMax, itoa(settings.Max))
		setter.SetValue(constants.FieldAttempt, itoa(settings.MaxAttempts))
		setter.SetValue(constants.FieldGuess, "")
	}
	p.out.WriteText(constants.TextMinTitle, itoa(settings.Min))
	p.out.WriteText(constants.TextMaxTitle, itoa(settings.Max))
	p.out.WriteText(constants.TextAttemptTitle, itoa(settings.MaxAttempts))
	p.out.WriteText(constants.TextMessage, constants.MessageStart)
	p.out.WriteText(constants.TextAttemptCount, itoa(settings.MaxAttempts))
}

func (p *Presenter) endRound() {
	p.out.SetEnabled(constants.ButtonGenerate, false)
	p.out.SetEnabled(constants.ButtonSave, true)
}

func (p *Presenter) clearRoundStyling() {
	p.out.SetClass(constants.ContainerBody, constants.ClassWin, false)
	p.out.SetClass(constants.TextMessage, constants.ClassLost, false)
	p.out.SetClass(constants.TextMessage, constants.ClassWin, false)
	p.out.SetClass(constants.TextSecret, constants.ClassShake, false)
	p.out.SetClass(constants.TextSecret, constants.ClassBase, true)
	p.out.SetClass(constants.TextSecret, constants.ClassContainerLost, false)
	p.out.WriteText(constants.TextSecret, constants.SecretHidden)
}

// clearInputErrors drops the highlight left by a rejected settings commit.
func (p *Presenter) clearInputErrors() {
	for _, id := range []string{constants.FieldMin, constants.FieldMax, constants.FieldAttempt} {
		p.out.SetClass(id, constants.ClassBounce, false)
	}
	p.out.WriteText(constants.TextError, "")
}

func (p *Presenter) clearGuessInput() {
	if setter, ok := p.in.(ValueSetter); ok {
		setter.SetValue(constants.FieldGuess, "")
	}
}

func violationMessage(e game.ValidationError) string {
	switch {
	case e.Kind == game.NotANonNegativeInteger:
		return constants.ErrorNotNonNegative
	case e.Kind == game.MinNotBelowMax:
		return constants.ErrorMinNotBelowMax
	case e.Field == constants.FieldAttempt:
		return constants.ErrorAttempts
	default:
		return constants.ErrorRange
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
