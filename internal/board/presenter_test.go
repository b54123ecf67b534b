package board_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	board "github.com/CodeAndHammer/nombroludo/internal/board"
	constants "github.com/CodeAndHammer/nombroludo/internal/constants"
	game "github.com/CodeAndHammer/nombroludo/internal/game"
)

var ctx = context.Background()

type offsetSource int

func (o offsetSource) Intn(n int) int { return int(o) % n }

// MockOutput records every write made through the OutputPort.
type MockOutput struct {
	mock.Mock
}

func (m *MockOutput) WriteText(name, value string) {
	m.Called(name, value)
}

func (m *MockOutput) SetEnabled(name string, enabled bool) {
	m.Called(name, enabled)
}

func (m *MockOutput) SetClass(name, className string, present bool) {
	m.Called(name, className, present)
}

func newMockOutput() *MockOutput {
	m := &MockOutput{}
	m.On("WriteText", mock.Anything, mock.Anything).Maybe()
	m.On("SetEnabled", mock.Anything, mock.Anything).Maybe()
	m.On("SetClass", mock.Anything, mock.Anything, mock.Anything).Maybe()
	return m
}

type fieldMap map[string]string

func (f fieldMap) ReadField(name string) string { return f[name] }

// play wires a presenter to a fresh board and a session whose secret is 5
// once configured with min 1.
func play(t *testing.T) (*board.Board, *board.Presenter, *game.Session) {
	t.Helper()
	b := board.New()
	s := game.NewSession(offsetSource(4))
	return b, board.NewPresenter(b, b), s
}

func TestCommitSettingsRejectsThroughOutputPort(t *testing.T) {
	out := newMockOutput()
	p := board.NewPresenter(fieldMap{"min": "-2", "max": "500", "attempt": "3"}, out)
	s := game.NewSession(offsetSource(4))

	assert.False(t, p.CommitSettings(ctx, s))

	out.AssertCalled(t, "SetClass", constants.FieldMin, constants.ClassBounce, true)
	out.AssertCalled(t, "SetClass", constants.FieldMax, constants.ClassBounce, true)
	out.AssertNotCalled(t, "SetClass", constants.FieldAttempt, constants.ClassBounce, true)
	out.AssertCalled(t, "WriteText", constants.TextError, constants.ErrorRange)
	out.AssertCalled(t, "SetEnabled", constants.ButtonGenerate, false)
	assert.Equal(t, game.DefaultSettings(), s.Settings())
}

func TestSubmitGuessNotANumberThroughOutputPort(t *testing.T) {
	out := newMockOutput()
	p := board.NewPresenter(fieldMap{"guess": "0"}, out)
	s := game.NewSession(offsetSource(4))

	outcome := p.SubmitGuess(ctx, s)

	assert.Equal(t, game.OutcomeNotANumber, outcome.Kind)
	out.AssertCalled(t, "WriteText", constants.TextMessage, constants.MessageNotANumber)
	out.AssertCalled(t, "SetEnabled", constants.ButtonSave, false)
	out.AssertNotCalled(t, "WriteText", constants.TextAttemptCount, mock.Anything)
}

func TestCommitSettingsSuccess(t *testing.T) {
	b, p, s := play(t)
	b.SetValue(constants.FieldMin, "1")
	b.SetValue(constants.FieldMax, "10")
	b.SetValue(constants.FieldAttempt, "3")
	b.SetValue(constants.FieldGuess, "42")

	require.True(t, p.CommitSettings(ctx, s))

	assert.Equal(t, "1", b.Text(constants.TextMinTitle))
	assert.Equal(t, "10", b.Text(constants.TextMaxTitle))
	assert.Equal(t, "3", b.Text(constants.TextAttemptTitle))
	assert.Equal(t, "3", b.Text(constants.TextAttemptCount))
	assert.Equal(t, "", b.Value(constants.FieldGuess))
	assert.True(t, b.Disabled(constants.ButtonSave))
	assert.False(t, b.Disabled(constants.ButtonGenerate))
	assert.Equal(t, constants.MessageStart, b.Text(constants.TextMessage))
	assert.Equal(t, 5, s.Secret())
}

func TestCommitSettingsErrorClearedOnNextCommit(t *testing.T) {
	b, p, s := play(t)
	b.SetValue(constants.FieldAttempt, "16")
	require.False(t, p.CommitSettings(ctx, s))
	assert.True(t, b.HasClass(constants.FieldAttempt, constants.ClassBounce))
	assert.Equal(t, constants.ErrorAttempts, b.Text(constants.TextError))
	assert.True(t, b.Disabled(constants.ButtonGenerate))

	b.SetValue(constants.FieldAttempt, "4")
	require.True(t, p.CommitSettings(ctx, s))
	assert.False(t, b.HasClass(constants.FieldAttempt, constants.ClassBounce))
	assert.Equal(t, "", b.Text(constants.TextError))
	assert.False(t, b.Disabled(constants.ButtonGenerate))
}

func TestCommitSettingsMinNotBelowMax(t *testing.T) {
	b, p, s := play(t)
	b.SetValue(constants.FieldMin, "50")
	b.SetValue(constants.FieldMax, "20")
	require.False(t, p.CommitSettings(ctx, s))
	assert.True(t, b.HasClass(constants.FieldMax, constants.ClassBounce))
	assert.Equal(t, constants.ErrorMinNotBelowMax, b.Text(constants.TextError))
}

func TestSubmitGuessRoundToLoss(t *testing.T) {
	b, p, s := play(t)
	b.SetValue(constants.FieldMax, "10")
	b.SetValue(constants.FieldAttempt, "3")
	require.True(t, p.CommitSettings(ctx, s))

	b.SetValue(constants.FieldGuess, "9")
	assert.Equal(t, game.OutcomeTooHigh, p.SubmitGuess(ctx, s).Kind)
	assert.Equal(t, constants.MessageTooHigh, b.Text(constants.TextMessage))
	assert.Equal(t, "2", b.Text(constants.TextAttemptCount))
	assert.True(t, b.Disabled(constants.ButtonSave))

	b.SetValue(constants.FieldGuess, "1")
	assert.Equal(t, game.OutcomeTooLow, p.SubmitGuess(ctx, s).Kind)
	assert.Equal(t, constants.MessageTooLow, b.Text(constants.TextMessage))
	assert.Equal(t, "1", b.Text(constants.TextAttemptCount))

	b.SetValue(constants.FieldGuess, "3")
	assert.Equal(t, game.OutcomeLost, p.SubmitGuess(ctx, s).Kind)
	assert.Equal(t, constants.MessageLost, b.Text(constants.TextMessage))
	assert.Equal(t, "5", b.Text(constants.TextSecret))
	assert.Equal(t, "0", b.Text(constants.TextAttemptCount))
	assert.True(t, b.HasClass(constants.TextMessage, constants.ClassLost))
	assert.True(t, b.HasClass(constants.TextSecret, constants.ClassContainerLost))
	assert.False(t, b.HasClass(constants.TextSecret, constants.ClassBase))
	assert.True(t, b.Disabled(constants.ButtonGenerate))
	assert.False(t, b.Disabled(constants.ButtonSave))

	assert.Equal(t, game.OutcomeRoundOver, p.SubmitGuess(ctx, s).Kind)
	assert.Equal(t, constants.MessageRoundOver, b.Text(constants.TextMessage))
}

func TestSubmitGuessWin(t *testing.T) {
	b, p, s := play(t)
	b.SetValue(constants.FieldMax, "10")
	require.True(t, p.CommitSettings(ctx, s))

	b.SetValue(constants.FieldGuess, "5")
	outcome := p.SubmitGuess(ctx, s)
	assert.Equal(t, game.OutcomeCorrect, outcome.Kind)
	assert.Equal(t, constants.MessageWon, b.Text(constants.TextMessage))
	assert.Equal(t, "5", b.Text(constants.TextSecret))
	assert.True(t, b.HasClass(constants.ContainerBody, constants.ClassWin))
	assert.True(t, b.HasClass(constants.TextSecret, constants.ClassShake))
	assert.True(t, b.Disabled(constants.ButtonGenerate))

	require.True(t, p.CommitSettings(ctx, s))
	assert.False(t, b.HasClass(constants.ContainerBody, constants.ClassWin))
	assert.Equal(t, constants.SecretHidden, b.Text(constants.TextSecret))
	assert.Equal(t, game.PhaseInProgress, s.Phase())
}

func TestExitRestoresDefaults(t *testing.T) {
	b, p, s := play(t)
	b.SetValue(constants.FieldMin, "10")
	b.SetValue(constants.FieldMax, "20")
	b.SetValue(constants.FieldAttempt, "1")
	require.True(t, p.CommitSettings(ctx, s))
	b.SetValue(constants.FieldGuess, "11")
	p.SubmitGuess(ctx, s)

	p.Exit(s)

	assert.Equal(t, game.DefaultSettings(), s.Settings())
	assert.Equal(t, game.PhaseInProgress, s.Phase())
	assert.Equal(t, "1", b.Value(constants.FieldMin))
	assert.Equal(t, "100", b.Value(constants.FieldMax))
	assert.Equal(t, "5", b.Value(constants.FieldAttempt))
	assert.Equal(t, "", b.Value(constants.FieldGuess))
	assert.Equal(t, "5", b.Text(constants.TextAttemptCount))
	assert.Equal(t, constants.MessageStart, b.Text(constants.TextMessage))
	assert.Equal(t, constants.SecretHidden, b.Text(constants.TextSecret))
	assert.False(t, b.Disabled(constants.ButtonSave))
	assert.False(t, b.Disabled(constants.ButtonGenerate))
	assert.False(t, b.HasClass(constants.TextMessage, constants.ClassLost))
}
