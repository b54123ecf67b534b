package constants

const (
	DefaultMin         = 1
	DefaultMax         = 100
	DefaultMaxAttempts = 5
)

const (
	RangeLow     = 1
	RangeHigh    = 200
	AttemptsLow  = 1
	AttemptsHigh = 15
)

const (
	SessionCookieName = "session_id"
	CSRFCookieName    = "csrf_token"
)

const (
	RouteHome      = "/"
	RouteSettings  = "/settings"
	RouteGuess     = "/guess"
	RouteExit      = "/exit"
	RouteGameState = "/game-state"
	RouteHealthz   = "/healthz"
)

const (
	ErrorCodeGameOver    = "game_over"
	ErrorCodeInvalidForm = "invalid_settings"
	ErrorCodeNotANumber  = "not_a_number"
)

// Element ids shared by the board model and the templates.
const (
	FieldMin     = "min"
	FieldMax     = "max"
	FieldAttempt = "attempt"
	FieldGuess   = "guess"

	TextMessage      = "message"
	TextError        = "error"
	TextSecret       = "secret"
	TextAttemptCount = "attempt_count"
	TextMinTitle     = "min_number_text"
	TextMaxTitle     = "max_number_text"
	TextAttemptTitle = "attempt_text"

	ButtonSave     = "btn_save"
	ButtonGenerate = "btn_generate"
	ButtonExit     = "btn_exit"

	ContainerBody = "body"
)

const (
	ClassBounce        = "bounce"
	ClassWin           = "win"
	ClassLost          = "lost"
	ClassShake         = "shake"
	ClassBase          = "base"
	ClassContainerLost = "container-lost"
)

const (
	MessageStart        = "Start guessing..."
	MessageNotANumber   = "Not a number!"
	MessageWon          = "You won!"
	MessageLost         = "You lost!"
	MessageTooHigh      = "Too high!"
	MessageTooLow       = "Too low!"
	MessageRoundOver    = "Round over! Save settings or exit to play again."
	SecretHidden        = "?"
	ErrorNotNonNegative = "Numbers must be non-negative integers!"
	ErrorRange          = "Allowed range is from 1 to 200!"
	ErrorAttempts       = "Allowed attempts are from 1 to 15!"
	ErrorMinNotBelowMax = "Min must be less than max!"
)

// HTMXScriptURL is the pinned htmx build; the CSP allows no other CDN script.
const HTMXScriptURL = "https://cdn.jsdelivr.net/npm/htmx.org@2.0.4/dist/htmx.min.js"

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
)
