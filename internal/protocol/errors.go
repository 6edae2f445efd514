package protocol

// 错误码
const (
	ErrCodeUnknown       = 1000
	ErrCodeInvalidMsg    = 1001
	ErrCodeServerFull    = 1002
	ErrCodeRateLimit     = 1003
	ErrCodeNoActiveMode  = 3001
	ErrCodeNotTutorial   = 3002
	ErrCodeInvalidGuess  = 3003
	ErrCodeDeckExhausted = 3004
	ErrCodeSessionClosed = 3005
	ErrCodeInvalidMode   = 3006
	ErrCodeTokenExpired  = 4001
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:       "unknown error",
	ErrCodeInvalidMsg:    "invalid message",
	ErrCodeServerFull:    "server full",
	ErrCodeRateLimit:     "too many messages, slow down",
	ErrCodeNoActiveMode:  "no training mode is active",
	ErrCodeNotTutorial:   "guesses are only scored in tutorial mode",
	ErrCodeInvalidGuess:  "invalid input, please enter a number",
	ErrCodeDeckExhausted: "the deck is empty",
	ErrCodeSessionClosed: "the session has ended",
	ErrCodeInvalidMode:   "unknown training mode",
	ErrCodeTokenExpired:  "reconnect token expired",
}
