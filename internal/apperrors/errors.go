package apperrors

import (
	"github.com/palemoky/hilo-trainer/internal/protocol"
)

// TrainerError 训练会话错误（本地与远程会话共享）
type TrainerError struct {
	Code    int
	Message string
}

func (e *TrainerError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrNoActiveMode  = &TrainerError{Code: protocol.ErrCodeNoActiveMode, Message: protocol.ErrorMessages[protocol.ErrCodeNoActiveMode]}
	ErrNotTutorial   = &TrainerError{Code: protocol.ErrCodeNotTutorial, Message: protocol.ErrorMessages[protocol.ErrCodeNotTutorial]}
	ErrInvalidGuess  = &TrainerError{Code: protocol.ErrCodeInvalidGuess, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidGuess]}
	ErrDeckExhausted = &TrainerError{Code: protocol.ErrCodeDeckExhausted, Message: protocol.ErrorMessages[protocol.ErrCodeDeckExhausted]}
	ErrSessionClosed = &TrainerError{Code: protocol.ErrCodeSessionClosed, Message: protocol.ErrorMessages[protocol.ErrCodeSessionClosed]}
	ErrInvalidMode   = &TrainerError{Code: protocol.ErrCodeInvalidMode, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidMode]}
)

// byCode 错误码到预定义错误的映射，远程客户端用它还原错误
var byCode = map[int]*TrainerError{
	protocol.ErrCodeNoActiveMode:  ErrNoActiveMode,
	protocol.ErrCodeNotTutorial:   ErrNotTutorial,
	protocol.ErrCodeInvalidGuess:  ErrInvalidGuess,
	protocol.ErrCodeDeckExhausted: ErrDeckExhausted,
	protocol.ErrCodeSessionClosed: ErrSessionClosed,
	protocol.ErrCodeInvalidMode:   ErrInvalidMode,
}

// FromCode returns the predefined error for code, or a new TrainerError
// carrying message when the code is not a trainer error.
func FromCode(code int, message string) *TrainerError {
	if err, ok := byCode[code]; ok {
		return err
	}
	return &TrainerError{Code: code, Message: message}
}
