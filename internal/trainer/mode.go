package trainer

import (
	"strings"

	"github.com/palemoky/hilo-trainer/internal/apperrors"
)

// Mode is the training mode a session is in.
type Mode int

const (
	ModeIdle      Mode = iota // 未选择模式
	ModeTutorial              // 教学模式：用户猜测流水计数
	ModeAutomated             // 自动模式：显示流水计数
)

var modeNames = map[Mode]string{
	ModeIdle:      "idle",
	ModeTutorial:  "tutorial",
	ModeAutomated: "automated",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// Active reports whether cards are being dealt in this mode.
func (m Mode) Active() bool {
	return m == ModeTutorial || m == ModeAutomated
}

// ParseMode accepts the startable modes by name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tutorial":
		return ModeTutorial, nil
	case "automated":
		return ModeAutomated, nil
	}
	return ModeIdle, apperrors.ErrInvalidMode
}
