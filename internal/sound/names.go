package sound

// 音效名称，对应音效目录中的文件名（不含扩展名）
const (
	Deal      = "deal"
	Correct   = "correct"
	Wrong     = "wrong"
	Exhausted = "exhausted"
)

// Player is what the UI needs from a sound manager.
type Player interface {
	Play(name string)
}
