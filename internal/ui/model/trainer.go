package model

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/hilo-trainer/internal/client"
	"github.com/palemoky/hilo-trainer/internal/sound"
	"github.com/palemoky/hilo-trainer/internal/trainer"
	"github.com/palemoky/hilo-trainer/internal/ui/common"
)

const (
	// AnimationFrames 发牌滑入动画的帧数
	AnimationFrames = 6
	animationFPS    = 40 * time.Millisecond

	// 远程操作可能包含断线重连
	opTimeout = 30 * time.Second

	guessPlaceholder = "输入流水计数 (如 -2)"
)

// TrainerModel is the bubbletea model of the trainer.
type TrainerModel struct {
	backend client.Backend
	ctx     context.Context

	phase   Phase
	state   trainer.State
	tracker client.TrackerSnapshot
	busy    bool

	showingHelp bool
	inputError  string
	inputErrSeq int
	notice      string

	animate   bool
	animFrame int
	animSeq   int

	sound sound.Player

	// UI components
	input    *textinput.Model
	progress *progress.Model
	help     *help.Model
	width    int
	height   int

	// 注入以避免循环引用
	viewRenderer  func(Model, Phase) string
	keyHandler    func(Model, tea.KeyMsg) (bool, tea.Cmd)
	resultHandler func(Model, ResultMsg) tea.Cmd
}

// Option configures a TrainerModel.
type Option func(*TrainerModel)

// WithSound plays effects through p.
func WithSound(p sound.Player) Option {
	return func(m *TrainerModel) { m.sound = p }
}

// WithAnimation turns the card slide-in on or off.
func WithAnimation(enabled bool) Option {
	return func(m *TrainerModel) { m.animate = enabled }
}

// WithContext sets the parent context of backend operations.
func WithContext(ctx context.Context) Option {
	return func(m *TrainerModel) { m.ctx = ctx }
}

// NewTrainerModel creates a model on the menu screen.
func NewTrainerModel(backend client.Backend, opts ...Option) *TrainerModel {
	ti := textinput.New()
	ti.Placeholder = guessPlaceholder
	ti.CharLimit = 6
	ti.Width = 24

	pb := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	pb.Width = 40

	h := help.New()

	m := &TrainerModel{
		backend:  backend,
		ctx:      context.Background(),
		phase:    PhaseMenu,
		state:    backend.State(),
		tracker:  backend.Tracker(),
		animate:  true,
		input:    &ti,
		progress: &pb,
		help:     &h,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *TrainerModel) Init() tea.Cmd {
	return textinput.Blink
}

// --- Model interface implementation ---

func (m *TrainerModel) Phase() Phase { return m.phase }

// SetPhase switches screens. The guess input is focused only in tutorial mode.
func (m *TrainerModel) SetPhase(p Phase) {
	m.phase = p
	if p == PhaseTutorial {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *TrainerModel) Backend() client.Backend   { return m.backend }
func (m *TrainerModel) State() trainer.State      { return m.state }
func (m *TrainerModel) Busy() bool                { return m.busy }
func (m *TrainerModel) Input() *textinput.Model   { return m.input }
func (m *TrainerModel) Progress() *progress.Model { return m.progress }
func (m *TrainerModel) Help() *help.Model         { return m.help }
func (m *TrainerModel) ShowingHelp() bool         { return m.showingHelp }
func (m *TrainerModel) SetShowingHelp(show bool)  { m.showingHelp = show }
func (m *TrainerModel) InputError() string        { return m.inputError }
func (m *TrainerModel) InputErrorSeq() int        { return m.inputErrSeq }
func (m *TrainerModel) Notice() string            { return m.notice }
func (m *TrainerModel) SetNotice(notice string)   { m.notice = notice }
func (m *TrainerModel) AnimationFrame() int       { return m.animFrame }
func (m *TrainerModel) Width() int                { return m.width }
func (m *TrainerModel) Height() int               { return m.height }

// Tracker is the rank tracker copy from the latest result. The view reads
// only this copy, never the backend's.
func (m *TrainerModel) Tracker() client.TrackerSnapshot { return m.tracker }

// SetInputError shows err in place of the guess placeholder. Each new error
// gets a sequence number so an older clear timer cannot remove it.
func (m *TrainerModel) SetInputError(err string) {
	m.inputError = err
	if err != "" {
		m.inputErrSeq++
		m.input.Reset()
		m.input.Placeholder = err
	} else {
		m.input.Placeholder = guessPlaceholder
	}
}

// Online reports the server's trainer count when connected to one.
func (m *TrainerModel) Online() (int64, bool) {
	if o, ok := m.backend.(interface{ Online() int64 }); ok {
		return o.Online(), true
	}
	return 0, false
}

func (m *TrainerModel) PlaySound(name string) {
	if m.sound != nil {
		m.sound.Play(name)
	}
}

// Run executes op on a tea.Cmd goroutine. Keys are ignored until its
// ResultMsg arrives, so at most one operation is in flight.
func (m *TrainerModel) Run(op Op) tea.Cmd {
	if m.busy {
		return nil
	}
	m.busy = true

	parent, backend := m.ctx, m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, opTimeout)
		defer cancel()
		res, err := op.Run(ctx, backend)
		return ResultMsg{Op: op.Name, Result: res, Err: err}
	}
}

// StartAnimation slides the current card in from the right.
func (m *TrainerModel) StartAnimation() tea.Cmd {
	if !m.animate {
		m.animFrame = 0
		return nil
	}
	m.animSeq++
	m.animFrame = AnimationFrames
	return animationTick(m.animSeq)
}

func animationTick(seq int) tea.Cmd {
	return tea.Tick(animationFPS, func(time.Time) tea.Msg {
		return AnimationTickMsg{Seq: seq}
	})
}

// Update handles tea messages.
func (m *TrainerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(min(msg.Width-12, 40), 10)
		m.help.Width = msg.Width

	case ResultMsg:
		m.busy = false
		m.state = msg.Result.State
		m.tracker = msg.Result.Tracker
		if m.resultHandler != nil {
			if cmd := m.resultHandler(m, msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}

	case AnimationTickMsg:
		// 只推进当前这张牌的动画
		if msg.Seq == m.animSeq && m.animFrame > 0 {
			m.animFrame--
			if m.animFrame > 0 {
				cmds = append(cmds, animationTick(msg.Seq))
			}
		}

	case ClearInputErrorMsg:
		if msg.Seq == m.inputErrSeq {
			m.SetInputError("")
		}

	case ClearNoticeMsg:
		m.notice = ""

	case tea.KeyMsg:
		if m.keyHandler != nil {
			handled, keyCmd := m.keyHandler(m, msg)
			if keyCmd != nil {
				cmds = append(cmds, keyCmd)
			}
			if handled {
				return m, tea.Batch(cmds...)
			}
		}
	}

	newInput, cmd := m.input.Update(msg)
	*m.input = newInput
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the model.
func (m *TrainerModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	if m.viewRenderer != nil {
		content = m.viewRenderer(m, m.phase)
	} else {
		content = "View renderer not initialized"
	}
	return common.DocStyle.Render(content)
}

// SetViewRenderer sets the view rendering function.
func (m *TrainerModel) SetViewRenderer(fn func(Model, Phase) string) {
	m.viewRenderer = fn
}

// SetKeyHandler sets the keyboard event handler function.
func (m *TrainerModel) SetKeyHandler(fn func(Model, tea.KeyMsg) (bool, tea.Cmd)) {
	m.keyHandler = fn
}

// SetResultHandler sets the operation result handler function.
func (m *TrainerModel) SetResultHandler(fn func(Model, ResultMsg) tea.Cmd) {
	m.resultHandler = fn
}
