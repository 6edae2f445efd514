// Package model defines the core types and interfaces for the UI.
package model

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/hilo-trainer/internal/client"
	"github.com/palemoky/hilo-trainer/internal/trainer"
)

// Phase represents the current screen.
type Phase int

const (
	PhaseMenu Phase = iota
	PhaseTutorial
	PhaseAutomated
	PhaseGameOver // 牌已发完
	PhaseGoodbye
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseTutorial:
		return "tutorial"
	case PhaseAutomated:
		return "automated"
	case PhaseGameOver:
		return "game_over"
	case PhaseGoodbye:
		return "goodbye"
	default:
		return "unknown"
	}
}

// PhaseFor maps a session state to the screen that shows it.
func PhaseFor(st trainer.State) Phase {
	switch {
	case st.Quit:
		return PhaseGoodbye
	case st.Exhausted:
		return PhaseGameOver
	case st.Mode == trainer.ModeTutorial:
		return PhaseTutorial
	case st.Mode == trainer.ModeAutomated:
		return PhaseAutomated
	default:
		return PhaseMenu
	}
}

// Op is one backend operation run off the UI goroutine.
type Op struct {
	Name string
	Run  func(ctx context.Context, b client.Backend) (client.Result, error)
}

func OpStart(mode trainer.Mode) Op {
	return Op{Name: "start", Run: func(ctx context.Context, b client.Backend) (client.Result, error) {
		return b.Start(ctx, mode)
	}}
}

func OpAdvance() Op {
	return Op{Name: "advance", Run: func(ctx context.Context, b client.Backend) (client.Result, error) {
		return b.Advance(ctx)
	}}
}

func OpGuess(input string) Op {
	return Op{Name: "guess", Run: func(ctx context.Context, b client.Backend) (client.Result, error) {
		return b.Guess(ctx, input)
	}}
}

func OpRestart() Op {
	return Op{Name: "restart", Run: func(ctx context.Context, b client.Backend) (client.Result, error) {
		return b.Restart(ctx)
	}}
}

func OpQuit() Op {
	return Op{Name: "quit", Run: func(ctx context.Context, b client.Backend) (client.Result, error) {
		return b.Quit(ctx)
	}}
}

// --- Tea Messages ---

// ResultMsg carries the outcome of an Op.
type ResultMsg struct {
	Op     string
	Result client.Result
	Err    error
}

// AnimationTickMsg advances the card slide-in.
type AnimationTickMsg struct {
	Seq int // 动画序号，旧动画的帧会被丢弃
}

// ClearInputErrorMsg clears input error message.
type ClearInputErrorMsg struct {
	Seq int // 只清除同一序号的错误
}

// ClearNoticeMsg clears the status line.
type ClearNoticeMsg struct{}

// --- Model Interface ---

// Model is the interface TrainerModel exposes to the handler, view and input
// packages.
type Model interface {
	// Phase management
	Phase() Phase
	SetPhase(Phase)

	// Session
	Backend() client.Backend
	State() trainer.State
	Tracker() client.TrackerSnapshot
	Busy() bool
	Run(op Op) tea.Cmd
	Online() (int64, bool)

	// UI components
	Input() *textinput.Model
	Progress() *progress.Model
	Help() *help.Model

	// Overlays and messages
	ShowingHelp() bool
	SetShowingHelp(bool)
	InputError() string
	InputErrorSeq() int
	SetInputError(string)
	Notice() string
	SetNotice(string)

	// Animation
	AnimationFrame() int
	StartAnimation() tea.Cmd

	// Sound
	PlaySound(name string)

	// Dimensions
	Width() int
	Height() int
}

// ResultHandler applies an operation result to the model.
type ResultHandler interface {
	HandleResult(m Model, msg ResultMsg) tea.Cmd
}

// InputHandler processes keyboard input.
type InputHandler interface {
	HandleKeyPress(m Model, msg tea.KeyMsg) (handled bool, cmd tea.Cmd)
}
