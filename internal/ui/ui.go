// Package ui provides the main entry point for the UI.
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/hilo-trainer/internal/client"
	"github.com/palemoky/hilo-trainer/internal/ui/handler"
	"github.com/palemoky/hilo-trainer/internal/ui/input"
	"github.com/palemoky/hilo-trainer/internal/ui/model"
	"github.com/palemoky/hilo-trainer/internal/ui/view"
)

// NewTrainerModel creates a fully wired TrainerModel.
func NewTrainerModel(backend client.Backend, opts ...model.Option) *model.TrainerModel {
	m := model.NewTrainerModel(backend, opts...)
	m.SetViewRenderer(view.CreateViewRenderer())
	m.SetKeyHandler(input.HandleKeyPress)
	m.SetResultHandler(handler.HandleResult)
	return m
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, backend client.Backend, opts ...model.Option) error {
	opts = append(opts, model.WithContext(ctx))
	p := tea.NewProgram(NewTrainerModel(backend, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
