// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the terminal user interface of the brainstorm
// client on top of Bubble Tea. [TUI.LoginFlow] runs the menu, login and
// registration pages; [TUI.MainLoop] runs the conversation list, voice
// session, summary and notes screens until the user quits or logs out.
package tui

import (
	"context"

	"github.com/MKhiriev/go-brainstorm/internal/adapter"
	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/models"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	server        adapter.ServerAdapter
	newController ControllerFactory
	buildInfo     models.AppBuildInfo
	logger        *logger.Logger

	programOptions []tea.ProgramOption
}

func New(server adapter.ServerAdapter, newController ControllerFactory, buildInfo models.AppBuildInfo, log *logger.Logger) (*TUI, error) {
	if server == nil {
		return nil, ErrNoServer
	}
	if newController == nil {
		return nil, ErrNoControllerFactory
	}

	return &TUI{
		server:         server,
		newController:  newController,
		buildInfo:      buildInfo,
		logger:         log,
		programOptions: []tea.ProgramOption{tea.WithAltScreen()},
	}, nil
}

// LoginFlow returns nil once the adapter holds a token. It returns
// [ErrUserQuit] when the user leaves with ctrl+c.
func (t *TUI) LoginFlow(ctx context.Context) error {
	pages := map[string]tea.Model{
		pageMenu:     NewMenuModel(),
		pageLogin:    NewLoginModel(ctx, t.server),
		pageRegister: NewRegisterModel(ctx, t.server),
	}

	root := NewRootModel(pages, pageMenu, t.buildInfo)
	finalModel, err := tea.NewProgram(root, t.options(ctx)...).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser || !result.loggedIn {
		return ErrUserQuit
	}

	t.logger.Info().Str("email", result.resultEmail).Msg("logged in")
	return nil
}

// MainLoop reports logout=true when the user asked to log out rather than
// quit.
func (t *TUI) MainLoop(ctx context.Context) (logout bool, err error) {
	model := newMainLoopModel(ctx, t.server, t.newController)
	finalModel, err := tea.NewProgram(model, t.options(ctx)...).Run()
	if err != nil {
		return false, err
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}

func (t *TUI) options(ctx context.Context) []tea.ProgramOption {
	return append([]tea.ProgramOption{tea.WithContext(ctx)}, t.programOptions...)
}
