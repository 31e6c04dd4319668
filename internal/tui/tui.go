// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal interface of the vault-guard client. It is a
// single Bubble Tea program whose pages are routed by [RootModel]; session,
// reveal and list changes reach the program as messages through service
// subscriptions.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/vault-guard/internal/logger"
	"github.com/MKhiriev/vault-guard/internal/service"
	"github.com/MKhiriev/vault-guard/internal/validators"
	"github.com/MKhiriev/vault-guard/models"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	services  *service.ClientServices
	validator validators.Validator
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func New(services *service.ClientServices, validator validators.Validator, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{services: services, validator: validator, buildInfo: buildInfo, logger: logger}
}

// Run blocks until the user quits. It opens the password list when the
// session is already authenticated and the menu otherwise. Returns
// [ErrUserQuit] when the program was interrupted with ctrl+c.
func (t *TUI) Run(ctx context.Context) error {
	root := t.newRoot(ctx)
	program := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := t.forward(program.Send)
	defer unsubscribe()

	finalModel, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}
	return nil
}

func (t *TUI) newRoot(ctx context.Context) RootModel {
	pages := map[string]tea.Model{
		pageMenu:     NewMenuModel(),
		pageLogin:    NewLoginModel(ctx, t.services.AuthService, t.validator),
		pageRegister: NewRegisterModel(ctx, t.services.AuthService, t.validator),
		pageList:     NewListModel(ctx, t.services),
		pageAdd:      NewAddPasswordModel(ctx, t.services.VaultService, t.validator),
		pageEdit:     NewEditPasswordModel(ctx, t.services.VaultService, t.validator),
	}

	start := pageMenu
	if t.services.Session.IsAuthenticated() {
		start = pageList
	}
	return NewRootModel(pages, start, t.buildInfo)
}

// forward mirrors service notifications into the program and returns a
// func that stops it. Notifications can fire inside Update (e.g. logout
// from the list page), where a blocking Send would deadlock the event loop,
// so every message is sent from its own goroutine.
func (t *TUI) forward(programSend func(tea.Msg)) func() {
	send := func(msg tea.Msg) { go programSend(msg) }

	unsubscribers := []func(){
		t.services.Session.Subscribe(func(authenticated bool) {
			t.logger.Debug().Str("func", "TUI.forward").Bool("authenticated", authenticated).Msg("session changed")
			send(sessionChangedMsg{authenticated: authenticated})
		}),
		t.services.RevealService.Subscribe(func(id string, visible bool) {
			send(revealChangedMsg{id: id, visible: visible})
		}),
		t.services.ListCache.Subscribe(func(_ models.PasswordList, fresh bool) {
			send(listChangedMsg{fresh: fresh})
		}),
	}

	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}
