// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/vault-guard/internal/service"
	"github.com/MKhiriev/vault-guard/internal/validators"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModel is the Bubble Tea model for the login screen. It renders two text inputs
// (email and password) and dispatches an async login command on form submission.
// On success a [LoginResult] message is produced and handled by [RootModel], which
// opens the password list.
type LoginModel struct {
	ctx       context.Context
	auth      service.ClientAuthService
	validator validators.Validator

	formFocus
	submitting bool
	notice     string
	errMsg     string
}

// NewLoginModel creates a [LoginModel] with pre-configured email and password inputs.
// The email field receives focus immediately; the password field uses masked echo.
func NewLoginModel(ctx context.Context, auth service.ClientAuthService, validator validators.Validator) *LoginModel {
	emailInput := newInput("email", 254, false)
	emailInput.Focus()

	return &LoginModel{
		ctx:       ctx,
		auth:      auth,
		validator: validator,
		formFocus: formFocus{inputs: []textinput.Model{emailInput, newInput("password", 256, true)}},
	}
}

// Init implements [tea.Model]. Starts the cursor-blink animation for the active input.
func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - [RegisterSuccessNotice] shows the registration confirmation and prefills the email.
//   - [LoginResult] clears submitting state; on error, populates errMsg.
//   - esc navigates back to the menu.
//   - tab / shift+tab move focus between inputs.
//   - enter validates inputs and dispatches the async login command.
//
// All other key events are forwarded to the focused input widget.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RegisterSuccessNotice:
		m.reset()
		m.errMsg = ""
		m.notice = msg.Message
		if m.notice == "" {
			m.notice = "Пользователь " + msg.Username + " успешно зарегистрирован"
		}
		return m, textinput.Blink
	case LoginResult:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = humanizeError(msg.Err)
			return m, nil
		}
		m.reset()
		m.errMsg, m.notice = "", ""
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.submitting = false
			m.errMsg, m.notice = "", ""
			return m, navigate(pageMenu, nil)
		case key.Matches(keyMsg, keys.tab):
			m.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}

			form := validators.LoginForm{
				Email:    strings.TrimSpace(m.inputs[0].Value()),
				Password: m.inputs[1].Value(),
			}
			if err := m.validator.Validate(m.ctx, form); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(form)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *LoginModel) View() string {
	var b strings.Builder
	if m.notice != "" {
		b.WriteString(statusStyle.Render("OK: " + m.notice))
		b.WriteString("\n\n")
	}
	b.WriteString(renderForm([]string{"Email", "Пароль"}, m.inputs))
	b.WriteString(renderSubmit("Войти", m.submitting, m.errMsg))

	return renderPage("ВХОД", strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ enter: подтвердить")
}

func (m *LoginModel) cmdLogin(form validators.LoginForm) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		err := auth.Login(ctx, form.Request())
		return LoginResult{Err: err, Email: form.Email}
	}
}
