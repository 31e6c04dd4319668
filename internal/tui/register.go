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

// RegisterModel is the Bubble Tea model for the registration screen. It
// collects username, email, password and its confirmation. On success it
// opens the login page with a confirmation notice; registration does not
// log in.
type RegisterModel struct {
	ctx       context.Context
	auth      service.ClientAuthService
	validator validators.Validator

	formFocus
	submitting bool
	errMsg     string
}

// NewRegisterModel creates a [RegisterModel] with four empty inputs; the
// username field is focused.
func NewRegisterModel(ctx context.Context, auth service.ClientAuthService, validator validators.Validator) *RegisterModel {
	usernameInput := newInput("username", 64, false)
	usernameInput.Focus()

	return &RegisterModel{
		ctx:       ctx,
		auth:      auth,
		validator: validator,
		formFocus: formFocus{inputs: []textinput.Model{
			usernameInput,
			newInput("email", 254, false),
			newInput("password", 256, true),
			newInput("password", 256, true),
		}},
	}
}

// Init implements [tea.Model].
func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - [RegisterResult] clears submitting state; on success navigates to the
//     login page with a [RegisterSuccessNotice], on error populates errMsg.
//   - esc navigates back to the menu.
//   - tab / shift+tab move focus between inputs.
//   - enter validates inputs and dispatches the async register command.
func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(RegisterResult); ok {
		m.submitting = false
		if result.Err != nil {
			m.errMsg = humanizeError(result.Err)
			return m, nil
		}
		m.errMsg = ""
		m.reset()
		return m, navigate(pageLogin, RegisterSuccessNotice{Username: result.Username, Message: result.Message})
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.submitting = false
			m.errMsg = ""
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

			form := validators.RegisterForm{
				Username:        strings.TrimSpace(m.inputs[0].Value()),
				Email:           strings.TrimSpace(m.inputs[1].Value()),
				Password:        m.inputs[2].Value(),
				ConfirmPassword: m.inputs[3].Value(),
			}
			if err := m.validator.Validate(m.ctx, form); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRegister(form)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString(renderForm([]string{"Имя", "Email", "Пароль", "Повтор пароля"}, m.inputs))
	b.WriteString(renderSubmit("Зарегистрироваться", m.submitting, m.errMsg))

	return renderPage("РЕГИСТРАЦИЯ", strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ enter: подтвердить")
}

func (m *RegisterModel) cmdRegister(form validators.RegisterForm) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		message, err := auth.Register(ctx, form.Request())
		return RegisterResult{Err: err, Username: form.Username, Message: message}
	}
}
