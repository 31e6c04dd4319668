package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/vault-guard/internal/service"
	"github.com/MKhiriev/vault-guard/internal/validators"
	"github.com/MKhiriev/vault-guard/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PasswordFormModel is the add and edit screen of a password record. In
// edit mode the password input starts empty and is sent only when typed.
type PasswordFormModel struct {
	ctx       context.Context
	vault     service.ClientVaultService
	validator validators.Validator

	editing bool
	current models.PasswordRecord

	formFocus
	submitting bool
	errMsg     string
}

// NewAddPasswordModel creates the add screen.
func NewAddPasswordModel(ctx context.Context, vault service.ClientVaultService, validator validators.Validator) *PasswordFormModel {
	return newPasswordFormModel(ctx, vault, validator, false)
}

// NewEditPasswordModel creates the edit screen. It is filled by an
// [editRecord] message.
func NewEditPasswordModel(ctx context.Context, vault service.ClientVaultService, validator validators.Validator) *PasswordFormModel {
	return newPasswordFormModel(ctx, vault, validator, true)
}

func newPasswordFormModel(ctx context.Context, vault service.ClientVaultService, validator validators.Validator, editing bool) *PasswordFormModel {
	passwordPlaceholder := "password"
	if editing {
		passwordPlaceholder = "оставьте пустым, чтобы не менять"
	}

	m := &PasswordFormModel{
		ctx:       ctx,
		vault:     vault,
		validator: validator,
		editing:   editing,
		formFocus: formFocus{inputs: []textinput.Model{
			newInput("account name", 128, false),
			newInput("username", 128, false),
			newInput(passwordPlaceholder, 256, true),
		}},
	}
	m.inputs[0].Focus()
	return m
}

// Init implements [tea.Model].
func (m *PasswordFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model].
func (m *PasswordFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openAdd:
		m.reset()
		m.errMsg, m.submitting = "", false
		return m, textinput.Blink
	case editRecord:
		m.reset()
		m.errMsg, m.submitting = "", false
		m.current = msg.record
		m.inputs[0].SetValue(msg.record.AccountName)
		m.inputs[1].SetValue(msg.record.Username)
		return m, textinput.Blink
	case itemSavedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		notice := "Запись добавлена"
		if m.editing {
			notice = "Запись обновлена"
		}
		m.reset()
		return m, navigate(pageList, listNotice{text: notice})
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.errMsg, m.submitting = "", false
			return m, navigate(pageList, nil)
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
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *PasswordFormModel) submit() (tea.Model, tea.Cmd) {
	accountName := strings.TrimSpace(m.inputs[0].Value())
	username := strings.TrimSpace(m.inputs[1].Value())
	password := m.inputs[2].Value()

	if !m.editing {
		form := validators.AddForm{AccountName: accountName, Username: username, Password: password}
		if err := m.validator.Validate(m.ctx, form); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.submitting = true
		return m, m.cmdAdd(form)
	}

	form := validators.EditForm{AccountName: accountName, Username: username, Password: password}
	if err := m.validator.Validate(m.ctx, form); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	upd := form.Update(m.current)
	if upd.IsEmpty() {
		m.reset()
		return m, navigate(pageList, listNotice{text: "Изменений нет"})
	}

	m.errMsg = ""
	m.submitting = true
	return m, m.cmdUpdate(m.current.ID, upd)
}

// View implements [tea.Model].
func (m *PasswordFormModel) View() string {
	title, submit := "НОВАЯ ЗАПИСЬ", "Сохранить"
	if m.editing {
		title, submit = "ИЗМЕНЕНИЕ ЗАПИСИ", "Обновить"
	}

	var b strings.Builder
	b.WriteString(renderForm([]string{"Сервис", "Логин", "Пароль"}, m.inputs))
	b.WriteString(renderSubmit(submit, m.submitting, m.errMsg))

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ enter: сохранить")
}

func (m *PasswordFormModel) cmdAdd(form validators.AddForm) tea.Cmd {
	ctx := m.ctx
	vault := m.vault

	return func() tea.Msg {
		_, err := vault.Add(ctx, form.AccountName, form.Username, form.Password)
		return itemSavedMsg{err: err}
	}
}

func (m *PasswordFormModel) cmdUpdate(id string, upd models.PasswordUpdate) tea.Cmd {
	ctx := m.ctx
	vault := m.vault

	return func() tea.Msg {
		_, err := vault.Update(ctx, id, upd)
		return itemSavedMsg{err: err}
	}
}
