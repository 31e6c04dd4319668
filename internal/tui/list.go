package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/vault-guard/internal/service"
	"github.com/MKhiriev/vault-guard/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	statusTimeout = 3 * time.Second
	revealTick    = time.Second
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// ListModel shows the password list. Secrets are masked until revealed and
// masked again when the reveal window ends.
type ListModel struct {
	ctx     context.Context
	session service.ClientSession
	auth    service.ClientAuthService
	vault   service.ClientVaultService
	reveal  service.ClientRevealService
	now     func() time.Time

	items      models.PasswordList
	idx        int
	loading    bool
	spinner    spinner.Model
	status     string
	errMsg     string
	confirming bool
	ticking    bool
	revealing  map[string]bool
}

// NewListModel creates the list page. Records are loaded on Init.
func NewListModel(ctx context.Context, services *service.ClientServices) *ListModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return &ListModel{
		ctx:       ctx,
		session:   services.Session,
		auth:      services.AuthService,
		vault:     services.VaultService,
		reveal:    services.RevealService,
		now:       time.Now,
		spinner:   s,
		revealing: make(map[string]bool),
	}
}

// Init implements [tea.Model].
func (m *ListModel) Init() tea.Cmd {
	m.loading = true
	m.confirming = false
	return tea.Batch(m.cmdLoad(), m.spinner.Tick)
}

// Update implements [tea.Model].
func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listNotice:
		m.status = msg.text
		m.loading = true
		return m, tea.Batch(m.cmdLoad(), clearStatusAfter(statusTimeout))
	case listLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.items = msg.items
		m.clampIdx()
		return m, nil
	case listChangedMsg:
		if msg.fresh || m.loading {
			return m, nil
		}
		if !m.session.IsAuthenticated() {
			m.items = nil
			return m, nil
		}
		m.loading = true
		return m, m.cmdLoad()
	case revealChangedMsg:
		if msg.visible {
			return m, m.startTicking()
		}
		return m, nil
	case revealDoneMsg:
		delete(m.revealing, msg.id)
		if msg.err != nil && !errors.Is(msg.err, service.ErrRevealCanceled) {
			m.errMsg = humanizeError(msg.err)
		}
		return m, nil
	case revealTickMsg:
		m.ticking = false
		return m, m.startTicking()
	case itemDeletedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.reveal.Hide(msg.id)
		m.status = "Запись удалена"
		m.loading = true
		return m, tea.Batch(m.cmdLoad(), clearStatusAfter(statusTimeout))
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *ListModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.errMsg != "" {
		if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
			m.errMsg = ""
		}
		return m, nil
	}

	if m.confirming {
		switch {
		case key.Matches(msg, keys.yes):
			m.confirming = false
			if rec, ok := m.current(); ok {
				return m, m.cmdDelete(rec.ID)
			}
		case key.Matches(msg, keys.no):
			m.confirming = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.logout):
		m.auth.Logout()
	case key.Matches(msg, keys.refresh):
		m.loading = true
		return m, tea.Batch(m.cmdRefresh(), m.spinner.Tick)
	case key.Matches(msg, keys.newItem):
		return m, navigate(pageAdd, openAdd{})
	case key.Matches(msg, keys.reveal):
		return m, m.revealCurrent()
	case key.Matches(msg, keys.hide):
		m.hideCurrent()
		return m, nil
	case key.Matches(msg, keys.copy):
		m.copyCurrent()
		return m, clearStatusAfter(statusTimeout)
	case key.Matches(msg, keys.edit):
		if rec, ok := m.current(); ok {
			return m, navigate(pageEdit, editRecord{record: rec})
		}
	case key.Matches(msg, keys.delete):
		if _, ok := m.current(); ok {
			m.confirming = true
		}
	}

	return m, nil
}

// revealCurrent fetches the selected secret. A visible secret is fetched
// again and its window starts over.
func (m *ListModel) revealCurrent() tea.Cmd {
	rec, ok := m.current()
	if !ok || m.revealing[rec.ID] {
		return nil
	}
	m.revealing[rec.ID] = true
	return m.cmdReveal(rec.ID)
}

func (m *ListModel) hideCurrent() {
	if rec, ok := m.current(); ok {
		m.reveal.Hide(rec.ID)
	}
}

// copyCurrent copies the selected secret. Only a visible secret can be
// copied; nothing is fetched for it.
func (m *ListModel) copyCurrent() {
	rec, ok := m.current()
	if !ok {
		return
	}
	plaintext, visible := m.reveal.CurrentPlaintext(rec.ID)
	if !visible {
		m.status = "Сначала покажите пароль"
		return
	}
	if err := copyToClipboard(plaintext); err != nil {
		m.errMsg = fmt.Sprintf("Ошибка копирования: %v", err)
		return
	}
	m.status = "Скопировано"
}

func (m *ListModel) startTicking() tea.Cmd {
	if m.ticking || !m.anyRevealed() {
		return nil
	}
	m.ticking = true
	return tea.Tick(revealTick, func(time.Time) tea.Msg { return revealTickMsg{} })
}

func (m *ListModel) anyRevealed() bool {
	for _, rec := range m.items {
		if m.reveal.IsRevealed(rec.ID) {
			return true
		}
	}
	return false
}

func (m *ListModel) current() (models.PasswordRecord, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.PasswordRecord{}, false
	}
	return m.items[m.idx], true
}

func (m *ListModel) clampIdx() {
	if m.idx >= len(m.items) {
		m.idx = len(m.items) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

// View implements [tea.Model].
func (m *ListModel) View() string {
	if m.errMsg != "" {
		return renderPage("ПАРОЛИ", errorOverlayModel{message: m.errMsg}.View(), "")
	}
	if m.confirming {
		rec, _ := m.current()
		return renderPage("ПАРОЛИ", confirmModel{message: rec.AccountName}.View(), "")
	}

	var b strings.Builder
	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" Загрузка...\n\n")
	}

	if len(m.items) == 0 && !m.loading {
		b.WriteString("Нет записей\n")
	} else if len(m.items) > 0 {
		b.WriteString(m.renderTable())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	return renderPage("ПАРОЛИ", strings.TrimRight(b.String(), "\n"),
		"enter/r: показать │ h: скрыть │ c: копировать │ n: новая │ e: изменить │ d: удалить │ s: обновить │ l: выйти │ q: выход")
}

func (m *ListModel) renderTable() string {
	const maxCol = 28

	nameWidth, userWidth := lipgloss.Width("Сервис"), lipgloss.Width("Логин")
	for _, rec := range m.items {
		nameWidth = max(nameWidth, min(lipgloss.Width(rec.AccountName), maxCol))
		userWidth = max(userWidth, min(lipgloss.Width(rec.Username), maxCol))
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %-*s │ %-*s │ %s\n", nameWidth, "Сервис", userWidth, "Логин", "Пароль"))
	b.WriteString(strings.Repeat("─", nameWidth+3))
	b.WriteString("┼")
	b.WriteString(strings.Repeat("─", userWidth+2))
	b.WriteString("┼")
	b.WriteString(strings.Repeat("─", 24))
	b.WriteString("\n")

	for i, rec := range m.items {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-*s │ %-*s │ %s\n",
			cursor,
			nameWidth, fitText(rec.AccountName, maxCol),
			userWidth, fitText(rec.Username, maxCol),
			m.renderSecret(rec.ID)))
	}
	return b.String()
}

func (m *ListModel) renderSecret(id string) string {
	if m.revealing[id] {
		return service.Mask + " ..."
	}
	plaintext, ok := m.reveal.CurrentPlaintext(id)
	if !ok || plaintext == "" {
		return service.Mask
	}
	out := revealedStyle.Render(plaintext)
	if expiresAt, ok := m.reveal.ExpiresAt(id); ok {
		left := max(expiresAt.Sub(m.now()).Round(time.Second), 0)
		out += helpStyle.Render(fmt.Sprintf(" (%s)", left))
	}
	return out
}

func (m *ListModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	vault := m.vault

	return func() tea.Msg {
		items, err := vault.Records(ctx)
		return listLoadedMsg{items: items, err: err}
	}
}

func (m *ListModel) cmdRefresh() tea.Cmd {
	ctx := m.ctx
	vault := m.vault

	return func() tea.Msg {
		items, err := vault.List(ctx)
		return listLoadedMsg{items: items, err: err}
	}
}

func (m *ListModel) cmdReveal(id string) tea.Cmd {
	ctx := m.ctx
	reveal := m.reveal

	return func() tea.Msg {
		_, err := reveal.RevealNow(ctx, id)
		return revealDoneMsg{id: id, err: err}
	}
}

func (m *ListModel) cmdDelete(id string) tea.Cmd {
	ctx := m.ctx
	vault := m.vault

	return func() tea.Msg {
		return itemDeletedMsg{id: id, err: vault.Remove(ctx, id)}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}
