package tui

import (
	"github.com/MKhiriev/vault-guard/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// RootModel is a TUI router:
// 1) keeps active page
// 2) handles global Ctrl+C quit
// 3) handles NavigateTo messages
// 4) routes back to the menu when the session ends
// 5) delegates all other messages to the active page
type RootModel struct {
	pages       map[string]tea.Model
	current     tea.Model
	currentName string

	quitByUser bool
	buildInfo  models.AppBuildInfo

	showBuildInfo bool
}

// NewRootModel registers all pages and opens startPage.
func NewRootModel(pages map[string]tea.Model, startPage string, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{
		pages:       pages,
		current:     pages[startPage],
		currentName: startPage,
		buildInfo:   buildInfo,
	}
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Global hotkey for every page.
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.String() == "ctrl+c":
			r.quitByUser = true
			return r, tea.Quit
		case key.Matches(keyMsg, keys.version) && r.currentName == pageMenu:
			r.showBuildInfo = !r.showBuildInfo
			return r, nil
		case key.Matches(keyMsg, keys.esc) && r.showBuildInfo:
			r.showBuildInfo = false
			return r, nil
		}

		if r.showBuildInfo {
			return r, nil
		}
	}

	switch msg := msg.(type) {
	case NavigateTo:
		return r.navigate(msg)
	case LoginResult:
		if msg.Err == nil {
			r, _ = r.delegate(msg)
			return r.navigate(NavigateTo{Page: pageList})
		}
	case sessionChangedMsg:
		if !msg.authenticated && r.isVaultPage() {
			return r.navigate(NavigateTo{Page: pageMenu, Payload: sessionEndedNotice{text: "Сессия завершена, войдите снова"}})
		}
		return r, nil
	case revealChangedMsg, listChangedMsg:
		// the list keeps its own state even when another page is active
		if list, ok := r.pages[pageList]; ok && r.current != list {
			next, cmd := list.Update(msg)
			r.pages[pageList] = next
			return r, cmd
		}
	}

	return r.delegate(msg)
}

func (r RootModel) navigate(nav NavigateTo) (RootModel, tea.Cmd) {
	next, exists := r.pages[nav.Page]
	if !exists {
		return r, nil
	}

	r.showBuildInfo = false
	r.current = next
	r.currentName = nav.Page

	if nav.Payload != nil {
		payload := nav.Payload
		return r, func() tea.Msg { return payload }
	}
	return r, r.current.Init()
}

func (r RootModel) delegate(msg tea.Msg) (RootModel, tea.Cmd) {
	if r.current == nil {
		return r, nil
	}

	next, cmd := r.current.Update(msg)
	r.current = next
	r.pages[r.currentName] = next
	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo)
	}
	if r.current == nil {
		return renderPage("VAULTGUARD", "", "")
	}
	return r.current.View()
}

func (r RootModel) isVaultPage() bool {
	switch r.currentName {
	case pageList, pageAdd, pageEdit:
		return true
	}
	return false
}
