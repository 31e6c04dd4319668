package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("ctrl+c: выход"))

	return appStyle.Render(b.String())
}

// renderForm lays labels and inputs out as a two-column table.
func renderForm(labels []string, inputs []textinput.Model) string {
	width := lipgloss.Width("Поле")
	for _, l := range labels {
		if w := lipgloss.Width(l); w > width {
			width = w
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-*s │ Значение\n", width, "Поле"))
	b.WriteString(strings.Repeat("─", width+1))
	b.WriteString("┼")
	b.WriteString(strings.Repeat("─", 44))
	b.WriteString("\n")
	for i, l := range labels {
		b.WriteString(fmt.Sprintf("%-*s │ [", width, l))
		b.WriteString(inputs[i].View())
		b.WriteString("]\n")
	}
	return b.String()
}

func renderSubmit(label string, submitting bool, errMsg string) string {
	var b strings.Builder
	if submitting {
		b.WriteString("\n[" + label + "...]\n")
	} else {
		b.WriteString("\n[" + label + "]\n")
	}
	if errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Ошибка: " + errMsg))
		b.WriteString("\n")
	}
	return b.String()
}

func newInput(placeholder string, limit int, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '*'
	}
	return in
}

// formFocus moves focus between inputs.
type formFocus struct {
	inputs []textinput.Model
	focus  int
}

func (f *formFocus) focusNext() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *formFocus) focusPrev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *formFocus) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.inputs[f.focus].Focus()
}

func fitText(v string, max int) string {
	if max <= 0 || len(v) <= max {
		return v
	}
	if max <= 3 {
		return v[:max]
	}
	return v[:max-3] + "..."
}
