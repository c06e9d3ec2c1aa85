package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel is a yes/no prompt
type ConfirmModel struct {
	title   string
	message string
	keys    *KeyMap
	yes     bool // Highlighted choice
	done    bool
	answer  bool
}

// NewConfirm creates a prompt with "Yes" highlighted
func NewConfirm(title, message string, keys *KeyMap) ConfirmModel {
	if keys == nil {
		keys = NewKeyMap("")
	}
	return ConfirmModel{title: title, message: message, keys: keys, yes: true}
}

// Answered reports whether the user made a choice
func (m ConfirmModel) Answered() bool {
	return m.done
}

// Confirmed is the user's answer; false until answered
func (m ConfirmModel) Confirmed() bool {
	return m.done && m.answer
}

// Init implements tea.Model
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case m.keys.IsYes(key):
		return m.finish(true)
	case m.keys.IsNo(key), m.keys.IsCancel(key):
		return m.finish(false)
	case m.keys.IsConfirm(key):
		return m.finish(m.yes)
	case m.keys.IsLeft(key):
		m.yes = true
	case m.keys.IsRight(key):
		m.yes = false
	}
	return m, nil
}

func (m ConfirmModel) finish(answer bool) (tea.Model, tea.Cmd) {
	m.done = true
	m.answer = answer
	return m, tea.Quit
}

// View implements tea.Model
func (m ConfirmModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.message)
	b.WriteString("\n\n")

	yes, no := dimStyle.Render(" Yes "), dimStyle.Render(" No ")
	if m.yes {
		yes = selectedStyle.Render("[Yes]")
	} else {
		no = selectedStyle.Render("[No]")
	}
	b.WriteString("  " + yes + "  " + no + "\n")
	b.WriteString(helpStyle.Render(m.keys.ConfirmHelp()))
	b.WriteString("\n")
	return b.String()
}
