package tui

import (
	"fmt"
	"strings"

	"samm/internal/settings"

	tea "github.com/charmbracelet/bubbletea"
)

// PatchesModel toggles the patches of one profile
type PatchesModel struct {
	states   []settings.PatchState
	keys     *KeyMap
	selected int
	saved    bool
	quit     bool
}

// NewPatches lists the given patch states. Patches this build has no toggle
// for are shown but cannot be changed.
func NewPatches(states []settings.PatchState, keys *KeyMap) PatchesModel {
	if keys == nil {
		keys = NewKeyMap("")
	}
	return PatchesModel{states: states, keys: keys}
}

// Selected returns the highlighted row
func (m PatchesModel) Selected() int {
	return m.selected
}

// Saved reports whether the user accepted the changes
func (m PatchesModel) Saved() bool {
	return m.saved
}

// Toggles returns the enabled state of every changeable patch, keyed by name
func (m PatchesModel) Toggles() map[string]bool {
	out := make(map[string]bool, len(m.states))
	for _, s := range m.states {
		if s.Known {
			out[s.Entry.Name] = s.Enabled
		}
	}
	return out
}

// Init implements tea.Model
func (m PatchesModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m PatchesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case len(m.states) == 0 && !m.keys.IsConfirm(key) && !m.keys.IsCancel(key):
		return m, nil
	case m.keys.IsUp(key):
		m.selected--
		if m.selected < 0 {
			m.selected = len(m.states) - 1
		}
	case m.keys.IsDown(key):
		m.selected = (m.selected + 1) % len(m.states)
	case m.keys.IsToggle(key):
		if s := &m.states[m.selected]; s.Known {
			s.Enabled = !s.Enabled
		}
	case m.keys.IsConfirm(key):
		m.saved = true
		m.quit = true
		return m, tea.Quit
	case m.keys.IsCancel(key):
		m.quit = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model
func (m PatchesModel) View() string {
	if m.quit {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Patches") + "\n\n")

	if len(m.states) == 0 {
		b.WriteString(dimStyle.Render("  The patch list is empty.") + "\n")
	}

	for i, s := range m.states {
		cursor := "  "
		if i == m.selected {
			cursor = "▸ "
		}

		box := offStyle.Render("[ ]")
		if s.Enabled {
			box = onStyle.Render("[x]")
		}
		if !s.Known {
			box = dimStyle.Render("[-]")
		}

		name := s.Entry.Name
		if i == m.selected {
			name = selectedStyle.Render(name)
		}
		line := fmt.Sprintf("%s%s %s", cursor, box, name)
		if s.Entry.Category != "" {
			line += dimStyle.Render("  (" + s.Entry.Category + ")")
		}
		b.WriteString(line + "\n")

		if i == m.selected && s.Entry.Description != "" {
			b.WriteString(dimStyle.Render("      "+s.Entry.Description) + "\n")
		}
	}

	b.WriteString(helpStyle.Render(m.keys.ListHelp()))
	b.WriteString("\n")
	return b.String()
}
