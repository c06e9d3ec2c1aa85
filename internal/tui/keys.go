package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap maps key presses onto prompt and list actions
type KeyMap struct {
	mode string
}

// NewKeyMap creates a keymap for "vim" or "standard" navigation
func NewKeyMap(mode string) *KeyMap {
	if mode == "" {
		mode = "vim"
	}
	return &KeyMap{mode: mode}
}

// Mode returns the current keybinding mode
func (k *KeyMap) Mode() string {
	return k.mode
}

func (k *KeyMap) vim(msg tea.KeyMsg, key string) bool {
	return k.mode == "vim" && msg.String() == key
}

// IsUp is the previous-item key
func (k *KeyMap) IsUp(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyUp || k.vim(msg, "k")
}

// IsDown is the next-item key
func (k *KeyMap) IsDown(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyDown || k.vim(msg, "j")
}

// IsLeft moves the confirm prompt to "Yes"
func (k *KeyMap) IsLeft(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyLeft || k.vim(msg, "h")
}

// IsRight moves the confirm prompt to "No"
func (k *KeyMap) IsRight(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyRight || k.vim(msg, "l")
}

// IsToggle flips the selected patch
func (k *KeyMap) IsToggle(msg tea.KeyMsg) bool {
	return msg.String() == " " || msg.Type == tea.KeySpace
}

// IsConfirm accepts the current choice
func (k *KeyMap) IsConfirm(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEnter
}

// IsCancel abandons the prompt
func (k *KeyMap) IsCancel(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEsc || msg.Type == tea.KeyCtrlC || msg.String() == "q"
}

// IsYes answers a confirm prompt directly
func (k *KeyMap) IsYes(msg tea.KeyMsg) bool {
	return msg.String() == "y" || msg.String() == "Y"
}

// IsNo declines a confirm prompt directly
func (k *KeyMap) IsNo(msg tea.KeyMsg) bool {
	return msg.String() == "n" || msg.String() == "N"
}

// ConfirmHelp is the help line under a yes/no prompt
func (k *KeyMap) ConfirmHelp() string {
	if k.mode == "vim" {
		return "y/n: answer  h/l: choose  enter: accept  esc: no"
	}
	return "y/n: answer  ←/→: choose  enter: accept  esc: no"
}

// ListHelp is the help line under the patch list
func (k *KeyMap) ListHelp() string {
	if k.mode == "vim" {
		return "j/k: navigate  space: toggle  enter: save  esc: discard"
	}
	return "↑/↓: navigate  space: toggle  enter: save  esc: discard"
}
