// Package keymap provides key binding definitions and lookup for the TUI.
// Bindings are declared per mode so Update can translate a tea.KeyMsg into
// a Command without a hand-written switch for every screen.
package keymap

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the current input mode of the TUI.
// Different modes have different key bindings active.
type Mode string

const (
	ModeLoading Mode = "loading" // Hub or rows still being fetched
	ModeBrowse  Mode = "browse"  // Sealed grid with a focus cursor
	ModeError   Mode = "error"   // Fallback view after a hub failure
)

// Command represents a named action that can be triggered by a key binding.
type Command string

const (
	// Navigation
	CmdMoveLeft  Command = "move_left"
	CmdMoveRight Command = "move_right"
	CmdMoveUp    Command = "move_up"
	CmdMoveDown  Command = "move_down"

	// Activation
	CmdSelect Command = "select"

	// Fallback view
	CmdRetry Command = "retry"

	// Exit
	CmdQuit Command = "quit"
)

// Modifier represents keyboard modifiers (Ctrl, Alt, Shift).
type Modifier uint8

const (
	ModNone Modifier = 0
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
)

// String returns a human-readable representation of modifiers.
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var s string
	if m&ModCtrl != 0 {
		s += "ctrl+"
	}
	if m&ModAlt != 0 {
		s += "alt+"
	}
	if m&ModShift != 0 {
		s += "shift+"
	}
	return s
}

// KeyBinding represents a single key binding configuration.
type KeyBinding struct {
	// KeyType is the primary key for this binding.
	// For rune keys, use tea.KeyRunes and set Rune.
	KeyType tea.KeyType

	// Rune is the character for rune-based keys (when KeyType is tea.KeyRunes).
	Rune rune

	// Modifiers contains the modifier keys that must be pressed.
	Modifiers Modifier

	// Command is the action to execute when this binding is triggered.
	Command Command

	// Description is a human-readable description for help display.
	Description string

	// Short is the label used in the one-line help bar. Bindings with an
	// empty Short are left out of the bar.
	Short string
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	wantAlt := kb.Modifiers&ModAlt != 0
	if msg.Alt != wantAlt {
		return false
	}

	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return false
	}
	return msg.Runes[0] == kb.Rune
}

// String returns a human-readable representation of the key binding.
func (kb KeyBinding) String() string {
	prefix := kb.Modifiers.String()

	switch kb.KeyType {
	case tea.KeyRunes:
		if kb.Rune == ' ' {
			return prefix + "space"
		}
		return prefix + string(kb.Rune)
	case tea.KeyLeft:
		return prefix + "←"
	case tea.KeyRight:
		return prefix + "→"
	case tea.KeyUp:
		return prefix + "↑"
	case tea.KeyDown:
		return prefix + "↓"
	default:
		return prefix + kb.KeyType.String()
	}
}

// ModeBindings holds all key bindings for a specific mode.
type ModeBindings struct {
	Mode     Mode
	Bindings []KeyBinding
}

// GetBinding looks up a command for a key in this mode.
func (mb *ModeBindings) GetBinding(msg tea.KeyMsg) (Command, bool) {
	for _, binding := range mb.Bindings {
		if binding.Matches(msg) {
			return binding.Command, true
		}
	}
	return "", false
}

// Keymap contains all key bindings organized by mode.
type Keymap struct {
	Name        string
	Description string
	Modes       map[Mode]*ModeBindings
}

// GetBinding looks up a command for a key in a specific mode.
// Returns the command and true if found, or empty command and false if not.
func (km *Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (Command, bool) {
	mb, ok := km.Modes[mode]
	if !ok {
		return "", false
	}
	return mb.GetBinding(msg)
}

// HelpEntry is one key/label pair in the help bar.
type HelpEntry struct {
	Keys  string
	Label string
}

// Help returns the help bar entries for a mode. Bindings that share a
// Short label are merged into one entry, keeping first-seen order.
func (km *Keymap) Help(mode Mode) []HelpEntry {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	var entries []HelpEntry
	index := make(map[string]int)
	for _, binding := range mb.Bindings {
		if binding.Short == "" {
			continue
		}
		if i, seen := index[binding.Short]; seen {
			entries[i].Keys += "/" + binding.String()
			continue
		}
		index[binding.Short] = len(entries)
		entries = append(entries, HelpEntry{Keys: binding.String(), Label: binding.Short})
	}
	return entries
}
